package bookings

import "errors"

var (
	ErrNotFound   = errors.New("booking not found")
	ErrBadRequest = errors.New("bad request")
	ErrTransition = errors.New("invalid status transition")
)

func IsErrNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsErrBadRequest(err error) bool { return errors.Is(err, ErrBadRequest) }
func IsErrTransition(err error) bool { return errors.Is(err, ErrTransition) }
