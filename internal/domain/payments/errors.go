package payments

import "errors"

var (
	ErrBadRequest   = errors.New("bad request")
	ErrVerification = errors.New("payment verification failed")
)

func IsErrBadRequest(err error) bool   { return errors.Is(err, ErrBadRequest) }
func IsErrVerification(err error) bool { return errors.Is(err, ErrVerification) }
