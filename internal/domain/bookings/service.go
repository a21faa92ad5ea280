package bookings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/identity"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/utils"
)

type Service struct {
	repo     *Repo
	resolver *identity.Resolver
	log      *zap.Logger
}

func NewService(repo *Repo, resolver *identity.Resolver, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, resolver: resolver, log: log}
}

// Reserve validates and stores a new booking in pending state.
func (s *Service) Reserve(ctx context.Context, in CreateBookingInput) (*Booking, error) {
	in.BusinessID = strings.TrimSpace(in.BusinessID)
	in.ServiceID = strings.TrimSpace(in.ServiceID)
	in.CustomerID = strings.TrimSpace(in.CustomerID)
	if in.BusinessID == "" || in.ServiceID == "" || in.CustomerID == "" {
		return nil, fmt.Errorf("%w: businessId, serviceId and customerId are required", ErrBadRequest)
	}

	when, err := utils.ParseTime(in.BookingTime)
	if err != nil {
		return nil, fmt.Errorf("%w: bookingTime: %v", ErrBadRequest, err)
	}
	if when.Before(time.Now()) {
		return nil, fmt.Errorf("%w: bookingTime is in the past", ErrBadRequest)
	}

	businessKey := in.BusinessID
	if key, _ := s.resolver.ResolveBusinessKey(ctx, in.BusinessID); key != "" {
		businessKey = key
	}

	now := time.Now().UTC()
	b := Booking{
		BusinessID:    businessKey,
		BusinessName:  in.BusinessName,
		ServiceID:     in.ServiceID,
		ServiceName:   in.ServiceName,
		CustomerID:    in.CustomerID,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		Price:         in.Price,
		Status:        StatusPending,
		Note:          in.Note,
		BookingTime:   when,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return s.repo.Create(ctx, b)
}

func (s *Service) Get(ctx context.Context, bookingID string) (*Booking, error) {
	return s.repo.Get(ctx, bookingID)
}

func (s *Service) ListForBusiness(ctx context.Context, businessIdentifier string) ([]Booking, error) {
	values := []string{businessIdentifier}
	if pair, err := s.resolver.ResolveKeyPair(ctx, businessIdentifier); err == nil {
		for _, v := range []string{pair.Primary, pair.Alternate} {
			if v != "" && v != businessIdentifier {
				values = append(values, v)
			}
		}
	}
	return s.repo.ListByField(ctx, "businessId", values...)
}

func (s *Service) ListForCustomer(ctx context.Context, customerID string) ([]Booking, error) {
	return s.repo.ListByField(ctx, "customerId", customerID)
}

// UpdateStatus moves a booking along the lifecycle, rejecting transitions
// the state machine does not allow.
func (s *Service) UpdateStatus(ctx context.Context, bookingID, toStatus string) (*Booking, error) {
	b, err := s.repo.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !canTransition(b.Status, toStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrTransition, b.Status, toStatus)
	}

	err = s.repo.SetFields(ctx, bookingID, map[string]interface{}{
		"status":    toStatus,
		"updatedAt": time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	b.Status = toStatus
	s.log.Info("booking status changed",
		zap.String("bookingId", bookingID),
		zap.String("status", toStatus))
	return b, nil
}

// AttachPayment records the payment reference on a booking after a
// verified settlement.
func (s *Service) AttachPayment(ctx context.Context, bookingID, paymentID string) error {
	if _, err := s.repo.Get(ctx, bookingID); err != nil {
		return err
	}
	return s.repo.SetFields(ctx, bookingID, map[string]interface{}{
		"paymentId": paymentID,
		"updatedAt": time.Now().UTC(),
	})
}
