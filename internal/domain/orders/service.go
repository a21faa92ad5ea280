package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/identity"
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

// Place validates and stores a new order in Pending state.
func (s *Service) Place(ctx context.Context, in CreateOrderInput) (*Order, error) {
	in.BusinessID = strings.TrimSpace(in.BusinessID)
	in.CustomerID = strings.TrimSpace(in.CustomerID)
	if in.BusinessID == "" || in.CustomerID == "" {
		return nil, fmt.Errorf("%w: businessId and customerId are required", ErrBadRequest)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: order needs at least one item", ErrBadRequest)
	}

	var total float64
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 || item.Price < 0 {
			return nil, fmt.Errorf("%w: invalid order item", ErrBadRequest)
		}
		total += item.Price * float64(item.Quantity)
	}

	businessKey := in.BusinessID
	if key, _ := s.resolver.ResolveBusinessKey(ctx, in.BusinessID); key != "" {
		businessKey = key
	}

	now := time.Now().UTC()
	o := Order{
		BusinessID:    businessKey,
		BusinessName:  in.BusinessName,
		CustomerID:    in.CustomerID,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		Items:         in.Items,
		TotalAmount:   total,
		Status:        StatusPending,
		DeliveryNote:  in.DeliveryNote,
		Address:       in.Address,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return s.repo.Create(ctx, o)
}

func (s *Service) Get(ctx context.Context, orderID string) (*Order, error) {
	o, _, err := s.repo.Get(ctx, orderID)
	return o, err
}

// ListForBusiness returns the business's orders under both identifier
// forms, since historical writers disagreed about which to store.
func (s *Service) ListForBusiness(ctx context.Context, businessIdentifier string) ([]Order, error) {
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

func (s *Service) ListForCustomer(ctx context.Context, customerID string) ([]Order, error) {
	return s.repo.ListByField(ctx, "customerId", customerID)
}

// UpdateStatus moves an order along the lifecycle, rejecting transitions
// the state machine does not allow.
func (s *Service) UpdateStatus(ctx context.Context, orderID, toStatus string) (*Order, error) {
	o, coll, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !canTransition(o.Status, toStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrTransition, o.Status, toStatus)
	}

	err = s.repo.SetFields(ctx, coll, orderID, map[string]interface{}{
		"status":    toStatus,
		"updatedAt": time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	o.Status = toStatus
	s.log.Info("order status changed",
		zap.String("orderId", orderID),
		zap.String("status", toStatus))
	return o, nil
}

// AttachPayment records the payment reference on an order after a verified
// settlement.
func (s *Service) AttachPayment(ctx context.Context, orderID, paymentID, state string) error {
	_, coll, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return err
	}
	return s.repo.SetFields(ctx, coll, orderID, map[string]interface{}{
		"paymentId":     paymentID,
		"paymentStatus": state,
		"updatedAt":     time.Now().UTC(),
	})
}
