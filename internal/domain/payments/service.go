package payments

import (
	"context"
	"fmt"
	"math"
	"strings"

	razorpay "github.com/razorpay/razorpay-go"
	rzputils "github.com/razorpay/razorpay-go/utils"
	"go.uber.org/zap"

	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/bookings"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/orders"
)

// CheckoutOrder is what the client needs to open the Razorpay checkout.
type CheckoutOrder struct {
	RazorpayOrderID string  `json:"razorpayOrderId"`
	Amount          int64   `json:"amount"` // paise
	Currency        string  `json:"currency"`
	KeyID           string  `json:"keyId"`
	Reference       string  `json:"reference"`
	AmountRupees    float64 `json:"amountRupees"`
}

// SettlementInput is the callback payload Razorpay checkout produces.
type SettlementInput struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	Reference         string `json:"reference"`
	ReferenceKind     string `json:"referenceKind"` // "order" or "booking"
}

// Service creates Razorpay checkout orders and verifies settlement
// callbacks, writing the payment state back onto the referenced order or
// booking.
type Service struct {
	client   *razorpay.Client
	keyID    string
	secret   string
	orders   *orders.Service
	bookings *bookings.Service
	log      *zap.Logger
}

func NewService(keyID, secret string, orderSvc *orders.Service, bookingSvc *bookings.Service, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		client:   razorpay.NewClient(keyID, secret),
		keyID:    keyID,
		secret:   secret,
		orders:   orderSvc,
		bookings: bookingSvc,
		log:      log,
	}
}

// CreateCheckout creates a Razorpay order for the given rupee amount.
// Razorpay wants the amount in paise.
func (s *Service) CreateCheckout(ctx context.Context, amountRupees float64, reference string) (*CheckoutOrder, error) {
	if amountRupees <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrBadRequest)
	}
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, fmt.Errorf("%w: reference is required", ErrBadRequest)
	}

	paise := int64(math.Round(amountRupees * 100))
	data := map[string]interface{}{
		"amount":   paise,
		"currency": "INR",
		"receipt":  reference,
	}
	body, err := s.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create razorpay order: %w", err)
	}

	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay order response missing id")
	}
	s.log.Info("razorpay order created",
		zap.String("razorpayOrderId", id),
		zap.String("reference", reference),
		zap.Int64("paise", paise))

	return &CheckoutOrder{
		RazorpayOrderID: id,
		Amount:          paise,
		Currency:        "INR",
		KeyID:           s.keyID,
		Reference:       reference,
		AmountRupees:    amountRupees,
	}, nil
}

// VerifySettlement checks the checkout callback signature and, when valid,
// attaches the payment to the referenced order or booking.
func (s *Service) VerifySettlement(ctx context.Context, in SettlementInput) error {
	if in.RazorpayOrderID == "" || in.RazorpayPaymentID == "" || in.RazorpaySignature == "" {
		return fmt.Errorf("%w: missing razorpay callback fields", ErrBadRequest)
	}

	params := map[string]interface{}{
		"razorpay_order_id":   in.RazorpayOrderID,
		"razorpay_payment_id": in.RazorpayPaymentID,
	}
	if !rzputils.VerifyPaymentSignature(params, in.RazorpaySignature, s.secret) {
		return fmt.Errorf("%w: signature mismatch for %s", ErrVerification, in.RazorpayOrderID)
	}

	switch in.ReferenceKind {
	case "order":
		if err := s.orders.AttachPayment(ctx, in.Reference, in.RazorpayPaymentID, "paid"); err != nil {
			return err
		}
	case "booking":
		if err := s.bookings.AttachPayment(ctx, in.Reference, in.RazorpayPaymentID); err != nil {
			return err
		}
	case "":
		// standalone payments carry no reference; verified is enough
	default:
		return fmt.Errorf("%w: unknown reference kind %q", ErrBadRequest, in.ReferenceKind)
	}

	s.log.Info("payment verified",
		zap.String("razorpayPaymentId", in.RazorpayPaymentID),
		zap.String("reference", in.Reference))
	return nil
}
