package bookings

import "time"

// Booking statuses, stored lowercase unlike order statuses. Both spellings
// predate this service and cannot be unified without a migration.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

var allowedTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func canTransition(from, to string) bool {
	for _, t := range allowedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Booking is a service reservation in the flat bookings collection.
type Booking struct {
	ID            string    `firestore:"id" json:"id"`
	BusinessID    string    `firestore:"businessId" json:"businessId"`
	BusinessName  string    `firestore:"businessName,omitempty" json:"businessName,omitempty"`
	ServiceID     string    `firestore:"serviceId" json:"serviceId"`
	ServiceName   string    `firestore:"serviceName,omitempty" json:"serviceName,omitempty"`
	CustomerID    string    `firestore:"customerId" json:"customerId"`
	CustomerName  string    `firestore:"customerName,omitempty" json:"customerName,omitempty"`
	CustomerEmail string    `firestore:"customerEmail,omitempty" json:"customerEmail,omitempty"`
	Price         float64   `firestore:"price" json:"price"`
	Status        string    `firestore:"status" json:"status"`
	PaymentID     string    `firestore:"paymentId,omitempty" json:"paymentId,omitempty"`
	Note          string    `firestore:"note,omitempty" json:"note,omitempty"`
	BookingTime   time.Time `firestore:"bookingTime" json:"bookingTime"`
	CreatedAt     time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `firestore:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

type CreateBookingInput struct {
	BusinessID    string `json:"businessId"`
	BusinessName  string `json:"businessName,omitempty"`
	ServiceID     string `json:"serviceId"`
	ServiceName   string `json:"serviceName,omitempty"`
	CustomerID    string `json:"customerId"`
	CustomerName  string `json:"customerName,omitempty"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	Price         float64 `json:"price"`
	Note          string `json:"note,omitempty"`
	BookingTime   string `json:"bookingTime"`
}
