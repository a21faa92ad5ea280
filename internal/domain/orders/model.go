package orders

import "time"

// Order statuses. The lifecycle is linear with a cancel escape hatch; see
// allowedTransitions.
const (
	StatusPending    = "Pending"
	StatusConfirmed  = "Confirmed"
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
	StatusCompleted  = "Completed"
	StatusCancelled  = "Cancelled"
)

// allowedTransitions guards order status changes. Delivered and Completed
// are both terminal success states because old clients wrote either.
var allowedTransitions = map[string][]string{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCompleted},
}

func canTransition(from, to string) bool {
	for _, t := range allowedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// OrderItem is one product line inside an order.
type OrderItem struct {
	ProductID string  `firestore:"productId" json:"productId"`
	Name      string  `firestore:"name" json:"name"`
	Quantity  int     `firestore:"quantity" json:"quantity"`
	Price     float64 `firestore:"price" json:"price"`
	ImageURL  string  `firestore:"imageUrl,omitempty" json:"imageUrl,omitempty"`
}

// Order is a product purchase. businessId may hold either the business
// email or the internal id depending on which client wrote it; listing
// queries under both.
type Order struct {
	ID            string      `firestore:"id" json:"id"`
	BusinessID    string      `firestore:"businessId" json:"businessId"`
	BusinessName  string      `firestore:"businessName,omitempty" json:"businessName,omitempty"`
	CustomerID    string      `firestore:"customerId" json:"customerId"`
	CustomerName  string      `firestore:"customerName,omitempty" json:"customerName,omitempty"`
	CustomerEmail string      `firestore:"customerEmail,omitempty" json:"customerEmail,omitempty"`
	Items         []OrderItem `firestore:"items" json:"items"`
	TotalAmount   float64     `firestore:"totalAmount" json:"totalAmount"`
	Status        string      `firestore:"status" json:"status"`
	PaymentID     string      `firestore:"paymentId,omitempty" json:"paymentId,omitempty"`
	PaymentStatus string      `firestore:"paymentStatus,omitempty" json:"paymentStatus,omitempty"`
	DeliveryNote  string      `firestore:"deliveryNote,omitempty" json:"deliveryNote,omitempty"`
	Address       string      `firestore:"address,omitempty" json:"address,omitempty"`
	CreatedAt     time.Time   `firestore:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time   `firestore:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

type CreateOrderInput struct {
	BusinessID    string      `json:"businessId"`
	BusinessName  string      `json:"businessName,omitempty"`
	CustomerID    string      `json:"customerId"`
	CustomerName  string      `json:"customerName,omitempty"`
	CustomerEmail string      `json:"customerEmail,omitempty"`
	Items         []OrderItem `json:"items"`
	DeliveryNote  string      `json:"deliveryNote,omitempty"`
	Address       string      `json:"address,omitempty"`
}
