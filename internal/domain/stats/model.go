package stats

// DashboardStats is the business dashboard summary. Every field defaults to
// zero; the fetch path guarantees a renderable struct no matter what storage
// does.
type DashboardStats struct {
	ServiceCount        int     `json:"serviceCount"`
	ProductCount        int     `json:"productCount"`
	PendingReservations int     `json:"pendingReservations"`
	PaymentsReceived    float64 `json:"paymentsReceived"`
	AverageRating       float64 `json:"averageRating"`
	TotalReviews        int     `json:"totalReviews"`
}

// RatingStats is the rating slice of the dashboard, aggregated across the
// business document and every product and service it owns.
type RatingStats struct {
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
}
