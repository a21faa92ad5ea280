package reviews

import "time"

// Entity types a review can be attached to.
const (
	TypeBusiness = "business"
	TypeProduct  = "product"
	TypeService  = "service"
)

// Review statuses. Only active reviews are meant to count toward
// aggregates; see service.go for what actually happens.
const (
	StatusActive   = "active"
	StatusHidden   = "hidden"
	StatusReported = "reported"
)

// Review is a customer review document stored under a composite path keyed
// by the reviewed entity.
type Review struct {
	ID           string `firestore:"id" json:"id"`
	Type         string `firestore:"type" json:"type"`
	BusinessID   string `firestore:"businessId" json:"businessId"`
	ItemID       string `firestore:"itemId,omitempty" json:"itemId,omitempty"`
	UserID       string `firestore:"userId" json:"userId"`
	UserName     string `firestore:"userName" json:"userName"`
	UserPhotoURL string `firestore:"userPhotoURL,omitempty" json:"userPhotoURL,omitempty"`

	Rating  int    `firestore:"rating" json:"rating"` // 1-5
	Comment string `firestore:"comment,omitempty" json:"comment,omitempty"`
	Status  string `firestore:"status" json:"status"`

	BusinessResponse *BusinessResponse `firestore:"businessResponse,omitempty" json:"businessResponse,omitempty"`

	RelatedOrderID string `firestore:"relatedOrderId,omitempty" json:"relatedOrderId,omitempty"`

	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

type BusinessResponse struct {
	Text      string    `firestore:"text" json:"text"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

type AddReviewInput struct {
	Type               string `json:"type"`
	BusinessIdentifier string `json:"businessId"`
	ItemID             string `json:"itemId,omitempty"`
	UserID             string `json:"userId"`
	UserName           string `json:"userName"`
	Rating             int    `json:"rating"`
	Comment            string `json:"comment,omitempty"`
	UserPhotoURL       string `json:"userPhotoURL,omitempty"`
	RelatedOrderID     string `json:"relatedOrderId,omitempty"`
}

type UpdateReviewInput struct {
	Rating  *int    `json:"rating,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

// ReviewPage is one page of reviews plus the opaque cursor for the next.
type ReviewPage struct {
	Reviews     []Review `json:"reviews"`
	LastVisible string   `json:"lastVisible,omitempty"`
}

// AggregateResult is the recomputed denormalized aggregate of one entity.
type AggregateResult struct {
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}

// ReviewStats is the read-only statistics variant, safe to render directly:
// the fetch path returns the zero value instead of failing.
type ReviewStats struct {
	AverageRating     float64         `json:"averageRating"`
	TotalReviews      int             `json:"totalReviews"`
	RatingCounts      map[int]int     `json:"ratingCounts"`
	RatingPercentages map[int]float64 `json:"ratingPercentages"`
}

// NewZeroStats returns the all-zero statistics structure with the histogram
// keys present, so dashboards always have something to render.
func NewZeroStats() ReviewStats {
	return ReviewStats{
		RatingCounts:      map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
		RatingPercentages: map[int]float64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
}
