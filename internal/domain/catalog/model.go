package catalog

import (
	"strings"
	"time"
)

// Product lives under Products/{businessKey}/{Available|Unavailable}/{id}.
// The subcollection name encodes stock status; a product is only ever in one
// of the two.
type Product struct {
	ID          string   `firestore:"id" json:"id"`
	BusinessID  string   `firestore:"businessId" json:"businessId"`
	Name        string   `firestore:"name" json:"name"`
	Description string   `firestore:"description,omitempty" json:"description,omitempty"`
	Price       float64  `firestore:"price" json:"price"`
	// DiscountedPrice is absent on most documents; nil means no discount.
	DiscountedPrice *float64 `firestore:"discountedPrice,omitempty" json:"discountedPrice,omitempty"`
	Category        string   `firestore:"category,omitempty" json:"category,omitempty"`
	InStock         bool     `firestore:"inStock" json:"inStock"`
	Images          []string `firestore:"images,omitempty" json:"images,omitempty"`

	// Denormalized review aggregate. ReviewCount can be zero while Rating
	// is set on documents written before counts were tracked.
	Rating      float64 `firestore:"rating,omitempty" json:"rating,omitempty"`
	ReviewCount int     `firestore:"reviewCount,omitempty" json:"reviewCount,omitempty"`

	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// ServiceEntity lives under Services/{businessKey}/{ActiveServices|Active}/{id}.
// ActiveServices is the current subcollection name; Active predates the
// naming change and still holds older documents.
type ServiceEntity struct {
	ID              string  `firestore:"id" json:"id"`
	BusinessID      string  `firestore:"businessId" json:"businessId"`
	Name            string  `firestore:"name" json:"name"`
	Description     string  `firestore:"description,omitempty" json:"description,omitempty"`
	Price           float64 `firestore:"price" json:"price"`
	DurationMinutes int     `firestore:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	Category        string  `firestore:"category,omitempty" json:"category,omitempty"`
	IsActive        bool    `firestore:"isActive" json:"isActive"`

	Rating      float64 `firestore:"rating,omitempty" json:"rating,omitempty"`
	ReviewCount int     `firestore:"reviewCount,omitempty" json:"reviewCount,omitempty"`

	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// Product stock statuses double as subcollection names.
const (
	StatusAvailable   = "Available"
	StatusUnavailable = "Unavailable"
)

// Service subcollection aliases, current name first. Fixed table; runtime
// never infers beyond it.
const (
	SubActiveServices = "ActiveServices"
	SubActive         = "Active"
)

// ProductSubcollections enumerates every subcollection a product may live in.
var ProductSubcollections = []string{StatusAvailable, StatusUnavailable}

// ServiceSubcollections enumerates every subcollection a service may live in.
var ServiceSubcollections = []string{SubActiveServices, SubActive}

func IsValidProductStatus(s string) bool {
	return s == StatusAvailable || s == StatusUnavailable
}

type CreateProductInput struct {
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Price           float64  `json:"price"`
	DiscountedPrice *float64 `json:"discountedPrice,omitempty"`
	Category        string   `json:"category,omitempty"`
	InStock         bool     `json:"inStock"`
	Images          []string `json:"images,omitempty"`
}

func (in *CreateProductInput) Trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
}

type CreateServiceInput struct {
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes,omitempty"`
	Category        string  `json:"category,omitempty"`
}

func (in *CreateServiceInput) Trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
}
