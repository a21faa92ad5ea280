package business

import (
	"strings"
	"time"
)

// Business is a seller account document in the Businesses collection.
// Documents are keyed by email; some older accounts also carry a separate
// internal businessId that other collections reference instead.
type Business struct {
	Email        string   `firestore:"email" json:"email"`
	BusinessID   string   `firestore:"businessId,omitempty" json:"businessId,omitempty"`
	BusinessName string   `firestore:"businessName" json:"businessName"`
	NameLower    string   `firestore:"nameLower" json:"-"`
	Keywords     []string `firestore:"keywords,omitempty" json:"-"`
	BusinessType string   `firestore:"businessType" json:"businessType"` // "Product" or "Service"
	Verified     bool     `firestore:"verified" json:"verified"`

	City  string `firestore:"city,omitempty" json:"city,omitempty"`
	State string `firestore:"state,omitempty" json:"state,omitempty"`
	Phone string `firestore:"phone,omitempty" json:"phone,omitempty"`

	// Denormalized review aggregate, maintained by the reviews engine.
	Rating      float64 `firestore:"rating" json:"rating"`
	ReviewCount int     `firestore:"reviewCount" json:"reviewCount"`

	LogoURL string `firestore:"logoUrl,omitempty" json:"logoUrl,omitempty"`

	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

type CreateBusinessInput struct {
	Email        string `json:"email"`
	BusinessID   string `json:"businessId,omitempty"`
	BusinessName string `json:"businessName"`
	BusinessType string `json:"businessType"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Phone        string `json:"phone,omitempty"`
	LogoURL      string `json:"logoUrl,omitempty"`
}

func (in *CreateBusinessInput) Trim() {
	in.Email = strings.TrimSpace(in.Email)
	in.BusinessID = strings.TrimSpace(in.BusinessID)
	in.BusinessName = strings.TrimSpace(in.BusinessName)
	in.BusinessType = strings.TrimSpace(in.BusinessType)
	in.City = strings.TrimSpace(in.City)
	in.State = strings.TrimSpace(in.State)
	in.Phone = strings.TrimSpace(in.Phone)
}

// ValidBusinessTypes are the accepted values for BusinessType.
var ValidBusinessTypes = []string{"Product", "Service"}

func IsValidBusinessType(t string) bool {
	for _, v := range ValidBusinessTypes {
		if t == v {
			return true
		}
	}
	return false
}
