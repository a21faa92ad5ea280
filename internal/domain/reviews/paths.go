package reviews

import (
	"encoding/base64"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/catalog"
)

// ReviewsCollection is the top-level review hierarchy:
// Reviews/{Businesses|Products|Services}/{compositeKey}/{reviewId}.
const ReviewsCollection = "Reviews"

// RatingsCollection is the older flat collection some clients wrote reviews
// to before the composite hierarchy existed. Read-only fallback.
const RatingsCollection = "Ratings"

func typeSegment(typ string) (string, error) {
	switch typ {
	case TypeBusiness:
		return "Businesses", nil
	case TypeProduct:
		return "Products", nil
	case TypeService:
		return "Services", nil
	default:
		return "", fmt.Errorf("%w: unknown review type %q", ErrValidation, typ)
	}
}

// compositeKey joins the business key with the item id for non-business
// reviews. The underscore join is load-bearing: it is how reviews written
// years ago are addressed.
func compositeKey(typ, businessKey, itemID string) string {
	if typ == TypeBusiness || itemID == "" {
		return businessKey
	}
	return businessKey + "_" + itemID
}

// validateNewReview enforces the submission contract before any storage
// round-trip happens.
func validateNewReview(in AddReviewInput) error {
	if in.Type == "" || in.BusinessIdentifier == "" || in.UserID == "" || in.UserName == "" {
		return fmt.Errorf("%w: type, businessId, userId and userName are required", ErrValidation)
	}
	if _, err := typeSegment(in.Type); err != nil {
		return err
	}
	if in.Rating < 1 || in.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if in.Type != TypeBusiness && in.ItemID == "" {
		return fmt.Errorf("%w: itemId is required for %s reviews", ErrValidation, in.Type)
	}
	return nil
}

// Cursor encoding. The Firestore Go client has no serializable snapshot
// handle, so the opaque cursor carries (createdAt, docID) and pagination
// resumes with StartAfter under a (createdAt desc, __name__ desc) ordering.
func encodeCursor(createdAt time.Time, docID string) string {
	raw := createdAt.UTC().Format(time.RFC3339Nano) + "|" + docID
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

func decodeCursor(cursor string) (time.Time, string, error) {
	raw, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: malformed cursor", ErrValidation)
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, "", fmt.Errorf("%w: malformed cursor", ErrValidation)
	}
	t, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: malformed cursor", ErrValidation)
	}
	return t, parts[1], nil
}

// sumNumericRatings totals every numeric rating in a review set. No status
// filtering: hidden and reported reviews still count, exactly as the write
// path has always behaved. Flip here if product owners ever decide
// otherwise.
func sumNumericRatings(ratings []float64) (sum float64, count int) {
	for _, r := range ratings {
		if r <= 0 {
			continue
		}
		sum += r
		count++
	}
	return sum, count
}

// averageOf rounds the mean of a review set to one decimal.
func averageOf(sum float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return round1(sum / float64(count))
}

// blendProductRatings rolls product aggregates up to a single business
// rating. Products with a positive reviewCount join the weighted bucket
// (rating x count); products with a rating but no count join the simple
// bucket with weight one. The buckets blend into one weighted mean.
func blendProductRatings(products []catalog.Product) (float64, int) {
	var sum float64
	var weight int
	for _, p := range products {
		if p.Rating <= 0 {
			continue
		}
		w := p.ReviewCount
		if w <= 0 {
			w = 1
		}
		sum += p.Rating * float64(w)
		weight += w
	}
	if weight == 0 {
		return 0, 0
	}
	return round1(sum / float64(weight)), weight
}

// buildReviewStats computes the histogram statistics from raw ratings.
func buildReviewStats(ratings []float64) ReviewStats {
	stats := NewZeroStats()
	sum, count := sumNumericRatings(ratings)
	if count == 0 {
		return stats
	}

	for _, r := range ratings {
		bucket := int(math.Round(r))
		if bucket >= 1 && bucket <= 5 {
			stats.RatingCounts[bucket]++
		}
	}
	for b, c := range stats.RatingCounts {
		stats.RatingPercentages[b] = round1(float64(c) / float64(count) * 100)
	}

	stats.AverageRating = averageOf(sum, count)
	stats.TotalReviews = count
	return stats
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
