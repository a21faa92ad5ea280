package reviews

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/catalog"
)

func TestTypeSegment(t *testing.T) {
	for typ, want := range map[string]string{
		TypeBusiness: "Businesses",
		TypeProduct:  "Products",
		TypeService:  "Services",
	} {
		got, err := typeSegment(typ)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := typeSegment("shop")
	assert.True(t, IsErrValidation(err))
}

func TestCompositeKey(t *testing.T) {
	assert.Equal(t, "owner@shop.in", compositeKey(TypeBusiness, "owner@shop.in", ""))
	// business reviews ignore a stray itemId
	assert.Equal(t, "owner@shop.in", compositeKey(TypeBusiness, "owner@shop.in", "p1"))
	assert.Equal(t, "owner@shop.in_p1", compositeKey(TypeProduct, "owner@shop.in", "p1"))
	assert.Equal(t, "owner@shop.in_s9", compositeKey(TypeService, "owner@shop.in", "s9"))
}

func TestValidateNewReview(t *testing.T) {
	valid := AddReviewInput{
		Type:               TypeProduct,
		BusinessIdentifier: "owner@shop.in",
		ItemID:             "p1",
		UserID:             "u1",
		UserName:           "Asha",
		Rating:             4,
	}
	assert.NoError(t, validateNewReview(valid))

	cases := map[string]func(in *AddReviewInput){
		"missing type":         func(in *AddReviewInput) { in.Type = "" },
		"unknown type":         func(in *AddReviewInput) { in.Type = "shop" },
		"missing business":     func(in *AddReviewInput) { in.BusinessIdentifier = "" },
		"missing user":         func(in *AddReviewInput) { in.UserID = "" },
		"missing user name":    func(in *AddReviewInput) { in.UserName = "" },
		"rating zero":          func(in *AddReviewInput) { in.Rating = 0 },
		"rating six":           func(in *AddReviewInput) { in.Rating = 6 },
		"product without item": func(in *AddReviewInput) { in.ItemID = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := valid
			mutate(&in)
			assert.True(t, IsErrValidation(validateNewReview(in)))
		})
	}

	// business reviews do not need an itemId
	in := valid
	in.Type = TypeBusiness
	in.ItemID = ""
	assert.NoError(t, validateNewReview(in))
}

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 26, 53, 589793238, time.UTC)
	cur := encodeCursor(at, "rev-42")

	gotTime, gotID, err := decodeCursor(cur)
	require.NoError(t, err)
	assert.True(t, at.Equal(gotTime))
	assert.Equal(t, "rev-42", gotID)
}

func TestDecodeCursorMalformed(t *testing.T) {
	for _, cur := range []string{"not base64 at all!", "aGVsbG8=", ""} {
		_, _, err := decodeCursor(cur)
		assert.True(t, IsErrValidation(err), "cursor %q", cur)
	}
}

func TestSumNumericRatings(t *testing.T) {
	sum, count := sumNumericRatings([]float64{4, 5, 3, 0, -1})
	assert.Equal(t, 12.0, sum)
	assert.Equal(t, 3, count)

	sum, count = sumNumericRatings(nil)
	assert.Zero(t, sum)
	assert.Zero(t, count)
}

func TestAverageOf(t *testing.T) {
	assert.Equal(t, 0.0, averageOf(0, 0))
	assert.Equal(t, 4.0, averageOf(12, 3))
	assert.Equal(t, 4.7, averageOf(14, 3)) // 4.666... rounds up
	assert.Equal(t, 4.3, averageOf(13, 3)) // 4.333... rounds down
}

func TestBlendProductRatings(t *testing.T) {
	discount := 50.0

	t.Run("weighted and simple buckets blend", func(t *testing.T) {
		products := []catalog.Product{
			{ID: "a", Rating: 4, ReviewCount: 2},
			{ID: "b", Rating: 5, ReviewCount: 0, DiscountedPrice: &discount},
		}
		avg, weight := blendProductRatings(products)
		// (4*2 + 5*1) / 3
		assert.Equal(t, 4.3, avg)
		assert.Equal(t, 3, weight)
	})

	t.Run("unrated products are ignored", func(t *testing.T) {
		products := []catalog.Product{
			{ID: "a", Rating: 0, ReviewCount: 10},
			{ID: "b", Rating: 5, ReviewCount: 2},
		}
		avg, weight := blendProductRatings(products)
		assert.Equal(t, 5.0, avg)
		assert.Equal(t, 2, weight)
	})

	t.Run("no rated products", func(t *testing.T) {
		avg, weight := blendProductRatings([]catalog.Product{{ID: "a"}})
		assert.Zero(t, avg)
		assert.Zero(t, weight)
	})
}

func TestBuildReviewStats(t *testing.T) {
	t.Run("empty set renders all-zero histogram", func(t *testing.T) {
		st := buildReviewStats(nil)
		assert.Zero(t, st.AverageRating)
		assert.Zero(t, st.TotalReviews)
		for b := 1; b <= 5; b++ {
			assert.Zero(t, st.RatingCounts[b])
			assert.Zero(t, st.RatingPercentages[b])
		}
	})

	t.Run("histogram and percentages", func(t *testing.T) {
		st := buildReviewStats([]float64{5, 5, 4, 2})
		assert.Equal(t, 4, st.TotalReviews)
		assert.Equal(t, 4.0, st.AverageRating)
		assert.Equal(t, 2, st.RatingCounts[5])
		assert.Equal(t, 1, st.RatingCounts[4])
		assert.Equal(t, 1, st.RatingCounts[2])
		assert.Equal(t, 50.0, st.RatingPercentages[5])
		assert.Equal(t, 25.0, st.RatingPercentages[4])
	})

	t.Run("fractional ratings land in nearest bucket", func(t *testing.T) {
		st := buildReviewStats([]float64{4.6, 3.4})
		assert.Equal(t, 1, st.RatingCounts[5])
		assert.Equal(t, 1, st.RatingCounts[3])
	})
}
