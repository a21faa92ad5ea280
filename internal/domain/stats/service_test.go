package stats

import (
	"context"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/identity"
)

// Integration tests run against the Firestore emulator only.
func newTestService(t *testing.T) (*Service, *firestore.Client) {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	client, err := firestore.NewClient(context.Background(), "udhyogunity-test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewService(client, identity.NewResolver(client, nil), nil), client
}

func seedDoc(t *testing.T, fs *firestore.Client, path []string, data map[string]interface{}) {
	t.Helper()
	var ref *firestore.DocumentRef
	if len(path) == 2 {
		ref = fs.Collection(path[0]).Doc(path[1])
	} else {
		ref = fs.Collection(path[0]).Doc(path[1]).Collection(path[2]).Doc(path[3])
	}
	_, err := ref.Set(context.Background(), data)
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = ref.Delete(context.Background()) })
}

func TestFetchDashboardStatsEmptyIdentifier(t *testing.T) {
	svc, _ := newTestService(t)
	out := svc.FetchDashboardStats(context.Background(), "   ")
	assert.Equal(t, DashboardStats{}, out)
}

func TestFetchDashboardStatsUnknownBusiness(t *testing.T) {
	svc, _ := newTestService(t)
	out := svc.FetchDashboardStats(context.Background(), "ghost-"+uuid.NewString())
	assert.Zero(t, out.ServiceCount)
	assert.Zero(t, out.ProductCount)
	assert.Zero(t, out.PendingReservations)
	assert.Zero(t, out.PaymentsReceived)
	assert.Zero(t, out.TotalReviews)
}

func TestPendingReservationsTimeWindow(t *testing.T) {
	svc, fs := newTestService(t)
	ctx := context.Background()

	suffix := uuid.NewString()[:8]
	email := "stats-" + suffix + "@shop.in"
	seedDoc(t, fs, []string{"Businesses", email}, map[string]interface{}{
		"email": email,
	})

	now := time.Now()
	mk := func(id string, dt time.Time, status string) {
		seedDoc(t, fs, []string{"bookings", id}, map[string]interface{}{
			"businessId": email,
			"status":     status,
			"dateTime":   dt,
		})
	}
	mk("bk-past-"+suffix, now.Add(-24*time.Hour), "pending")   // yesterday: excluded
	mk("bk-today-"+suffix, now.Add(2*time.Hour), "pending")    // later today
	mk("bk-tmrw-"+suffix, now.Add(24*time.Hour), "confirmed")  // tomorrow
	mk("bk-done-"+suffix, now.Add(24*time.Hour), "completed")  // wrong status
	mk("bk-canc-"+suffix, now.Add(24*time.Hour), "cancelled")  // wrong status

	assert.Equal(t, 2, svc.GetPendingReservationsCount(ctx, email))
}

func TestProductAndServiceCountsAccumulate(t *testing.T) {
	svc, fs := newTestService(t)
	ctx := context.Background()

	suffix := uuid.NewString()[:8]
	email := "cnt-" + suffix + "@shop.in"
	bizID := "biz_" + suffix
	seedDoc(t, fs, []string{"Businesses", email}, map[string]interface{}{
		"email":      email,
		"businessId": bizID,
	})

	// products: one flat by internal id, one nested under the email key
	seedDoc(t, fs, []string{"Products", "pf-" + suffix}, map[string]interface{}{
		"businessId": bizID, "name": "flat product",
	})
	seedDoc(t, fs, []string{"Products", email, "Available", "pn-" + suffix}, map[string]interface{}{
		"name": "nested product",
	})

	// services: flat by email plus nested under both spellings
	seedDoc(t, fs, []string{"services", "sf-" + suffix}, map[string]interface{}{
		"email": email, "name": "flat service",
	})
	seedDoc(t, fs, []string{"Services", email, "ActiveServices", "sn-" + suffix}, map[string]interface{}{
		"name": "nested service",
	})
	seedDoc(t, fs, []string{"Services", email, "Active", "so-" + suffix}, map[string]interface{}{
		"name": "legacy nested service",
	})

	assert.Equal(t, 2, svc.GetProductCount(ctx, email))
	assert.Equal(t, 3, svc.GetServiceCount(ctx, email))
}

func TestPaymentsReceivedSumsAcrossSpellings(t *testing.T) {
	svc, fs := newTestService(t)
	ctx := context.Background()

	suffix := uuid.NewString()[:8]
	email := "pay-" + suffix + "@shop.in"
	seedDoc(t, fs, []string{"Businesses", email}, map[string]interface{}{
		"email": email,
	})

	seedDoc(t, fs, []string{"bookings", "pb-" + suffix}, map[string]interface{}{
		"businessId": email, "status": "completed", "price": 500.0,
	})
	seedDoc(t, fs, []string{"Orders", "po-" + suffix}, map[string]interface{}{
		"businessId": email, "status": "Completed", "totalAmount": 1200.0,
	})
	seedDoc(t, fs, []string{"orders", "pl-" + suffix}, map[string]interface{}{
		"businessId": email, "status": "completed", "amount": "300",
	})
	// pending order must not count
	seedDoc(t, fs, []string{"Orders", "pp-" + suffix}, map[string]interface{}{
		"businessId": email, "status": "Pending", "totalAmount": 9999.0,
	})

	assert.Equal(t, 2000.0, svc.GetPaymentsReceived(ctx, email))
}

func TestRatingStatsWeightsDenormalizedAggregates(t *testing.T) {
	svc, fs := newTestService(t)
	ctx := context.Background()

	suffix := uuid.NewString()[:8]
	email := "rs-" + suffix + "@shop.in"
	seedDoc(t, fs, []string{"Businesses", email}, map[string]interface{}{
		"email": email, "rating": 4.0, "reviewCount": 2,
	})
	seedDoc(t, fs, []string{"Products", email, "Available", "rp-" + suffix}, map[string]interface{}{
		"rating": 5.0, // no reviewCount: weighs one
	})

	rs := svc.GetRatingStats(ctx, email)
	// (4*2 + 5*1) / 3
	assert.Equal(t, 4.3, rs.AverageRating)
	assert.Equal(t, 3, rs.TotalReviews)
}
