package identity

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/business"
)

// Integration tests run against the Firestore emulator only.
func newTestClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	client, err := firestore.NewClient(context.Background(), "udhyogunity-test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func seedBusiness(t *testing.T, fs *firestore.Client, key string, data map[string]interface{}) {
	t.Helper()
	_, err := fs.Collection(business.Collection).Doc(key).Set(context.Background(), data)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = fs.Collection(business.Collection).Doc(key).Delete(context.Background())
	})
}

func TestResolveBusinessKey(t *testing.T) {
	fs := newTestClient(t)
	r := NewResolver(fs, nil)
	ctx := context.Background()

	suffix := uuid.NewString()[:8]
	email := "owner-" + suffix + "@shop.in"
	bizID := "biz_" + suffix
	name := "Sharma Sweets " + suffix

	seedBusiness(t, fs, email, map[string]interface{}{
		"email":        email,
		"businessId":   bizID,
		"businessName": name,
	})

	t.Run("email is the document key", func(t *testing.T) {
		key, err := r.ResolveBusinessKey(ctx, email)
		require.NoError(t, err)
		assert.Equal(t, email, key)
	})

	t.Run("internal id via field query", func(t *testing.T) {
		key, err := r.ResolveBusinessKey(ctx, bizID)
		require.NoError(t, err)
		assert.Equal(t, email, key)
	})

	t.Run("exact display name", func(t *testing.T) {
		key, err := r.ResolveBusinessKey(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, email, key)
	})

	t.Run("case-insensitive name via scan", func(t *testing.T) {
		key, err := r.ResolveBusinessKey(ctx, "sharma sweets "+suffix)
		require.NoError(t, err)
		assert.Equal(t, email, key)
	})

	t.Run("miss resolves to empty", func(t *testing.T) {
		key, err := r.ResolveBusinessKey(ctx, "no-such-business-"+suffix)
		require.NoError(t, err)
		assert.Empty(t, key)
	})

	t.Run("blank identifier", func(t *testing.T) {
		key, err := r.ResolveBusinessKey(ctx, "   ")
		require.NoError(t, err)
		assert.Empty(t, key)
	})
}

func TestResolveBusinessKeyAmbiguous(t *testing.T) {
	fs := newTestClient(t)
	r := NewResolver(fs, nil)
	ctx := context.Background()

	suffix := uuid.NewString()[:8]
	shared := "dup_" + suffix
	for _, email := range []string{"a-" + suffix + "@x.in", "b-" + suffix + "@x.in"} {
		seedBusiness(t, fs, email, map[string]interface{}{
			"email":      email,
			"businessId": shared,
		})
	}

	// two businesses claim the same id: treated as no match, but the scan
	// fallback still finds the first case-insensitive hit, so expect one of
	// the two keys rather than empty
	key, err := r.ResolveBusinessKey(ctx, shared)
	require.NoError(t, err)
	assert.Contains(t, []string{"a-" + suffix + "@x.in", "b-" + suffix + "@x.in"}, key)
}

func TestResolveKeyPair(t *testing.T) {
	fs := newTestClient(t)
	r := NewResolver(fs, nil)
	ctx := context.Background()

	suffix := uuid.NewString()[:8]
	email := "pair-" + suffix + "@shop.in"
	bizID := "biz_" + suffix

	seedBusiness(t, fs, email, map[string]interface{}{
		"email":      email,
		"businessId": bizID,
	})

	pair, err := r.ResolveKeyPair(ctx, bizID)
	require.NoError(t, err)
	assert.Equal(t, email, pair.Primary)
	assert.Equal(t, bizID, pair.Alternate)

	// unknown identifier falls back to itself with no alternate
	pair, err = r.ResolveKeyPair(ctx, "ghost-"+suffix)
	require.NoError(t, err)
	assert.Equal(t, "ghost-"+suffix, pair.Primary)
	assert.Empty(t, pair.Alternate)
}

func TestResolveEmailForBusinessID(t *testing.T) {
	fs := newTestClient(t)
	r := NewResolver(fs, nil)
	ctx := context.Background()

	// emails pass through untouched
	got, err := r.ResolveEmailForBusinessID(ctx, "owner@shop.in")
	require.NoError(t, err)
	assert.Equal(t, "owner@shop.in", got)

	suffix := uuid.NewString()[:8]
	seedBusiness(t, fs, "biz_"+suffix, map[string]interface{}{
		"email": "e-" + suffix + "@shop.in",
	})
	got, err = r.ResolveEmailForBusinessID(ctx, "biz_"+suffix)
	require.NoError(t, err)
	assert.Equal(t, "e-"+suffix+"@shop.in", got)
}
