package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIdentifierForms(t *testing.T) {
	email, internal := identifierForms("owner@shop.in", "biz_123")
	assert.Equal(t, "owner@shop.in", email)
	assert.Equal(t, "biz_123", internal)

	// reversed pair still lands in the right slots
	email, internal = identifierForms("biz_123", "owner@shop.in")
	assert.Equal(t, "owner@shop.in", email)
	assert.Equal(t, "biz_123", internal)

	// single known form fills both
	email, internal = identifierForms("owner@shop.in", "")
	assert.Equal(t, "owner@shop.in", email)
	assert.Equal(t, "owner@shop.in", internal)

	email, internal = identifierForms("biz_123", "")
	assert.Equal(t, "biz_123", email)
	assert.Equal(t, "biz_123", internal)
}

func TestDistinctKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, distinctKeys("a", "b", "a", ""))
	assert.Equal(t, []string{"a"}, distinctKeys("a", "a"))
	assert.Nil(t, distinctKeys("", ""))
}

func TestServiceCountProbes(t *testing.T) {
	ps := serviceCountProbes("owner@shop.in", "biz_123")
	// two flat probes plus nested pairs under both identifier forms
	assert.Len(t, ps, 6)
	assert.Equal(t, probeFlat, ps[0].kind)
	assert.Equal(t, probeFlat, ps[1].kind)

	// identical forms collapse the nested fan-out
	ps = serviceCountProbes("biz_123", "biz_123")
	assert.Len(t, ps, 4)
}

func TestProductCountProbes(t *testing.T) {
	ps := productCountProbes("owner@shop.in", "biz_123")
	assert.Len(t, ps, 6)

	// lowercase products probe exists only when the email form is distinct
	found := false
	for _, p := range ps {
		if p.coll == "products" {
			found = true
			assert.Equal(t, "email", p.conds[0].field)
			assert.Equal(t, "owner@shop.in", p.conds[0].value)
		}
	}
	assert.True(t, found)

	ps = productCountProbes("owner@shop.in", "owner@shop.in")
	for _, p := range ps {
		assert.NotEqual(t, "products", p.coll)
	}
}

func TestPendingReservationProbes(t *testing.T) {
	ps := pendingReservationProbes("owner@shop.in", "biz_123")
	assert.Len(t, ps, 2)
	for _, p := range ps {
		assert.Equal(t, "bookings", p.coll)
		assert.Equal(t, "in", p.conds[1].op)
		assert.Equal(t, pendingStatuses, p.conds[1].value)
	}
}

func TestPaymentProbes(t *testing.T) {
	pps := paymentProbes("owner@shop.in", "biz_123")
	assert.Len(t, pps, 7)

	// the nested orders probe reads under the email key
	last := pps[len(pps)-1]
	assert.Equal(t, probeNested, last.probe.kind)
	assert.Equal(t, "Products", last.probe.coll)
	assert.Equal(t, "owner@shop.in", last.probe.parent)
	assert.Equal(t, []string{"totalAmount", "amount", "price"}, last.fields)
}

func TestCoerceAmount(t *testing.T) {
	assert.Equal(t, 150.5, coerceAmount(150.5))
	assert.Equal(t, 150.0, coerceAmount(int64(150)))
	assert.Equal(t, 150.0, coerceAmount(150))
	assert.Equal(t, 150.5, coerceAmount(" 150.5 "))
	assert.Zero(t, coerceAmount("one fifty"))
	assert.Zero(t, coerceAmount(nil))
	assert.Zero(t, coerceAmount(true))
}

func TestAmountFromDoc(t *testing.T) {
	fields := []string{"totalAmount", "amount", "price"}

	assert.Equal(t, 100.0, amountFromDoc(map[string]interface{}{
		"totalAmount": 100.0, "amount": 50.0,
	}, fields))

	// first present field wins, even when unparseable
	assert.Zero(t, amountFromDoc(map[string]interface{}{
		"totalAmount": "n/a", "amount": 50.0,
	}, fields))

	assert.Equal(t, 50.0, amountFromDoc(map[string]interface{}{
		"amount": int64(50),
	}, fields))

	assert.Zero(t, amountFromDoc(map[string]interface{}{}, fields))
}

func TestCountUpcoming(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	docs := []map[string]interface{}{
		{"dateTime": now.Add(-24 * time.Hour)},            // yesterday
		{"dateTime": now.Add(time.Hour)},                  // today, later
		{"dateTime": now.Add(24 * time.Hour)},             // tomorrow
		{"dateTime": now.Add(48 * time.Hour).Format(time.RFC3339)}, // string form
		{"dateTime": "not a date"},
		{},
	}
	assert.Equal(t, 3, countUpcoming(docs, now))
}

func TestWeightRatings(t *testing.T) {
	t.Run("count-weighted blend", func(t *testing.T) {
		avg, total := weightRatings([]ratedEntity{
			{rating: 4, reviewCount: 2},
			{rating: 5, reviewCount: 0}, // rating without count weighs one
		})
		assert.Equal(t, 4.3, avg)
		assert.Equal(t, 3, total)
	})

	t.Run("zero ratings are skipped", func(t *testing.T) {
		avg, total := weightRatings([]ratedEntity{
			{rating: 0, reviewCount: 7},
		})
		assert.Zero(t, avg)
		assert.Zero(t, total)
	})

	t.Run("empty input", func(t *testing.T) {
		avg, total := weightRatings(nil)
		assert.Zero(t, avg)
		assert.Zero(t, total)
	})
}
