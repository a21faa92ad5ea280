package stats

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/harsh308050/UdhyogUnity-sub001/internal/utils"
)

// A probe is one read attempt against a single historically-possible storage
// location. Schema conventions changed over the product's lifetime without a
// migration, so every statistic fans out over an enumerated probe table and
// accumulates additively. The same logical entity reachable via two paths is
// counted twice; that matches what dashboards have always shown.
type probe struct {
	label string
	kind  probeKind

	// flat query
	coll  string
	conds []cond

	// nested subcollection read
	parent string
	sub    string
}

type probeKind int

const (
	probeFlat probeKind = iota
	probeNested
)

type cond struct {
	field string
	op    string
	value interface{}
}

// distinctKeys returns the identifier forms with duplicates removed, in
// order.
func distinctKeys(keys ...string) []string {
	var out []string
	for _, k := range keys {
		if k == "" {
			continue
		}
		dup := false
		for _, o := range out {
			if o == k {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, k)
		}
	}
	return out
}

func flatProbe(label, coll string, conds ...cond) probe {
	return probe{label: label, kind: probeFlat, coll: coll, conds: conds}
}

func nestedProbe(label, coll, parent, sub string) probe {
	return probe{label: label, kind: probeNested, coll: coll, parent: parent, sub: sub}
}

// identifierForms splits a resolved key pair into its email and internal-id
// forms. When only one form is known both come back equal.
func identifierForms(primary, alternate string) (email, internal string) {
	if strings.Contains(primary, "@") {
		email = primary
		internal = alternate
	} else if strings.Contains(alternate, "@") {
		email = alternate
		internal = primary
	} else {
		email = primary
		internal = primary
	}
	if internal == "" {
		internal = email
	}
	if email == "" {
		email = internal
	}
	return email, internal
}

func serviceCountProbes(email, internal string) []probe {
	ps := []probe{
		flatProbe("services by businessId", "services", cond{"businessId", "==", internal}),
		flatProbe("services by email", "services", cond{"email", "==", email}),
	}
	for _, key := range distinctKeys(internal, email) {
		ps = append(ps,
			nestedProbe("nested Services/Active", "Services", key, "Active"),
			nestedProbe("nested Services/ActiveServices", "Services", key, "ActiveServices"),
		)
	}
	return ps
}

func productCountProbes(email, internal string) []probe {
	ps := []probe{
		flatProbe("Products by businessId", "Products", cond{"businessId", "==", internal}),
	}
	// legacy lowercase collection was only ever written keyed by email
	if email != internal {
		ps = append(ps, flatProbe("products by email", "products", cond{"email", "==", email}))
	}
	for _, key := range distinctKeys(internal, email) {
		ps = append(ps,
			nestedProbe("nested Products/Available", "Products", key, "Available"),
			nestedProbe("nested Products/Unavailable", "Products", key, "Unavailable"),
		)
	}
	return ps
}

var pendingStatuses = []interface{}{"pending", "confirmed"}

func pendingReservationProbes(email, internal string) []probe {
	return []probe{
		flatProbe("bookings by businessId", "bookings",
			cond{"businessId", "==", internal},
			cond{"status", "in", pendingStatuses}),
		flatProbe("bookings by businessEmail", "bookings",
			cond{"businessEmail", "==", email},
			cond{"status", "in", pendingStatuses}),
	}
}

// paymentProbe pairs a probe with the ordered list of fields a monetary
// amount may be stored under.
type paymentProbe struct {
	probe  probe
	fields []string
}

func paymentProbes(email, internal string) []paymentProbe {
	bookingFields := []string{"price"}
	orderFields := []string{"totalAmount", "amount", "price"}

	out := []paymentProbe{
		{flatProbe("completed bookings by businessId", "bookings",
			cond{"businessId", "==", internal},
			cond{"status", "==", "completed"}), bookingFields},
		{flatProbe("Completed Orders by businessId", "Orders",
			cond{"businessId", "==", internal},
			cond{"status", "==", "Completed"}), orderFields},
		{flatProbe("completed orders by businessId", "orders",
			cond{"businessId", "==", internal},
			cond{"status", "==", "completed"}), orderFields},
		{flatProbe("completed bookings by businessEmail", "bookings",
			cond{"businessEmail", "==", email},
			cond{"status", "==", "completed"}), bookingFields},
		{flatProbe("Completed Orders by businessEmail", "Orders",
			cond{"businessEmail", "==", email},
			cond{"status", "==", "Completed"}), orderFields},
		{flatProbe("completed orders by businessEmail", "orders",
			cond{"businessEmail", "==", email},
			cond{"status", "==", "completed"}), orderFields},
	}
	out = append(out, paymentProbe{
		nestedProbe("nested Products/Orders", "Products", email, "Orders"), orderFields,
	})
	return out
}

// coerceAmount parses a monetary field of whatever dynamic type storage
// hands back. Unparseable values contribute zero.
func coerceAmount(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// amountFromDoc reads the first present field of the fallback chain.
func amountFromDoc(data map[string]interface{}, fields []string) float64 {
	for _, f := range fields {
		if v, ok := data[f]; ok {
			return coerceAmount(v)
		}
	}
	return 0
}

// bookingTime extracts a booking's dateTime field, tolerating the native
// timestamp, RFC3339 strings, and the handful of other formats old clients
// wrote.
func bookingTime(data map[string]interface{}) (time.Time, bool) {
	v, ok := data["dateTime"]
	if !ok {
		return time.Time{}, false
	}
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		parsed, err := utils.ParseTime(t)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	default:
		return time.Time{}, false
	}
}

// countUpcoming keeps bookings whose dateTime is at or after now. Bookings
// without a readable dateTime are dropped.
func countUpcoming(docs []map[string]interface{}, now time.Time) int {
	n := 0
	for _, d := range docs {
		t, ok := bookingTime(d)
		if ok && !t.Before(now) {
			n++
		}
	}
	return n
}

// ratedEntity is one aggregate-carrying source for the rating statistic.
type ratedEntity struct {
	rating      float64
	reviewCount int
}

// weightRatings combines aggregate pairs with review-count weighting.
// Entities carrying a rating but no count weigh exactly one review.
func weightRatings(entities []ratedEntity) (avg float64, total int) {
	var sum float64
	for _, e := range entities {
		if e.rating <= 0 {
			continue
		}
		w := e.reviewCount
		if w <= 0 {
			w = 1
		}
		sum += e.rating * float64(w)
		total += w
	}
	if total == 0 {
		return 0, 0
	}
	return round1(sum / float64(total)), total
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
