package bookings

import (
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
)

// Collection is the flat bookings collection shared by every business.
const Collection = "bookings"

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) Create(ctx context.Context, b Booking) (*Booking, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if _, err := r.fs.Collection(Collection).Doc(b.ID).Set(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return &b, nil
}

func (r *Repo) Get(ctx context.Context, bookingID string) (*Booking, error) {
	doc, err := r.fs.Collection(Collection).Doc(bookingID).Get(ctx)
	if err != nil || !doc.Exists() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, bookingID)
	}
	var b Booking
	if err := doc.DataTo(&b); err != nil {
		return nil, fmt.Errorf("failed to parse booking: %w", err)
	}
	b.ID = doc.Ref.ID
	return &b, nil
}

// ListByField gathers bookings matching field==value for every identifier
// form, soonest booking first.
func (r *Repo) ListByField(ctx context.Context, field string, values ...string) ([]Booking, error) {
	var out []Booking
	seen := map[string]bool{}
	for _, v := range values {
		if v == "" {
			continue
		}
		it := r.fs.Collection(Collection).Where(field, "==", v).Documents(ctx)
		for {
			doc, err := it.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				it.Stop()
				return out, fmt.Errorf("failed to list bookings: %w", err)
			}
			if seen[doc.Ref.Path] {
				continue
			}
			seen[doc.Ref.Path] = true
			var b Booking
			if err := doc.DataTo(&b); err != nil {
				continue
			}
			b.ID = doc.Ref.ID
			out = append(out, b)
		}
		it.Stop()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookingTime.Before(out[j].BookingTime) })
	return out, nil
}

func (r *Repo) SetFields(ctx context.Context, bookingID string, updates map[string]interface{}) error {
	if _, err := r.fs.Collection(Collection).Doc(bookingID).Set(ctx, updates, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	return nil
}
