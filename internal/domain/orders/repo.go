package orders

import (
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
)

// Collection is where new orders are written. LegacyCollection is the
// lowercase spelling older clients used; reads cover both, writes go to
// Collection only.
const (
	Collection       = "Orders"
	LegacyCollection = "orders"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) Create(ctx context.Context, o Order) (*Order, error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if _, err := r.fs.Collection(Collection).Doc(o.ID).Set(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return &o, nil
}

// Get checks the current collection first, then the legacy spelling.
func (r *Repo) Get(ctx context.Context, orderID string) (*Order, string, error) {
	for _, coll := range []string{Collection, LegacyCollection} {
		doc, err := r.fs.Collection(coll).Doc(orderID).Get(ctx)
		if err != nil || !doc.Exists() {
			continue
		}
		var o Order
		if err := doc.DataTo(&o); err != nil {
			return nil, "", fmt.Errorf("failed to parse order: %w", err)
		}
		o.ID = doc.Ref.ID
		return &o, coll, nil
	}
	return nil, "", fmt.Errorf("%w: %s", ErrNotFound, orderID)
}

// ListByField gathers orders matching field==value across both collection
// spellings and every identifier form, newest first.
func (r *Repo) ListByField(ctx context.Context, field string, values ...string) ([]Order, error) {
	var out []Order
	seen := map[string]bool{}
	for _, coll := range []string{Collection, LegacyCollection} {
		for _, v := range values {
			if v == "" {
				continue
			}
			it := r.fs.Collection(coll).Where(field, "==", v).Documents(ctx)
			for {
				doc, err := it.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					it.Stop()
					return out, fmt.Errorf("failed to list orders: %w", err)
				}
				if seen[doc.Ref.Path] {
					continue
				}
				seen[doc.Ref.Path] = true
				var o Order
				if err := doc.DataTo(&o); err != nil {
					continue
				}
				o.ID = doc.Ref.ID
				out = append(out, o)
			}
			it.Stop()
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *Repo) SetFields(ctx context.Context, coll, orderID string, updates map[string]interface{}) error {
	if coll == "" {
		coll = Collection
	}
	if _, err := r.fs.Collection(coll).Doc(orderID).Set(ctx, updates, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	return nil
}
