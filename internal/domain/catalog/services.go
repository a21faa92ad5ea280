package catalog

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// ServicesCollection is the top-level collection holding per-business
// service subcollections.
const ServicesCollection = "Services"

type ServiceRepo struct {
	fs *firestore.Client
}

func NewServiceRepo(fs *firestore.Client) *ServiceRepo {
	return &ServiceRepo{fs: fs}
}

func (r *ServiceRepo) col(businessKey, sub string) *firestore.CollectionRef {
	return r.fs.Collection(ServicesCollection).Doc(businessKey).Collection(sub)
}

// Create writes new services to ActiveServices, the current subcollection
// name. Active only ever receives reads.
func (r *ServiceRepo) Create(ctx context.Context, businessKey string, s ServiceEntity) (*ServiceEntity, error) {
	ref := r.col(businessKey, SubActiveServices).NewDoc()
	s.ID = ref.ID
	s.BusinessID = businessKey
	s.IsActive = true

	if _, err := ref.Set(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return &s, nil
}

// Get checks ActiveServices first, then the legacy Active subcollection.
func (r *ServiceRepo) Get(ctx context.Context, businessKey, serviceID string) (*ServiceEntity, string, error) {
	for _, sub := range ServiceSubcollections {
		doc, err := r.col(businessKey, sub).Doc(serviceID).Get(ctx)
		if err != nil || !doc.Exists() {
			continue
		}
		var s ServiceEntity
		if err := doc.DataTo(&s); err != nil {
			return nil, "", fmt.Errorf("failed to parse service: %w", err)
		}
		s.ID = doc.Ref.ID
		return &s, sub, nil
	}
	return nil, "", fmt.Errorf("%w: service not found", ErrNotFound)
}

// ListAll returns services from both subcollection spellings.
func (r *ServiceRepo) ListAll(ctx context.Context, businessKey string) ([]ServiceEntity, error) {
	var out []ServiceEntity
	for _, sub := range ServiceSubcollections {
		it := r.col(businessKey, sub).Documents(ctx)
		for {
			doc, err := it.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				it.Stop()
				return nil, fmt.Errorf("failed to list services: %w", err)
			}
			var s ServiceEntity
			if err := doc.DataTo(&s); err != nil {
				continue
			}
			s.ID = doc.Ref.ID
			out = append(out, s)
		}
		it.Stop()
	}
	return out, nil
}

func (r *ServiceRepo) Update(ctx context.Context, businessKey, serviceID string, updates map[string]interface{}) (*ServiceEntity, error) {
	_, sub, err := r.Get(ctx, businessKey, serviceID)
	if err != nil {
		return nil, err
	}
	updates["updatedAt"] = time.Now().UTC()
	if _, err := r.col(businessKey, sub).Doc(serviceID).Set(ctx, updates, firestore.MergeAll); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	s, _, err := r.Get(ctx, businessKey, serviceID)
	return s, err
}

func (r *ServiceRepo) Delete(ctx context.Context, businessKey, serviceID string) error {
	_, sub, err := r.Get(ctx, businessKey, serviceID)
	if err != nil {
		return err
	}
	if _, err := r.col(businessKey, sub).Doc(serviceID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return nil
}

// SetAggregateRating writes the review aggregate to the fixed
// ActiveServices path. Services still living under the legacy Active
// subcollection are missed here; see the rating engine for why this is
// kept as-is.
func (r *ServiceRepo) SetAggregateRating(ctx context.Context, businessKey, serviceID string, rating float64, count int) error {
	_, err := r.col(businessKey, SubActiveServices).Doc(serviceID).Set(ctx, map[string]interface{}{
		"rating":      rating,
		"reviewCount": count,
		"updatedAt":   time.Now().UTC(),
	}, firestore.MergeAll)
	return err
}
