package catalog

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/business"
)

// ProductsCollection is the top-level collection holding per-business
// product subcollections.
const ProductsCollection = "Products"

type ProductRepo struct {
	fs *firestore.Client
}

func NewProductRepo(fs *firestore.Client) *ProductRepo {
	return &ProductRepo{fs: fs}
}

func (r *ProductRepo) col(businessKey, status string) *firestore.CollectionRef {
	return r.fs.Collection(ProductsCollection).Doc(businessKey).Collection(status)
}

func (r *ProductRepo) Create(ctx context.Context, businessKey string, p Product) (*Product, error) {
	status := StatusUnavailable
	if p.InStock {
		status = StatusAvailable
	}
	ref := r.col(businessKey, status).NewDoc()
	p.ID = ref.ID
	p.BusinessID = businessKey

	if _, err := ref.Set(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &p, nil
}

// Get looks the product up in Available first, then Unavailable, and reports
// which subcollection it was found in.
func (r *ProductRepo) Get(ctx context.Context, businessKey, productID string) (*Product, string, error) {
	for _, status := range ProductSubcollections {
		doc, err := r.col(businessKey, status).Doc(productID).Get(ctx)
		if err != nil || !doc.Exists() {
			continue
		}
		var p Product
		if err := doc.DataTo(&p); err != nil {
			return nil, "", fmt.Errorf("failed to parse product: %w", err)
		}
		p.ID = doc.Ref.ID
		return &p, status, nil
	}
	return nil, "", fmt.Errorf("%w: product not found", ErrNotFound)
}

func (r *ProductRepo) List(ctx context.Context, businessKey, status string) ([]Product, error) {
	it := r.col(businessKey, status).Documents(ctx)
	defer it.Stop()

	out := []Product{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list products: %w", err)
		}
		var p Product
		if err := doc.DataTo(&p); err != nil {
			continue
		}
		p.ID = doc.Ref.ID
		out = append(out, p)
	}
	return out, nil
}

// ListAll returns products from every status subcollection of a business.
func (r *ProductRepo) ListAll(ctx context.Context, businessKey string) ([]Product, error) {
	var out []Product
	for _, status := range ProductSubcollections {
		ps, err := r.List(ctx, businessKey, status)
		if err != nil {
			return nil, err
		}
		out = append(out, ps...)
	}
	return out, nil
}

func (r *ProductRepo) Update(ctx context.Context, businessKey, productID string, updates map[string]interface{}) (*Product, error) {
	_, status, err := r.Get(ctx, businessKey, productID)
	if err != nil {
		return nil, err
	}
	updates["updatedAt"] = time.Now().UTC()
	if _, err := r.col(businessKey, status).Doc(productID).Set(ctx, updates, firestore.MergeAll); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	p, _, err := r.Get(ctx, businessKey, productID)
	return p, err
}

// SetStatus moves a product between Available and Unavailable. The document
// keeps its ID and is never present in both subcollections: the delete and
// the set commit in one batch.
func (r *ProductRepo) SetStatus(ctx context.Context, businessKey, productID, toStatus string) (*Product, error) {
	if !IsValidProductStatus(toStatus) {
		return nil, fmt.Errorf("%w: invalid status %q", ErrBadRequest, toStatus)
	}

	p, from, err := r.Get(ctx, businessKey, productID)
	if err != nil {
		return nil, err
	}
	if from == toStatus {
		return p, nil
	}

	p.InStock = toStatus == StatusAvailable
	p.UpdatedAt = time.Now().UTC()

	batch := r.fs.Batch()
	batch.Delete(r.col(businessKey, from).Doc(productID))
	batch.Set(r.col(businessKey, toStatus).Doc(productID), *p)
	if _, err := batch.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to move product: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) Delete(ctx context.Context, businessKey, productID string) error {
	_, status, err := r.Get(ctx, businessKey, productID)
	if err != nil {
		return err
	}
	if _, err := r.col(businessKey, status).Doc(productID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// SetAggregateRating writes the denormalized review aggregate onto a product.
func (r *ProductRepo) SetAggregateRating(ctx context.Context, businessKey, status, productID string, rating float64, count int) error {
	_, err := r.col(businessKey, status).Doc(productID).Set(ctx, map[string]interface{}{
		"rating":      rating,
		"reviewCount": count,
		"updatedAt":   time.Now().UTC(),
	}, firestore.MergeAll)
	return err
}

// FindOwner scans every business's product subcollections for productID.
// Slow path: O(businesses × subcollections) point reads. It backs the fast
// per-business lookup when a product's stored businessId does not match its
// actual parent, which happens on documents written before ownership was
// denormalized correctly.
func (r *ProductRepo) FindOwner(ctx context.Context, productID string) (string, string, error) {
	it := r.fs.Collection(business.Collection).Documents(ctx)
	defer it.Stop()

	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return "", "", fmt.Errorf("owner scan failed: %w", err)
		}
		for _, status := range ProductSubcollections {
			pd, err := r.col(doc.Ref.ID, status).Doc(productID).Get(ctx)
			if err == nil && pd.Exists() {
				return doc.Ref.ID, status, nil
			}
		}
	}
	return "", "", fmt.Errorf("%w: no business owns product %s", ErrNotFound, productID)
}
