package reviews

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/business"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/catalog"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/identity"
)

// Service owns the read/write lifecycle of reviews and the derived
// rating/reviewCount fields on businesses, products and services.
//
// Aggregate maintenance is a plain read-aggregate-write: concurrent
// reviewers race, and the last UpdateAverageRating to finish wins even if
// its read was already stale. That is the system's actual behavior and is
// kept; UseCounters switches to atomic increments for deployments that
// want last-writer-wins protection.
type Service struct {
	fs       *firestore.Client
	resolver *identity.Resolver
	products *catalog.ProductRepo
	services *catalog.ServiceRepo
	log      *zap.Logger

	UseCounters bool
}

func NewService(fs *firestore.Client, resolver *identity.Resolver, products *catalog.ProductRepo, services *catalog.ServiceRepo, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{fs: fs, resolver: resolver, products: products, services: services, log: log}
}

func (s *Service) reviewCol(typ, businessKey, itemID string) (*firestore.CollectionRef, error) {
	seg, err := typeSegment(typ)
	if err != nil {
		return nil, err
	}
	key := compositeKey(typ, businessKey, itemID)
	return s.fs.Collection(ReviewsCollection).Doc(seg).Collection(key), nil
}

// resolveKey maps the caller-supplied identifier to the canonical business
// key, falling back to the identifier verbatim: plenty of entities were
// historically stored directly under the raw identifier.
func (s *Service) resolveKey(ctx context.Context, businessIdentifier string) string {
	key, _ := s.resolver.ResolveBusinessKey(ctx, businessIdentifier)
	if key == "" {
		return businessIdentifier
	}
	return key
}

// AddReview validates and writes a new review, then synchronously
// recomputes the reviewed entity's aggregate before returning. Write
// failures propagate: a failed review must not look successful.
func (s *Service) AddReview(ctx context.Context, in AddReviewInput) (*Review, error) {
	if err := validateNewReview(in); err != nil {
		return nil, err
	}

	businessKey := s.resolveKey(ctx, in.BusinessIdentifier)

	if in.Type == TypeProduct {
		owner, err := s.locateProductOwner(ctx, businessKey, in.ItemID)
		if err != nil {
			return nil, err
		}
		businessKey = owner
	}

	col, err := s.reviewCol(in.Type, businessKey, in.ItemID)
	if err != nil {
		return nil, err
	}

	ref := col.NewDoc()
	doc := map[string]interface{}{
		"id":         ref.ID,
		"type":       in.Type,
		"businessId": businessKey,
		"userId":     in.UserID,
		"userName":   in.UserName,
		"rating":     in.Rating,
		"comment":    in.Comment,
		"status":     StatusActive,
		"createdAt":  firestore.ServerTimestamp,
	}
	if in.ItemID != "" {
		doc["itemId"] = in.ItemID
	}
	if in.UserPhotoURL != "" {
		doc["userPhotoURL"] = in.UserPhotoURL
	}
	if in.RelatedOrderID != "" {
		doc["relatedOrderId"] = in.RelatedOrderID
	}

	if _, err := ref.Set(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to write review: %w", err)
	}

	if s.UseCounters {
		if err := s.applyCounterDelta(ctx, in.Type, businessKey, in.ItemID, float64(in.Rating), 1); err != nil {
			return nil, err
		}
	} else if _, err := s.updateAverageRatingForKey(ctx, in.Type, businessKey, in.ItemID); err != nil {
		return nil, err
	}

	// client-visible timestamp in place of the server placeholder
	now := time.Now().UTC()
	return &Review{
		ID:             ref.ID,
		Type:           in.Type,
		BusinessID:     businessKey,
		ItemID:         in.ItemID,
		UserID:         in.UserID,
		UserName:       in.UserName,
		UserPhotoURL:   in.UserPhotoURL,
		Rating:         in.Rating,
		Comment:        in.Comment,
		Status:         StatusActive,
		RelatedOrderID: in.RelatedOrderID,
		CreatedAt:      now,
	}, nil
}

// locateProductOwner verifies a product exists under businessKey, and when
// it does not, falls back to the cross-business owner scan. Old documents
// sometimes carry a businessId that never matched their actual parent.
func (s *Service) locateProductOwner(ctx context.Context, businessKey, itemID string) (string, error) {
	if _, _, err := s.products.Get(ctx, businessKey, itemID); err == nil {
		return businessKey, nil
	}

	owner, _, err := s.products.FindOwner(ctx, itemID)
	if err != nil {
		if catalog.IsErrNotFound(err) {
			return "", fmt.Errorf("%w: product %s not found for any business", ErrNotFound, itemID)
		}
		return "", err
	}
	s.log.Info("reviews: product owner recovered by scan",
		zap.String("itemId", itemID),
		zap.String("claimed", businessKey),
		zap.String("actual", owner))
	return owner, nil
}

// GetReviews pages through an entity's reviews newest-first. A canonical
// path that yields nothing triggers one fallback to the flat Ratings
// collection via an equality-only query (no composite index needed), sorted
// and paginated in memory.
func (s *Service) GetReviews(ctx context.Context, typ, businessIdentifier, itemID string, pageSize int, cursor string) (*ReviewPage, error) {
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 10
	}

	businessKey := s.resolveKey(ctx, businessIdentifier)
	col, err := s.reviewCol(typ, businessKey, itemID)
	if err != nil {
		return nil, err
	}

	q := col.OrderBy("createdAt", firestore.Desc).
		OrderBy(firestore.DocumentID, firestore.Desc).
		Limit(pageSize)
	if cursor != "" {
		ts, docID, err := decodeCursor(cursor)
		if err != nil {
			return nil, err
		}
		q = q.StartAfter(ts, docID)
	}

	page, err := s.collectPage(ctx, q.Documents(ctx))
	if err != nil {
		return nil, err
	}
	if len(page.Reviews) > 0 {
		return page, nil
	}

	return s.ratingsFallback(ctx, typ, businessKey, itemID, pageSize, cursor)
}

func (s *Service) collectPage(ctx context.Context, it *firestore.DocumentIterator) (*ReviewPage, error) {
	defer it.Stop()

	page := &ReviewPage{Reviews: []Review{}}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read reviews: %w", err)
		}
		var rv Review
		if err := doc.DataTo(&rv); err != nil {
			continue
		}
		rv.ID = doc.Ref.ID
		page.Reviews = append(page.Reviews, rv)
	}
	if n := len(page.Reviews); n > 0 {
		last := page.Reviews[n-1]
		page.LastVisible = encodeCursor(last.CreatedAt, last.ID)
	}
	return page, nil
}

func (s *Service) ratingsFallback(ctx context.Context, typ, businessKey, itemID string, pageSize int, cursor string) (*ReviewPage, error) {
	q := s.fs.Collection(RatingsCollection).Where("businessId", "==", businessKey)
	if typ != TypeBusiness && itemID != "" {
		q = q.Where("itemId", "==", itemID)
	}

	it := q.Documents(ctx)
	defer it.Stop()

	var all []Review
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			s.log.Warn("reviews: ratings fallback failed", zap.Error(err))
			return &ReviewPage{Reviews: []Review{}}, nil
		}
		var rv Review
		if err := doc.DataTo(&rv); err != nil {
			continue
		}
		rv.ID = doc.Ref.ID
		all = append(all, rv)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	start := 0
	if cursor != "" {
		_, docID, err := decodeCursor(cursor)
		if err != nil {
			return nil, err
		}
		for i, rv := range all {
			if rv.ID == docID {
				start = i + 1
				break
			}
		}
	}

	page := &ReviewPage{Reviews: []Review{}}
	for i := start; i < len(all) && len(page.Reviews) < pageSize; i++ {
		page.Reviews = append(page.Reviews, all[i])
	}
	if n := len(page.Reviews); n > 0 {
		last := page.Reviews[n-1]
		page.LastVisible = encodeCursor(last.CreatedAt, last.ID)
	}
	return page, nil
}

// UpdateReview applies an author edit and recomputes the aggregate when the
// rating could have changed.
func (s *Service) UpdateReview(ctx context.Context, typ, businessIdentifier, itemID, reviewID, userID string, in UpdateReviewInput) (*Review, error) {
	businessKey := s.resolveKey(ctx, businessIdentifier)
	col, err := s.reviewCol(typ, businessKey, itemID)
	if err != nil {
		return nil, err
	}

	existing, err := s.getReview(ctx, col, reviewID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, fmt.Errorf("%w: only the author may edit a review", ErrUnauthorized)
	}

	updates := map[string]interface{}{"updatedAt": time.Now().UTC()}
	var ratingDelta float64
	if in.Rating != nil {
		if *in.Rating < 1 || *in.Rating > 5 {
			return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
		}
		updates["rating"] = *in.Rating
		ratingDelta = float64(*in.Rating - existing.Rating)
	}
	if in.Comment != nil {
		updates["comment"] = strings.TrimSpace(*in.Comment)
	}

	if _, err := col.Doc(reviewID).Set(ctx, updates, firestore.MergeAll); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	if in.Rating != nil {
		if s.UseCounters {
			if err := s.applyCounterDelta(ctx, typ, businessKey, itemID, ratingDelta, 0); err != nil {
				return nil, err
			}
		} else if _, err := s.updateAverageRatingForKey(ctx, typ, businessKey, itemID); err != nil {
			return nil, err
		}
	}

	return s.getReview(ctx, col, reviewID)
}

// DeleteReview removes a review and always recomputes the aggregate.
func (s *Service) DeleteReview(ctx context.Context, typ, businessIdentifier, itemID, reviewID, userID string) error {
	businessKey := s.resolveKey(ctx, businessIdentifier)
	col, err := s.reviewCol(typ, businessKey, itemID)
	if err != nil {
		return err
	}

	existing, err := s.getReview(ctx, col, reviewID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return fmt.Errorf("%w: only the author may delete a review", ErrUnauthorized)
	}

	if _, err := col.Doc(reviewID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	if s.UseCounters {
		return s.applyCounterDelta(ctx, typ, businessKey, itemID, -float64(existing.Rating), -1)
	}
	_, err = s.updateAverageRatingForKey(ctx, typ, businessKey, itemID)
	return err
}

// RespondToReview writes the business's response onto a review. Aggregates
// are unaffected.
func (s *Service) RespondToReview(ctx context.Context, typ, businessIdentifier, itemID, reviewID, responseText string) (*Review, error) {
	responseText = strings.TrimSpace(responseText)
	if responseText == "" {
		return nil, fmt.Errorf("%w: response text is required", ErrValidation)
	}

	businessKey := s.resolveKey(ctx, businessIdentifier)
	col, err := s.reviewCol(typ, businessKey, itemID)
	if err != nil {
		return nil, err
	}

	if _, err := s.getReview(ctx, col, reviewID); err != nil {
		return nil, err
	}

	_, err = col.Doc(reviewID).Set(ctx, map[string]interface{}{
		"businessResponse": map[string]interface{}{
			"text":      responseText,
			"createdAt": time.Now().UTC(),
		},
		"updatedAt": time.Now().UTC(),
	}, firestore.MergeAll)
	if err != nil {
		return nil, fmt.Errorf("failed to write response: %w", err)
	}

	return s.getReview(ctx, col, reviewID)
}

func (s *Service) getReview(ctx context.Context, col *firestore.CollectionRef, reviewID string) (*Review, error) {
	doc, err := col.Doc(reviewID).Get(ctx)
	if err != nil || !doc.Exists() {
		return nil, fmt.Errorf("%w: review not found", ErrNotFound)
	}
	var rv Review
	if err := doc.DataTo(&rv); err != nil {
		return nil, fmt.Errorf("failed to parse review: %w", err)
	}
	rv.ID = doc.Ref.ID
	return &rv, nil
}

// UpdateAverageRating recomputes and persists the denormalized aggregate of
// one entity from its composite review collection. For products it also
// rolls the per-product aggregates up to the owning business document.
func (s *Service) UpdateAverageRating(ctx context.Context, typ, businessIdentifier, itemID string) (*AggregateResult, error) {
	businessKey := s.resolveKey(ctx, businessIdentifier)
	return s.updateAverageRatingForKey(ctx, typ, businessKey, itemID)
}

func (s *Service) updateAverageRatingForKey(ctx context.Context, typ, businessKey, itemID string) (*AggregateResult, error) {
	ratings, err := s.readAllRatings(ctx, typ, businessKey, itemID)
	if err != nil {
		// aggregation reads contribute zero rather than failing the caller
		s.log.Warn("reviews: aggregate read failed",
			zap.String("type", typ),
			zap.String("businessKey", businessKey),
			zap.Error(err))
		ratings = nil
	}

	sum, count := sumNumericRatings(ratings)
	avg := averageOf(sum, count)
	result := &AggregateResult{AverageRating: avg, ReviewCount: count}

	switch typ {
	case TypeBusiness:
		if err := s.writeBusinessAggregate(ctx, businessKey, avg, count); err != nil {
			return nil, err
		}
		return result, nil

	case TypeService:
		// Fixed ActiveServices path; services still living under the
		// legacy Active subcollection are silently missed here. Known
		// inconsistency, kept to match how the data was always written.
		if err := s.services.SetAggregateRating(ctx, businessKey, itemID, avg, count); err != nil {
			return nil, fmt.Errorf("failed to write service aggregate: %w", err)
		}
		return result, nil

	case TypeProduct:
		return result, s.writeProductAggregate(ctx, businessKey, itemID, avg, count)

	default:
		return nil, fmt.Errorf("%w: unknown review type %q", ErrValidation, typ)
	}
}

func (s *Service) writeProductAggregate(ctx context.Context, businessKey, itemID string, avg float64, count int) error {
	ownerKey := businessKey
	_, status, err := s.products.Get(ctx, businessKey, itemID)
	if err != nil {
		ownerKey, status, err = s.products.FindOwner(ctx, itemID)
		if err != nil {
			if catalog.IsErrNotFound(err) {
				return fmt.Errorf("%w: product %s not found for aggregate write", ErrNotFound, itemID)
			}
			return err
		}
	}

	if err := s.products.SetAggregateRating(ctx, ownerKey, status, itemID, avg, count); err != nil {
		return fmt.Errorf("failed to write product aggregate: %w", err)
	}

	return s.rollUpBusinessRating(ctx, ownerKey)
}

// rollUpBusinessRating recomputes the business-level aggregate from every
// product it owns and overwrites the business document with the blend,
// deliberately overriding any aggregate computed from business-level
// reviews.
func (s *Service) rollUpBusinessRating(ctx context.Context, businessKey string) error {
	products, err := s.products.ListAll(ctx, businessKey)
	if err != nil {
		s.log.Warn("reviews: rollup read failed", zap.String("businessKey", businessKey), zap.Error(err))
		return nil
	}

	avg, count := blendProductRatings(products)
	return s.writeBusinessAggregate(ctx, businessKey, avg, count)
}

func (s *Service) writeBusinessAggregate(ctx context.Context, businessKey string, avg float64, count int) error {
	_, err := s.fs.Collection(business.Collection).Doc(businessKey).Set(ctx, map[string]interface{}{
		"rating":      avg,
		"reviewCount": count,
		"updatedAt":   firestore.ServerTimestamp,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to write business aggregate: %w", err)
	}
	return nil
}

// readAllRatings reads every numeric rating in the entity's composite
// review collection.
func (s *Service) readAllRatings(ctx context.Context, typ, businessKey, itemID string) ([]float64, error) {
	col, err := s.reviewCol(typ, businessKey, itemID)
	if err != nil {
		return nil, err
	}

	it := col.Documents(ctx)
	defer it.Stop()

	var ratings []float64
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return ratings, err
		}
		switch r := doc.Data()["rating"].(type) {
		case int64:
			ratings = append(ratings, float64(r))
		case float64:
			ratings = append(ratings, r)
		}
	}
	return ratings, nil
}

// GetReviewStats is the read-only statistics variant. It never returns an
// error: missing input or any storage failure yields the zero structure,
// because review widgets must render something.
func (s *Service) GetReviewStats(ctx context.Context, typ, businessIdentifier, itemID string) ReviewStats {
	if typ == "" || businessIdentifier == "" {
		return NewZeroStats()
	}

	businessKey := s.resolveKey(ctx, businessIdentifier)
	ratings, err := s.readAllRatings(ctx, typ, businessKey, itemID)
	if err != nil {
		s.log.Warn("reviews: stats read failed",
			zap.String("type", typ),
			zap.String("businessKey", businessKey),
			zap.Error(err))
	}
	return buildReviewStats(ratings)
}

// applyCounterDelta is the atomic-increment alternative to the
// read-aggregate-write: a running {ratingSum, reviewCount} pair on the
// target document absorbs deltas, and the displayed rating is derived from
// the counters afterwards.
func (s *Service) applyCounterDelta(ctx context.Context, typ, businessKey, itemID string, ratingDelta float64, countDelta int64) error {
	ref, err := s.aggregateDocRef(ctx, typ, businessKey, itemID)
	if err != nil {
		return err
	}

	_, err = ref.Update(ctx, []firestore.Update{
		{Path: "ratingSum", Value: firestore.Increment(ratingDelta)},
		{Path: "reviewCount", Value: firestore.Increment(countDelta)},
	})
	if err != nil {
		return fmt.Errorf("failed to apply rating counters: %w", err)
	}

	doc, err := ref.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to read rating counters: %w", err)
	}
	data := doc.Data()
	sum, _ := data["ratingSum"].(float64)
	if i, ok := data["ratingSum"].(int64); ok {
		sum = float64(i)
	}
	count, _ := data["reviewCount"].(int64)

	avg := 0.0
	if count > 0 {
		avg = round1(sum / float64(count))
	}
	_, err = ref.Set(ctx, map[string]interface{}{"rating": avg}, firestore.MergeAll)
	return err
}

func (s *Service) aggregateDocRef(ctx context.Context, typ, businessKey, itemID string) (*firestore.DocumentRef, error) {
	switch typ {
	case TypeBusiness:
		return s.fs.Collection(business.Collection).Doc(businessKey), nil
	case TypeService:
		return s.fs.Collection(catalog.ServicesCollection).Doc(businessKey).Collection(catalog.SubActiveServices).Doc(itemID), nil
	case TypeProduct:
		ownerKey := businessKey
		_, status, err := s.products.Get(ctx, businessKey, itemID)
		if err != nil {
			ownerKey, status, err = s.products.FindOwner(ctx, itemID)
			if err != nil {
				return nil, fmt.Errorf("%w: product %s not found", ErrNotFound, itemID)
			}
		}
		return s.fs.Collection(catalog.ProductsCollection).Doc(ownerKey).Collection(status).Doc(itemID), nil
	default:
		return nil, fmt.Errorf("%w: unknown review type %q", ErrValidation, typ)
	}
}
