package stats

import (
	"context"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/identity"
)

// Service computes dashboard statistics for a business by probing every
// storage location the system has ever written to. Individual probe failures
// (missing collection, permissions, index requirements) are logged and
// contribute zero; nothing here ever surfaces an error to the dashboard.
type Service struct {
	fs       *firestore.Client
	resolver *identity.Resolver
	log      *zap.Logger

	// Dedupe switches on reference-path de-duplication within each
	// statistic. Off by default: historical dashboards double-count
	// entities reachable through two paths, and changing that silently
	// would make new numbers disagree with every old screenshot.
	Dedupe bool
}

func NewService(fs *firestore.Client, resolver *identity.Resolver, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{fs: fs, resolver: resolver, log: log}
}

// FetchDashboardStats aggregates every dashboard statistic. The five
// sub-fetches are independent and run concurrently. An empty identifier, or
// every probe failing, yields the all-zero struct; this function never
// returns an error.
func (s *Service) FetchDashboardStats(ctx context.Context, businessIdentifier string) DashboardStats {
	out := DashboardStats{}
	businessIdentifier = strings.TrimSpace(businessIdentifier)
	if businessIdentifier == "" {
		return out
	}

	email, internal := s.identifierForms(ctx, businessIdentifier)

	var wg sync.WaitGroup
	wg.Add(5)
	go func() {
		defer wg.Done()
		out.ServiceCount = s.serviceCount(ctx, email, internal)
	}()
	go func() {
		defer wg.Done()
		out.ProductCount = s.productCount(ctx, email, internal)
	}()
	go func() {
		defer wg.Done()
		out.PendingReservations = s.pendingReservations(ctx, email, internal)
	}()
	go func() {
		defer wg.Done()
		out.PaymentsReceived = s.paymentsReceived(ctx, email, internal)
	}()
	go func() {
		defer wg.Done()
		rs := s.ratingStats(ctx, email, internal)
		out.AverageRating = rs.AverageRating
		out.TotalReviews = rs.TotalReviews
	}()
	wg.Wait()

	return out
}

// GetServiceCount counts the business's services across every known
// location.
func (s *Service) GetServiceCount(ctx context.Context, businessIdentifier string) int {
	email, internal := s.identifierForms(ctx, businessIdentifier)
	return s.serviceCount(ctx, email, internal)
}

// GetProductCount counts the business's products across every known
// location.
func (s *Service) GetProductCount(ctx context.Context, businessIdentifier string) int {
	email, internal := s.identifierForms(ctx, businessIdentifier)
	return s.productCount(ctx, email, internal)
}

// GetPendingReservationsCount counts pending/confirmed bookings that are not
// yet in the past.
func (s *Service) GetPendingReservationsCount(ctx context.Context, businessIdentifier string) int {
	email, internal := s.identifierForms(ctx, businessIdentifier)
	return s.pendingReservations(ctx, email, internal)
}

// GetPaymentsReceived sums completed booking and order amounts in rupees.
func (s *Service) GetPaymentsReceived(ctx context.Context, businessIdentifier string) float64 {
	email, internal := s.identifierForms(ctx, businessIdentifier)
	return s.paymentsReceived(ctx, email, internal)
}

// GetRatingStats aggregates the denormalized rating fields of the business
// and everything it sells, weighted by review count.
func (s *Service) GetRatingStats(ctx context.Context, businessIdentifier string) RatingStats {
	email, internal := s.identifierForms(ctx, businessIdentifier)
	return s.ratingStats(ctx, email, internal)
}

func (s *Service) identifierForms(ctx context.Context, businessIdentifier string) (string, string) {
	pair, err := s.resolver.ResolveKeyPair(ctx, businessIdentifier)
	if err != nil || pair.Primary == "" {
		return identifierForms(businessIdentifier, "")
	}
	return identifierForms(pair.Primary, pair.Alternate)
}

func (s *Service) serviceCount(ctx context.Context, email, internal string) int {
	return s.countProbes(ctx, serviceCountProbes(email, internal))
}

func (s *Service) productCount(ctx context.Context, email, internal string) int {
	return s.countProbes(ctx, productCountProbes(email, internal))
}

func (s *Service) pendingReservations(ctx context.Context, email, internal string) int {
	now := time.Now()
	total := 0
	seen := s.newSeen()
	for _, p := range pendingReservationProbes(email, internal) {
		docs := s.runProbe(ctx, p, seen)
		total += countUpcoming(docs, now)
	}
	return total
}

func (s *Service) paymentsReceived(ctx context.Context, email, internal string) float64 {
	var total float64
	seen := s.newSeen()
	for _, pp := range paymentProbes(email, internal) {
		for _, data := range s.runProbe(ctx, pp.probe, seen) {
			total += amountFromDoc(data, pp.fields)
		}
	}
	return total
}

func (s *Service) ratingStats(ctx context.Context, email, internal string) RatingStats {
	var entities []ratedEntity

	// business document itself
	if doc, err := s.fs.Collection("Businesses").Doc(internal).Get(ctx); err == nil && doc.Exists() {
		entities = append(entities, ratedEntityFromDoc(doc.Data()))
	} else if email != internal {
		if doc, err := s.fs.Collection("Businesses").Doc(email).Get(ctx); err == nil && doc.Exists() {
			entities = append(entities, ratedEntityFromDoc(doc.Data()))
		}
	}

	// every product and service it owns, across all subcollection spellings
	var sources []probe
	for _, key := range distinctKeys(internal, email) {
		sources = append(sources,
			nestedProbe("rating Products/Available", "Products", key, "Available"),
			nestedProbe("rating Products/Unavailable", "Products", key, "Unavailable"),
			nestedProbe("rating Services/Active", "Services", key, "Active"),
			nestedProbe("rating Services/ActiveServices", "Services", key, "ActiveServices"),
		)
	}
	seen := s.newSeen()
	for _, p := range sources {
		for _, data := range s.runProbe(ctx, p, seen) {
			entities = append(entities, ratedEntityFromDoc(data))
		}
	}

	avg, total := weightRatings(entities)
	return RatingStats{AverageRating: avg, TotalReviews: total}
}

func ratedEntityFromDoc(data map[string]interface{}) ratedEntity {
	e := ratedEntity{rating: coerceAmount(data["rating"])}
	if c, ok := data["reviewCount"]; ok {
		e.reviewCount = int(coerceAmount(c))
	}
	return e
}

func (s *Service) countProbes(ctx context.Context, probes []probe) int {
	total := 0
	seen := s.newSeen()
	for _, p := range probes {
		total += len(s.runProbe(ctx, p, seen))
	}
	return total
}

func (s *Service) newSeen() map[string]bool {
	if !s.Dedupe {
		return nil
	}
	return map[string]bool{}
}

// runProbe executes one probe and returns the matched document data. Every
// failure is swallowed: it is logged and the probe contributes nothing.
func (s *Service) runProbe(ctx context.Context, p probe, seen map[string]bool) []map[string]interface{} {
	var it *firestore.DocumentIterator
	switch p.kind {
	case probeFlat:
		q := s.fs.Collection(p.coll).Query
		for _, c := range p.conds {
			q = q.Where(c.field, c.op, c.value)
		}
		it = q.Documents(ctx)
	case probeNested:
		if p.parent == "" {
			return nil
		}
		it = s.fs.Collection(p.coll).Doc(p.parent).Collection(p.sub).Documents(ctx)
	default:
		return nil
	}
	defer it.Stop()

	var out []map[string]interface{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			s.log.Warn("stats: probe failed",
				zap.String("probe", p.label),
				zap.Error(err))
			return out
		}
		if seen != nil {
			path := doc.Ref.Path
			if seen[path] {
				continue
			}
			seen[path] = true
		}
		out = append(out, doc.Data())
	}
	return out
}
