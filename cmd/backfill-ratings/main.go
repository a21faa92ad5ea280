// Command backfill-ratings recomputes the denormalized rating aggregates
// for every business: per-product and per-service aggregates from their
// review collections, then the business-level rollup. Run it after bulk
// imports or when aggregates have drifted from their reviews.
package main

import (
	"context"
	"flag"

	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"github.com/harsh308050/UdhyogUnity-sub001/internal/config"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/business"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/catalog"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/identity"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/reviews"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/firebase"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/logging"
)

func main() {
	onlyBusiness := flag.String("business", "", "backfill a single business key instead of all")
	dryRun := flag.Bool("dry-run", false, "log what would be recomputed without writing")
	flag.Parse()

	cfg := config.Load()
	if err := logging.Init(cfg.Env); err != nil {
		panic(err)
	}
	defer logging.Sync()
	log := logging.L()

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, cfg)
	if err != nil {
		log.Fatal("firebase init failed", zap.Error(err))
	}
	fs, err := firebase.NewFirestore(ctx, app)
	if err != nil {
		log.Fatal("firestore init failed", zap.Error(err))
	}
	defer fs.Close()

	resolver := identity.NewResolver(fs.Client, log)
	productRepo := catalog.NewProductRepo(fs.Client)
	serviceRepo := catalog.NewServiceRepo(fs.Client)
	reviewSvc := reviews.NewService(fs.Client, resolver, productRepo, serviceRepo, log)

	keys, err := businessKeys(ctx, fs, *onlyBusiness)
	if err != nil {
		log.Fatal("failed to list businesses", zap.Error(err))
	}
	log.Info("backfill starting", zap.Int("businesses", len(keys)), zap.Bool("dryRun", *dryRun))

	for _, key := range keys {
		backfillBusiness(ctx, log, reviewSvc, productRepo, serviceRepo, key, *dryRun)
	}
	log.Info("backfill done")
}

func businessKeys(ctx context.Context, fs *firebase.Firestore, only string) ([]string, error) {
	if only != "" {
		return []string{only}, nil
	}

	var keys []string
	it := fs.Client.Collection(business.Collection).Documents(ctx)
	defer it.Stop()
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			return keys, nil
		}
		if err != nil {
			return keys, err
		}
		keys = append(keys, doc.Ref.ID)
	}
}

func backfillBusiness(ctx context.Context, log *zap.Logger, reviewSvc *reviews.Service, productRepo *catalog.ProductRepo, serviceRepo *catalog.ServiceRepo, key string, dryRun bool) {
	blog := log.With(zap.String("businessKey", key))

	products, err := productRepo.ListAll(ctx, key)
	if err != nil {
		blog.Warn("product listing failed, skipping products", zap.Error(err))
	}
	services, err := serviceRepo.ListAll(ctx, key)
	if err != nil {
		blog.Warn("service listing failed, skipping services", zap.Error(err))
	}

	if dryRun {
		blog.Info("would recompute",
			zap.Int("products", len(products)),
			zap.Int("services", len(services)))
		return
	}

	for _, svc := range services {
		if _, err := reviewSvc.UpdateAverageRating(ctx, reviews.TypeService, key, svc.ID); err != nil {
			blog.Warn("service aggregate failed", zap.String("serviceId", svc.ID), zap.Error(err))
		}
	}

	// Products last: each product write triggers the business rollup, so the
	// final rollup reflects every product's fresh aggregate.
	for _, p := range products {
		if _, err := reviewSvc.UpdateAverageRating(ctx, reviews.TypeProduct, key, p.ID); err != nil {
			blog.Warn("product aggregate failed", zap.String("productId", p.ID), zap.Error(err))
		}
	}

	// Businesses with no rated products keep their review-based aggregate.
	if len(products) == 0 {
		if _, err := reviewSvc.UpdateAverageRating(ctx, reviews.TypeBusiness, key, ""); err != nil {
			blog.Warn("business aggregate failed", zap.Error(err))
		}
	}

	blog.Info("recomputed",
		zap.Int("products", len(products)),
		zap.Int("services", len(services)))
}
