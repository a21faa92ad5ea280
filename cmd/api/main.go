package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/harsh308050/UdhyogUnity-sub001/internal/config"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/bookings"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/business"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/catalog"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/identity"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/orders"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/payments"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/reviews"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/stats"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/firebase"
	httpapi "github.com/harsh308050/UdhyogUnity-sub001/internal/http"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/logging"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/mailer"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/uploads"
)

func main() {
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
	authClient, err := firebase.NewAuthClient(ctx, app)
	if err != nil {
		log.Fatal("firebase auth init failed", zap.Error(err))
	}
	fs, err := firebase.NewFirestore(ctx, app)
	if err != nil {
		log.Fatal("firestore init failed", zap.Error(err))
	}
	defer fs.Close()

	resolver := identity.NewResolver(fs.Client, log)
	productRepo := catalog.NewProductRepo(fs.Client)
	serviceRepo := catalog.NewServiceRepo(fs.Client)

	orderSvc := orders.NewService(orders.NewRepo(fs.Client), resolver, log)
	bookingSvc := bookings.NewService(bookings.NewRepo(fs.Client), resolver, log)

	reviewSvc := reviews.NewService(fs.Client, resolver, productRepo, serviceRepo, log)
	reviewSvc.UseCounters = cfg.UseRatingCounters

	statsSvc := stats.NewService(fs.Client, resolver, log)
	statsSvc.Dedupe = cfg.DedupeStats

	deps := httpapi.Deps{
		Auth:           authClient,
		Business:       business.NewService(business.NewRepo(fs.Client)),
		Products:       productRepo,
		Services:       serviceRepo,
		Orders:         orderSvc,
		Bookings:       bookingSvc,
		Reviews:        reviewSvc,
		Ledger:         reviews.NewLedger(fs.Client),
		Stats:          statsSvc,
		Payments:       payments.NewService(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, orderSvc, bookingSvc, log),
		Log:            log,
		AllowedOrigins: cfg.AllowedOrigins,
	}
	if cfg.CloudinaryCloudName != "" {
		deps.Uploads = uploads.NewClient(cfg.CloudinaryCloudName, cfg.CloudinaryUploadPreset, log)
	}
	if cfg.MailRelayURL != "" {
		deps.Mailer = mailer.New(cfg.MailRelayURL, log)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpapi.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown incomplete", zap.Error(err))
	}
}
