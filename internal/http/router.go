package http

import (
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/bookings"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/business"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/catalog"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/orders"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/payments"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/reviews"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/stats"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/mailer"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/middleware"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/uploads"
)

// Deps collects everything the router needs. All fields are required
// except Uploads and Mailer, whose routes are skipped when nil.
type Deps struct {
	Auth     *auth.Client
	Business *business.Service
	Products *catalog.ProductRepo
	Services *catalog.ServiceRepo
	Orders   *orders.Service
	Bookings *bookings.Service
	Reviews  *reviews.Service
	Ledger   *reviews.Ledger
	Stats    *stats.Service
	Payments *payments.Service
	Uploads  *uploads.Client
	Mailer   *mailer.Mailer
	Log      *zap.Logger

	AllowedOrigins []string
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(d.AllowedOrigins))
	r.Use(middleware.Metrics)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		// public reads
		registerStatsRoutes(api, d)
		registerPublicReviewRoutes(api, d)
		registerPublicBusinessRoutes(api, d)
		registerPublicCatalogRoutes(api, d)
		if d.Mailer != nil {
			registerContactRoutes(api, d)
		}

		// everything that writes requires a verified Firebase token
		api.Group(func(priv chi.Router) {
			priv.Use(middleware.WithAuth(d.Auth))
			registerReviewRoutes(priv, d)
			registerBusinessRoutes(priv, d)
			registerCatalogRoutes(priv, d)
			registerOrderRoutes(priv, d)
			registerBookingRoutes(priv, d)
			registerPaymentRoutes(priv, d)
			if d.Uploads != nil {
				registerUploadRoutes(priv, d)
			}
		})
	})

	return r
}
