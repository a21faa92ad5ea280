package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harsh308050/UdhyogUnity-sub001/internal/httpjson"
)

// Stats routes never fail: missing businesses and broken probes all render
// as zeros, mirroring what the dashboard expects.
func registerStatsRoutes(r chi.Router, d Deps) {
	r.Get("/stats/dashboard/{businessId}", func(w http.ResponseWriter, req *http.Request) {
		out := d.Stats.FetchDashboardStats(req.Context(), chi.URLParam(req, "businessId"))
		httpjson.Write(w, http.StatusOK, out)
	})

	r.Get("/stats/{businessId}/services/count", func(w http.ResponseWriter, req *http.Request) {
		n := d.Stats.GetServiceCount(req.Context(), chi.URLParam(req, "businessId"))
		httpjson.Write(w, http.StatusOK, map[string]int{"count": n})
	})

	r.Get("/stats/{businessId}/products/count", func(w http.ResponseWriter, req *http.Request) {
		n := d.Stats.GetProductCount(req.Context(), chi.URLParam(req, "businessId"))
		httpjson.Write(w, http.StatusOK, map[string]int{"count": n})
	})

	r.Get("/stats/{businessId}/reservations/pending", func(w http.ResponseWriter, req *http.Request) {
		n := d.Stats.GetPendingReservationsCount(req.Context(), chi.URLParam(req, "businessId"))
		httpjson.Write(w, http.StatusOK, map[string]int{"count": n})
	})

	r.Get("/stats/{businessId}/payments/received", func(w http.ResponseWriter, req *http.Request) {
		total := d.Stats.GetPaymentsReceived(req.Context(), chi.URLParam(req, "businessId"))
		httpjson.Write(w, http.StatusOK, map[string]float64{"total": total})
	})

	r.Get("/stats/{businessId}/ratings", func(w http.ResponseWriter, req *http.Request) {
		rs := d.Stats.GetRatingStats(req.Context(), chi.URLParam(req, "businessId"))
		httpjson.Write(w, http.StatusOK, rs)
	})
}
