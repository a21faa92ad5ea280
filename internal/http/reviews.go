package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/reviews"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/httpjson"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/middleware"
)

func mapReviewsError(err error) (int, string) {
	switch {
	case reviews.IsErrValidation(err):
		return http.StatusBadRequest, err.Error()
	case reviews.IsErrNotFound(err):
		return http.StatusNotFound, err.Error()
	case reviews.IsErrUnauthorized(err):
		return http.StatusForbidden, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func registerPublicReviewRoutes(r chi.Router, d Deps) {
	r.Get("/reviews/{type}/{businessId}", func(w http.ResponseWriter, req *http.Request) {
		pageSize, _ := strconv.Atoi(req.URL.Query().Get("pageSize"))
		page, err := d.Reviews.GetReviews(req.Context(),
			chi.URLParam(req, "type"),
			chi.URLParam(req, "businessId"),
			req.URL.Query().Get("itemId"),
			pageSize,
			req.URL.Query().Get("cursor"))
		if err != nil {
			status, msg := mapReviewsError(err)
			httpjson.Error(w, status, msg)
			return
		}
		httpjson.Write(w, http.StatusOK, page)
	})

	r.Get("/reviews/{type}/{businessId}/stats", func(w http.ResponseWriter, req *http.Request) {
		st := d.Reviews.GetReviewStats(req.Context(),
			chi.URLParam(req, "type"),
			chi.URLParam(req, "businessId"),
			req.URL.Query().Get("itemId"))
		httpjson.Write(w, http.StatusOK, st)
	})

	r.Get("/reviews/check", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		reviewed, err := d.Ledger.HasUserReviewed(req.Context(),
			q.Get("userId"), q.Get("entityType"), q.Get("entityId"))
		if err != nil {
			status, msg := mapReviewsError(err)
			httpjson.Error(w, status, msg)
			return
		}
		httpjson.Write(w, http.StatusOK, map[string]bool{"reviewed": reviewed})
	})
}

func registerReviewRoutes(r chi.Router, d Deps) {
	r.Post("/reviews", func(w http.ResponseWriter, req *http.Request) {
		var in reviews.AddReviewInput
		if err := httpjson.Read(req, &in); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if au, ok := middleware.GetAuthUser(req.Context()); ok {
			in.UserID = au.UID
		}

		rv, err := d.Reviews.AddReview(req.Context(), in)
		if err != nil {
			status, msg := mapReviewsError(err)
			httpjson.Error(w, status, msg)
			return
		}

		entityID := in.ItemID
		if in.Type == reviews.TypeBusiness {
			entityID = rv.BusinessID
		}
		if err := d.Ledger.MarkAsReviewed(req.Context(), in.UserID, in.Type, entityID, rv.ID); err != nil {
			d.Log.Warn("review ledger write failed",
				zap.String("reviewId", rv.ID),
				zap.Error(err))
		}

		httpjson.Write(w, http.StatusCreated, rv)
	})

	r.Put("/reviews/{type}/{businessId}/{reviewId}", func(w http.ResponseWriter, req *http.Request) {
		var in reviews.UpdateReviewInput
		if err := httpjson.Read(req, &in); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		au, _ := middleware.GetAuthUser(req.Context())

		rv, err := d.Reviews.UpdateReview(req.Context(),
			chi.URLParam(req, "type"),
			chi.URLParam(req, "businessId"),
			req.URL.Query().Get("itemId"),
			chi.URLParam(req, "reviewId"),
			au.UID, in)
		if err != nil {
			status, msg := mapReviewsError(err)
			httpjson.Error(w, status, msg)
			return
		}
		httpjson.Write(w, http.StatusOK, rv)
	})

	r.Delete("/reviews/{type}/{businessId}/{reviewId}", func(w http.ResponseWriter, req *http.Request) {
		au, _ := middleware.GetAuthUser(req.Context())

		err := d.Reviews.DeleteReview(req.Context(),
			chi.URLParam(req, "type"),
			chi.URLParam(req, "businessId"),
			req.URL.Query().Get("itemId"),
			chi.URLParam(req, "reviewId"),
			au.UID)
		if err != nil {
			status, msg := mapReviewsError(err)
			httpjson.Error(w, status, msg)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/reviews/{type}/{businessId}/{reviewId}/response", func(w http.ResponseWriter, req *http.Request) {
		au, _ := middleware.GetAuthUser(req.Context())
		if !middleware.IsBusinessAccount(au.Claims) {
			httpjson.Error(w, http.StatusForbidden, "business account required")
			return
		}

		var in struct {
			Text string `json:"text"`
		}
		if err := httpjson.Read(req, &in); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		rv, err := d.Reviews.RespondToReview(req.Context(),
			chi.URLParam(req, "type"),
			chi.URLParam(req, "businessId"),
			req.URL.Query().Get("itemId"),
			chi.URLParam(req, "reviewId"),
			in.Text)
		if err != nil {
			status, msg := mapReviewsError(err)
			httpjson.Error(w, status, msg)
			return
		}
		httpjson.Write(w, http.StatusOK, rv)
	})

	r.Post("/reviews/{type}/{businessId}/recompute", func(w http.ResponseWriter, req *http.Request) {
		result, err := d.Reviews.UpdateAverageRating(req.Context(),
			chi.URLParam(req, "type"),
			chi.URLParam(req, "businessId"),
			req.URL.Query().Get("itemId"))
		if err != nil {
			status, msg := mapReviewsError(err)
			httpjson.Error(w, status, msg)
			return
		}
		httpjson.Write(w, http.StatusOK, result)
	})
}
