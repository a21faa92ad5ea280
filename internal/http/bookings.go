package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/bookings"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/httpjson"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/middleware"
)

func mapBookingsError(err error) (int, string) {
	switch {
	case bookings.IsErrBadRequest(err):
		return http.StatusBadRequest, err.Error()
	case bookings.IsErrNotFound(err):
		return http.StatusNotFound, err.Error()
	case bookings.IsErrTransition(err):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func registerBookingRoutes(r chi.Router, d Deps) {
	r.Post("/bookings", func(w http.ResponseWriter, req *http.Request) {
		var in bookings.CreateBookingInput
		if err := httpjson.Read(req, &in); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if au, ok := middleware.GetAuthUser(req.Context()); ok {
			in.CustomerID = au.UID
			if in.CustomerEmail == "" {
				in.CustomerEmail = au.Email
			}
		}

		b, err := d.Bookings.Reserve(req.Context(), in)
		if err != nil {
			s, msg := mapBookingsError(err)
			httpjson.Error(w, s, msg)
			return
		}
		httpjson.Write(w, http.StatusCreated, b)
	})

	r.Get("/bookings/{bookingId}", func(w http.ResponseWriter, req *http.Request) {
		b, err := d.Bookings.Get(req.Context(), chi.URLParam(req, "bookingId"))
		if err != nil {
			s, msg := mapBookingsError(err)
			httpjson.Error(w, s, msg)
			return
		}
		httpjson.Write(w, http.StatusOK, b)
	})

	r.Get("/bookings", func(w http.ResponseWriter, req *http.Request) {
		au, _ := middleware.GetAuthUser(req.Context())

		var (
			list []bookings.Booking
			err  error
		)
		if businessID := req.URL.Query().Get("businessId"); businessID != "" {
			if !middleware.IsBusinessAccount(au.Claims) {
				httpjson.Error(w, http.StatusForbidden, "business account required")
				return
			}
			list, err = d.Bookings.ListForBusiness(req.Context(), businessID)
		} else {
			list, err = d.Bookings.ListForCustomer(req.Context(), au.UID)
		}
		if err != nil {
			s, msg := mapBookingsError(err)
			httpjson.Error(w, s, msg)
			return
		}
		httpjson.Write(w, http.StatusOK, map[string]interface{}{"bookings": list})
	})

	r.Post("/bookings/{bookingId}/status", func(w http.ResponseWriter, req *http.Request) {
		var in struct {
			Status string `json:"status"`
		}
		if err := httpjson.Read(req, &in); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		b, err := d.Bookings.UpdateStatus(req.Context(), chi.URLParam(req, "bookingId"), in.Status)
		if err != nil {
			s, msg := mapBookingsError(err)
			httpjson.Error(w, s, msg)
			return
		}
		httpjson.Write(w, http.StatusOK, b)
	})
}
