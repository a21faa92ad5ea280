package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/orders"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/httpjson"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/middleware"
)

func mapOrdersError(err error) (int, string) {
	switch {
	case orders.IsErrBadRequest(err):
		return http.StatusBadRequest, err.Error()
	case orders.IsErrNotFound(err):
		return http.StatusNotFound, err.Error()
	case orders.IsErrTransition(err):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func registerOrderRoutes(r chi.Router, d Deps) {
	r.Post("/orders", func(w http.ResponseWriter, req *http.Request) {
		var in orders.CreateOrderInput
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

		o, err := d.Orders.Place(req.Context(), in)
		if err != nil {
			s, msg := mapOrdersError(err)
			httpjson.Error(w, s, msg)
			return
		}
		httpjson.Write(w, http.StatusCreated, o)
	})

	r.Get("/orders/{orderId}", func(w http.ResponseWriter, req *http.Request) {
		o, err := d.Orders.Get(req.Context(), chi.URLParam(req, "orderId"))
		if err != nil {
			s, msg := mapOrdersError(err)
			httpjson.Error(w, s, msg)
			return
		}
		httpjson.Write(w, http.StatusOK, o)
	})

	r.Get("/orders", func(w http.ResponseWriter, req *http.Request) {
		au, _ := middleware.GetAuthUser(req.Context())

		var (
			list []orders.Order
			err  error
		)
		if businessID := req.URL.Query().Get("businessId"); businessID != "" {
			if !middleware.IsBusinessAccount(au.Claims) {
				httpjson.Error(w, http.StatusForbidden, "business account required")
				return
			}
			list, err = d.Orders.ListForBusiness(req.Context(), businessID)
		} else {
			list, err = d.Orders.ListForCustomer(req.Context(), au.UID)
		}
		if err != nil {
			s, msg := mapOrdersError(err)
			httpjson.Error(w, s, msg)
			return
		}
		httpjson.Write(w, http.StatusOK, map[string]interface{}{"orders": list})
	})

	r.Post("/orders/{orderId}/status", func(w http.ResponseWriter, req *http.Request) {
		var in struct {
			Status string `json:"status"`
		}
		if err := httpjson.Read(req, &in); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		o, err := d.Orders.UpdateStatus(req.Context(), chi.URLParam(req, "orderId"), in.Status)
		if err != nil {
			s, msg := mapOrdersError(err)
			httpjson.Error(w, s, msg)
			return
		}
		httpjson.Write(w, http.StatusOK, o)
	})
}
