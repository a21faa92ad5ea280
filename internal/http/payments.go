package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/payments"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/httpjson"
)

func mapPaymentsError(err error) (int, string) {
	switch {
	case payments.IsErrBadRequest(err):
		return http.StatusBadRequest, err.Error()
	case payments.IsErrVerification(err):
		return http.StatusUnprocessableEntity, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func registerPaymentRoutes(r chi.Router, d Deps) {
	r.Post("/payments/checkout", func(w http.ResponseWriter, req *http.Request) {
		var in struct {
			Amount    float64 `json:"amount"`
			Reference string  `json:"reference"`
		}
		if err := httpjson.Read(req, &in); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		co, err := d.Payments.CreateCheckout(req.Context(), in.Amount, in.Reference)
		if err != nil {
			s, msg := mapPaymentsError(err)
			httpjson.Error(w, s, msg)
			return
		}
		httpjson.Write(w, http.StatusCreated, co)
	})

	r.Post("/payments/verify", func(w http.ResponseWriter, req *http.Request) {
		var in payments.SettlementInput
		if err := httpjson.Read(req, &in); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		if err := d.Payments.VerifySettlement(req.Context(), in); err != nil {
			s, msg := mapPaymentsError(err)
			httpjson.Error(w, s, msg)
			return
		}
		httpjson.Write(w, http.StatusOK, map[string]bool{"verified": true})
	})
}
