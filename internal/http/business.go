package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/business"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/httpjson"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/middleware"
)

func mapBusinessError(err error) (int, string) {
	switch {
	case business.IsErrBadRequest(err):
		return http.StatusBadRequest, err.Error()
	case business.IsErrNotFound(err):
		return http.StatusNotFound, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func registerPublicBusinessRoutes(r chi.Router, d Deps) {
	r.Get("/businesses/{key}", func(w http.ResponseWriter, req *http.Request) {
		b, err := d.Business.Get(req.Context(), chi.URLParam(req, "key"))
		if err != nil {
			status, msg := mapBusinessError(err)
			httpjson.Error(w, status, msg)
			return
		}
		httpjson.Write(w, http.StatusOK, b)
	})

	r.Get("/businesses", func(w http.ResponseWriter, req *http.Request) {
		limit, _ := strconv.ParseInt(req.URL.Query().Get("limit"), 10, 64)
		results, err := d.Business.Search(req.Context(), req.URL.Query().Get("q"), limit)
		if err != nil {
			status, msg := mapBusinessError(err)
			httpjson.Error(w, status, msg)
			return
		}
		httpjson.Write(w, http.StatusOK, map[string]interface{}{"businesses": results})
	})
}

func registerBusinessRoutes(r chi.Router, d Deps) {
	r.Post("/businesses", func(w http.ResponseWriter, req *http.Request) {
		var in business.CreateBusinessInput
		if err := httpjson.Read(req, &in); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		b, err := d.Business.Register(req.Context(), in)
		if err != nil {
			status, msg := mapBusinessError(err)
			httpjson.Error(w, status, msg)
			return
		}
		httpjson.Write(w, http.StatusCreated, b)
	})

	r.Post("/businesses/{key}/verify", func(w http.ResponseWriter, req *http.Request) {
		au, _ := middleware.GetAuthUser(req.Context())
		if !middleware.IsBusinessAccount(au.Claims) {
			httpjson.Error(w, http.StatusForbidden, "business account required")
			return
		}

		var in struct {
			Verified bool `json:"verified"`
		}
		if err := httpjson.Read(req, &in); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		if err := d.Business.SetVerified(req.Context(), chi.URLParam(req, "key"), in.Verified); err != nil {
			status, msg := mapBusinessError(err)
			httpjson.Error(w, status, msg)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}
