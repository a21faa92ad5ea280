package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/catalog"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/httpjson"
)

func mapCatalogError(err error) (int, string) {
	switch {
	case catalog.IsErrBadRequest(err):
		return http.StatusBadRequest, err.Error()
	case catalog.IsErrNotFound(err):
		return http.StatusNotFound, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func registerPublicCatalogRoutes(r chi.Router, d Deps) {
	r.Get("/businesses/{key}/products", func(w http.ResponseWriter, req *http.Request) {
		key := chi.URLParam(req, "key")
		status := req.URL.Query().Get("status")

		var (
			products []catalog.Product
			err      error
		)
		if status == "" {
			products, err = d.Products.ListAll(req.Context(), key)
		} else if catalog.IsValidProductStatus(status) {
			products, err = d.Products.List(req.Context(), key, status)
		} else {
			httpjson.Error(w, http.StatusBadRequest, "unknown product status")
			return
		}
		if err != nil {
			s, msg := mapCatalogError(err)
			httpjson.Error(w, s, msg)
			return
		}
		httpjson.Write(w, http.StatusOK, map[string]interface{}{"products": products})
	})

	r.Get("/businesses/{key}/products/{productId}", func(w http.ResponseWriter, req *http.Request) {
		p, status, err := d.Products.Get(req.Context(), chi.URLParam(req, "key"), chi.URLParam(req, "productId"))
		if err != nil {
			s, msg := mapCatalogError(err)
			httpjson.Error(w, s, msg)
			return
		}
		httpjson.Write(w, http.StatusOK, map[string]interface{}{"product": p, "status": status})
	})

	r.Get("/businesses/{key}/services", func(w http.ResponseWriter, req *http.Request) {
		services, err := d.Services.ListAll(req.Context(), chi.URLParam(req, "key"))
		if err != nil {
			s, msg := mapCatalogError(err)
			httpjson.Error(w, s, msg)
			return
		}
		httpjson.Write(w, http.StatusOK, map[string]interface{}{"services": services})
	})

	r.Get("/businesses/{key}/services/{serviceId}", func(w http.ResponseWriter, req *http.Request) {
		svc, _, err := d.Services.Get(req.Context(), chi.URLParam(req, "key"), chi.URLParam(req, "serviceId"))
		if err != nil {
			s, msg := mapCatalogError(err)
			httpjson.Error(w, s, msg)
			return
		}
		httpjson.Write(w, http.StatusOK, svc)
	})
}

func registerCatalogRoutes(r chi.Router, d Deps) {
	r.Post("/businesses/{key}/products", func(w http.ResponseWriter, req *http.Request) {
		var in catalog.CreateProductInput
		if err := httpjson.Read(req, &in); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		in.Trim()
		if in.Name == "" || in.Price < 0 {
			httpjson.Error(w, http.StatusBadRequest, "name is required and price must be non-negative")
			return
		}

		key := chi.URLParam(req, "key")
		now := time.Now().UTC()
		p, err := d.Products.Create(req.Context(), key, catalog.Product{
			BusinessID:      key,
			Name:            in.Name,
			Description:     in.Description,
			Price:           in.Price,
			DiscountedPrice: in.DiscountedPrice,
			Category:        in.Category,
			InStock:         in.InStock,
			Images:          in.Images,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		if err != nil {
			s, msg := mapCatalogError(err)
			httpjson.Error(w, s, msg)
			return
		}
		httpjson.Write(w, http.StatusCreated, p)
	})

	r.Patch("/businesses/{key}/products/{productId}", func(w http.ResponseWriter, req *http.Request) {
		var updates map[string]interface{}
		if err := httpjson.Read(req, &updates); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		updates["updatedAt"] = time.Now().UTC()

		p, err := d.Products.Update(req.Context(), chi.URLParam(req, "key"), chi.URLParam(req, "productId"), updates)
		if err != nil {
			s, msg := mapCatalogError(err)
			httpjson.Error(w, s, msg)
			return
		}
		httpjson.Write(w, http.StatusOK, p)
	})

	r.Post("/businesses/{key}/products/{productId}/status", func(w http.ResponseWriter, req *http.Request) {
		var in struct {
			Status string `json:"status"`
		}
		if err := httpjson.Read(req, &in); err != nil || !catalog.IsValidProductStatus(in.Status) {
			httpjson.Error(w, http.StatusBadRequest, "status must be Available or Unavailable")
			return
		}

		p, err := d.Products.SetStatus(req.Context(), chi.URLParam(req, "key"), chi.URLParam(req, "productId"), in.Status)
		if err != nil {
			s, msg := mapCatalogError(err)
			httpjson.Error(w, s, msg)
			return
		}
		httpjson.Write(w, http.StatusOK, p)
	})

	r.Delete("/businesses/{key}/products/{productId}", func(w http.ResponseWriter, req *http.Request) {
		if err := d.Products.Delete(req.Context(), chi.URLParam(req, "key"), chi.URLParam(req, "productId")); err != nil {
			s, msg := mapCatalogError(err)
			httpjson.Error(w, s, msg)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/businesses/{key}/services", func(w http.ResponseWriter, req *http.Request) {
		var in catalog.CreateServiceInput
		if err := httpjson.Read(req, &in); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		in.Trim()
		if in.Name == "" || in.Price < 0 {
			httpjson.Error(w, http.StatusBadRequest, "name is required and price must be non-negative")
			return
		}

		key := chi.URLParam(req, "key")
		now := time.Now().UTC()
		svc, err := d.Services.Create(req.Context(), key, catalog.ServiceEntity{
			BusinessID:      key,
			Name:            in.Name,
			Description:     in.Description,
			Price:           in.Price,
			DurationMinutes: in.DurationMinutes,
			Category:        in.Category,
			IsActive:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		if err != nil {
			s, msg := mapCatalogError(err)
			httpjson.Error(w, s, msg)
			return
		}
		httpjson.Write(w, http.StatusCreated, svc)
	})

	r.Patch("/businesses/{key}/services/{serviceId}", func(w http.ResponseWriter, req *http.Request) {
		var updates map[string]interface{}
		if err := httpjson.Read(req, &updates); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		updates["updatedAt"] = time.Now().UTC()

		svc, err := d.Services.Update(req.Context(), chi.URLParam(req, "key"), chi.URLParam(req, "serviceId"), updates)
		if err != nil {
			s, msg := mapCatalogError(err)
			httpjson.Error(w, s, msg)
			return
		}
		httpjson.Write(w, http.StatusOK, svc)
	})

	r.Delete("/businesses/{key}/services/{serviceId}", func(w http.ResponseWriter, req *http.Request) {
		if err := d.Services.Delete(req.Context(), chi.URLParam(req, "key"), chi.URLParam(req, "serviceId")); err != nil {
			s, msg := mapCatalogError(err)
			httpjson.Error(w, s, msg)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}
