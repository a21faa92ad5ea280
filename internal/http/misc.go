package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harsh308050/UdhyogUnity-sub001/internal/httpjson"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/mailer"
	"github.com/harsh308050/UdhyogUnity-sub001/internal/uploads"
)

// 10 MB, matching the Cloudinary preset limit
const maxUploadBytes = 10 << 20

func registerUploadRoutes(r chi.Router, d Deps) {
	r.Post("/uploads", func(w http.ResponseWriter, req *http.Request) {
		req.Body = http.MaxBytesReader(w, req.Body, maxUploadBytes)
		if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid multipart body")
			return
		}

		file, header, err := req.FormFile("file")
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "file field is required")
			return
		}
		defer file.Close()

		uf, err := d.Uploads.Upload(req.Context(), file, header.Filename,
			req.FormValue("folder"), req.FormValue("publicId"))
		if err != nil {
			if errors.Is(err, uploads.ErrUploadFailed) {
				httpjson.Error(w, http.StatusBadGateway, err.Error())
				return
			}
			httpjson.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
		httpjson.Write(w, http.StatusCreated, uf)
	})
}

func registerContactRoutes(r chi.Router, d Deps) {
	r.Post("/contact", func(w http.ResponseWriter, req *http.Request) {
		var msg mailer.ContactMessage
		if err := httpjson.Read(req, &msg); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		id, err := d.Mailer.Send(req.Context(), msg)
		if err != nil {
			httpjson.Error(w, http.StatusBadGateway, err.Error())
			return
		}
		httpjson.Write(w, http.StatusOK, map[string]interface{}{"ok": true, "id": id})
	})
}
