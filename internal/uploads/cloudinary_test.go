package uploads

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "unsigned_preset", r.FormValue("upload_preset"))
		assert.Equal(t, "businesses/shop1", r.FormValue("folder"))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		body, _ := io.ReadAll(f)
		assert.Equal(t, "logo.png", hdr.Filename)
		assert.Equal(t, "png-bytes", string(body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"secure_url": "https://res.cloudinary.com/demo/image/upload/businesses/shop1/logo.png",
			"public_id": "businesses/shop1/logo",
			"asset_id": "abc123",
			"original_filename": "logo"
		}`))
	}))
	defer srv.Close()

	c := NewClient("demo", "unsigned_preset", nil)
	c.baseURL = srv.URL

	uf, err := c.Upload(context.Background(), strings.NewReader("png-bytes"), "logo.png", "businesses/shop1", "")
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/businesses/shop1/logo.png", uf.URL)
	assert.Equal(t, "businesses/shop1/logo", uf.PublicID)
	assert.Equal(t, "businesses/shop1/logo", uf.FullPath)
	assert.Equal(t, "businesses/shop1", uf.Folder)
	assert.Equal(t, "logo", uf.FileName)
	assert.Equal(t, "logo", uf.OriginalName)
}

func TestUploadNoFolder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secure_url":"https://x/y.png","public_id":"y","original_filename":"y"}`))
	}))
	defer srv.Close()

	c := NewClient("demo", "preset", nil)
	c.baseURL = srv.URL

	uf, err := c.Upload(context.Background(), strings.NewReader("x"), "y.png", "", "")
	require.NoError(t, err)
	assert.Empty(t, uf.Folder)
	assert.Equal(t, "y", uf.FileName)
}

func TestUploadRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid upload preset"}}`))
	}))
	defer srv.Close()

	c := NewClient("demo", "bad_preset", nil)
	c.baseURL = srv.URL

	_, err := c.Upload(context.Background(), strings.NewReader("x"), "y.png", "", "")
	assert.ErrorIs(t, err, ErrUploadFailed)
}
