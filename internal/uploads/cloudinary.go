package uploads

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

var ErrUploadFailed = errors.New("upload failed")

// UploadedFile mirrors the shape stored on business and product documents
// for images and documents.
type UploadedFile struct {
	URL          string `json:"url"`
	PublicID     string `json:"public_id"`
	OriginalName string `json:"original_name"`
	Folder       string `json:"folder,omitempty"`
	FullPath     string `json:"full_path"`
	FileName     string `json:"file_name"`
}

// Client uploads media to Cloudinary through its unsigned upload-preset
// endpoint. No SDK: the unsigned flow is a single multipart POST.
type Client struct {
	cloudName    string
	uploadPreset string
	baseURL      string
	http         *http.Client
	log          *zap.Logger
}

func NewClient(cloudName, uploadPreset string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		cloudName:    cloudName,
		uploadPreset: uploadPreset,
		baseURL:      "https://api.cloudinary.com/v1_1",
		http:         &http.Client{Timeout: 30 * time.Second},
		log:          log,
	}
}

func (c *Client) endpoint() string {
	return fmt.Sprintf("%s/%s/auto/upload", c.baseURL, c.cloudName)
}

// Upload sends one file. folder and publicID are optional; Cloudinary
// generates a public_id when none is given.
func (c *Client) Upload(ctx context.Context, file io.Reader, fileName, folder, publicID string) (*UploadedFile, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		defer pw.Close()
		defer mw.Close()
		part, err := mw.CreateFormFile("file", fileName)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		_ = mw.WriteField("upload_preset", c.uploadPreset)
		if folder != "" {
			_ = mw.WriteField("folder", folder)
		}
		if publicID != "" {
			_ = mw.WriteField("public_id", publicID)
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Warn("cloudinary upload rejected",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return nil, fmt.Errorf("%w: cloudinary returned %d", ErrUploadFailed, resp.StatusCode)
	}

	var out struct {
		SecureURL        string `json:"secure_url"`
		PublicID         string `json:"public_id"`
		AssetID          string `json:"asset_id"`
		OriginalFilename string `json:"original_filename"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: bad response: %v", ErrUploadFailed, err)
	}

	uf := &UploadedFile{
		URL:          out.SecureURL,
		PublicID:     out.PublicID,
		OriginalName: out.OriginalFilename,
		FullPath:     out.PublicID,
		FileName:     out.PublicID,
	}
	// public_id carries the folder prefix when one was set
	if i := strings.LastIndex(out.PublicID, "/"); i >= 0 {
		uf.Folder = out.PublicID[:i]
		uf.FileName = out.PublicID[i+1:]
	}
	return uf, nil
}
