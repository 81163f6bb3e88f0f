package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"google.golang.org/api/idtoken"
)

// HTTPHost posts uploads to an image service exposing POST/DELETE /images.
type HTTPHost struct {
	client  *http.Client
	baseURL string
}

// NewHTTPHost builds a client for the image service, auto-configuring an ID
// token client when none is supplied.
func NewHTTPHost(client *http.Client, serviceURL string) (*HTTPHost, error) {
	if serviceURL == "" {
		return nil, fmt.Errorf("image service url must not be empty")
	}
	serviceURL = strings.TrimRight(serviceURL, "/")
	if client == nil {
		idc, err := idtoken.NewClient(context.Background(), serviceURL)
		if err != nil {
			client = &http.Client{Timeout: 30 * time.Second}
		} else {
			client = idc
		}
	}
	return &HTTPHost{client: client, baseURL: serviceURL}, nil
}

// Upload streams the file as multipart form field "file" and returns the hosted URL.
func (h *HTTPHost) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	if _, ok := allowedExtensions[strings.ToLower(filepath.Ext(name))]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, name)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(name))
	if err != nil {
		return "", fmt.Errorf("create multipart part: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("copy image body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/images", &body)
	if err != nil {
		return "", fmt.Errorf("failed to create image request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("image upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("image service error: %s", extractServiceError(resp.Body))
	}

	var payload struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("could not decode image service response: %w", err)
	}
	if payload.Error != "" {
		return "", fmt.Errorf("image service error: %s", payload.Error)
	}
	if payload.Data.URL == "" {
		return "", fmt.Errorf("image service returned no url")
	}
	return payload.Data.URL, nil
}

// Delete asks the service to drop a hosted image. A 404 counts as deleted.
func (h *HTTPHost) Delete(ctx context.Context, imageURL string) error {
	endpoint := h.baseURL + "/images?url=" + url.QueryEscape(imageURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create image delete request: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("image delete failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("image service error: %s", extractServiceError(resp.Body))
	}
	return nil
}

func extractServiceError(body io.Reader) string {
	data, err := io.ReadAll(body)
	if err != nil || len(data) == 0 {
		return "image service returned an error"
	}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return string(data)
}

var _ Host = (*HTTPHost)(nil)
