package imagehost

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalHost persists images under a base directory served at publicURL.
type LocalHost struct {
	baseDir   string
	publicURL string
}

// NewLocalHost ensures the base directory exists and returns a handle.
func NewLocalHost(baseDir, publicURL string) (*LocalHost, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if publicURL == "" {
		publicURL = "/uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &LocalHost{baseDir: baseDir, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

// Dir returns the directory images are written to.
func (h *LocalHost) Dir() string {
	return h.baseDir
}

// Upload copies r into a uniquely named file and returns its public URL.
func (h *LocalHost) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, name)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	filename := uuid.NewString() + ext
	file, err := os.Create(filepath.Join(h.baseDir, filename))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer file.Close() //nolint:errcheck

	if _, err := io.Copy(file, r); err != nil {
		_ = os.Remove(file.Name())
		return "", fmt.Errorf("write image stream: %w", err)
	}
	return h.publicURL + "/" + filename, nil
}

// Delete removes an image previously returned by Upload. URLs outside the
// public prefix are ignored.
func (h *LocalHost) Delete(ctx context.Context, imageURL string) error {
	name, ok := strings.CutPrefix(imageURL, h.publicURL+"/")
	if !ok || name == "" || name != filepath.Base(name) {
		return nil
	}
	if err := os.Remove(filepath.Join(h.baseDir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete image file: %w", err)
	}
	return nil
}

var _ Host = (*LocalHost)(nil)
