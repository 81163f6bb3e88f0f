// Package imagehost stores listing photos with an external image service or on
// local disk and hands back the public URL.
package imagehost

import (
	"context"
	"errors"
	"io"
)

// ErrUnsupportedImage is returned for files whose extension is not an image.
var ErrUnsupportedImage = errors.New("unsupported image type")

// Host uploads and removes hosted images.
type Host interface {
	Upload(ctx context.Context, name string, r io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".gif":  {},
}
