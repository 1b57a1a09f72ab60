package handlers

import (
	"context"
	"io"
)

// Uploader stores a file and returns the URL it is served from
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error)
}
