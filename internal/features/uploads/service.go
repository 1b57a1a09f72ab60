package uploads

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"newsdesk/internal/core"
)

const defaultContentType = "application/octet-stream"

// Service stores uploaded files and returns their public URL
type Service struct {
	store     ObjectStore
	publicURL string
	logger    *core.Logger
	now       func() time.Time
}

// NewService creates an upload service publishing under publicURL
func NewService(store ObjectStore, publicURL string, logger *core.Logger) *Service {
	return &Service{
		store:     store,
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    logger,
		now:       time.Now,
	}
}

// PublicURL returns the URL an object key is served from
func (s *Service) PublicURL(key string) string {
	return s.publicURL + "/" + key
}

// Upload writes body under a fresh key and returns its public URL. There
// are no retries.
func (s *Service) Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error) {
	if contentType == "" {
		contentType = defaultContentType
	}

	key := ObjectKey(s.now(), filename)
	if err := s.store.PutObject(ctx, key, body, size, contentType); err != nil {
		if !errors.Is(err, ErrUploadFailed) {
			err = errors.Join(ErrUploadFailed, err)
		}
		return "", err
	}

	s.logger.Info("Stored upload", "key", key, "size", size, "content_type", contentType)
	return s.PublicURL(key), nil
}
