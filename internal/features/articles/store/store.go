package store

import (
	"context"
	"errors"

	"newsdesk/internal/features/articles/models"
)

var (
	// ErrNotFound is returned when no article has the requested id
	ErrNotFound = errors.New("article not found")
	// ErrInvalidID is returned for ids the backend cannot parse
	ErrInvalidID = errors.New("invalid article id")
)

// Store persists articles
type Store interface {
	// List returns one page of matching articles, newest first, and the
	// total number of matches.
	List(ctx context.Context, params models.ListParams) ([]models.Article, int64, error)

	// Get returns the article with its author populated
	Get(ctx context.Context, id string) (*models.Article, error)

	// Create stores a new article and sets its ID
	Create(ctx context.Context, article *models.Article) error

	// Update loads the article, lets apply modify it and writes the editable
	// fields back.
	Update(ctx context.Context, id string, apply func(*models.Article) error) error

	// Ping checks the backend is reachable
	Ping(ctx context.Context) error
}
