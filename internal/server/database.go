package server

import (
	"context"
	"fmt"
	"time"

	"newsdesk/internal/auth"
	"newsdesk/internal/core"
	"newsdesk/internal/features/articles"
)

const pingTimeout = 2 * time.Second

// Storage is the selected backing store: a sqlite database or a lazily
// dialled document store.
type Storage struct {
	driver    string
	db        *core.Database
	connector *core.Connector
	users     auth.UserStore
	prepare   func(ctx context.Context) error
	logger    *core.Logger
}

// OpenStorage opens the store named by cfg.Driver. The document store is not
// dialled until first use.
func OpenStorage(cfg core.DatabaseConfig, logger *core.Logger) (*Storage, error) {
	s := &Storage{driver: cfg.Driver, logger: logger}

	switch cfg.Driver {
	case core.DriverSQLite:
		db, err := core.OpenSQLite(cfg.Path, logger)
		if err != nil {
			return nil, err
		}
		s.db = db
		s.users = auth.NewUserModel(db, logger)
		s.prepare = func(ctx context.Context) error {
			return auth.Migrate(ctx, db, logger)
		}
	case core.DriverMongo:
		s.connector = core.NewConnector(cfg.MongoURI, cfg.MongoDatabase, logger)
		users := auth.NewMongoUserModel(s.connector, logger)
		s.users = users
		s.prepare = users.EnsureIndexes
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}

	return s, nil
}

// Driver returns the configured driver name
func (s *Storage) Driver() string {
	return s.driver
}

// Users returns the user store
func (s *Storage) Users() auth.UserStore {
	return s.users
}

// Prepare creates the user schema or indexes
func (s *Storage) Prepare(ctx context.Context) error {
	if err := s.prepare(ctx); err != nil {
		return fmt.Errorf("prepare user storage: %w", err)
	}
	return nil
}

// ArticlesFeature builds the articles feature on this store
func (s *Storage) ArticlesFeature(logger *core.Logger, cfg *articles.Config) *articles.Feature {
	if s.connector != nil {
		return articles.NewMongoFeature(logger, s.connector, cfg)
	}
	return articles.NewSQLiteFeature(logger, s.db, cfg)
}

// Ping checks that the store is reachable
func (s *Storage) Ping(ctx context.Context) error {
	if s.connector != nil {
		ctx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		return s.connector.Ping(ctx)
	}
	return s.db.PingWithTimeout(ctx, pingTimeout)
}

// Close releases the store
func (s *Storage) Close(ctx context.Context) error {
	if s.connector != nil {
		return s.connector.Close(ctx)
	}
	s.db.LogStats()
	return s.db.Close()
}
