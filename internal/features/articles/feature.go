package articles

import (
	"context"
	"fmt"
	"net/http"

	"newsdesk/internal/core"
	"newsdesk/internal/features/articles/handlers"
	"newsdesk/internal/features/articles/migrations"
	"newsdesk/internal/features/articles/services"
	"newsdesk/internal/features/articles/store"
)

// Feature serves the article API
type Feature struct {
	*core.BaseFeature
	config         *Config
	setup          func(ctx context.Context) error
	articleService *services.ArticleService
	handlers       *handlers.Handlers
}

func newFeature(logger *core.Logger, config *Config, st store.Store, setup func(ctx context.Context) error) *Feature {
	featureLogger := logger.ForFeature("articles")
	articleService := services.NewArticleService(st, featureLogger, config.ArticlesConfig)

	return &Feature{
		BaseFeature:    core.NewBaseFeature("articles", "Article management API", true, logger),
		config:         config,
		setup:          setup,
		articleService: articleService,
		handlers:       handlers.NewHandlers(featureLogger, articleService),
	}
}

// NewSQLiteFeature creates the feature on the sqlite store
func NewSQLiteFeature(logger *core.Logger, db *core.Database, config *Config) *Feature {
	migrationMgr := migrations.NewManager(db, logger)
	return newFeature(logger, config, store.NewSQLiteStore(db, logger.ForFeature("articles")), migrationMgr.Migrate)
}

// NewMongoFeature creates the feature on the document store
func NewMongoFeature(logger *core.Logger, connector *core.Connector, config *Config) *Feature {
	mongoStore := store.NewMongoStore(connector, logger.ForFeature("articles"))
	return newFeature(logger, config, mongoStore, mongoStore.EnsureIndexes)
}

// Init prepares the article storage
func (f *Feature) Init(ctx context.Context) error {
	if err := f.BaseFeature.Init(ctx); err != nil {
		return err
	}

	if err := f.setup(ctx); err != nil {
		return fmt.Errorf("prepare article storage: %w", err)
	}

	f.Logger().Info("Articles feature initialized", "driver", f.config.Driver)
	return nil
}

// Routes returns the HTTP routes for the articles feature
func (f *Feature) Routes() []core.Route {
	return []core.Route{
		{Method: http.MethodGet, Path: "/api/articles", Handler: f.handlers.ListArticles},
		{Method: http.MethodPost, Path: "/api/articles", Handler: f.handlers.CreateArticle},
		{Method: http.MethodGet, Path: "/api/articles/{id}", Handler: f.handlers.GetArticle},
		{Method: http.MethodPut, Path: "/api/articles/{id}", Handler: f.handlers.UpdateArticle},
	}
}

// GetArticleService returns the article service
func (f *Feature) GetArticleService() *services.ArticleService {
	return f.articleService
}
