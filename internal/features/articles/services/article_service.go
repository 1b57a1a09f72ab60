package services

import (
	"context"
	"errors"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"newsdesk/internal/core"
	"newsdesk/internal/features/articles/models"
	"newsdesk/internal/features/articles/store"
)

// ArticleService implements the article operations on top of a Store
type ArticleService struct {
	store  store.Store
	logger *core.Logger
	config core.ArticlesConfig
	policy *bluemonday.Policy
	now    func() time.Time
}

// NewArticleService creates a new article service
func NewArticleService(st store.Store, logger *core.Logger, config core.ArticlesConfig) *ArticleService {
	s := &ArticleService{
		store:  st,
		logger: logger,
		config: config,
		now:    time.Now,
	}
	if config.SanitizeHTML {
		s.policy = editorPolicy()
	}
	return s
}

// editorPolicy is the UGC policy plus the inline styling and classes a rich
// text editor emits. Scripts and event handlers are still stripped.
func editorPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowStyles(
		"text-align", "color", "background-color",
		"font-size", "font-weight", "font-style", "text-decoration",
		"width", "height", "float", "margin", "margin-left", "margin-right",
		"padding", "padding-left",
	).Globally()
	return p
}

// Config returns the listing configuration
func (s *ArticleService) Config() core.ArticlesConfig {
	return s.config
}

// Ping checks the underlying store
func (s *ArticleService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// timestamp returns the current time at the millisecond precision both
// stores keep.
func (s *ArticleService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// nextUpdate returns a timestamp strictly after prev
func (s *ArticleService) nextUpdate(prev time.Time) time.Time {
	stamp := s.timestamp()
	if !stamp.After(prev) {
		stamp = prev.Add(time.Millisecond)
	}
	return stamp
}

func (s *ArticleService) sanitize(html string) string {
	if s.policy == nil {
		return html
	}
	return s.policy.Sanitize(html)
}

// NormalizeListParams applies the page defaults. The limit is only capped
// when a positive MaxLimit is configured.
func (s *ArticleService) NormalizeListParams(params models.ListParams) models.ListParams {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = s.config.DefaultLimit
	}
	if s.config.MaxLimit > 0 && params.Limit > s.config.MaxLimit {
		params.Limit = s.config.MaxLimit
	}
	return params
}

// ListArticles returns one page of articles. Pages past the end are empty.
func (s *ArticleService) ListArticles(ctx context.Context, params models.ListParams) (*models.ListResult, error) {
	params = s.NormalizeListParams(params)

	articles, total, err := s.store.List(ctx, params)
	if err != nil {
		return nil, err
	}
	if articles == nil {
		articles = []models.Article{}
	}

	return &models.ListResult{
		Articles: articles,
		Pagination: models.Pagination{
			Total: total,
			Page:  params.Page,
			Pages: models.PageCount(total, params.Limit),
		},
	}, nil
}

// GetArticle returns a single article
func (s *ArticleService) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	return s.store.Get(ctx, id)
}

// CreateArticle validates input and stores a new article with server-set
// timestamps and zeroed counters.
func (s *ArticleService) CreateArticle(ctx context.Context, input models.ArticleInput) (*models.Article, error) {
	if err := core.Validate(input); err != nil {
		return nil, err
	}

	now := s.timestamp()
	article := &models.Article{
		Title:         input.Title,
		Content:       s.sanitize(input.Content),
		Excerpt:       input.Excerpt,
		AuthorID:      string(input.Author),
		Category:      input.Category,
		PublishDate:   now,
		LastUpdated:   now,
		FeaturedImage: input.FeaturedImage,
		IsFeatured:    input.IsFeatured,
	}
	if input.PublishDate != nil && !input.PublishDate.IsZero() {
		article.PublishDate = input.PublishDate.UTC().Truncate(time.Millisecond)
	}

	if err := s.store.Create(ctx, article); err != nil {
		return nil, err
	}

	s.logger.Info("Created article", "article_id", article.ID, "title", article.Title)
	return s.store.Get(ctx, article.ID)
}

// UpdateArticle overwrites the editable fields of an article. An absent
// author keeps the stored one. lastUpdated is always moved forward by the
// server; views and trendingScore are untouched.
func (s *ArticleService) UpdateArticle(ctx context.Context, id string, input models.ArticleInput) (*models.Article, error) {
	if err := core.Validate(input); err != nil {
		return nil, err
	}

	err := s.store.Update(ctx, id, func(article *models.Article) error {
		article.Title = input.Title
		article.Content = s.sanitize(input.Content)
		article.Excerpt = input.Excerpt
		if input.Author != "" {
			article.AuthorID = string(input.Author)
		}
		article.Category = input.Category
		article.FeaturedImage = input.FeaturedImage
		article.IsFeatured = input.IsFeatured
		if input.PublishDate != nil && !input.PublishDate.IsZero() {
			article.PublishDate = input.PublishDate.UTC().Truncate(time.Millisecond)
		}
		article.LastUpdated = s.nextUpdate(article.LastUpdated)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Updated article", "article_id", id)
	return s.store.Get(ctx, id)
}

// ToggleFeatured flips isFeatured by re-sending the whole article through
// the update path.
func (s *ArticleService) ToggleFeatured(ctx context.Context, id string) (*models.Article, error) {
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	input := models.InputFromArticle(current)
	input.IsFeatured = !current.IsFeatured
	return s.UpdateArticle(ctx, id, input)
}

// IsNotFound reports whether err means the article does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
