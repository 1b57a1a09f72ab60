package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"newsdesk/internal/core"
	"newsdesk/internal/features/articles/models"
)

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

var articleColumns = []string{
	"a.id",
	"a.title",
	"a.content",
	"a.excerpt",
	"a.author_id",
	"u.name AS author_name",
	"u.email AS author_email",
	"a.category",
	"a.publish_date",
	"a.last_updated",
	"a.featured_image",
	"a.views",
	"a.is_featured",
	"a.trending_score",
}

// SQLiteStore keeps articles in sqlite, joined to the users table for authors
type SQLiteStore struct {
	db     *core.Database
	logger *core.Logger
}

// NewSQLiteStore creates a sqlite-backed article store
func NewSQLiteStore(db *core.Database, logger *core.Logger) *SQLiteStore {
	return &SQLiteStore{
		db:     db,
		logger: logger,
	}
}

type articleRow struct {
	ID            string         `db:"id"`
	Title         string         `db:"title"`
	Content       string         `db:"content"`
	Excerpt       string         `db:"excerpt"`
	AuthorID      sql.NullString `db:"author_id"`
	AuthorName    sql.NullString `db:"author_name"`
	AuthorEmail   sql.NullString `db:"author_email"`
	Category      string         `db:"category"`
	PublishDate   int64          `db:"publish_date"`
	LastUpdated   int64          `db:"last_updated"`
	FeaturedImage string         `db:"featured_image"`
	Views         int            `db:"views"`
	IsFeatured    bool           `db:"is_featured"`
	TrendingScore int            `db:"trending_score"`
}

func (r articleRow) toArticle() models.Article {
	article := models.Article{
		ID:            r.ID,
		Title:         r.Title,
		Content:       r.Content,
		Excerpt:       r.Excerpt,
		AuthorID:      r.AuthorID.String,
		Category:      r.Category,
		PublishDate:   time.UnixMilli(r.PublishDate).UTC(),
		LastUpdated:   time.UnixMilli(r.LastUpdated).UTC(),
		FeaturedImage: r.FeaturedImage,
		Views:         r.Views,
		IsFeatured:    r.IsFeatured,
		TrendingScore: r.TrendingScore,
	}

	if r.AuthorID.Valid && (r.AuthorName.Valid || r.AuthorEmail.Valid) {
		article.Author = &models.Author{
			ID:    r.AuthorID.String,
			Name:  r.AuthorName.String,
			Email: r.AuthorEmail.String,
		}
	}

	return article
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func filters(params models.ListParams) squirrel.And {
	where := squirrel.And{}
	if params.Category != "" {
		where = append(where, squirrel.Eq{"a.category": params.Category})
	}
	if params.FeaturedOnly {
		where = append(where, squirrel.Eq{"a.is_featured": true})
	}
	if params.StartDate != nil {
		where = append(where, squirrel.GtOrEq{"a.publish_date": params.StartDate.UnixMilli()})
	}
	if params.EndDate != nil {
		where = append(where, squirrel.LtOrEq{"a.publish_date": params.EndDate.UnixMilli()})
	}
	return where
}

// List returns one page of matching articles and the total match count
func (s *SQLiteStore) List(ctx context.Context, params models.ListParams) ([]models.Article, int64, error) {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	where := filters(params)

	countQuery := builder.Select("COUNT(*)").From("articles a")
	pageQuery := builder.Select(articleColumns...).
		From("articles a").
		LeftJoin("users u ON u.id = a.author_id").
		OrderBy("a.publish_date DESC", "a.id DESC").
		Limit(uint64(params.Limit)).
		Offset(uint64(params.Skip()))
	if len(where) > 0 {
		countQuery = countQuery.Where(where)
		pageQuery = pageQuery.Where(where)
	}

	query, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}
	var total int64
	if err := s.db.GetContext(ctx, &total, query, args...); err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	query, args, err = pageQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}
	var rows []articleRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}

	articles := make([]models.Article, 0, len(rows))
	for _, row := range rows {
		articles = append(articles, row.toArticle())
	}

	return articles, total, nil
}

// Get returns the article with its author populated
func (s *SQLiteStore) Get(ctx context.Context, id string) (*models.Article, error) {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	return s.get(ctx, s.db, id)
}

func (s *SQLiteStore) get(ctx context.Context, q sqlx.QueryerContext, id string) (*models.Article, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidID, id, err)
	}

	query, args, err := builder.Select(articleColumns...).
		From("articles a").
		LeftJoin("users u ON u.id = a.author_id").
		Where(squirrel.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	var row articleRow
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get article %s: %w", id, err)
	}

	article := row.toArticle()
	return &article, nil
}

// Create stores a new article and sets its ID
func (s *SQLiteStore) Create(ctx context.Context, article *models.Article) error {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	id := uuid.NewString()
	query, args, err := builder.Insert("articles").
		Columns(
			"id", "title", "content", "excerpt", "author_id", "category",
			"publish_date", "last_updated", "featured_image", "views",
			"is_featured", "trending_score",
		).
		Values(
			id, article.Title, article.Content, article.Excerpt, nullable(article.AuthorID), article.Category,
			article.PublishDate.UnixMilli(), article.LastUpdated.UnixMilli(), article.FeaturedImage, article.Views,
			article.IsFeatured, article.TrendingScore,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert article: %w", err)
	}

	article.ID = id
	return nil
}

// Update runs the read-modify-write in one transaction
func (s *SQLiteStore) Update(ctx context.Context, id string, apply func(*models.Article) error) error {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	return s.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		article, err := s.get(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := apply(article); err != nil {
			return err
		}

		query, args, err := builder.Update("articles").
			SetMap(map[string]interface{}{
				"title":          article.Title,
				"content":        article.Content,
				"excerpt":        article.Excerpt,
				"author_id":      nullable(article.AuthorID),
				"category":       article.Category,
				"publish_date":   article.PublishDate.UnixMilli(),
				"last_updated":   article.LastUpdated.UnixMilli(),
				"featured_image": article.FeaturedImage,
				"is_featured":    article.IsFeatured,
			}).
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build update query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update article %s: %w", id, err)
		}
		return nil
	})
}

// Ping checks the database connection
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingWithTimeout(ctx, 2*time.Second)
}
