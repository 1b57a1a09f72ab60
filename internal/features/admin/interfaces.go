package admin

import (
	"context"
	"io"

	"newsdesk/internal/auth"
	"newsdesk/internal/features/articles/models"
)

// ArticleService is the article workflow the admin pages drive
type ArticleService interface {
	ListArticles(ctx context.Context, params models.ListParams) (*models.ListResult, error)
	GetArticle(ctx context.Context, id string) (*models.Article, error)
	CreateArticle(ctx context.Context, input models.ArticleInput) (*models.Article, error)
	UpdateArticle(ctx context.Context, id string, input models.ArticleInput) (*models.Article, error)
	ToggleFeatured(ctx context.Context, id string) (*models.Article, error)
}

// Accounts is the part of the auth service the sign-in pages need
type Accounts interface {
	Login(ctx context.Context, email, password string) (*auth.User, string, error)
	Register(ctx context.Context, input auth.RegisterInput) (*auth.User, error)
	GetUser(ctx context.Context, id string) (*auth.User, error)
	ValidateToken(token string) (*auth.Claims, error)
}

// Uploader stores featured images submitted with the article form
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error)
}
