package admin

import (
	"net/http"

	"newsdesk/internal/auth"
	"newsdesk/internal/core"
)

// Feature serves the server-rendered admin panel and sign-in pages
type Feature struct {
	*core.BaseFeature
	handlers *Handlers
}

// Deps are the services the admin pages sit on
type Deps struct {
	Articles ArticleService
	Accounts Accounts
	Cookies  auth.Cookies
	// Uploader is nil when uploads are disabled
	Uploader Uploader
	MaxBytes int64
}

// NewFeature creates the admin feature
func NewFeature(logger *core.Logger, deps Deps) *Feature {
	featureLogger := logger.ForFeature("admin")
	return &Feature{
		BaseFeature: core.NewBaseFeature("admin", "Admin panel and sign-in pages", true, logger),
		handlers:    NewHandlers(featureLogger, deps.Articles, deps.Accounts, deps.Cookies, deps.Uploader, deps.MaxBytes),
	}
}

// Routes returns the page routes. Everything under /admin and /profile sits
// behind the access gate.
func (f *Feature) Routes() []core.Route {
	h := f.handlers
	return []core.Route{
		{Method: http.MethodGet, Path: "/admin", Handler: h.Dashboard},
		{Method: http.MethodPost, Path: "/admin/articles/{id}/featured", Handler: h.ToggleFeatured},
		{Method: http.MethodGet, Path: "/admin/article/new", Handler: h.NewArticle},
		{Method: http.MethodPost, Path: "/admin/article/new", Handler: h.CreateArticle},
		{Method: http.MethodGet, Path: "/admin/article/{id}", Handler: h.EditArticle},
		{Method: http.MethodPost, Path: "/admin/article/{id}", Handler: h.UpdateArticle},
		{Method: http.MethodGet, Path: "/profile", Handler: h.Profile},
		{Method: http.MethodGet, Path: auth.LoginPath, Handler: h.LoginPage},
		{Method: http.MethodPost, Path: auth.LoginPath, Handler: h.Login},
		{Method: http.MethodGet, Path: "/authentication/register", Handler: h.RegisterPage},
		{Method: http.MethodPost, Path: "/authentication/register", Handler: h.Register},
		{Method: http.MethodPost, Path: "/authentication/logout", Handler: h.Logout},
	}
}
