package views

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/features/articles/models"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestRenderSetsHTMLContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/authentication/login", nil)

	require.NoError(t, Render(rec, req, http.StatusUnauthorized, LoginPage(LoginData{})))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "<!doctype html>"), rec.Body.String()[:40])
}

func TestLoginPage(t *testing.T) {
	html := render(t, LoginPage(LoginData{Email: "a@b.c", Error: "Invalid credentials"}))

	assert.Contains(t, html, `action="/authentication/login"`)
	assert.Contains(t, html, `value="a@b.c"`)
	assert.Contains(t, html, "Invalid credentials")
	assert.NotContains(t, html, "Log out")
}

func TestRegisterPageSuccessRedirects(t *testing.T) {
	html := render(t, RegisterPage(RegisterData{Success: "Registration successful! Redirecting to login..."}))

	assert.Contains(t, html, "Registration successful")
	assert.Contains(t, html, `window.location.href="/authentication/login"`)
	assert.Contains(t, html, ",2000);")
	assert.NotContains(t, html, `action="/authentication/register"`)
}

func TestRegisterPageForm(t *testing.T) {
	html := render(t, RegisterPage(RegisterData{Name: "Ann", Error: "User already exists"}))

	assert.Contains(t, html, `action="/authentication/register"`)
	assert.Contains(t, html, `value="Ann"`)
	assert.Contains(t, html, "User already exists")
	assert.NotContains(t, html, "setTimeout")
}

func TestProfilePage(t *testing.T) {
	html := render(t, ProfilePage(ProfileData{Email: "ed@news.test", Role: "admin"}))

	assert.Contains(t, html, "ed@news.test")
	assert.Contains(t, html, "admin")
	assert.Contains(t, html, "N/A")
}

func TestArticleFilterURL(t *testing.T) {
	assert.Equal(t, "/admin", ArticleFilter{}.URL(1))
	assert.Equal(t, "/admin?page=3", ArticleFilter{}.URL(3))

	f := ArticleFilter{Category: "Lifestyle", FeaturedOnly: true, StartDate: "2024-01-01"}
	assert.Equal(t, "/admin?category=Lifestyle&isFeatured=true&page=2&startDate=2024-01-01", f.URL(2))
}

func TestArticleListPage(t *testing.T) {
	published := time.Date(2024, 5, 6, 7, 0, 0, 0, time.UTC)
	data := ArticleListData{
		Session: Session{Email: "ed@news.test"},
		Articles: []models.Article{
			{ID: "a1", Title: "Flood <warning>", Category: "Lifestyle", PublishDate: published, Views: 12, IsFeatured: true,
				Author: &models.Author{ID: "u1", Name: "Rahim"}},
			{ID: "a2", Title: "Match report", Category: "Business", PublishDate: published},
		},
		Pagination: models.Pagination{Total: 25, Page: 2, Pages: 3},
		Filter:     ArticleFilter{Category: "Lifestyle"},
	}

	html := render(t, ArticleListPage(data))

	assert.Contains(t, html, "Flood &lt;warning&gt;")
	assert.Contains(t, html, "Rahim")
	assert.Contains(t, html, "N/A")
	assert.Contains(t, html, "2024-05-06")
	assert.Contains(t, html, `href="/admin/article/a1"`)
	assert.Contains(t, html, `action="/admin/articles/a2/featured"`)
	assert.Contains(t, html, `href="/admin?category=Lifestyle&amp;page=3"`)
	assert.Contains(t, html, `href="/admin?category=Lifestyle"`)

	assert.Equal(t, 1, strings.Count(html, "selected"))
	assert.Contains(t, html, `<option value="Lifestyle" selected>বাংলাদেশ</option>`)
	assert.Contains(t, html, `<option value="Business">খেলাধুলা</option>`)
}

func TestArticleListPageEmpty(t *testing.T) {
	html := render(t, ArticleListPage(ArticleListData{Pagination: models.Pagination{Page: 4}}))

	assert.Contains(t, html, "No articles found")
	assert.NotContains(t, html, `aria-label="Pagination"`)
}

func TestArticleFormPage(t *testing.T) {
	create := render(t, ArticleFormPage(ArticleFormData{UploadsEnabled: true}))
	assert.Contains(t, create, "Create Article")
	assert.Contains(t, create, `action="/admin/article/new"`)
	assert.Contains(t, create, `enctype="multipart/form-data"`)
	assert.Contains(t, create, `name="featuredImageFile"`)

	article := &models.Article{ID: "a9", Title: "T", Excerpt: "E", Content: "<p>C</p>", Category: "খেলাধুলা",
		FeaturedImage: "https://cdn.test/1-x.png", IsFeatured: true}
	edit := render(t, ArticleFormPage(FormDataFromArticle(article)))
	assert.Contains(t, edit, "Edit Article")
	assert.Contains(t, edit, `action="/admin/article/a9"`)
	assert.Contains(t, edit, `<option value="খেলাধুলা" selected>খেলাধুলা</option>`)
	assert.Contains(t, edit, `src="https://cdn.test/1-x.png"`)
	assert.Contains(t, edit, "&lt;p&gt;C&lt;/p&gt;")
	assert.NotContains(t, edit, `name="featuredImageFile"`)
}

func TestConfirmationPage(t *testing.T) {
	html := render(t, ConfirmationPage(Session{Email: "ed@news.test"}, "Article saved successfully!"))

	assert.Contains(t, html, "Article saved successfully!")
	assert.Contains(t, html, `window.location.href="/admin"`)
	assert.Contains(t, html, ",1500);")
}

func TestLayoutWrapsChildrenAndEscapes(t *testing.T) {
	child := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>body</p>")
		return err
	})
	ctx := templ.WithChildren(context.Background(), child)

	var buf bytes.Buffer
	require.NoError(t, Layout("Q&A <live>", &Session{Email: "<ed>@example.com"}).Render(ctx, &buf))
	html := buf.String()

	assert.True(t, strings.HasPrefix(html, `<!doctype html><html lang="bn">`))
	assert.Contains(t, html, "<title>Q&amp;A &lt;live&gt;</title>")
	assert.Contains(t, html, `<a href="/profile">&lt;ed&gt;@example.com</a>`)
	assert.Contains(t, html, `<main class="mx-auto max-w-6xl p-6"><p>body</p></main>`)
	assert.True(t, strings.HasSuffix(html, "</html>"))
}

func TestNavbarWithoutSession(t *testing.T) {
	html := render(t, Navbar(nil))

	assert.Contains(t, html, `href="/"`)
	assert.NotContains(t, html, "Log out")
	assert.NotContains(t, html, "/admin/article/new")
}
