package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/auth"
	"newsdesk/internal/core"
	"newsdesk/internal/features/articles/migrations"
	"newsdesk/internal/features/articles/models"
	"newsdesk/internal/features/articles/store"
)

var testConfig = core.ArticlesConfig{DefaultLimit: 10}

func newTestService(t *testing.T) *ArticleService {
	t.Helper()
	return newTestServiceWith(t, testConfig)
}

func newTestServiceWith(t *testing.T, config core.ArticlesConfig) *ArticleService {
	t.Helper()
	svc, _ := newTestEnv(t, config)
	return svc
}

func newTestEnv(t *testing.T, config core.ArticlesConfig) (*ArticleService, *auth.UserModel) {
	t.Helper()
	ctx := context.Background()
	logger := core.NewDiscardLogger()

	db, err := core.OpenSQLite(":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, auth.Migrate(ctx, db, logger))
	require.NoError(t, migrations.NewManager(db, logger).Migrate(ctx))

	return NewArticleService(store.NewSQLiteStore(db, logger), logger, config), auth.NewUserModel(db, logger)
}

func validInput() models.ArticleInput {
	return models.ArticleInput{
		Title:    "Budget passed",
		Content:  "<p>The budget passed.</p>",
		Excerpt:  "The budget passed",
		Category: "Business",
	}
}

func TestCreateThenGet(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	before := time.Now().Add(-time.Second)

	created, err := svc.CreateArticle(ctx, validInput())
	require.NoError(t, err)

	got, err := svc.GetArticle(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "Budget passed", got.Title)
	assert.Equal(t, "<p>The budget passed.</p>", got.Content)
	assert.Equal(t, "The budget passed", got.Excerpt)
	assert.False(t, got.IsFeatured)
	assert.Equal(t, 0, got.Views)
	assert.Equal(t, 0, got.TrendingScore)
	assert.True(t, got.PublishDate.After(before))
	assert.True(t, got.LastUpdated.Equal(got.PublishDate))
}

func TestCreateKeepsSuppliedPublishDate(t *testing.T) {
	published := time.Date(2024, 12, 31, 18, 30, 0, 0, time.UTC)
	input := validInput()
	input.PublishDate = &published

	created, err := newTestService(t).CreateArticle(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, created.PublishDate.Equal(published))
}

func TestCreateValidates(t *testing.T) {
	svc := newTestService(t)

	for name, mutate := range map[string]func(*models.ArticleInput){
		"no title":      func(in *models.ArticleInput) { in.Title = "" },
		"no content":    func(in *models.ArticleInput) { in.Content = "" },
		"no excerpt":    func(in *models.ArticleInput) { in.Excerpt = "" },
		"bad image url": func(in *models.ArticleInput) { in.FeaturedImage = "not a url" },
	} {
		t.Run(name, func(t *testing.T) {
			input := validInput()
			mutate(&input)
			_, err := svc.CreateArticle(context.Background(), input)
			require.Error(t, err)
			assert.Equal(t, core.ErrCodeValidation, core.AsAppError(err).Code)
		})
	}
}

const styledContent = `<p style="text-align:center">Hello <span style="color:red">world</span></p>` +
	`<img src="https://cdn.example.com/1-a.png" style="width:50%">`

func TestCreateStoresContentVerbatim(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	input := validInput()
	input.Content = styledContent
	created, err := svc.CreateArticle(ctx, input)
	require.NoError(t, err)

	got, err := svc.GetArticle(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, styledContent, got.Content)
}

func TestCreateSanitizesContentWhenEnabled(t *testing.T) {
	svc := newTestServiceWith(t, core.ArticlesConfig{DefaultLimit: 10, SanitizeHTML: true})

	input := validInput()
	input.Content = `<p onclick="steal()">Hi</p><script>alert(1)</script>`
	created, err := svc.CreateArticle(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "<p>Hi</p>", created.Content)

	input.Content = styledContent
	created, err = svc.CreateArticle(context.Background(), input)
	require.NoError(t, err)
	assert.Contains(t, created.Content, "text-align")
	assert.Contains(t, created.Content, "color")
	assert.Contains(t, created.Content, "width")
	assert.Contains(t, created.Content, `<span`)
}

func TestUpdateMovesLastUpdatedForward(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	frozen := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return frozen }

	created, err := svc.CreateArticle(ctx, validInput())
	require.NoError(t, err)

	// the clock has not moved, lastUpdated must still advance
	first, err := svc.UpdateArticle(ctx, created.ID, validInput())
	require.NoError(t, err)
	assert.True(t, first.LastUpdated.After(created.LastUpdated))

	second, err := svc.UpdateArticle(ctx, created.ID, validInput())
	require.NoError(t, err)
	assert.True(t, second.LastUpdated.After(first.LastUpdated))

	// a clock running backwards does not pull it back either
	svc.now = func() time.Time { return frozen.Add(-time.Hour) }
	third, err := svc.UpdateArticle(ctx, created.ID, validInput())
	require.NoError(t, err)
	assert.True(t, third.LastUpdated.After(second.LastUpdated))

	assert.True(t, third.PublishDate.Equal(created.PublishDate))
}

func TestUpdateWithoutAuthorKeepsStoredAuthor(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestEnv(t, testConfig)

	author := &auth.User{Name: "Nusrat", Email: "nusrat@example.com", Role: auth.RoleAdmin}
	require.NoError(t, author.Password.Set("password"))
	require.NoError(t, users.Insert(ctx, author))

	input := validInput()
	input.Author = models.AuthorRef(author.ID)
	created, err := svc.CreateArticle(ctx, input)
	require.NoError(t, err)
	require.NotNil(t, created.Author)

	updated, err := svc.UpdateArticle(ctx, created.ID, validInput())
	require.NoError(t, err)
	require.NotNil(t, updated.Author)
	assert.Equal(t, author.ID, updated.Author.ID)
	assert.Equal(t, author.ID, updated.AuthorID)
}

func TestUpdateMissingArticle(t *testing.T) {
	_, err := newTestService(t).UpdateArticle(context.Background(), "00000000-0000-0000-0000-000000000000", validInput())
	assert.True(t, IsNotFound(err))
}

func TestToggleFeatured(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.CreateArticle(ctx, validInput())
	require.NoError(t, err)

	toggled, err := svc.ToggleFeatured(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsFeatured)
	assert.Equal(t, created.Title, toggled.Title)
	assert.True(t, toggled.PublishDate.Equal(created.PublishDate))

	toggled, err = svc.ToggleFeatured(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsFeatured)
}

func TestListArticlesPagination(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	base := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 23; i++ {
		input := validInput()
		published := base.Add(time.Duration(i) * time.Hour)
		input.PublishDate = &published
		_, err := svc.CreateArticle(ctx, input)
		require.NoError(t, err)
	}

	result, err := svc.ListArticles(ctx, models.ListParams{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, models.Pagination{Total: 23, Page: 3, Pages: 3}, result.Pagination)
	assert.Len(t, result.Articles, 3)

	result, err = svc.ListArticles(ctx, models.ListParams{Page: 4, Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, result.Articles)
	assert.Empty(t, result.Articles)

	result, err = svc.ListArticles(ctx, models.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Pagination.Page)
	assert.Len(t, result.Articles, 10)
}

func TestListArticlesEvenlyDividedLastPage(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	for i := 0; i < 20; i++ {
		_, err := svc.CreateArticle(ctx, validInput())
		require.NoError(t, err)
	}

	result, err := svc.ListArticles(ctx, models.ListParams{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, models.Pagination{Total: 20, Page: 2, Pages: 2}, result.Pagination)
	assert.Len(t, result.Articles, 10)

	result, err = svc.ListArticles(ctx, models.ListParams{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, result.Articles)
}

func TestListArticlesLargeLimitIsNotCapped(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	for i := 0; i < 150; i++ {
		_, err := svc.CreateArticle(ctx, validInput())
		require.NoError(t, err)
	}

	result, err := svc.ListArticles(ctx, models.ListParams{Page: 1, Limit: 200})
	require.NoError(t, err)
	assert.Equal(t, models.Pagination{Total: 150, Page: 1, Pages: 1}, result.Pagination)
	assert.Len(t, result.Articles, 150)
}

func TestNormalizeListParams(t *testing.T) {
	svc := &ArticleService{config: testConfig}

	assert.Equal(t, models.ListParams{Page: 1, Limit: 10}, svc.NormalizeListParams(models.ListParams{Page: -2}))
	assert.Equal(t, models.ListParams{Page: 2, Limit: 5000}, svc.NormalizeListParams(models.ListParams{Page: 2, Limit: 5000}))

	capped := &ArticleService{config: core.ArticlesConfig{DefaultLimit: 10, MaxLimit: 100}}
	assert.Equal(t, models.ListParams{Page: 2, Limit: 100}, capped.NormalizeListParams(models.ListParams{Page: 2, Limit: 5000}))
}
