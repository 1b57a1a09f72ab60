package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/auth"
	"newsdesk/internal/core"
	"newsdesk/internal/features/articles/models"
)

func newTestMongoStore(t *testing.T) (*MongoStore, *auth.MongoUserModel) {
	t.Helper()
	uri := os.Getenv("NEWSDESK_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("NEWSDESK_TEST_MONGO_URI not set")
	}

	ctx := context.Background()
	logger := core.NewDiscardLogger()
	connector := core.NewConnector(uri, fmt.Sprintf("newsdesk_articles_test_%d", time.Now().UnixNano()), logger)
	t.Cleanup(func() {
		if db, err := connector.Acquire(ctx); err == nil {
			_ = db.Drop(ctx)
		}
		_ = connector.Close(ctx)
	})

	s := NewMongoStore(connector, logger)
	require.NoError(t, s.EnsureIndexes(ctx))
	return s, auth.NewMongoUserModel(connector, logger)
}

func TestMongoStore(t *testing.T) {
	ctx := context.Background()
	s, users := newTestMongoStore(t)

	author := &auth.User{Name: "Farhana", Email: "farhana@example.com", Role: auth.RoleAdmin}
	require.NoError(t, author.Password.Set("password"))
	require.NoError(t, users.Insert(ctx, author))

	for i := 1; i <= 5; i++ {
		a := seedArticle(t, s, fmt.Sprintf("m%d", i), "Business", i%2 == 0, day(i))
		if i == 5 {
			require.NoError(t, s.Update(ctx, a.ID, func(a *models.Article) error {
				a.AuthorID = author.ID
				return nil
			}))
		}
	}

	articles, total, err := s.List(ctx, models.ListParams{Page: 1, Limit: 2, Category: "Business"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, articles, 2)
	assert.Equal(t, "m5", articles[0].Title)
	require.NotNil(t, articles[0].Author)
	assert.Equal(t, "farhana@example.com", articles[0].Author.Email)

	featured, total, err := s.List(ctx, models.ListParams{Page: 1, Limit: 10, FeaturedOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, featured, 2)

	empty, _, err := s.List(ctx, models.ListParams{Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = s.Get(ctx, "000000000000000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(ctx, "bad")
	assert.ErrorIs(t, err, ErrInvalidID)
}
