package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserModelInsertAndGet(t *testing.T) {
	ctx := context.Background()
	users := newTestUserModel(t)

	user := &User{Name: "Rahim", Email: "rahim@example.com", Role: RoleAdmin}
	require.NoError(t, user.Password.Set("s3cret-pass"))
	require.NoError(t, users.Insert(ctx, user))

	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byEmail, err := users.GetByEmail(ctx, "rahim@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "Rahim", byEmail.Name)
	assert.Equal(t, RoleAdmin, byEmail.Role)
	assert.True(t, byEmail.CreatedAt.Equal(user.CreatedAt))

	ok, err := byEmail.Password.Matches("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, ok)

	byID, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)
}

func TestUserModelDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users := newTestUserModel(t)

	first := &User{Email: "dup@example.com", Role: RoleUser}
	require.NoError(t, first.Password.Set("password1"))
	require.NoError(t, users.Insert(ctx, first))

	second := &User{Email: "dup@example.com", Role: RoleUser}
	require.NoError(t, second.Password.Set("password2"))
	assert.ErrorIs(t, users.Insert(ctx, second), ErrDuplicateEmail)
}

func TestUserModelNotFound(t *testing.T) {
	ctx := context.Background()
	users := newTestUserModel(t)

	_, err := users.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = users.GetByID(ctx, "not-a-uuid")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRecordNotFound)

	assert.ErrorIs(t, users.SetRole(ctx, "nobody@example.com", RoleAdmin), ErrRecordNotFound)
}
