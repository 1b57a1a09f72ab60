package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/core"
)

func TestLoginRejectionsAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.CreateUser(ctx, "Admin", "admin@example.com", "admin-pass", RoleAdmin)
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, "Reader", "reader@example.com", "reader-pass", RoleUser)
	require.NoError(t, err)

	attempts := []struct {
		name, email, password string
	}{
		{"unknown email", "ghost@example.com", "admin-pass"},
		{"wrong password", "admin@example.com", "nope"},
		{"not an admin", "reader@example.com", "reader-pass"},
	}

	for _, a := range attempts {
		t.Run(a.name, func(t *testing.T) {
			user, token, err := svc.Login(ctx, a.email, a.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			assert.Nil(t, user)
			assert.Empty(t, token)
		})
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.CreateUser(ctx, "Admin", "Admin@Example.com", "admin-pass", RoleAdmin)
	require.NoError(t, err)

	user, token, err := svc.Login(ctx, "admin@example.com", "admin-pass")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	user, err := svc.Register(ctx, RegisterInput{Email: "new@example.com", Password: "long-enough"})
	require.NoError(t, err)
	assert.Equal(t, RoleUser, user.Role)
	assert.NotEmpty(t, user.ID)

	_, err = svc.Register(ctx, RegisterInput{Email: "new@example.com", Password: "long-enough"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	_, err = svc.Register(ctx, RegisterInput{Email: "not-an-email", Password: "long-enough"})
	require.Error(t, err)
	assert.Equal(t, core.ErrCodeValidation, core.AsAppError(err).Code)
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	require.NoError(t, svc.EnsureAdmin(ctx, "Admin", "admin@example.com", "admin-pass"))
	require.NoError(t, svc.EnsureAdmin(ctx, "Admin", "admin@example.com", "admin-pass"))

	_, _, err := svc.Login(ctx, "admin@example.com", "admin-pass")
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "editor@example.com", Password: "editor-pass"})
	require.NoError(t, err)
	require.NoError(t, svc.EnsureAdmin(ctx, "Editor", "editor@example.com", "ignored"))

	_, _, err = svc.Login(ctx, "editor@example.com", "editor-pass")
	assert.NoError(t, err)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	_, err := newTestService(t).CreateUser(context.Background(), "", "x@example.com", "password", "owner")
	assert.Error(t, err)
}
