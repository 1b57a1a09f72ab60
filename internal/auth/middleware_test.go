package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/core"
)

func gatedHandler(t *testing.T, issuer *TokenIssuer, cfg GateConfig) (http.Handler, *bool) {
	t.Helper()
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		if claims, ok := ClaimsFromContext(r.Context()); ok {
			w.Header().Set("X-User", claims.UserID)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	return NewGate(issuer, cfg, core.NewDiscardLogger()).Middleware(next), &reached
}

func requestWithToken(method, path, token string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	}
	return req
}

func TestGateRedirectsWithoutValidToken(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	expired := NewTokenIssuer("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }
	expiredToken, _, err := expired.Issue("user-1")
	require.NoError(t, err)

	foreignToken, _, err := NewTokenIssuer("another-secret", time.Hour).Issue("user-1")
	require.NoError(t, err)

	tokens := map[string]string{
		"absent":   "",
		"garbage":  "not.a.jwt",
		"expired":  expiredToken,
		"tampered": foreignToken,
	}

	for name, token := range tokens {
		for _, path := range []string{"/admin", "/admin/article/new", "/profile"} {
			t.Run(name+path, func(t *testing.T) {
				handler, reached := gatedHandler(t, issuer, DefaultGateConfig())
				rec := httptest.NewRecorder()
				handler.ServeHTTP(rec, requestWithToken(http.MethodGet, path, token))

				assert.False(t, *reached)
				assert.Equal(t, http.StatusSeeOther, rec.Code)
				assert.Equal(t, LoginPath, rec.Header().Get("Location"))
			})
		}
	}
}

func TestGatePassesFreshToken(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	token, _, err := issuer.Issue("user-42")
	require.NoError(t, err)

	handler, reached := gatedHandler(t, issuer, DefaultGateConfig())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithToken(http.MethodGet, "/admin/article/abc", token))

	assert.True(t, *reached)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "user-42", rec.Header().Get("X-User"))
}

func TestGateIgnoresUnprotectedPaths(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	for _, path := range []string{"/", "/api/articles", "/authentication/login", "/administrator", "/profiles"} {
		handler, reached := gatedHandler(t, issuer, DefaultGateConfig())
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithToken(http.MethodPost, path, ""))

		assert.True(t, *reached, path)
	}
}

func TestGateProtectsAPIWhenEnabled(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	cfg := DefaultGateConfig()
	cfg.ProtectAPI = true

	handler, reached := gatedHandler(t, issuer, cfg)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithToken(http.MethodPost, "/api/articles", ""))
	assert.False(t, *reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())

	handler, reached = gatedHandler(t, issuer, cfg)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithToken(http.MethodGet, "/api/articles", ""))
	assert.True(t, *reached)

	token, _, err := issuer.Issue("user-1")
	require.NoError(t, err)
	handler, reached = gatedHandler(t, issuer, cfg)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithToken(http.MethodPost, "/api/upload", token))
	assert.True(t, *reached)
}
