package auth

import (
	"context"
	"net/http"
	"strings"

	"newsdesk/internal/core"
)

// LoginPath is where unauthenticated page requests are sent
const LoginPath = "/authentication/login"

type contextKey string

const claimsContextKey = contextKey("claims")

// GateConfig lists what the access gate protects
type GateConfig struct {
	// PagePrefixes are redirected to LoginPath without a valid token
	PagePrefixes []string
	// ProtectAPI also rejects mutating article and upload API calls with 401
	ProtectAPI bool
}

// DefaultGateConfig protects the admin and profile pages
func DefaultGateConfig() GateConfig {
	return GateConfig{PagePrefixes: []string{"/admin", "/profile"}}
}

// Gate checks the session cookie in front of protected paths
type Gate struct {
	verifier TokenVerifier
	config   GateConfig
	logger   *core.Logger
}

// NewGate creates the access gate
func NewGate(verifier TokenVerifier, config GateConfig, logger *core.Logger) *Gate {
	return &Gate{
		verifier: verifier,
		config:   config,
		logger:   logger.ForFeature("auth"),
	}
}

// Middleware redirects or rejects requests on protected paths that lack a
// valid token. Verified requests continue with the claims in their context.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := g.isProtectedPage(r.URL.Path)
		api := g.isProtectedAPI(r)
		if !page && !api {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := g.verifier.Verify(Token(r))
		if err != nil {
			g.logger.WithContext(r.Context()).Debug("Access denied", "path", r.URL.Path, "error", err)
			if page {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}
			core.WriteErrorResponse(w, r, http.StatusUnauthorized, core.NewUnauthorizedError(err))
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextSetClaims(r.Context(), claims)))
	})
}

func (g *Gate) isProtectedPage(path string) bool {
	for _, prefix := range g.config.PagePrefixes {
		if hasPathPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (g *Gate) isProtectedAPI(r *http.Request) bool {
	if !g.config.ProtectAPI {
		return false
	}
	switch {
	case hasPathPrefix(r.URL.Path, "/api/upload"):
		return true
	case hasPathPrefix(r.URL.Path, "/api/articles"):
		return r.Method != http.MethodGet && r.Method != http.MethodHead
	default:
		return false
	}
}

// hasPathPrefix matches prefix itself and anything below it, but not
// siblings such as /administrator for /admin.
func hasPathPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// ContextSetClaims attaches verified claims to ctx
func ContextSetClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext returns the claims attached by the gate
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	return claims, ok
}
