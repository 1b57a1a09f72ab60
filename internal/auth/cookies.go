package auth

import (
	"net/http"
	"time"

	"newsdesk/internal/core"
)

// CookieName is the session cookie read by the access gate
const CookieName = "token"

// Cookies writes and reads the session cookie. Its lifetime is configured
// independently of the token TTL, so the cookie may outlive the token.
type Cookies struct {
	MaxAge time.Duration
	Secure bool
}

// NewCookies builds cookie settings from the auth configuration
func NewCookies(cfg core.AuthConfig) Cookies {
	return Cookies{
		MaxAge: cfg.CookieMaxAge,
		Secure: cfg.CookieSecure,
	}
}

// Set stores token in the session cookie
func (c Cookies) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.MaxAge.Seconds()),
		Expires:  time.Now().Add(c.MaxAge),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Clear expires the session cookie
func (c Cookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Token returns the session cookie value, or "" when absent
func Token(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
