package admin

import (
	"errors"
	"net/http"
	"strings"

	"newsdesk/internal/auth"
	"newsdesk/internal/core"
	"newsdesk/internal/views"
)

const (
	msgLoginRequired  = "Email and password are required"
	msgTryAgain       = "An error occurred. Please try again."
	msgRegisterOK     = "Registration successful! Redirecting to login..."
	msgRegisterFailed = "Registration failed"
	msgDuplicateUser  = "User already exists"
	adminHome         = "/admin"
)

// LoginPage handles GET /authentication/login
func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if token := auth.Token(r); token != "" {
		if _, err := h.accounts.ValidateToken(token); err == nil {
			http.Redirect(w, r, adminHome, http.StatusSeeOther)
			return
		}
	}
	h.render(w, r, http.StatusOK, views.LoginPage(views.LoginData{}))
}

// Login handles POST /authentication/login
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, views.LoginPage(views.LoginData{Error: core.MsgInvalidBody}))
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		h.render(w, r, http.StatusBadRequest, views.LoginPage(views.LoginData{Email: email, Error: msgLoginRequired}))
		return
	}

	_, token, err := h.accounts.Login(r.Context(), email, password)
	if err != nil {
		log := h.logger.WithContext(r.Context())
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Debug("Sign-in rejected", "error", err)
			h.render(w, r, http.StatusUnauthorized, views.LoginPage(views.LoginData{Email: email, Error: core.MsgInvalidCredentials}))
			return
		}
		log.Error("Sign-in failed", "error", err)
		h.render(w, r, http.StatusInternalServerError, views.LoginPage(views.LoginData{Email: email, Error: msgTryAgain}))
		return
	}

	h.cookies.Set(w, token)
	http.Redirect(w, r, adminHome, http.StatusSeeOther)
}

// RegisterPage handles GET /authentication/register
func (h *Handlers) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, views.RegisterPage(views.RegisterData{}))
}

// Register handles POST /authentication/register
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, views.RegisterPage(views.RegisterData{Error: core.MsgInvalidBody}))
		return
	}

	input := auth.RegisterInput{
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	data := views.RegisterData{Name: input.Name, Email: input.Email}

	if _, err := h.accounts.Register(r.Context(), input); err != nil {
		status := http.StatusBadRequest
		appErr := core.AsAppError(err)
		switch {
		case errors.Is(err, auth.ErrDuplicateEmail):
			data.Error = msgDuplicateUser
		case appErr.Code == core.ErrCodeValidation:
			data.Error = appErr.Message
		default:
			status = http.StatusInternalServerError
			data.Error = msgRegisterFailed
			h.logger.WithContext(r.Context()).Error("Registration failed", "error", err)
		}
		h.render(w, r, status, views.RegisterPage(data))
		return
	}

	h.render(w, r, http.StatusOK, views.RegisterPage(views.RegisterData{Success: msgRegisterOK}))
}

// Logout handles POST /authentication/logout
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w)
	http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
}

// Profile handles GET /profile
func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, views.ProfilePage(views.ProfileData{
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}))
}

// currentUser loads the account behind the request's verified claims. When
// there is none it sends the browser back to the login page.
func (h *Handlers) currentUser(w http.ResponseWriter, r *http.Request) (*auth.User, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
		return nil, false
	}

	user, err := h.accounts.GetUser(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, auth.ErrRecordNotFound) {
			h.cookies.Clear(w)
			http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
			return nil, false
		}
		h.logger.WithContext(r.Context()).Error("Failed to load signed-in user", "user_id", claims.UserID, "error", err)
		http.Error(w, core.MsgInternal, http.StatusInternalServerError)
		return nil, false
	}

	return user, true
}
