package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"newsdesk/internal/core"
)

// Handler provides authentication HTTP handlers
type Handler struct {
	service *Service
	cookies Cookies
	logger  *core.Logger
}

// NewHandler creates a new authentication handler
func NewHandler(service *Service, cookies Cookies, logger *core.Logger) *Handler {
	return &Handler{
		service: service,
		cookies: cookies,
		logger:  logger.ForFeature("auth"),
	}
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a login response
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterResponse represents a registration response
type RegisterResponse struct {
	User *User `json:"user"`
}

// LoginHandler handles POST /api/login
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.HandleError(w, r, h.logger, core.NewValidationError(core.MsgInvalidBody, err))
		return
	}

	if req.Email == "" || req.Password == "" {
		core.HandleError(w, r, h.logger, core.NewValidationError("Email and password are required", nil))
		return
	}

	_, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			core.HandleError(w, r, h.logger, core.NewInvalidCredentialsError(err))
		default:
			core.HandleError(w, r, h.logger, core.NewInternalError(err))
		}
		return
	}

	h.cookies.Set(w, token)
	core.WriteJSON(w, r, http.StatusOK, LoginResponse{Token: token})
}

// RegisterHandler handles POST /api/register
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.HandleError(w, r, h.logger, core.NewValidationError(core.MsgInvalidBody, err))
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateEmail):
			core.HandleError(w, r, h.logger, core.NewDuplicateError("User already exists", err))
		default:
			core.HandleError(w, r, h.logger, err)
		}
		return
	}

	core.WriteJSON(w, r, http.StatusCreated, RegisterResponse{User: user})
}

// LogoutHandler handles POST /api/logout
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w)
	core.WriteJSON(w, r, http.StatusOK, map[string]string{"message": "Logged out"})
}
