package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"newsdesk/internal/core"
)

// Common authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)

// UserStore persists users. Both the sqlite and the mongo models satisfy it.
type UserStore interface {
	Insert(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	SetRole(ctx context.Context, email, role string) error
}

// Service provides authentication functionality
type Service struct {
	users  UserStore
	tokens *TokenIssuer
	logger *core.Logger
}

// NewService creates a new authentication service
func NewService(users UserStore, tokens *TokenIssuer, logger *core.Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		logger: logger.ForFeature("auth"),
	}
}

// Tokens returns the issuer used to sign and verify session tokens
func (s *Service) Tokens() *TokenIssuer {
	return s.tokens
}

var (
	dummyOnce     sync.Once
	dummyPassword Password
)

// burnPasswordCheck spends a bcrypt comparison so unknown emails take as
// long to reject as wrong passwords.
func burnPasswordCheck(password string) {
	dummyOnce.Do(func() {
		_ = dummyPassword.Set("newsdesk-placeholder-password")
	})
	_, _ = dummyPassword.Matches(password)
}

// AuthenticateUser checks email and password and requires the admin role.
// Every rejection is reported as ErrInvalidCredentials.
func (s *Service) AuthenticateUser(ctx context.Context, email, password string) (*User, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		switch {
		case errors.Is(err, ErrRecordNotFound):
			burnPasswordCheck(password)
			s.logger.Debug("Login rejected", "reason", "unknown email")
			return nil, ErrInvalidCredentials
		default:
			return nil, err
		}
	}

	match, err := user.Password.Matches(password)
	if err != nil {
		return nil, err
	}

	if !match {
		s.logger.Debug("Login rejected", "reason", "password mismatch", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	if !user.IsAdmin() {
		s.logger.Debug("Login rejected", "reason", "not an admin", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates the user and issues a session token
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	user, err := s.AuthenticateUser(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("User logged in", "user_id", user.ID, "expires_at", expiresAt.Format(time.RFC3339))
	return user, token, nil
}

// RegisterInput is the shape accepted by registration
type RegisterInput struct {
	Name     string `json:"name" validate:"max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// Register creates a user with the default role
func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if err := core.Validate(input); err != nil {
		return nil, err
	}
	return s.CreateUser(ctx, input.Name, input.Email, input.Password, RoleUser)
}

// CreateUser creates a user with an explicit role
func (s *Service) CreateUser(ctx context.Context, name, email, password, role string) (*User, error) {
	if role != RoleUser && role != RoleAdmin {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	user := &User{
		Name:  name,
		Email: NormalizeEmail(email),
		Role:  role,
	}

	if err := user.Password.Set(password); err != nil {
		return nil, err
	}

	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Created user", "user_id", user.ID, "email", user.Email, "role", user.Role)
	return user, nil
}

// EnsureAdmin creates the admin account if it is missing and promotes it if
// it exists with another role.
func (s *Service) EnsureAdmin(ctx context.Context, name, email, password string) error {
	existing, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	switch {
	case err == nil:
		if existing.IsAdmin() {
			s.logger.Info("Admin user already exists", "email", existing.Email)
			return nil
		}
		if err := s.users.SetRole(ctx, existing.Email, RoleAdmin); err != nil {
			return fmt.Errorf("promote admin user: %w", err)
		}
		s.logger.Info("Promoted existing user to admin", "email", existing.Email)
		return nil
	case errors.Is(err, ErrRecordNotFound):
		_, err := s.CreateUser(ctx, name, email, password, RoleAdmin)
		return err
	default:
		return fmt.Errorf("look up admin user: %w", err)
	}
}

// ValidateToken verifies a session token
func (s *Service) ValidateToken(token string) (*Claims, error) {
	return s.tokens.Verify(token)
}

// GetUser returns the user with the given id
func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.users.GetByID(ctx, id)
}
