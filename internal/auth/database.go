package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"newsdesk/internal/core"
)

// Common errors
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateEmail = errors.New("duplicate email")
)

const queryTimeout = 3 * time.Second

// UserModel stores users in sqlite
type UserModel struct {
	db     *core.Database
	logger *core.Logger
}

// NewUserModel creates a new user model
func NewUserModel(db *core.Database, logger *core.Logger) *UserModel {
	return &UserModel{
		db:     db,
		logger: logger,
	}
}

type userRow struct {
	ID           string         `db:"id"`
	Name         sql.NullString `db:"name"`
	Email        string         `db:"email"`
	PasswordHash []byte         `db:"password_hash"`
	Role         string         `db:"role"`
	CreatedAt    int64          `db:"created_at"`
}

func (r userRow) toUser() *User {
	return &User{
		ID:        r.ID,
		Name:      r.Name.String,
		Email:     r.Email,
		Password:  Password{hash: r.PasswordHash},
		Role:      r.Role,
		CreatedAt: time.UnixMilli(r.CreatedAt).UTC(),
	}
}

// Insert creates a new user and fills in its id and creation time
func (m *UserModel) Insert(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	id := uuid.NewString()
	createdAt := time.Now().UTC().Truncate(time.Millisecond)
	args := []interface{}{
		id,
		sql.NullString{String: user.Name, Valid: user.Name != ""},
		user.Email,
		user.Password.hash,
		user.Role,
		createdAt.UnixMilli(),
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := m.db.ExecContext(ctx, query, args...); err != nil {
		switch {
		case strings.Contains(err.Error(), "UNIQUE constraint failed: users.email"):
			return ErrDuplicateEmail
		default:
			return err
		}
	}

	user.ID = id
	user.CreatedAt = createdAt
	return nil
}

// GetByEmail retrieves a user by email
func (m *UserModel) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, name, email, password_hash, role, created_at
		FROM users
		WHERE email = ?
	`

	return m.get(ctx, query, email)
}

// GetByID retrieves a user by id
func (m *UserModel) GetByID(ctx context.Context, id string) (*User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", id, err)
	}

	query := `
		SELECT id, name, email, password_hash, role, created_at
		FROM users
		WHERE id = ?
	`

	return m.get(ctx, query, id)
}

func (m *UserModel) get(ctx context.Context, query string, arg interface{}) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var row userRow
	if err := m.db.GetContext(ctx, &row, query, arg); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return row.toUser(), nil
}

// SetRole changes the role of the user with the given email
func (m *UserModel) SetRole(ctx context.Context, email, role string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := m.db.ExecContext(ctx, `UPDATE users SET role = ? WHERE email = ?`, role, email)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}
