package auth

import (
	"context"

	"newsdesk/internal/core"
)

// Migrations creates the sqlite user table
var Migrations = []core.Migration{
	{
		Version:     1,
		Name:        "create_users",
		Description: "Create the users table",
		UpSQL: `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT,
			email TEXT NOT NULL UNIQUE,
			password_hash BLOB NOT NULL,
			role TEXT NOT NULL DEFAULT 'user',
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_users_role ON users(role);`,
		DownSQL: `
		DROP INDEX IF EXISTS idx_users_role;
		DROP TABLE IF EXISTS users;`,
	},
}

// Migrate applies the user migrations
func Migrate(ctx context.Context, db *core.Database, logger *core.Logger) error {
	return core.NewMigrationService(db, logger, "auth").Migrate(ctx, Migrations)
}
