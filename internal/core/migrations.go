package core

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Migration represents a database migration
type Migration struct {
	Version     int       `db:"version" json:"version"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	UpSQL       string    `db:"-" json:"-"`
	DownSQL     string    `db:"-" json:"-"`
	AppliedAt   time.Time `db:"-" json:"applied_at"`
}

// MigrationService applies the migrations of one scope. Versions only need
// to be unique within their scope.
type MigrationService struct {
	db     *Database
	logger *Logger
	scope  string
}

// NewMigrationService creates a migration service for scope
func NewMigrationService(db *Database, logger *Logger, scope string) *MigrationService {
	return &MigrationService{
		db:     db,
		logger: logger.ForFeature(scope),
		scope:  scope,
	}
}

// InitMigrations initializes the migrations table
func (m *MigrationService) InitMigrations(ctx context.Context) error {
	createMigrationsTable := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		scope TEXT NOT NULL,
		version INTEGER NOT NULL,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		applied_at INTEGER NOT NULL,
		PRIMARY KEY (scope, version)
	);`

	if _, err := m.db.ExecWithTimeout(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	return nil
}

type migrationRow struct {
	Version     int    `db:"version"`
	Name        string `db:"name"`
	Description string `db:"description"`
	AppliedAt   int64  `db:"applied_at"`
}

// GetAppliedMigrations returns the applied migrations of this scope
func (m *MigrationService) GetAppliedMigrations(ctx context.Context) ([]Migration, error) {
	ctx, cancel := m.db.WithTimeout(ctx)
	defer cancel()

	var rows []migrationRow
	err := m.db.SelectContext(ctx, &rows,
		`SELECT version, name, description, applied_at FROM schema_migrations WHERE scope = ? ORDER BY version`,
		m.scope)
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}

	migrations := make([]Migration, 0, len(rows))
	for _, row := range rows {
		migrations = append(migrations, Migration{
			Version:     row.Version,
			Name:        row.Name,
			Description: row.Description,
			AppliedAt:   time.UnixMilli(row.AppliedAt).UTC(),
		})
	}

	return migrations, nil
}

// IsMigrationApplied checks if a migration has been applied
func (m *MigrationService) IsMigrationApplied(ctx context.Context, version int) (bool, error) {
	ctx, cancel := m.db.WithTimeout(ctx)
	defer cancel()

	var count int
	err := m.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM schema_migrations WHERE scope = ? AND version = ?`, m.scope, version)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}

	return count > 0, nil
}

// ApplyMigration applies a single migration
func (m *MigrationService) ApplyMigration(ctx context.Context, migration Migration) error {
	applied, err := m.IsMigrationApplied(ctx, migration.Version)
	if err != nil {
		return err
	}
	if applied {
		m.logger.Debug("Migration already applied", "version", migration.Version, "name", migration.Name)
		return nil
	}

	err = m.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, migration.UpSQL); err != nil {
			return fmt.Errorf("failed to execute migration %d (%s): %w", migration.Version, migration.Name, err)
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (scope, version, name, description, applied_at) VALUES (?, ?, ?, ?, ?)`,
			m.scope, migration.Version, migration.Name, migration.Description, time.Now().UnixMilli())
		if err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Info("Applied migration", "version", migration.Version, "name", migration.Name)
	return nil
}

// RollbackMigration rolls back a single migration
func (m *MigrationService) RollbackMigration(ctx context.Context, migration Migration) error {
	applied, err := m.IsMigrationApplied(ctx, migration.Version)
	if err != nil {
		return err
	}
	if !applied {
		m.logger.Info("Migration not applied, cannot rollback", "version", migration.Version, "name", migration.Name)
		return nil
	}

	err = m.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, migration.DownSQL); err != nil {
			return fmt.Errorf("failed to rollback migration %d (%s): %w", migration.Version, migration.Name, err)
		}

		_, err := tx.ExecContext(ctx,
			`DELETE FROM schema_migrations WHERE scope = ? AND version = ?`, m.scope, migration.Version)
		if err != nil {
			return fmt.Errorf("failed to remove migration record %d: %w", migration.Version, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Info("Rolled back migration", "version", migration.Version, "name", migration.Name)
	return nil
}

// Migrate initializes the migrations table and applies every pending migration in order
func (m *MigrationService) Migrate(ctx context.Context, migrations []Migration) error {
	if err := m.InitMigrations(ctx); err != nil {
		return err
	}

	for _, migration := range migrations {
		if err := m.ApplyMigration(ctx, migration); err != nil {
			return err
		}
	}

	return nil
}

// Rollback rolls back the most recently applied migration of this scope
func (m *MigrationService) Rollback(ctx context.Context, migrations []Migration) error {
	applied, err := m.GetAppliedMigrations(ctx)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		m.logger.Info("No migrations to rollback")
		return nil
	}

	last := applied[len(applied)-1]
	for _, migration := range migrations {
		if migration.Version == last.Version {
			return m.RollbackMigration(ctx, migration)
		}
	}

	return fmt.Errorf("migration %d is applied but unknown to scope %s", last.Version, m.scope)
}

// GetMigrationStatus returns the status of all migrations
func (m *MigrationService) GetMigrationStatus(ctx context.Context) (*MigrationStatus, error) {
	applied, err := m.GetAppliedMigrations(ctx)
	if err != nil {
		return nil, err
	}

	status := &MigrationStatus{
		Scope:        m.scope,
		AppliedCount: len(applied),
		Applied:      applied,
	}

	if len(applied) > 0 {
		status.LastApplied = &applied[len(applied)-1]
	}

	return status, nil
}

// MigrationStatus represents the current migration status
type MigrationStatus struct {
	Scope        string      `json:"scope"`
	AppliedCount int         `json:"applied_count"`
	Applied      []Migration `json:"applied"`
	LastApplied  *Migration  `json:"last_applied,omitempty"`
}
