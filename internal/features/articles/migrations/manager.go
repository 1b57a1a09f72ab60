package migrations

import (
	"context"
	"fmt"

	"newsdesk/internal/core"
)

// Manager handles article migrations
type Manager struct {
	migrationService *core.MigrationService
	logger           *core.Logger
}

// NewManager creates a new article migration manager
func NewManager(db *core.Database, logger *core.Logger) *Manager {
	return &Manager{
		migrationService: core.NewMigrationService(db, logger, "articles"),
		logger:           logger,
	}
}

// Migrations returns all article migrations in order
func (m *Manager) Migrations() []core.Migration {
	return []core.Migration{
		Migration001CreateArticles,
	}
}

// Migrate applies all pending article migrations
func (m *Manager) Migrate(ctx context.Context) error {
	if err := m.migrationService.Migrate(ctx, m.Migrations()); err != nil {
		return fmt.Errorf("article migrations: %w", err)
	}
	return nil
}

// Rollback rolls back the last applied article migration
func (m *Manager) Rollback(ctx context.Context) error {
	return m.migrationService.Rollback(ctx, m.Migrations())
}

// Status returns the current migration status
func (m *Manager) Status(ctx context.Context) (*core.MigrationStatus, error) {
	return m.migrationService.GetMigrationStatus(ctx)
}
