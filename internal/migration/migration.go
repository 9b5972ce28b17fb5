package migration

import (
	"context"

	"cdtire/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createProjectsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create projects table")
	}

	if err := r.createTestRowsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create test_rows table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

// createProjectsTable creates the projects table
func (r *MigrationRunner) createProjectsTable(ctx context.Context, db *sqlx.DB) error {
	query := `CREATE TABLE IF NOT EXISTS projects (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		status VARCHAR(32) NOT NULL DEFAULT 'extracted',
		inputs JSONB NOT NULL DEFAULT '{}',
		row_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`

	_, err := db.ExecContext(ctx, query)
	return err
}

// createTestRowsTable creates the test_rows table
func (r *MigrationRunner) createTestRowsTable(ctx context.Context, db *sqlx.DB) error {
	query := `CREATE TABLE IF NOT EXISTS test_rows (
		id BIGSERIAL PRIMARY KEY,
		project_id UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		number_of_runs INTEGER NOT NULL,
		test_name TEXT NOT NULL DEFAULT '',
		inflation_pressure TEXT NOT NULL DEFAULT '',
		preload TEXT NOT NULL DEFAULT '',
		velocity TEXT,
		camber TEXT,
		slip_angle TEXT,
		displacement TEXT,
		slip_range TEXT,
		cleat TEXT,
		road_surface TEXT,
		job_name TEXT,
		old_job_name TEXT,
		fortran_script TEXT,
		python_script TEXT,
		template_tydex TEXT,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`

	_, err := db.ExecContext(ctx, query)
	return err
}

// createIndexes creates performance indexes
func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_test_rows_project_id ON test_rows(project_id)`,
		`CREATE INDEX IF NOT EXISTS idx_projects_created_at ON projects(created_at DESC)`,
	}

	for _, query := range indexes {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return err
		}
	}

	return nil
}
