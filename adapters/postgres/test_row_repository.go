package postgres

import (
	"context"
	"fmt"

	"cdtire/models"
	"cdtire/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// testRowRepository implements the TestRowRepository interface
type testRowRepository struct {
	db *sqlx.DB
}

// NewTestRowRepository creates a new test row repository
func NewTestRowRepository(db *sqlx.DB) ports.TestRowRepository {
	return &testRowRepository{db: db}
}

// StoreBatch inserts all rows for a project in one transaction so a partial
// failure never leaves a half-stored matrix behind.
func (r *testRowRepository) StoreBatch(ctx context.Context, projectID uuid.UUID, rows []models.TestRow) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO test_rows (
		project_id, number_of_runs, test_name, inflation_pressure, preload,
		velocity, camber, slip_angle, displacement, slip_range, cleat,
		road_surface, job_name, old_job_name, fortran_script, python_script,
		template_tydex
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
	)`

	for _, row := range rows {
		_, err := tx.ExecContext(ctx, query,
			projectID, row.NumberOfRuns, row.TestName, row.InflationPressure, row.Preload,
			row.Velocity, row.Camber, row.SlipAngle, row.Displacement, row.SlipRange, row.Cleat,
			row.RoadSurface, row.JobName, row.OldJobName, row.FortranScript, row.PythonScript,
			row.TemplateTydex,
		)
		if err != nil {
			return fmt.Errorf("failed to insert test row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit test rows: %w", err)
	}

	return nil
}

// GetByProject retrieves all test rows for a project in insertion order
func (r *testRowRepository) GetByProject(ctx context.Context, projectID uuid.UUID) ([]models.TestRow, error) {
	query := `SELECT
		id, project_id, number_of_runs, test_name, inflation_pressure, preload,
		velocity, camber, slip_angle, displacement, slip_range, cleat,
		road_surface, job_name, old_job_name, fortran_script, python_script,
		template_tydex, created_at
	FROM test_rows
	WHERE project_id = $1
	ORDER BY id`

	var rows []models.TestRow
	if err := r.db.SelectContext(ctx, &rows, query, projectID); err != nil {
		return nil, fmt.Errorf("failed to query test rows: %w", err)
	}

	return rows, nil
}

// DeleteByProject removes all test rows belonging to a project
func (r *testRowRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM test_rows WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("failed to delete test rows: %w", err)
	}
	return nil
}
