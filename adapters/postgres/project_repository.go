package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"cdtire/models"
	"cdtire/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// projectRepository implements the ProjectRepository interface
type projectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sqlx.DB) ports.ProjectRepository {
	return &projectRepository{db: db}
}

// Create inserts a new project into the database
func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	inputsJSON, err := json.Marshal(project.Inputs)
	if err != nil {
		return fmt.Errorf("failed to marshal inputs: %w", err)
	}

	query := `INSERT INTO projects (
		id, name, status, inputs, row_count, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.ExecContext(ctx, query,
		project.ID, project.Name, project.Status, inputsJSON, project.RowCount,
		project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// GetByID retrieves a project by its ID
func (r *projectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	query := `SELECT id, name, status, inputs, row_count, created_at, updated_at
	FROM projects WHERE id = $1`

	var project models.Project
	var inputsJSON []byte

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&project.ID, &project.Name, &project.Status, &inputsJSON,
		&project.RowCount, &project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if len(inputsJSON) > 0 {
		if err := json.Unmarshal(inputsJSON, &project.Inputs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal inputs: %w", err)
		}
	}

	return &project, nil
}

// List retrieves projects ordered by creation time with pagination
func (r *projectRepository) List(ctx context.Context, limit, offset int) ([]*models.Project, error) {
	query := `SELECT id, name, status, inputs, row_count, created_at, updated_at
	FROM projects
	ORDER BY created_at DESC
	LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		var project models.Project
		var inputsJSON []byte

		err := rows.Scan(
			&project.ID, &project.Name, &project.Status, &inputsJSON,
			&project.RowCount, &project.CreatedAt, &project.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}

		if len(inputsJSON) > 0 {
			if err := json.Unmarshal(inputsJSON, &project.Inputs); err != nil {
				return nil, fmt.Errorf("failed to unmarshal inputs: %w", err)
			}
		}

		projects = append(projects, &project)
	}

	return projects, rows.Err()
}

// UpdateStatus updates a project's workflow status and stored row count
func (r *projectRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ProjectStatus, rowCount int) error {
	query := `UPDATE projects SET status = $2, row_count = $3, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status, rowCount)
	if err != nil {
		return fmt.Errorf("failed to update project status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("project not found: %s", id)
	}

	return nil
}
