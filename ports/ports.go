package ports

import (
	"context"
	"io"

	"cdtire/models"

	"github.com/google/uuid"
)

// MatrixExtractor turns raw workbook bytes plus the scalar user inputs into
// an ordered sequence of test rows.
type MatrixExtractor interface {
	ExtractWorkbook(r io.Reader, inputs models.MatrixInputs) ([]models.TestRow, error)
}

// ProjectRepository persists projects
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	List(ctx context.Context, limit, offset int) ([]*models.Project, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ProjectStatus, rowCount int) error
}

// TestRowRepository persists extracted test rows
type TestRowRepository interface {
	StoreBatch(ctx context.Context, projectID uuid.UUID, rows []models.TestRow) error
	GetByProject(ctx context.Context, projectID uuid.UUID) ([]models.TestRow, error)
	DeleteByProject(ctx context.Context, projectID uuid.UUID) error
}

// ProtocolGenerator writes the on-disk run folders and batch files for a
// project's stored rows.
type ProtocolGenerator interface {
	GenerateFolders(ctx context.Context, project *models.Project, rows []models.TestRow) ([]string, error)
	GenerateBatchFiles(ctx context.Context, project *models.Project, rows []models.TestRow) ([]string, error)
}
