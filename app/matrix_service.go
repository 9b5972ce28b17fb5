package app

import (
	"context"
	"io"
	"log"

	"cdtire/internal/errors"
	"cdtire/models"
	"cdtire/ports"

	"github.com/google/uuid"
)

// MatrixService orchestrates workbook extraction and test-row persistence
type MatrixService struct {
	extractor ports.MatrixExtractor
	projects  ports.ProjectRepository
	testRows  ports.TestRowRepository
}

// NewMatrixService creates a matrix service
func NewMatrixService(extractor ports.MatrixExtractor, projects ports.ProjectRepository, testRows ports.TestRowRepository) *MatrixService {
	return &MatrixService{
		extractor: extractor,
		projects:  projects,
		testRows:  testRows,
	}
}

// ExtractAndStore runs the extraction over uploaded workbook bytes and
// persists the result under a fresh project. Extraction failures (ParseError,
// EmptyResult) propagate untouched so the HTTP layer can map them.
func (s *MatrixService) ExtractAndStore(ctx context.Context, projectName string, workbook io.Reader, inputs models.MatrixInputs) (*models.Project, []models.TestRow, error) {
	rows, err := s.extractor.ExtractWorkbook(workbook, inputs)
	if err != nil {
		return nil, nil, err
	}

	project := models.NewProject(projectName, inputs)
	project.RowCount = len(rows)

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, nil, errors.WithCode(errors.CodeDatabaseError, err)
	}
	if err := s.testRows.StoreBatch(ctx, project.ID, rows); err != nil {
		return nil, nil, errors.WithCode(errors.CodeDatabaseError, err)
	}

	log.Printf("[MatrixService] stored %d test rows for project %s (%s)", len(rows), project.Name, project.ID)
	return project, rows, nil
}

// StoreRows persists an already-extracted row sequence, the raw store-rows
// operation. A nil projectId creates a fresh project for the rows.
func (s *MatrixService) StoreRows(ctx context.Context, req models.StoreRowsRequest) (*models.Project, error) {
	if len(req.Data) == 0 {
		return nil, errors.EmptyResult("no test rows to store")
	}

	var project *models.Project
	if req.ProjectID != nil && *req.ProjectID != "" {
		id, err := uuid.Parse(*req.ProjectID)
		if err != nil {
			return nil, errors.WithCode(errors.CodeInvalidInput, err)
		}
		project, err = s.projects.GetByID(ctx, id)
		if err != nil {
			return nil, errors.WithCode(errors.CodeNotFound, err)
		}
		// Re-storing replaces the project's rows rather than appending.
		if err := s.testRows.DeleteByProject(ctx, project.ID); err != nil {
			return nil, errors.WithCode(errors.CodeDatabaseError, err)
		}
	} else {
		project = models.NewProject("untitled", models.MatrixInputs{})
		if err := s.projects.Create(ctx, project); err != nil {
			return nil, errors.WithCode(errors.CodeDatabaseError, err)
		}
	}

	if err := s.testRows.StoreBatch(ctx, project.ID, req.Data); err != nil {
		return nil, errors.WithCode(errors.CodeDatabaseError, err)
	}
	if err := s.projects.UpdateStatus(ctx, project.ID, models.ProjectStatusExtracted, len(req.Data)); err != nil {
		return nil, errors.WithCode(errors.CodeDatabaseError, err)
	}
	project.RowCount = len(req.Data)

	log.Printf("[MatrixService] stored %d test rows for project %s", len(req.Data), project.ID)
	return project, nil
}

// GetProjectRows returns the stored rows for one project
func (s *MatrixService) GetProjectRows(ctx context.Context, projectID uuid.UUID) ([]models.TestRow, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, errors.WithCode(errors.CodeNotFound, err)
	}
	rows, err := s.testRows.GetByProject(ctx, projectID)
	if err != nil {
		return nil, errors.WithCode(errors.CodeDatabaseError, err)
	}
	return rows, nil
}
