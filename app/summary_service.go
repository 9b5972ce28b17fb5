package app

import (
	"context"
	"sort"
	"strconv"

	"cdtire/internal/errors"
	"cdtire/models"
	"cdtire/ports"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// SummaryService computes per-project KPIs over the stored test rows
type SummaryService struct {
	projects ports.ProjectRepository
	testRows ports.TestRowRepository
}

// NewSummaryService creates a summary service
func NewSummaryService(projects ports.ProjectRepository, testRows ports.TestRowRepository) *SummaryService {
	return &SummaryService{projects: projects, testRows: testRows}
}

// Summarize builds the KPI summary for one project. Resolved cells that are
// not numeric (unresolved tokens, free text) are left out of the field
// distributions rather than failing the summary.
func (s *SummaryService) Summarize(ctx context.Context, projectID uuid.UUID) (*models.MatrixSummary, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, errors.WithCode(errors.CodeNotFound, err)
	}

	rows, err := s.testRows.GetByProject(ctx, projectID)
	if err != nil {
		return nil, errors.WithCode(errors.CodeDatabaseError, err)
	}

	summary := &models.MatrixSummary{
		ProjectID: projectID,
		RowCount:  len(rows),
	}

	testNames := make(map[string]bool)
	var pressures, preloads, velocities []float64

	for _, row := range rows {
		summary.TotalRuns += row.NumberOfRuns
		if row.TestName != "" {
			testNames[row.TestName] = true
		}

		pressures = appendNumeric(pressures, row.InflationPressure)
		preloads = appendNumeric(preloads, row.Preload)
		if row.Velocity != nil {
			velocities = appendNumeric(velocities, *row.Velocity)
		}
	}
	summary.DistinctTests = len(testNames)

	summary.Pressure = summarizeField(pressures)
	summary.Preload = summarizeField(preloads)
	summary.Velocity = summarizeField(velocities)

	return summary, nil
}

// summarizeField computes the numeric distribution of one resolved column
func summarizeField(values []float64) *models.FieldSummary {
	if len(values) == 0 {
		return nil
	}

	mean, _ := stats.Mean(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	stdDev, _ := stats.StandardDeviation(values)

	// gonum quantiles need the sample sorted
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return &models.FieldSummary{
		Count:  len(values),
		Mean:   mean,
		Min:    min,
		Max:    max,
		StdDev: stdDev,
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P90:    stat.Quantile(0.9, stat.Empirical, sorted, nil),
	}
}

// appendNumeric appends the parsed value when the cell text is a decimal
func appendNumeric(values []float64, raw string) []float64 {
	if raw == "" {
		return values
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return values
	}
	return append(values, f)
}
