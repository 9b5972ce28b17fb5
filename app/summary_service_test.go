package app

import (
	"context"
	"testing"

	"cdtire/internal/errors"
	"cdtire/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSummaryService_Summarize(t *testing.T) {
	projects := new(MockProjectRepository)
	testRows := new(MockTestRowRepository)
	svc := NewSummaryService(projects, testRows)

	project := models.NewProject("summary", models.MatrixInputs{})
	vel60 := "60"
	vel80 := "80"
	rows := []models.TestRow{
		{NumberOfRuns: 1, TestName: "Static Deflection", InflationPressure: "2.0", Preload: "400", Velocity: &vel60},
		{NumberOfRuns: 3, TestName: "Free Roll", InflationPressure: "3.0", Preload: "600", Velocity: &vel80},
		{NumberOfRuns: 2, TestName: "Free Roll", InflationPressure: "P9", Preload: "500"},
	}

	projects.On("GetByID", mock.Anything, project.ID).Return(project, nil)
	testRows.On("GetByProject", mock.Anything, project.ID).Return(rows, nil)

	summary, err := svc.Summarize(context.Background(), project.ID)

	require.NoError(t, err)
	assert.Equal(t, 3, summary.RowCount)
	assert.Equal(t, 6, summary.TotalRuns)
	assert.Equal(t, 2, summary.DistinctTests)

	// the unresolved "P9" cell is excluded from the pressure distribution
	require.NotNil(t, summary.Pressure)
	assert.Equal(t, 2, summary.Pressure.Count)
	assert.InDelta(t, 2.5, summary.Pressure.Mean, 1e-9)
	assert.InDelta(t, 2.0, summary.Pressure.Min, 1e-9)
	assert.InDelta(t, 3.0, summary.Pressure.Max, 1e-9)

	require.NotNil(t, summary.Preload)
	assert.Equal(t, 3, summary.Preload.Count)
	assert.InDelta(t, 500, summary.Preload.Mean, 1e-9)

	require.NotNil(t, summary.Velocity)
	assert.Equal(t, 2, summary.Velocity.Count)
}

func TestSummaryService_Summarize_NoNumericValues(t *testing.T) {
	projects := new(MockProjectRepository)
	testRows := new(MockTestRowRepository)
	svc := NewSummaryService(projects, testRows)

	project := models.NewProject("tokens-only", models.MatrixInputs{})
	rows := []models.TestRow{
		{NumberOfRuns: 1, TestName: "Unresolved", InflationPressure: "P1", Preload: "L1"},
	}

	projects.On("GetByID", mock.Anything, project.ID).Return(project, nil)
	testRows.On("GetByProject", mock.Anything, project.ID).Return(rows, nil)

	summary, err := svc.Summarize(context.Background(), project.ID)

	require.NoError(t, err)
	assert.Nil(t, summary.Pressure)
	assert.Nil(t, summary.Preload)
	assert.Nil(t, summary.Velocity)
}

func TestSummaryService_Summarize_ProjectNotFound(t *testing.T) {
	projects := new(MockProjectRepository)
	testRows := new(MockTestRowRepository)
	svc := NewSummaryService(projects, testRows)

	project := models.NewProject("missing", models.MatrixInputs{})
	projects.On("GetByID", mock.Anything, project.ID).Return(nil, errors.NotFound("project"))

	_, err := svc.Summarize(context.Background(), project.ID)

	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}
