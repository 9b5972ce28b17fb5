package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus tracks how far a project has moved through the workflow
type ProjectStatus string

const (
	ProjectStatusExtracted ProjectStatus = "extracted"
	ProjectStatusGenerated ProjectStatus = "generated"
)

// Project groups the test rows extracted from one workbook upload together
// with the scalar inputs the extraction was run against.
type Project struct {
	ID        uuid.UUID     `json:"id" db:"id"`
	Name      string        `json:"name" db:"name"`
	Status    ProjectStatus `json:"status" db:"status"`
	Inputs    MatrixInputs  `json:"inputs" db:"-"`
	RowCount  int           `json:"row_count" db:"row_count"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

// NewProject creates a project with a fresh ID
func NewProject(name string, inputs MatrixInputs) *Project {
	now := time.Now().UTC()
	return &Project{
		ID:        uuid.New(),
		Name:      name,
		Status:    ProjectStatusExtracted,
		Inputs:    inputs,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MatrixSummary holds the per-project KPIs computed over stored test rows
type MatrixSummary struct {
	ProjectID     uuid.UUID     `json:"project_id"`
	RowCount      int           `json:"row_count"`
	TotalRuns     int           `json:"total_runs"`
	DistinctTests int           `json:"distinct_tests"`
	Pressure      *FieldSummary `json:"pressure,omitempty"`
	Preload       *FieldSummary `json:"preload,omitempty"`
	Velocity      *FieldSummary `json:"velocity,omitempty"`
}

// FieldSummary describes the numeric distribution of one resolved column
type FieldSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
	Median float64 `json:"median"`
	P90    float64 `json:"p90"`
}
