package models

import (
	"time"

	"github.com/google/uuid"
)

// TestRow is one resolved, validated test-case record extracted from a
// test-matrix workbook. Required fields come straight from the mandatory
// columns; everything else is nullable because protocols differ in which
// columns they carry.
type TestRow struct {
	ID                int64     `json:"id,omitempty" db:"id"`
	ProjectID         uuid.UUID `json:"project_id,omitempty" db:"project_id"`
	NumberOfRuns      int       `json:"number_of_runs" db:"number_of_runs"`
	TestName          string    `json:"test_name" db:"test_name"`
	InflationPressure string    `json:"inflation_pressure" db:"inflation_pressure"`
	Preload           string    `json:"preload" db:"preload"`
	Velocity          *string   `json:"velocity" db:"velocity"`
	Camber            *string   `json:"camber" db:"camber"`
	SlipAngle         *string   `json:"slip_angle" db:"slip_angle"`
	Displacement      *string   `json:"displacement" db:"displacement"`
	SlipRange         *string   `json:"slip_range" db:"slip_range"`
	Cleat             *string   `json:"cleat" db:"cleat"`
	RoadSurface       *string   `json:"road_surface" db:"road_surface"`
	JobName           *string   `json:"job_name" db:"job_name"`
	OldJobName        *string   `json:"old_job_name" db:"old_job_name"`
	FortranScript     *string   `json:"fortran_script" db:"fortran_script"`
	PythonScript      *string   `json:"python_script" db:"python_script"`
	TemplateTydex     *string   `json:"template_tydex" db:"template_tydex"`
	CreatedAt         time.Time `json:"created_at,omitempty" db:"created_at"`
}

// StoreRowsRequest is the wire shape the store-rows endpoint accepts.
// A null projectId means "create a fresh project for these rows".
type StoreRowsRequest struct {
	Data      []TestRow `json:"data"`
	ProjectID *string   `json:"projectId"`
}
