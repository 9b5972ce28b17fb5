package excel

import (
	"bytes"
	"strings"
	"testing"

	apperrors "cdtire/internal/errors"
	"cdtire/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExtractRows_EndToEnd(t *testing.T) {
	rows := [][]string{
		{"No of Tests", "Test Name", "Inflation Pressure (bar)", "Preload (N)"},
		{"1", "Static Deflection", "P1", "L1"},
		{"", "Missing Run Number", "P1", "L1"},
	}

	repl := BuildParameterReplacements(models.MatrixInputs{Pressure: "4", Load1: "500"})
	cols := ResolveColumns(BuildHeaderMap(rows[0]))

	out := ExtractRows(rows[1:], cols, repl)

	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].NumberOfRuns)
	assert.Equal(t, "4", out[0].InflationPressure)
	assert.Equal(t, "500", out[0].Preload)
	assert.Equal(t, "Static Deflection", out[0].TestName)
}

func TestExtractRows_SkipsUnparsableRunNumber(t *testing.T) {
	rows := [][]string{
		{"No of Tests", "Test Name", "Inflation Pressure (bar)", "Preload (N)"},
		{"abc", "Bad Row", "P1", "L1"},
		{"-2", "Negative Row", "P1", "L1"},
		{"3", "Good Row", "P1", "L1"},
	}

	repl := BuildParameterReplacements(models.MatrixInputs{Pressure: "2.5", Load1: "400"})
	out := ExtractRows(rows[1:], ResolveColumns(BuildHeaderMap(rows[0])), repl)

	require.Len(t, out, 1)
	assert.Equal(t, "Good Row", out[0].TestName)
	assert.Equal(t, 3, out[0].NumberOfRuns)
}

func TestExtractRows_SkipsBlankRows(t *testing.T) {
	rows := [][]string{
		{"No of Tests", "Test Name", "Inflation Pressure (bar)", "Preload (N)"},
		{"", "", "", ""},
		{"  ", "", "   ", ""},
		{"1", "Only Row", "P2", "L2"},
	}

	repl := BuildParameterReplacements(models.MatrixInputs{Pressure: "3.5", Load2: "600"})
	out := ExtractRows(rows[1:], ResolveColumns(BuildHeaderMap(rows[0])), repl)

	require.Len(t, out, 1)
	assert.Equal(t, "3.5", out[0].InflationPressure)
	assert.Equal(t, "600", out[0].Preload)
}

func TestExtractRows_TokenResolutionInGeneralColumns(t *testing.T) {
	rows := [][]string{
		{"No of Tests", "Test Name", "Inflation Pressure (bar)", "Preload (N)", "Velocity (kmph)", "Camber (deg)", "Slip Range"},
		{"2", "Cornering\nSweep", "P1", "L3", "VEL", "-IA", "SR"},
	}

	repl := BuildParameterReplacements(models.MatrixInputs{
		Pressure:         "2.4",
		Load3:            "450",
		Velocity:         "60",
		InclinationAngle: "5",
		SlipRatio:        "0.15",
	})
	out := ExtractRows(rows[1:], ResolveColumns(BuildHeaderMap(rows[0])), repl)

	require.Len(t, out, 1)
	assert.Equal(t, "Cornering Sweep", out[0].TestName)
	require.NotNil(t, out[0].Velocity)
	assert.Equal(t, "60", *out[0].Velocity)
	require.NotNil(t, out[0].Camber)
	assert.Equal(t, "-5", *out[0].Camber)
	require.NotNil(t, out[0].SlipRange)
	assert.Equal(t, "0.15", *out[0].SlipRange)
}

func TestExtractRows_NumericLiteralsPassThrough(t *testing.T) {
	rows := [][]string{
		{"No of Tests", "Inflation Pressure (bar)", "Preload (N)"},
		{"1", "2.1", "350"},
	}

	repl := BuildParameterReplacements(models.MatrixInputs{Pressure: "9", Load1: "9999"})
	out := ExtractRows(rows[1:], ResolveColumns(BuildHeaderMap(rows[0])), repl)

	require.Len(t, out, 1)
	assert.Equal(t, "2.1", out[0].InflationPressure)
	assert.Equal(t, "350", out[0].Preload)
}

func TestExtractRows_MissingColumnsDegradeToNull(t *testing.T) {
	rows := [][]string{
		{"No of Tests", "Inflation Pressure (bar)", "Preload (N)"},
		{"1", "P1", "L1"},
	}

	repl := BuildParameterReplacements(models.MatrixInputs{Pressure: "2", Load1: "300"})
	out := ExtractRows(rows[1:], ResolveColumns(BuildHeaderMap(rows[0])), repl)

	require.Len(t, out, 1)
	assert.Empty(t, out[0].TestName)
	assert.Nil(t, out[0].Velocity)
	assert.Nil(t, out[0].JobName)
	assert.Nil(t, out[0].PythonScript)
}

func TestDerivePythonScript(t *testing.T) {
	job := "8_freeroll_p1_l1"

	cases := []struct {
		name    string
		raw     string
		jobName *string
		want    string
	}{
		{"deflection gets odb and default speed", "deflection.py", &job, "deflection.py 8_freeroll_p1_l1.odb speed1"},
		{"od_growth gets odb only", "od_growth.py", &job, "od_growth.py 8_freeroll_p1_l1.odb"},
		{"existing file reference passes through", "deflection.py run5.odb speed2", &job, "deflection.py run5.odb speed2"},
		{"unknown script passes through", "postprocess.py", &job, "postprocess.py"},
		{"no job name passes through", "deflection.py", nil, "deflection.py"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := derivePythonScript(tc.raw, tc.jobName)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, *got)
		})
	}

	assert.Nil(t, derivePythonScript("", &job))
}

func buildWorkbook(t *testing.T, sheets map[string][][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestExtractWorkbook_EndToEnd(t *testing.T) {
	wb := buildWorkbook(t, map[string][][]string{
		"Matrix": {
			{"No of Tests", "Test Name", "Inflation Pressure (bar)", "Preload (N)"},
			{"1", "Static Deflection", "P1", "L1"},
			{"", "Dropped", "P1", "L1"},
		},
	})

	out, err := NewExtractor().ExtractWorkbook(bytes.NewReader(wb), models.MatrixInputs{
		Pressure: "4",
		Load1:    "500",
	})

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].NumberOfRuns)
	assert.Equal(t, "4", out[0].InflationPressure)
	assert.Equal(t, "500", out[0].Preload)
}

func TestExtractWorkbook_EmptyResult(t *testing.T) {
	wb := buildWorkbook(t, map[string][][]string{
		"Matrix": {
			{"No of Tests", "Test Name", "Inflation Pressure (bar)", "Preload (N)"},
		},
	})

	_, err := NewExtractor().ExtractWorkbook(bytes.NewReader(wb), models.MatrixInputs{Pressure: "4"})

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeEmptyResult, apperrors.GetCode(err))
}

func TestExtractWorkbook_ParseError(t *testing.T) {
	_, err := NewExtractor().ExtractWorkbook(strings.NewReader("not a workbook"), models.MatrixInputs{})

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeParseError, apperrors.GetCode(err))
}
