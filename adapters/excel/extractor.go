package excel

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	apperrors "cdtire/internal/errors"
	"cdtire/models"

	"github.com/xuri/excelize/v2"
)

// Extractor implements the test-matrix workbook extraction routine: header
// location, fuzzy column mapping, placeholder substitution, and row
// validation. It owns no state; every call works on its own grid.
type Extractor struct{}

// NewExtractor creates a new workbook extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractWorkbook parses raw workbook bytes and extracts test rows from
// every worksheet in order. It fails with a PARSE_ERROR when the bytes are
// not a readable workbook and with EMPTY_RESULT when no sheet yields a
// single valid row.
func (e *Extractor) ExtractWorkbook(r io.Reader, inputs models.MatrixInputs) ([]models.TestRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		log.Printf("[Extractor] FAILED - workbook could not be opened: %v", err)
		return nil, apperrors.ParseError(err)
	}
	defer f.Close()

	repl := BuildParameterReplacements(inputs)

	var out []models.TestRow
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			log.Printf("[Extractor] WARNING - failed to read sheet %q: %v", sheet, err)
			continue
		}
		extracted := e.ExtractSheet(rows, repl)
		log.Printf("[Extractor] sheet %q: %d rows extracted", sheet, len(extracted))
		out = append(out, extracted...)
	}

	if len(out) == 0 {
		return nil, apperrors.EmptyResult("no valid test rows found in workbook")
	}

	return out, nil
}

// ExtractSheet runs the extraction over one in-memory worksheet grid.
func (e *Extractor) ExtractSheet(rows [][]string, repl Replacements) []models.TestRow {
	if len(rows) == 0 {
		return nil
	}

	headerIdx := LocateHeaderRow(rows)
	cols := ResolveColumns(BuildHeaderMap(rows[headerIdx]))

	return ExtractRows(rows[headerIdx+1:], cols, repl)
}

// ExtractRows walks the data rows below the header and builds one TestRow
// per row carrying a positive run number. Rows that are entirely blank are
// ignored; rows with a missing or unparsable run number are skipped with a
// warning. Missing columns degrade to null fields, never to a failure.
func ExtractRows(dataRows [][]string, cols ColumnSet, repl Replacements) []models.TestRow {
	var out []models.TestRow

	for i, row := range dataRows {
		if isBlankRow(row) {
			continue
		}

		runs, ok := parseRunNumber(cellAt(row, cols.RunNumber))
		if !ok {
			log.Printf("[Extractor] WARNING - skipping data row %d: run number %q is not a positive integer",
				i+1, cellAt(row, cols.RunNumber))
			continue
		}

		// Pressure and preload cells are expected to hold a bare token such
		// as "P2" or "L1"; literal numbers already in the cell pass through.
		tr := models.TestRow{
			NumberOfRuns:      runs,
			TestName:          repl.Resolve(stripNewlines(cellAt(row, cols.TestName))),
			InflationPressure: repl.Resolve(cellAt(row, cols.Pressure)),
			Preload:           repl.Resolve(cellAt(row, cols.Preload)),
			Velocity:          resolvedField(row, cols.Velocity, repl),
			Camber:            resolvedField(row, cols.Camber, repl),
			SlipAngle:         resolvedField(row, cols.SlipAngle, repl),
			Displacement:      resolvedField(row, cols.Displacement, repl),
			SlipRange:         resolvedField(row, cols.SlipRange, repl),
			Cleat:             resolvedField(row, cols.Cleat, repl),
			RoadSurface:       resolvedField(row, cols.RoadSurface, repl),
			JobName:           literalField(row, cols.JobName),
			OldJobName:        literalField(row, cols.OldJobName),
			FortranScript:     literalField(row, cols.FortranScript),
			TemplateTydex:     literalField(row, cols.TemplateTydex),
		}
		tr.PythonScript = derivePythonScript(cellAt(row, cols.PythonScript), tr.JobName)

		out = append(out, tr)
	}

	return out
}

// derivePythonScript expands a bare deflection/od_growth script reference
// into a full invocation against the row's job ODB. The deflection
// post-processor additionally takes a speed variable, defaulted to "speed1".
// Cells that already reference a file pass through unchanged.
func derivePythonScript(raw string, jobName *string) *string {
	if raw == "" {
		return nil
	}

	job := ""
	if jobName != nil {
		job = *jobName
	}

	lower := strings.ToLower(raw)
	if job != "" && !strings.Contains(lower, ".odb") {
		switch {
		case strings.Contains(lower, "deflection"):
			v := fmt.Sprintf("%s %s.odb speed1", raw, job)
			return &v
		case strings.Contains(lower, "od_growth"):
			v := fmt.Sprintf("%s %s.odb", raw, job)
			return &v
		}
	}

	return &raw
}

// resolvedField reads an optional cell, strips embedded newlines, and runs
// it through the replacement table. Covers the general token case (VEL, IA,
// SR and their negated forms).
func resolvedField(row []string, idx int, repl Replacements) *string {
	if idx == ColumnAbsent {
		return nil
	}
	raw := stripNewlines(cellAt(row, idx))
	if raw == "" {
		return nil
	}
	v := repl.Resolve(raw)
	return &v
}

// literalField reads an optional cell as a trimmed literal string
func literalField(row []string, idx int) *string {
	if idx == ColumnAbsent {
		return nil
	}
	raw := cellAt(row, idx)
	if raw == "" {
		return nil
	}
	return &raw
}

// cellAt returns the trimmed cell text at idx, "" for absent columns or
// ragged rows.
func cellAt(row []string, idx int) string {
	if idx == ColumnAbsent || idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// isBlankRow reports whether every cell in the row is empty or whitespace
func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseRunNumber parses the run-number cell as a positive integer
func parseRunNumber(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
