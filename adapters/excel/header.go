package excel

import (
	"log"
	"strings"
)

// ColumnAbsent is the sentinel index for a canonical field whose header was
// not present in the worksheet.
const ColumnAbsent = -1

// headerScanLimit bounds the fallback scan for a header-ish row.
const headerScanLimit = 5

// LocateHeaderRow finds the index of the header row in a worksheet grid.
// It first looks for the mandatory "No of Tests" column anywhere in the
// sheet, then falls back to the first of the top rows mentioning "test",
// then to row 0. It never fails; a semantically wrong index just degrades
// the extraction to zero rows for that sheet.
func LocateHeaderRow(rows [][]string) int {
	for i, row := range rows {
		for _, cell := range row {
			if strings.Contains(NormalizeHeader(cell), "no of tests") {
				return i
			}
		}
	}

	limit := headerScanLimit
	if len(rows) < limit {
		limit = len(rows)
	}
	for i := 0; i < limit; i++ {
		for _, cell := range rows[i] {
			if strings.Contains(strings.ToLower(cell), "test") {
				log.Printf("[Extractor] WARNING - header row not found, falling back to row %d (matched %q)", i, cell)
				return i
			}
		}
	}

	log.Printf("[Extractor] WARNING - header row not found, defaulting to row 0")
	return 0
}

// BuildHeaderMap maps every normalized header cell to its zero-based column
// index. Duplicate headers are last-write-wins.
func BuildHeaderMap(headerRow []string) map[string]int {
	headers := make(map[string]int, len(headerRow))
	for i, cell := range headerRow {
		headers[NormalizeHeader(cell)] = i
	}
	return headers
}

// ColumnSet holds the resolved column index for every canonical field,
// ColumnAbsent where the worksheet does not carry the column.
type ColumnSet struct {
	RunNumber     int
	TestName      int
	Pressure      int
	Preload       int
	Velocity      int
	Camber        int
	SlipAngle     int
	Displacement  int
	SlipRange     int
	Cleat         int
	RoadSurface   int
	JobName       int
	OldJobName    int
	FortranScript int
	PythonScript  int
	TemplateTydex int
}

// ResolveColumns maps each canonical field to the first of its accepted
// header spellings present in the header map.
func ResolveColumns(headers map[string]int) ColumnSet {
	return ColumnSet{
		RunNumber:     firstMatch(headers, "no of tests", "no of test", "number of runs"),
		TestName:      firstMatch(headers, "test name", "name of test"),
		Pressure:      firstMatch(headers, "inflation pressure bar", "inflation pressure"),
		Preload:       firstMatch(headers, "preload n", "preload", "load n", "load"),
		Velocity:      firstMatch(headers, "velocity kmph", "velocity", "speed kmph", "speed"),
		Camber:        firstMatch(headers, "camber deg", "camber", "inclination angle deg", "inclination angle"),
		SlipAngle:     firstMatch(headers, "slip angle deg", "slip angle"),
		Displacement:  firstMatch(headers, "displacement mm", "displacement"),
		SlipRange:     firstMatch(headers, "slip range", "slip ratio range"),
		Cleat:         firstMatch(headers, "cleat", "cleat orientation"),
		RoadSurface:   firstMatch(headers, "road surface", "surface"),
		JobName:       firstMatch(headers, "job name", "jobname"),
		OldJobName:    firstMatch(headers, "old job name", "old jobname"),
		FortranScript: firstMatch(headers, "fortran script", "fortran file", "fortran"),
		PythonScript:  firstMatch(headers, "python script", "python file", "python"),
		TemplateTydex: firstMatch(headers, "template tydex name", "tydex name", "template name", "tydex"),
	}
}

// firstMatch returns the index of the first spelling found in the header map
func firstMatch(headers map[string]int, spellings ...string) int {
	for _, s := range spellings {
		if idx, ok := headers[s]; ok {
			return idx
		}
	}
	return ColumnAbsent
}
