package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"cdtire/internal/config"
	"cdtire/internal/errors"
	"cdtire/models"

	"golang.org/x/sync/semaphore"
)

// ProtocolService writes the on-disk protocol folders and solver batch files
// for a project's stored test rows. Folder generation is fanned out per row
// behind a weighted semaphore so a large matrix cannot exhaust file handles.
type ProtocolService struct {
	cfg config.ProtocolConfig
	sem *semaphore.Weighted
}

// NewProtocolService creates a protocol service
func NewProtocolService(cfg config.ProtocolConfig) *ProtocolService {
	return &ProtocolService{
		cfg: cfg,
		sem: semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
	}
}

// GenerateFolders creates the project directory, writes parameters.inc from
// the project's scalar inputs, and creates one run folder per test row.
func (s *ProtocolService) GenerateFolders(ctx context.Context, project *models.Project, rows []models.TestRow) ([]string, error) {
	projectDir := s.projectDir(project)
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create project directory")
	}

	if err := s.writeParameters(projectDir, project.Inputs); err != nil {
		return nil, err
	}

	created := make([]string, len(rows))
	errs := make([]error, len(rows))
	var wg sync.WaitGroup

	for i, row := range rows {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			return nil, errors.Wrap(err, "folder generation cancelled")
		}
		wg.Add(1)
		go func(i int, row models.TestRow) {
			defer wg.Done()
			defer s.sem.Release(1)

			dir := filepath.Join(projectDir, runFolderName(i, row))
			if err := os.MkdirAll(dir, 0o755); err != nil {
				errs[i] = fmt.Errorf("failed to create run folder %s: %w", dir, err)
				return
			}
			created[i] = dir
		}(i, row)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, errors.Wrap(err, "protocol folder generation failed")
		}
	}

	log.Printf("[ProtocolService] created %d run folders under %s", len(created), projectDir)
	return created, nil
}

// GenerateBatchFiles writes one solver batch file per test row into the
// row's run folder, creating the folder when it does not exist yet.
func (s *ProtocolService) GenerateBatchFiles(ctx context.Context, project *models.Project, rows []models.TestRow) ([]string, error) {
	projectDir := s.projectDir(project)

	var written []string
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "batch file generation cancelled")
		}

		dir := filepath.Join(projectDir, runFolderName(i, row))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "failed to create run folder")
		}

		path := filepath.Join(dir, "run.bat")
		if err := os.WriteFile(path, []byte(s.batchFileContent(row)), 0o644); err != nil {
			return nil, errors.Wrap(err, "failed to write batch file")
		}
		written = append(written, path)
	}

	log.Printf("[ProtocolService] wrote %d batch files for project %s", len(written), project.ID)
	return written, nil
}

// batchFileContent renders the abaqus invocation for one test row
func (s *ProtocolService) batchFileContent(row models.TestRow) string {
	var b strings.Builder
	b.WriteString("@echo off\r\n")

	job := ""
	if row.JobName != nil {
		job = *row.JobName
	}
	if job != "" {
		b.WriteString(fmt.Sprintf("call abaqus job=%s input=%s.inp", job, job))
		if row.FortranScript != nil {
			b.WriteString(" user=" + *row.FortranScript)
		}
		b.WriteString(fmt.Sprintf(" cpus=%d interactive\r\n", s.cfg.SolverCPUs))
	}
	if row.PythonScript != nil {
		b.WriteString("call abaqus python " + *row.PythonScript + "\r\n")
	}

	return b.String()
}

// writeParameters writes parameters.inc at the project root. The downstream
// post-processing scripts read it as "key = value" lines; speed1 is the
// default speed variable those scripts look up.
func (s *ProtocolService) writeParameters(projectDir string, inputs models.MatrixInputs) error {
	params := map[string]string{
		"pressure1":           inputs.Pressure,
		"load1_kg":            inputs.Load1,
		"load2_kg":            inputs.Load2,
		"load3_kg":            inputs.Load3,
		"load4_kg":            inputs.Load4,
		"load5_kg":            inputs.Load5,
		"speed1":              inputs.Velocity,
		"inclination_angle":   inputs.InclinationAngle,
		"slip_ratio":          inputs.SlipRatio,
		"rim_diameter_inch":   inputs.RimDiameter,
		"rim_width_inch":      inputs.RimWidth,
		"overall_diameter_mm": inputs.OverallDiameter,
		"section_width_mm":    inputs.SectionWidth,
	}

	keys := make([]string, 0, len(params))
	for k, v := range params {
		if strings.TrimSpace(v) != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("** CDTire protocol parameters\n")
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("%s = %s\n", k, params[k]))
	}

	path := filepath.Join(projectDir, "parameters.inc")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return errors.Wrap(err, "failed to write parameters.inc")
	}
	return nil
}

// projectDir returns the on-disk directory for a project
func (s *ProtocolService) projectDir(project *models.Project) string {
	return filepath.Join(s.cfg.RootDir, fmt.Sprintf("%s_%s", slug(project.Name), project.ID))
}

// runFolderName builds the folder name for one test row, mirroring the
// pX_lX convention the post-processing scripts expect.
func runFolderName(index int, row models.TestRow) string {
	name := fmt.Sprintf("%02d_%s_p%s_l%s", index+1, slug(row.TestName), slug(row.InflationPressure), slug(row.Preload))
	return strings.Trim(name, "_")
}

// slug reduces free text to a filesystem-safe lowercase token
func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
