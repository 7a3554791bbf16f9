package commands

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/sqlshift/internal/cli/output"
	"github.com/leapstack-labs/sqlshift/pkg/convert"
	"github.com/spf13/cobra"
)

// BatchOptions holds options for the batch command.
type BatchOptions struct {
	Format  string // Output format override
	Out     string // Output directory override
	Workers int    // Worker count override
}

// NewBatchCommand creates the batch command.
func NewBatchCommand() *cobra.Command {
	opts := &BatchOptions{}
	cmd := &cobra.Command{
		Use:   "batch <path>...",
		Short: "Convert many SQL files concurrently",
		Long: `Convert a set of SQL files, directories, or zip archives.

Directories are scanned for .sql and .txt files; zip archives are expanded
in memory and their SQL members converted like plain files. Jobs run
concurrently but each job's statements stay in order, and one failing job
never affects the others. Artifact files are written to the output
directory and a run summary is printed.`,
		Example: `  # Convert every SQL file in a directory
  sqlshift batch ./exports

  # Mix files and archives
  sqlshift batch nightly.zip extra.sql

  # Limit concurrency and choose the output directory
  sqlshift batch ./exports --workers 2 --out build/

  # Machine-readable report
  sqlshift batch ./exports --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, plain, json")
	cmd.Flags().StringVar(&opts.Out, "out", "", "Output directory for artifacts")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "Concurrent conversion workers")

	return cmd
}

func runBatch(cmd *cobra.Command, paths []string, opts *BatchOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	workers := cmdCtx.Cfg.Workers
	if opts.Workers > 0 {
		workers = opts.Workers
	}
	outDir := cmdCtx.Cfg.OutputDir
	if opts.Out != "" {
		outDir = opts.Out
	}

	jobs, err := collectJobs(paths)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return fmt.Errorf("no SQL inputs found in %s", strings.Join(paths, ", "))
	}

	started := time.Now()
	runner := convert.NewRunner(cmdCtx.Pipeline, workers, cmdCtx.Logger)
	results, err := runner.Run(cmd.Context(), jobs)
	if err != nil {
		return err
	}
	report := convert.NewReport(started, time.Now(), results)

	for _, job := range results {
		if job.Err != nil {
			continue
		}
		if _, err := writeArtifacts(outDir, job); err != nil {
			return err
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(report)
	}
	return renderBatchSummary(r, report, outDir)
}

// collectJobs expands paths into conversion jobs. Unreadable inputs become
// jobs carrying their error so the report accounts for them.
func collectJobs(paths []string) ([]convert.Job, error) {
	var jobs []convert.Job
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			jobs = append(jobs, convert.Job{Name: path, Err: err})
			continue
		}
		switch {
		case info.IsDir():
			dirJobs, err := collectDir(path)
			if err != nil {
				return nil, err
			}
			jobs = append(jobs, dirJobs...)
		case isZip(path):
			jobs = append(jobs, collectZip(path)...)
		default:
			jobs = append(jobs, readJob(path))
		}
	}
	return jobs, nil
}

func collectDir(dir string) ([]convert.Job, error) {
	var jobs []convert.Job
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if isZip(path) {
			jobs = append(jobs, collectZip(path)...)
			return nil
		}
		if isSQLFile(path) {
			jobs = append(jobs, readJob(path))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// collectZip expands the SQL members of a zip archive into jobs named
// <archive>/<member>.
func collectZip(path string) []convert.Job {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return []convert.Job{{Name: path, Err: err}}
	}
	defer zr.Close()

	var jobs []convert.Job
	for _, member := range zr.File {
		if member.FileInfo().IsDir() || !isSQLFile(member.Name) {
			continue
		}
		name := filepath.Join(filepath.Base(path), member.Name)
		rc, err := member.Open()
		if err != nil {
			jobs = append(jobs, convert.Job{Name: name, Err: err})
			continue
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			jobs = append(jobs, convert.Job{Name: name, Err: err})
			continue
		}
		jobs = append(jobs, convert.Job{Name: name, Text: string(data)})
	}
	if len(jobs) == 0 {
		jobs = append(jobs, convert.Job{Name: path, Err: fmt.Errorf("no SQL members in archive")})
	}
	return jobs
}

func readJob(path string) convert.Job {
	data, err := os.ReadFile(path)
	if err != nil {
		return convert.Job{Name: path, Err: err}
	}
	return convert.Job{Name: path, Text: string(data)}
}

func isZip(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".zip")
}

func isSQLFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sql", ".txt":
		return true
	}
	return false
}

// renderBatchSummary prints the per-job table and run totals.
func renderBatchSummary(r *output.Renderer, report *convert.BatchReport, outDir string) error {
	styles := r.Styles()

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Input", "Converted", "Compatible", "Failed"})
	for _, job := range report.Jobs {
		if job.Err != nil {
			t.AppendRow(table.Row{job.Name, "-", "-", styles.Error.Render(job.Err.Error())})
			continue
		}
		converted, compatible, failed := job.Counts()
		t.AppendRow(table.Row{job.Name, converted, compatible, failed})
	}
	t.Render()

	converted, compatible, failed := report.Counts()
	r.Printf("run %s: %d converted, %d already compatible, %d failed in %s\n",
		report.RunID, converted, compatible, failed,
		report.Finished.Sub(report.Started).Round(time.Millisecond))
	r.Muted("artifacts written to " + outDir)

	if failed > 0 || len(report.FailedJobs()) > 0 {
		return fmt.Errorf("batch finished with failures")
	}
	r.Success("batch finished cleanly")
	return nil
}
