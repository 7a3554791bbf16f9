package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/sqlshift/internal/cli/output"
	"github.com/leapstack-labs/sqlshift/pkg/convert"
	"github.com/spf13/cobra"
)

// ConvertOptions holds options for the convert command.
type ConvertOptions struct {
	Format string // Output format override
	Write  bool   // Write artifact files instead of stdout
	Out    string // Output directory override for --write
}

// NewConvertCommand creates the convert command.
func NewConvertCommand() *cobra.Command {
	opts := &ConvertOptions{}
	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a SQL file between dialects",
		Long: `Convert the statements of one SQL file from the source dialect to the
target dialect.

Each statement is converted independently: statements that fail are kept
in the output as commented blocks with a diagnostic, so a single bad
statement never loses the rest of the file. Reading from stdin is
supported with "-" or no argument.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Plain annotated SQL
  - JSON: Machine-readable format`,
		Example: `  # Convert a file, print to stdout
  sqlshift convert queries.sql

  # Convert from stdin
  cat queries.sql | sqlshift convert

  # Write <name>_converted.sql / _compatible.sql / _errors.sql files
  sqlshift convert queries.sql --write --out build/

  # Different dialects
  sqlshift convert queries.sql --from trino --to databricks

  # Machine-readable results
  sqlshift convert queries.sql --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) > 0 {
				path = args[0]
			}
			return runConvert(cmd, path, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, plain, json")
	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Write artifact files instead of printing")
	cmd.Flags().StringVar(&opts.Out, "out", "", "Directory for written artifacts (default: next to input)")

	return cmd
}

func runConvert(cmd *cobra.Command, path string, opts *ConvertOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	name, text, err := readInput(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	job := cmdCtx.Pipeline.ConvertText(cmd.Context(), name, text)
	if job.Err != nil {
		return job.Err
	}

	if opts.Write {
		dir := opts.Out
		if dir == "" {
			dir = filepath.Dir(name)
		}
		written, err := writeArtifacts(dir, job)
		if err != nil {
			return err
		}
		for _, f := range written {
			r.Muted("wrote " + f)
		}
		return summarizeJob(r, job)
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(job)
	}

	for _, art := range convert.Artifacts(job) {
		r.Println(art.Content)
	}
	return summarizeJob(r, job)
}

// readInput reads the conversion input. "-" means stdin.
func readInput(stdin io.Reader, path string) (name, text string, err error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return "stdin.sql", string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	return path, string(data), nil
}

// writeArtifacts writes the job's artifact files into dir and returns their
// paths.
func writeArtifacts(dir string, job convert.JobResult) ([]string, error) {
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, err
		}
	}
	var written []string
	for _, art := range convert.Artifacts(job) {
		path := filepath.Join(dir, art.Name)
		if err := os.WriteFile(path, []byte(art.Content), 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// summarizeJob prints the per-status counts and reports failure via exit
// status when any statement failed.
func summarizeJob(r *output.Renderer, job convert.JobResult) error {
	converted, compatible, failed := job.Counts()
	styles := r.Styles()

	line := fmt.Sprintf("%d converted, %d already compatible, %d failed",
		converted, compatible, failed)
	if failed > 0 {
		r.Println(styles.Warning.Render(line))
		return fmt.Errorf("%d statement(s) failed to convert", failed)
	}
	r.Println(styles.Success.Render(line))
	return nil
}
