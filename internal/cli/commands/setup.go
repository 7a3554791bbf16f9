package commands

import (
	"log/slog"

	"github.com/leapstack-labs/sqlshift/internal/cli/config"
	"github.com/leapstack-labs/sqlshift/internal/cli/output"
	"github.com/leapstack-labs/sqlshift/pkg/convert"
	"github.com/leapstack-labs/sqlshift/pkg/fixup"
	"github.com/leapstack-labs/sqlshift/pkg/translate"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Pipeline *convert.Pipeline
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with the conversion pipeline.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	opts, err := cfg.FixupOptions()
	if err != nil {
		return nil, err
	}

	engine, err := translate.NewEngine()
	if err != nil {
		return nil, err
	}

	pipeline := convert.New(convert.Config{
		SourceDialect: cfg.SourceDialect,
		TargetDialect: cfg.TargetDialect,
		Translator:    engine,
		Chain:         fixup.NewChain(opts),
		Logger:        logger,
	})

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Pipeline: pipeline,
		Renderer: r,
	}, nil
}

// getConfig returns the current configuration, falling back to defaults when
// no config was loaded (e.g. in tests driving a command directly).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		SourceDialect: config.DefaultSourceDialect,
		TargetDialect: config.DefaultTargetDialect,
		Workers:       config.DefaultWorkers,
		OutputDir:     config.DefaultOutputDir,
		OutputFormat:  config.DefaultOutput,
	}
}
