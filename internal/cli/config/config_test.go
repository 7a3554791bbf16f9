package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlshift/pkg/fixup"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	chdir(t, t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultSourceDialect, cfg.SourceDialect)
	assert.Equal(t, DefaultTargetDialect, cfg.TargetDialect)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	path := filepath.Join(dir, "sqlshift.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
source_dialect: trino
workers: 8
rules:
  disabled:
    - trim-syntax
  extra:
    - name: approx-count
      stage: post
      match: '(?i)\bapprox_distinct\('
      replace: 'approx_count_distinct('
`), 0o644))
	chdir(t, dir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "trino", cfg.SourceDialect)
	assert.Equal(t, DefaultTargetDialect, cfg.TargetDialect)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, []string{"trim-syntax"}, cfg.Rules.Disabled)
	require.Len(t, cfg.Rules.Extra, 1)
	assert.Equal(t, "approx-count", cfg.Rules.Extra[0].Name)
	assert.Equal(t, "sqlshift.yaml", GetConfigFileUsed())
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sqlshift.yaml"),
		[]byte("workers: 8\n"), 0o644))
	chdir(t, dir)
	t.Setenv("SQLSHIFT_WORKERS", "2")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	ResetConfig()
	chdir(t, t.TempDir())
	t.Setenv("SQLSHIFT_SOURCE_DIALECT", "hive")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("from", "", "")
	flags.String("to", "", "")
	flags.String("out", "", "")
	require.NoError(t, flags.Parse([]string{"--from", "trino", "--out", "build"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "trino", cfg.SourceDialect)
	assert.Equal(t, "build", cfg.OutputDir)
	// unset flags leave lower-precedence sources alone
	assert.Equal(t, DefaultTargetDialect, cfg.TargetDialect)
}

func TestLoadConfig_InvalidWorkers(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sqlshift.yaml"),
		[]byte("workers: 0\n"), 0o644))
	chdir(t, dir)

	_, err := LoadConfig("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workers")
}

func TestValidate_CustomRules(t *testing.T) {
	tests := []struct {
		name      string
		rule      CustomRule
		errSubstr string
	}{
		{
			name:      "missing name",
			rule:      CustomRule{Match: "x"},
			errSubstr: "missing a name",
		},
		{
			name:      "missing match",
			rule:      CustomRule{Name: "r"},
			errSubstr: "missing a match",
		},
		{
			name:      "bad stage",
			rule:      CustomRule{Name: "r", Match: "x", Stage: "mid"},
			errSubstr: "stage",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				SourceDialect: "presto",
				TargetDialect: "databricks",
				Workers:       1,
				Rules:         RulesConfig{Extra: []CustomRule{tt.rule}},
			}
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestFixupOptions(t *testing.T) {
	cfg := Config{
		Rules: RulesConfig{
			Disabled: []string{"trim-syntax"},
			Extra: []CustomRule{
				{Name: "r1", Stage: "post", Match: `foo`, Replace: "bar"},
				{Name: "r2", Match: `baz`, Replace: "qux"}, // stage defaults to pre
			},
		},
	}

	opts, err := cfg.FixupOptions()
	require.NoError(t, err)
	assert.Equal(t, []string{"trim-syntax"}, opts.Disabled)
	require.Len(t, opts.Extra, 2)
	assert.Equal(t, fixup.StagePost, opts.Extra[0].Stage)
	assert.Equal(t, fixup.StagePre, opts.Extra[1].Stage)
}

func TestFixupOptions_BadPattern(t *testing.T) {
	cfg := Config{
		Rules: RulesConfig{
			Extra: []CustomRule{{Name: "broken", Match: "(", Replace: ""}},
		},
	}
	_, err := cfg.FixupOptions()
	require.Error(t, err)
}
