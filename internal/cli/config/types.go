// Package config provides configuration management for the sqlshift CLI.
//
// Configuration is loaded from (in increasing precedence) built-in defaults,
// a sqlshift.yaml file, SQLSHIFT_-prefixed environment variables, and CLI
// flags.
package config

// Config holds all CLI configuration options.
type Config struct {
	SourceDialect string      `koanf:"source_dialect"`
	TargetDialect string      `koanf:"target_dialect"`
	Workers       int         `koanf:"workers"`
	OutputDir     string      `koanf:"output_dir"`
	Verbose       bool        `koanf:"verbose"`
	OutputFormat  string      `koanf:"output"`
	Rules         RulesConfig `koanf:"rules"`
}

// RulesConfig configures the quirk fixup chain.
type RulesConfig struct {
	// Disabled lists built-in rule names to skip.
	Disabled []string `koanf:"disabled"`
	// Extra holds user-defined pattern rules appended after the built-ins.
	Extra []CustomRule `koanf:"extra"`
}

// CustomRule is a user-defined pattern/rewrite rule from the config file.
type CustomRule struct {
	Name    string `koanf:"name"`
	Stage   string `koanf:"stage"` // "pre" or "post"
	Match   string `koanf:"match"`
	Replace string `koanf:"replace"`
}

// Default configuration values.
const (
	DefaultSourceDialect = "presto"
	DefaultTargetDialect = "databricks"
	DefaultWorkers       = 4
	DefaultOutputDir     = "converted"
	DefaultOutput        = "auto" // Auto-detect: TTY=text, non-TTY=plain
)
