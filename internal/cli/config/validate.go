package config

import (
	"fmt"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.SourceDialect == "" {
		return fmt.Errorf("source_dialect is required")
	}
	if c.TargetDialect == "" {
		return fmt.Errorf("target_dialect is required")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	for _, r := range c.Rules.Extra {
		if r.Name == "" {
			return fmt.Errorf("custom rule is missing a name")
		}
		if r.Match == "" {
			return fmt.Errorf("custom rule %q is missing a match pattern", r.Name)
		}
		if r.Stage != "" && r.Stage != "pre" && r.Stage != "post" {
			return fmt.Errorf("custom rule %q: stage must be \"pre\" or \"post\", got %q", r.Name, r.Stage)
		}
	}
	return nil
}
