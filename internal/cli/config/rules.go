package config

import (
	"fmt"

	"github.com/leapstack-labs/sqlshift/pkg/fixup"
)

// FixupOptions builds the fixup chain options from the rules configuration,
// compiling the custom rules.
func (c *Config) FixupOptions() (fixup.Options, error) {
	opts := fixup.Options{Disabled: c.Rules.Disabled}

	for _, cr := range c.Rules.Extra {
		stage := fixup.StagePre
		if cr.Stage != "" {
			s, ok := fixup.ParseStage(cr.Stage)
			if !ok {
				return fixup.Options{}, fmt.Errorf("custom rule %q: unknown stage %q", cr.Name, cr.Stage)
			}
			stage = s
		}
		r, err := fixup.RegexRule(cr.Name, stage, cr.Match, cr.Replace)
		if err != nil {
			return fixup.Options{}, err
		}
		opts.Extra = append(opts.Extra, r)
	}
	return opts, nil
}
