package commands

import (
	"fmt"

	"github.com/leapstack-labs/sqlshift/internal/cli/output"
	"github.com/leapstack-labs/sqlshift/pkg/fixup"
	_ "github.com/leapstack-labs/sqlshift/pkg/fixup/rules" // register built-in rules
	"github.com/spf13/cobra"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Stage  string // Filter by stage: pre, post
	Group  string // Filter by group
	Format string // Output format
}

// ruleInfo is the serializable view of a fixup rule.
type ruleInfo struct {
	Name        string `json:"name"`
	Group       string `json:"group"`
	Stage       string `json:"stage"`
	Priority    int    `json:"priority"`
	Description string `json:"description"`
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [name]",
		Short: "List quirk fixup rules",
		Long: `List the built-in quirk fixup rules in execution order.

Pre rules repair dialect quirks before translation; post rules normalize
the translated output. Rules can be disabled per name in sqlshift.yaml,
and custom pattern rules can be added there.`,
		Example: `  # List all rules
  sqlshift rules

  # Show one rule
  sqlshift rules trim-syntax

  # Only post-translation rules
  sqlshift rules --stage post

  # Output as JSON
  sqlshift rules --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Stage, "stage", "", "Filter by stage: pre, post")
	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, plain, json")

	return cmd
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	r := rendererFor(cmd, opts.Format)

	rules := fixup.All()
	if opts.Stage != "" {
		stage, ok := fixup.ParseStage(opts.Stage)
		if !ok {
			return fmt.Errorf("unknown stage %q", opts.Stage)
		}
		rules = filterRules(rules, func(fr fixup.Rule) bool { return fr.Stage == stage })
	}
	if opts.Group != "" {
		rules = filterRules(rules, func(fr fixup.Rule) bool { return fr.Group == opts.Group })
	}

	if r.EffectiveMode() == output.ModeJSON {
		infos := make([]ruleInfo, 0, len(rules))
		for _, fr := range rules {
			infos = append(infos, toRuleInfo(fr))
		}
		return r.JSON(infos)
	}

	styles := r.Styles()
	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Fixup Rules (%d)", len(rules))))
	r.Println("")

	currentStage := ""
	for _, fr := range rules {
		if fr.Stage.String() != currentStage {
			currentStage = fr.Stage.String()
			r.Println(styles.Header2.Render(stageLabel(fr.Stage)))
		}
		r.Printf("  %-24s %-12s %s\n",
			styles.Bold.Render(fr.Name), fr.Group, styles.Muted.Render(fr.Description))
	}
	r.Println("")
	return nil
}

func showRule(cmd *cobra.Command, name string, opts *RulesOptions) error {
	r := rendererFor(cmd, opts.Format)

	fr, ok := fixup.Get(name)
	if !ok {
		return fmt.Errorf("rule %q not found", name)
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(toRuleInfo(fr))
	}

	styles := r.Styles()
	r.Println("")
	r.Println(styles.Header1.Render(fr.Name))
	r.Printf("  Stage:    %s\n", fr.Stage.String())
	r.Printf("  Group:    %s\n", fr.Group)
	r.Printf("  Priority: %d\n", fr.Priority)
	r.Println("")
	r.Println("  " + fr.Description)
	r.Println("")
	return nil
}

func rendererFor(cmd *cobra.Command, format string) *output.Renderer {
	cfg := getConfig()
	mode := output.Mode(cfg.OutputFormat)
	if format != "" {
		mode = output.Mode(format)
	}
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)
}

func filterRules(rules []fixup.Rule, keep func(fixup.Rule) bool) []fixup.Rule {
	var out []fixup.Rule
	for _, fr := range rules {
		if keep(fr) {
			out = append(out, fr)
		}
	}
	return out
}

func toRuleInfo(fr fixup.Rule) ruleInfo {
	return ruleInfo{
		Name:        fr.Name,
		Group:       fr.Group,
		Stage:       fr.Stage.String(),
		Priority:    fr.Priority,
		Description: fr.Description,
	}
}

func stageLabel(s fixup.Stage) string {
	if s == fixup.StagePre {
		return "Pre-translation"
	}
	return "Post-translation"
}
