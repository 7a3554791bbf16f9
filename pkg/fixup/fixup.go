// Package fixup applies targeted pre- and post-translation rewrites for
// dialect quirks the generic translation engine does not handle.
//
// Rules are data-driven definitions registered from init() functions in
// pkg/fixup/rules, loaded once at startup into an immutable ordered chain.
// A rule that cannot confidently apply must return its input unchanged;
// a missed fix is recoverable, a corrupted statement is not. Post rules
// must be idempotent so ordering among independent rules does not change
// the final result.
package fixup

import (
	"fmt"
	"regexp"
	"sort"
	"sync"
)

// Stage identifies when a rule runs relative to translation.
type Stage int

const (
	// StagePre runs before the statement is handed to the translator.
	StagePre Stage = iota
	// StagePost runs on the translator's output.
	StagePost
)

func (s Stage) String() string {
	if s == StagePre {
		return "pre"
	}
	return "post"
}

// ParseStage parses "pre" or "post".
func ParseStage(s string) (Stage, bool) {
	switch s {
	case "pre":
		return StagePre, true
	case "post":
		return StagePost, true
	}
	return 0, false
}

// ApplyFunc rewrites a statement. It must return sql unchanged when the rule
// does not apply.
type ApplyFunc func(ctx *Context, sql string) string

// Rule is one named, ordered transformation step.
type Rule struct {
	Name        string // unique identifier, e.g. "trim-syntax"
	Group       string // category, e.g. "wrapper", "function", "identifier"
	Stage       Stage
	Priority    int // lower runs first within a stage
	Description string
	Apply       ApplyFunc
}

// Global rule registry, populated from init() functions in pkg/fixup/rules.
var (
	registryMu sync.RWMutex
	registry   []Rule
	byName     = make(map[string]Rule)
)

// Register adds a rule to the registry. Call from init() in rule packages.
func Register(r Rule) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := byName[r.Name]; dup {
		panic(fmt.Sprintf("fixup: duplicate rule %q", r.Name))
	}
	registry = append(registry, r)
	byName[r.Name] = r
}

// All returns every registered rule ordered by stage then priority.
func All() []Rule {
	registryMu.RLock()
	defer registryMu.RUnlock()
	rules := make([]Rule, len(registry))
	copy(rules, registry)
	sortRules(rules)
	return rules
}

// Get returns a registered rule by name.
func Get(name string) (Rule, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	r, ok := byName[name]
	return r, ok
}

func sortRules(rules []Rule) {
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Stage != rules[j].Stage {
			return rules[i].Stage < rules[j].Stage
		}
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority < rules[j].Priority
		}
		return rules[i].Name < rules[j].Name
	})
}

// Options configures chain construction. The chain is built once at startup
// and read-only afterwards; no rule may be added or removed mid-run.
type Options struct {
	Disabled []string // rule names to skip
	Extra    []Rule   // user-defined rules appended after built-ins
}

// Chain is an immutable ordered set of rules.
type Chain struct {
	pre  []Rule
	post []Rule
}

// NewChain builds a chain from the registry plus opts.
func NewChain(opts Options) *Chain {
	disabled := make(map[string]bool, len(opts.Disabled))
	for _, name := range opts.Disabled {
		disabled[name] = true
	}

	rules := All()
	rules = append(rules, opts.Extra...)
	sortRules(rules)

	c := &Chain{}
	for _, r := range rules {
		if disabled[r.Name] {
			continue
		}
		if r.Stage == StagePre {
			c.pre = append(c.pre, r)
		} else {
			c.post = append(c.post, r)
		}
	}
	return c
}

// Apply runs the rules of one stage in order, each feeding the next.
func (c *Chain) Apply(ctx *Context, sql string, stage Stage) string {
	for _, r := range c.Rules(stage) {
		sql = r.Apply(ctx, sql)
	}
	return sql
}

// Rules returns the chain's rules for one stage in execution order.
func (c *Chain) Rules(stage Stage) []Rule {
	if stage == StagePre {
		return c.pre
	}
	return c.post
}

// RegexRule builds a pattern/rewrite rule from a regular expression and a
// replacement template. This is the file-based configuration surface for
// user-defined quirk rules.
func RegexRule(name string, stage Stage, pattern, replace string) (Rule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %q: invalid pattern: %w", name, err)
	}
	return Rule{
		Name:        name,
		Group:       "custom",
		Stage:       stage,
		Priority:    1000, // custom rules run after built-ins
		Description: fmt.Sprintf("custom rewrite %s -> %s", pattern, replace),
		Apply: func(_ *Context, sql string) string {
			return re.ReplaceAllString(sql, replace)
		},
	}, nil
}
