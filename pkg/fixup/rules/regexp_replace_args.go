package rules

import (
	"regexp"

	"github.com/leapstack-labs/sqlshift/pkg/fixup"
)

func init() {
	fixup.Register(RegexpReplaceArgs)
}

// Two-argument form: regexp_replace(expr, 'pattern') with no replacement.
var regexpReplace2Re = regexp.MustCompile(`(?i)(regexp_replace)\(\s*([^),]+?)\s*,\s*('(?:[^']|'')*')\s*\)`)

// RegexpReplaceArgs supplies the empty replacement argument the source
// dialect implies for two-argument regexp_replace. The target dialect
// requires all three arguments.
var RegexpReplaceArgs = fixup.Rule{
	Name:        "regexp-replace-args",
	Group:       "function",
	Stage:       fixup.StagePre,
	Priority:    60,
	Description: "Add the implicit empty replacement to two-argument regexp_replace.",
	Apply: func(_ *fixup.Context, sql string) string {
		return regexpReplace2Re.ReplaceAllString(sql, "$1($2, $3, '')")
	},
}
