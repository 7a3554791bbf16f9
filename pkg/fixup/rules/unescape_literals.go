package rules

import (
	"strings"

	"github.com/leapstack-labs/sqlshift/pkg/fixup"
)

func init() {
	fixup.Register(UnescapeLiterals)
	fixup.Register(NormalizeIdentifiers)
}

// UnescapeLiterals collapses doubled single quotes of an unwrapped
// statement. SQL that traveled inside a wrapper's quoted blob arrives
// double-escaped; statements that were never wrapped keep their escapes,
// since there a doubled quote is deliberate.
var UnescapeLiterals = fixup.Rule{
	Name:        "unescape-literals",
	Group:       "wrapper",
	Stage:       fixup.StagePre,
	Priority:    30,
	Description: "Collapse wrapper-artifact doubled single quotes inside string literals.",
	Apply: func(ctx *fixup.Context, sql string) string {
		if !ctx.Unwrapped {
			return sql
		}
		return strings.ReplaceAll(sql, "''", "'")
	},
}

// NormalizeIdentifiers collapses doubled double quotes of an unwrapped
// statement, the identifier-quoting counterpart of unescape-literals.
var NormalizeIdentifiers = fixup.Rule{
	Name:        "normalize-identifiers",
	Group:       "wrapper",
	Stage:       fixup.StagePre,
	Priority:    40,
	Description: "Collapse wrapper-artifact doubled identifier quotes.",
	Apply: func(ctx *fixup.Context, sql string) string {
		if !ctx.Unwrapped {
			return sql
		}
		return strings.ReplaceAll(sql, `""`, `"`)
	},
}
