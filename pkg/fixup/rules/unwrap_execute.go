package rules

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/sqlshift/pkg/fixup"
)

func init() {
	fixup.Register(UnwrapExecute)
}

var executeRe = regexp.MustCompile(`(?is)^\s*EXECUTE\s+(\w+)\s*(?:\bUSING\b(.+))?\s*;?\s*$`)

// UnwrapExecute resolves EXECUTE <name> [USING <args>] against the job's
// prepared statements. When the name is registered, the bound arguments are
// inlined into the inner statement's placeholders and the inlined statement
// replaces the wrapper. When the name is unknown, the rule falls back to
// extracting an embedded quoted SELECT from the argument list; anything else
// is left untouched.
var UnwrapExecute = fixup.Rule{
	Name:        "unwrap-execute",
	Group:       "wrapper",
	Stage:       fixup.StagePre,
	Priority:    21,
	Description: "Unwrap EXECUTE ... USING by inlining bound arguments into the prepared statement.",
	Apply: func(ctx *fixup.Context, sql string) string {
		m := executeRe.FindStringSubmatch(sql)
		if m == nil {
			return sql
		}
		name := m[1]
		var args []string
		if m[2] != "" {
			args = splitArgs(m[2])
		}

		if prep, ok := ctx.Prepared(name); ok {
			inlined := prep.SQL
			if len(args) > 0 {
				var bound bool
				inlined, bound = substitutePlaceholders(prep.SQL, args)
				if !bound {
					// Placeholder and argument counts disagree; pass the
					// inner statement through unbound rather than guess.
					inlined = prep.SQL
				}
			}
			ctx.Unwrapped = true
			ctx.WrapperName = name
			return inlined
		}

		// No registered statement. Some exports embed the full query as a
		// quoted argument of EXECUTE ... USING; recover it when one of the
		// arguments is a quoted SELECT.
		if inner, ok := embeddedSelect(sql); ok {
			ctx.Unwrapped = true
			ctx.WrapperName = name
			return inner
		}
		return sql
	},
}

// embeddedSelect scans the quoted spans of a statement and returns the first
// one that reads as a SELECT.
func embeddedSelect(sql string) (string, bool) {
	for pos := 0; pos < len(sql); {
		content, end, ok := quotedContent(sql, pos)
		if !ok {
			return "", false
		}
		if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(content)), "SELECT") {
			return content, true
		}
		pos = end
	}
	return "", false
}
