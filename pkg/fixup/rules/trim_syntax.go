package rules

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/sqlshift/pkg/fixup"
)

func init() {
	fixup.Register(TrimSyntax)
}

var trimRe = regexp.MustCompile(`(?i)\bTRIM\s*\(\s*(LEADING|TRAILING|BOTH)?\s*(?:'([^']*)'|"([^"]*)")?\s+FROM\s+([^)]+?)\s*\)`)

// TrimSyntax rewrites the source dialect's TRIM(... FROM ...) forms to the
// two-argument LTRIM/RTRIM/TRIM functions the target dialect expects:
//
//	TRIM(LEADING 'x' FROM col)  -> LTRIM(col, 'x')
//	TRIM(TRAILING 'x' FROM col) -> RTRIM(col, 'x')
//	TRIM(BOTH 'x' FROM col)     -> TRIM(col, 'x')
//	TRIM('x' FROM col)          -> TRIM(col, 'x')
var TrimSyntax = fixup.Rule{
	Name:        "trim-syntax",
	Group:       "function",
	Stage:       fixup.StagePre,
	Priority:    70,
	Description: "Rewrite TRIM(LEADING|TRAILING|BOTH ... FROM ...) to LTRIM/RTRIM/TRIM.",
	Apply: func(_ *fixup.Context, sql string) string {
		return trimRe.ReplaceAllStringFunc(sql, func(m string) string {
			parts := trimRe.FindStringSubmatch(m)
			kind := strings.ToUpper(parts[1])
			quote := "'"
			trimChars := parts[2]
			if trimChars == "" && parts[3] != "" {
				quote = `"`
				trimChars = parts[3]
			}
			column := strings.TrimSpace(parts[4])

			fn := "TRIM"
			switch kind {
			case "LEADING":
				fn = "LTRIM"
			case "TRAILING":
				fn = "RTRIM"
			}
			return fn + "(" + column + ", " + quote + trimChars + quote + ")"
		})
	},
}
