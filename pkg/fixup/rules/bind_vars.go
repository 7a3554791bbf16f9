package rules

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/sqlshift/pkg/fixup"
)

func init() {
	fixup.Register(BindVars)
}

var bindVarRe = regexp.MustCompile(`^:v\d+\b`)

// BindVars restores `?` placeholders. The engine parses a placeholder into a
// numbered bind variable and renders it as `:vN`; statements that keep their
// placeholders, such as an unwrapped PREPARE body, need the portable form
// back. Quoted spans are copied verbatim.
var BindVars = fixup.Rule{
	Name:        "bind-placeholders",
	Group:       "wrapper",
	Stage:       fixup.StagePost,
	Priority:    15,
	Description: "Restore ? placeholders rendered as numbered bind variables.",
	Apply: func(_ *fixup.Context, sql string) string {
		if !strings.Contains(sql, ":v") {
			return sql
		}
		var b strings.Builder
		for i := 0; i < len(sql); i++ {
			switch c := sql[i]; c {
			case '\'', '"', '`':
				b.WriteByte(c)
				i++
				for i < len(sql) {
					b.WriteByte(sql[i])
					if sql[i] == c {
						if i+1 < len(sql) && sql[i+1] == c {
							i++
							b.WriteByte(c)
						} else {
							break
						}
					}
					i++
				}
			case ':':
				if m := bindVarRe.FindString(sql[i:]); m != "" {
					b.WriteByte('?')
					i += len(m) - 1
					continue
				}
				b.WriteByte(c)
			default:
				b.WriteByte(c)
			}
		}
		return b.String()
	},
}
