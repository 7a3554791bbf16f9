package rules

import (
	"strings"

	"github.com/leapstack-labs/sqlshift/pkg/dialect"
	"github.com/leapstack-labs/sqlshift/pkg/fixup"
)

func init() {
	fixup.Register(QuoteIdentifiers)
	fixup.Register(IdentifierQuotes)
}

// QuoteIdentifiers rewrites double-quoted identifiers to backtick form
// before translation. The source dialect quotes identifiers with double
// quotes; the engine's grammar reads a double-quoted span as a string
// literal, so the conversion has to happen before parsing.
var QuoteIdentifiers = fixup.Rule{
	Name:        "quote-identifiers",
	Group:       "identifier",
	Stage:       fixup.StagePre,
	Priority:    50,
	Description: "Convert double-quoted identifiers to backtick-quoted identifiers.",
	Apply: func(ctx *fixup.Context, sql string) string {
		// Only meaningful when the source dialect quotes identifiers with
		// double quotes; elsewhere a double-quoted span is a string literal.
		if d, ok := dialect.Get(ctx.SourceDialect); ok && !d.QuotesWithDoubleQuotes() {
			return sql
		}
		return doubleQuotedToBackticks(sql)
	},
}

// IdentifierQuotes applies the same conversion after translation, catching
// double-quoted identifiers introduced by other rewrites. Idempotent, and a
// no-op on canonical engine output.
var IdentifierQuotes = fixup.Rule{
	Name:        "identifier-quotes",
	Group:       "identifier",
	Stage:       fixup.StagePost,
	Priority:    20,
	Description: "Normalize remaining double-quoted identifiers to backtick form.",
	Apply: func(_ *fixup.Context, sql string) string {
		return doubleQuotedToBackticks(sql)
	},
}

// doubleQuotedToBackticks converts double-quoted spans outside single-quoted
// string literals to backtick-quoted identifiers. Doubled double quotes
// unescape to one; embedded backticks are doubled per target convention.
func doubleQuotedToBackticks(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\'':
			// copy string literal verbatim
			b.WriteByte('\'')
			i++
			for i < len(s) {
				b.WriteByte(s[i])
				if s[i] == '\'' {
					if i+1 < len(s) && s[i+1] == '\'' {
						i++
						b.WriteByte('\'')
					} else {
						break
					}
				}
				i++
			}
		case '"':
			var ident strings.Builder
			j := i + 1
			closed := false
			for j < len(s) {
				if s[j] == '"' {
					if j+1 < len(s) && s[j+1] == '"' {
						ident.WriteByte('"')
						j += 2
						continue
					}
					closed = true
					break
				}
				ident.WriteByte(s[j])
				j++
			}
			if !closed {
				// unbalanced; leave the remainder untouched
				b.WriteString(s[i:])
				return b.String()
			}
			b.WriteByte('`')
			b.WriteString(strings.ReplaceAll(ident.String(), "`", "``"))
			b.WriteByte('`')
			i = j
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
