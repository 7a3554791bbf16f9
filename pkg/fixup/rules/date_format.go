package rules

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/sqlshift/pkg/fixup"
)

func init() {
	fixup.Register(DateFormat)
}

var dateFnRe = regexp.MustCompile(`(?i)\b(date_format|date_parse|format_datetime|to_date|to_timestamp)\s*\(`)

// Mapping from %-style specifier characters to DateTimeFormatter patterns.
var dateFormatConversions = map[byte]string{
	'Y': "yyyy",
	'y': "yy",
	'm': "MM",
	'd': "dd",
	'H': "HH",
	'h': "hh",
	'i': "mm",
	'M': "mm",
	's': "ss",
	'S': "ss",
	'p': "a",
	'W': "EEEE",
	'w': "e",
	'b': "MMM",
	'B': "MMMM",
	'j': "DDD",
	'T': "HH:mm:ss",
}

// DateFormat rewrites legacy %-style date patterns inside date function
// arguments to the Java DateTimeFormatter patterns the target dialect's
// runtime expects, e.g. '%Y-%m-%d' becomes 'yyyy-MM-dd'. Patterns without a
// percent sign are left alone, which also makes the rule idempotent.
var DateFormat = fixup.Rule{
	Name:        "date-format",
	Group:       "function",
	Stage:       fixup.StagePost,
	Priority:    10,
	Description: "Convert legacy %-style date format patterns to DateTimeFormatter patterns.",
	Apply: func(_ *fixup.Context, sql string) string {
		locs := dateFnRe.FindAllStringIndex(sql, -1)
		if locs == nil {
			return sql
		}

		var b strings.Builder
		last := 0
		for _, loc := range locs {
			if loc[0] < last {
				continue // nested call already handled
			}
			open := loc[1] - 1
			end := findMatchingParen(sql, open)
			if end < 0 {
				continue
			}
			b.WriteString(sql[last:open])
			b.WriteString(convertPatternsInSpan(sql[open : end+1]))
			last = end + 1
		}
		b.WriteString(sql[last:])
		return b.String()
	},
}

// convertPatternsInSpan rewrites %-patterns inside the single-quoted
// literals of one argument span.
func convertPatternsInSpan(span string) string {
	var b strings.Builder
	for i := 0; i < len(span); i++ {
		if span[i] != '\'' {
			b.WriteByte(span[i])
			continue
		}
		content, end, ok := quotedContent(span, i)
		if !ok {
			b.WriteString(span[i:])
			return b.String()
		}
		b.WriteByte('\'')
		b.WriteString(strings.ReplaceAll(convertDateFormatPattern(content), "'", "''"))
		b.WriteByte('\'')
		i = end - 1
	}
	return b.String()
}

// convertDateFormatPattern converts one format pattern string in a single
// left-to-right pass. A doubled %% is a literal-percent escape and is kept
// as a unit, so converted output never gains new specifiers; patterns
// without % are already in the target form.
func convertDateFormatPattern(pattern string) string {
	if !strings.Contains(pattern, "%") {
		return pattern
	}
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' || i+1 >= len(pattern) {
			b.WriteByte(pattern[i])
			continue
		}
		next := pattern[i+1]
		if next == '%' {
			b.WriteString("%%")
			i++
			continue
		}
		if rep, ok := dateFormatConversions[next]; ok {
			b.WriteString(rep)
			i++
			continue
		}
		b.WriteByte('%')
	}
	return b.String()
}
