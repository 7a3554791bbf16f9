package rules

import (
	"regexp"
	"strings"
)

var (
	ansiEscapeRe  = regexp.MustCompile(`\x1b\[[0-?]*[ -/]*[@-~]`)
	controlCharRe = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]`)
)

// stripControl removes ANSI escape sequences and non-printing control
// characters. Tab and newline are kept.
func stripControl(s string) string {
	s = ansiEscapeRe.ReplaceAllString(s, "")
	return controlCharRe.ReplaceAllString(s, "")
}

// repairTrailing fixes common trailing argument mistakes left by manual
// editing, such as a dangling comma before a closing parenthesis.
func repairTrailing(sql string) string {
	sql = trailingCommaRe.ReplaceAllString(sql, ", '')")
	return strings.ReplaceAll(sql, ", '') )", ", '')")
}

var trailingCommaRe = regexp.MustCompile(`,\s*\)`)

// balanceQuotes repairs an odd single-quote count at the statement tail:
// a trailing stray quote is dropped, otherwise a closing quote is appended.
func balanceQuotes(sql string) string {
	if strings.Count(sql, "'")%2 == 0 {
		return sql
	}
	trimmed := strings.TrimRight(sql, " \t\r\n")
	if strings.HasSuffix(trimmed, "'") {
		return trimmed[:len(trimmed)-1]
	}
	return sql + "'"
}

// CleanCandidate applies the repair rules used when surfacing a failed
// statement in an error diagnostic: the operator sees the text the
// translator last attempted, not the raw input.
func CleanCandidate(sql string) string {
	sql = stripControl(sql)
	sql = repairTrailing(sql)
	return balanceQuotes(sql)
}

// findMatchingParen returns the index of the parenthesis closing the one at
// open, honoring nesting and single- or double-quoted spans with doubled
// quote escapes. Returns -1 when unbalanced.
func findMatchingParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '\'', '"':
			q := s[i]
			i++
			for i < len(s) {
				if s[i] == q {
					if i+1 < len(s) && s[i+1] == q {
						i += 2
						continue
					}
					break
				}
				i++
			}
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// quotedContent returns the content of the next single-quoted span at or
// after start, honoring doubled-quote escapes, and the index just past its
// closing quote. ok is false when no complete span exists.
func quotedContent(s string, start int) (content string, end int, ok bool) {
	i := strings.IndexByte(s[start:], '\'')
	if i < 0 {
		return "", -1, false
	}
	i += start + 1
	var b strings.Builder
	for i < len(s) {
		if s[i] == '\'' {
			if i+1 < len(s) && s[i+1] == '\'' {
				b.WriteByte('\'')
				i += 2
				continue
			}
			return b.String(), i + 1, true
		}
		b.WriteByte(s[i])
		i++
	}
	return "", -1, false
}

// splitArgs splits a comma-separated argument list at top level, ignoring
// commas inside quotes or parentheses.
func splitArgs(s string) []string {
	var args []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\'', '"':
			q := s[i]
			i++
			for i < len(s) {
				if s[i] == q {
					if i+1 < len(s) && s[i+1] == q {
						i += 2
						continue
					}
					break
				}
				i++
			}
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if tail := strings.TrimSpace(s[start:]); tail != "" {
		args = append(args, tail)
	}
	return args
}

// substitutePlaceholders replaces `?` placeholders outside string literals
// with the given arguments, in order. When the placeholder and argument
// counts disagree the input is returned unchanged; a wrong binding is worse
// than no binding.
func substitutePlaceholders(sql string, args []string) (string, bool) {
	var positions []int
	for i := 0; i < len(sql); i++ {
		switch sql[i] {
		case '\'', '"', '`':
			q := sql[i]
			i++
			for i < len(sql) {
				if sql[i] == q {
					if i+1 < len(sql) && sql[i+1] == q {
						i += 2
						continue
					}
					break
				}
				i++
			}
		case '?':
			positions = append(positions, i)
		}
	}
	if len(positions) == 0 || len(positions) != len(args) {
		return sql, false
	}

	var b strings.Builder
	last := 0
	for i, pos := range positions {
		b.WriteString(sql[last:pos])
		b.WriteString(args[i])
		last = pos + 1
	}
	b.WriteString(sql[last:])
	return b.String(), true
}
