package convert

import (
	"slices"
	"strings"

	"github.com/leapstack-labs/sqlshift/pkg/translate"
)

// canonicalizer is an optional capability of a Translator: rendering a
// statement in canonical form for equivalence checks. The default engine
// implements it.
type canonicalizer interface {
	Canonical(sql string) (string, error)
}

// classify decides whether output is a conversion of original or the same
// statement passed through. Equivalence is checked on the parsed canonical
// forms when the translator can provide them, falling back to normalized
// text. In both paths the set of quoted identifiers must match: a change in
// identifier quoting alone is still a conversion the operator needs to see.
func classify(tr translate.Translator, original, output string) Status {
	if quotedIdentifierSet(original) != quotedIdentifierSet(output) {
		return StatusConverted
	}
	if c, ok := tr.(canonicalizer); ok {
		co, errO := c.Canonical(original)
		cn, errN := c.Canonical(output)
		if errO == nil && errN == nil {
			if co == cn {
				return StatusAlreadyCompatible
			}
			return StatusConverted
		}
	}
	if normalizeSQL(original) == normalizeSQL(output) {
		return StatusAlreadyCompatible
	}
	return StatusConverted
}

// normalizeSQL lowercases and collapses whitespace outside quoted spans.
func normalizeSQL(sql string) string {
	var b strings.Builder
	inSpace := false
	for i := 0; i < len(sql); i++ {
		c := sql[i]
		switch c {
		case '\'', '"', '`':
			inSpace = false
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
		case ' ', '\t', '\n', '\r':
			if !inSpace {
				b.WriteByte(' ')
				inSpace = true
			}
		default:
			inSpace = false
			if 'A' <= c && c <= 'Z' {
				c += 'a' - 'A'
			}
			b.WriteByte(c)
		}
	}
	return strings.TrimSpace(b.String())
}

// quotedIdentifierSet returns a canonical fingerprint of the identifiers a
// statement quotes, with double-quote and backtick forms folded together.
func quotedIdentifierSet(sql string) string {
	set := make(map[string]bool)
	for i := 0; i < len(sql); i++ {
		switch sql[i] {
		case '\'':
			// skip string literals
			i++
			for i < len(sql) {
				if sql[i] == '\'' {
					if i+1 < len(sql) && sql[i+1] == '\'' {
						i += 2
						continue
					}
					break
				}
				i++
			}
		case '"', '`':
			q := sql[i]
			var ident strings.Builder
			i++
			for i < len(sql) {
				if sql[i] == q {
					if i+1 < len(sql) && sql[i+1] == q {
						ident.WriteByte(q)
						i += 2
						continue
					}
					break
				}
				ident.WriteByte(sql[i])
				i++
			}
			set[ident.String()] = true
		}
	}
	if len(set) == 0 {
		return ""
	}
	idents := make([]string, 0, len(set))
	for id := range set {
		idents = append(idents, id)
	}
	slices.Sort(idents)
	return strings.Join(idents, "\x00")
}
