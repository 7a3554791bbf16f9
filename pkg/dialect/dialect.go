// Package dialect describes the SQL dialects the converter knows about.
//
// A Dialect carries the surface-level properties conversion cares about,
// chiefly how identifiers are quoted. Dialect names are matched case
// insensitively and common aliases resolve to their canonical name, so
// "trino" and "presto" select the same definition.
package dialect

// Dialect describes one SQL dialect.
type Dialect struct {
	// Name is the canonical dialect name, lower case.
	Name string
	// Aliases are alternative names resolving to this dialect.
	Aliases []string
	// IdentifierQuote is the character the dialect quotes identifiers with.
	IdentifierQuote rune
	// Description is a one-line description for CLI output.
	Description string
}

// QuotesWithDoubleQuotes reports whether the dialect quotes identifiers in
// the ANSI double-quote style.
func (d *Dialect) QuotesWithDoubleQuotes() bool {
	return d.IdentifierQuote == '"'
}
