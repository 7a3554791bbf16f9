package rules

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/sqlshift/pkg/fixup"
)

func init() {
	fixup.Register(ForceAliases)
}

var (
	singleQuotedAliasRe = regexp.MustCompile(`(?i)\bAS\s+'([^']+)'`)
	doubleQuotedAliasRe = regexp.MustCompile(`(?i)\bAS\s+"([^"]+)"`)
	unquotedAliasRe     = regexp.MustCompile(`(?i)\bAS\s+([A-Za-z_][A-Za-z0-9_ \t]+?)(\s*,\s*[A-Za-z_]|\s+FROM\b|\s*$)`)
	aliasBadCharRe      = regexp.MustCompile(`[^\w]`)
	whitespaceRunRe     = regexp.MustCompile(`\s+`)
)

// ForceAliases normalizes alias forms the translator's grammar rejects:
// single-quoted aliases become safe bare identifiers, double-quoted aliases
// become backtick-quoted with their text preserved, and unquoted multi-word
// aliases are collapsed with underscores.
var ForceAliases = fixup.Rule{
	Name:        "force-aliases",
	Group:       "identifier",
	Stage:       fixup.StagePre,
	Priority:    45,
	Description: "Normalize quoted and multi-word aliases to valid identifiers.",
	Apply: func(_ *fixup.Context, sql string) string {
		sql = singleQuotedAliasRe.ReplaceAllStringFunc(sql, func(m string) string {
			alias := singleQuotedAliasRe.FindStringSubmatch(m)[1]
			return "AS " + sanitizeAlias(alias)
		})
		sql = doubleQuotedAliasRe.ReplaceAllStringFunc(sql, func(m string) string {
			// Keep the alias text intact; backticks make it a valid
			// identifier in the target dialect.
			alias := doubleQuotedAliasRe.FindStringSubmatch(m)[1]
			return "AS `" + alias + "`"
		})
		sql = unquotedAliasRe.ReplaceAllStringFunc(sql, func(m string) string {
			// The terminator after the alias is part of the match and has
			// to survive the rewrite.
			parts := unquotedAliasRe.FindStringSubmatch(m)
			alias := strings.TrimSpace(parts[1])
			if !strings.ContainsAny(alias, " \t") {
				return m
			}
			return "AS " + sanitizeAlias(alias) + parts[2]
		})
		return sql
	},
}

func sanitizeAlias(alias string) string {
	alias = whitespaceRunRe.ReplaceAllString(strings.TrimSpace(alias), "_")
	return aliasBadCharRe.ReplaceAllString(alias, "_")
}
