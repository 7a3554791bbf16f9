// Package rules contains the built-in quirk fixup rules.
// Import this package for its side effects to register them:
//
//	import _ "github.com/leapstack-labs/sqlshift/pkg/fixup/rules"
//
// Pre-translation rules (in priority order):
//   - strip-control: remove ANSI escapes and control characters
//   - unwrap-prepare: extract the inner statement from PREPARE ... FROM
//   - unwrap-execute: resolve EXECUTE ... USING against the job's prepared
//     statements and inline the bound arguments
//   - unescape-literals: collapse wrapper-artifact doubled quotes
//   - normalize-identifiers: collapse wrapper-artifact doubled identifier quotes
//   - quote-identifiers: double-quoted identifiers to backtick form
//   - force-aliases: quoted or multi-word aliases to valid identifiers
//   - regexp-replace-args: two-argument regexp_replace gains its empty
//     replacement argument
//   - trim-syntax: TRIM(LEADING|TRAILING|BOTH ... FROM ...) to LTRIM/RTRIM/TRIM
//   - repair-trailing: dangling comma before a closing parenthesis
//   - balance-quotes: odd single-quote count repaired at the tail
//
// Post-translation rules:
//   - date-format: legacy %-style date patterns to DateTimeFormatter patterns
//   - bind-placeholders: numbered bind variables back to ? placeholders
//   - identifier-quotes: any remaining double-quoted identifiers to backticks
package rules
