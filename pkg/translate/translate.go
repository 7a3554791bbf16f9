// Package translate defines the dialect translation boundary.
//
// The pipeline depends only on the Translator contract; the concrete engine
// is injectable so the general-purpose grammar and rendering logic stays
// swappable. Dialect identifiers are opaque strings passed through to the
// engine.
package translate

import (
	"fmt"
)

// Translator converts one SQL statement from a source dialect to a target
// dialect. A failed conversion returns *ParseError or *RenderError; both are
// per-statement failures and never abort a batch.
type Translator interface {
	Translate(stmt, from, to string) (string, error)
}

// ParseError reports that the statement does not parse under the source
// dialect's grammar.
type ParseError struct {
	Dialect string
	Stmt    string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error (%s): %v", e.Dialect, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// RenderError reports that a successfully parsed statement has no rendering
// in the target dialect.
type RenderError struct {
	Dialect string
	Stmt    string
	Reason  string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render error (%s): %s", e.Dialect, e.Reason)
}

// Func adapts a plain function to the Translator interface.
type Func func(stmt, from, to string) (string, error)

// Translate implements Translator.
func (f Func) Translate(stmt, from, to string) (string, error) {
	return f(stmt, from, to)
}
