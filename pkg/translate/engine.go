package translate

import (
	"fmt"

	"vitess.io/vitess/go/vt/sqlparser"
)

// Engine is the default Translator, backed by the vitess SQL parser. A
// statement is parsed into an AST and rendered back in canonical form; the
// canonical rendering is the target-dialect candidate that quirk fixup rules
// refine afterwards. The backing grammar covers the MySQL family, which is a
// superset of the statement shapes we accept from the configured source
// dialect; constructs outside it surface as parse errors.
type Engine struct {
	parser *sqlparser.Parser
}

// NewEngine creates a vitess-backed translation engine.
func NewEngine() (*Engine, error) {
	p, err := sqlparser.New(sqlparser.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to create sql parser: %w", err)
	}
	return &Engine{parser: p}, nil
}

// Translate implements Translator.
func (e *Engine) Translate(stmt, from, to string) (string, error) {
	ast, err := e.parser.Parse(stmt)
	if err != nil {
		return "", &ParseError{Dialect: from, Stmt: stmt, Err: err}
	}
	if reason, ok := unrenderable(ast); ok {
		return "", &RenderError{Dialect: to, Stmt: stmt, Reason: reason}
	}
	return sqlparser.String(ast), nil
}

// Canonical parses sql and renders it in canonical form. Used by the
// classifier for whitespace- and keyword-case-insensitive equivalence.
func (e *Engine) Canonical(sql string) (string, error) {
	ast, err := e.parser.Parse(sql)
	if err != nil {
		return "", err
	}
	return sqlparser.String(ast), nil
}

// unrenderable reports statement kinds that parse under the source grammar
// but have no equivalent in the analytical target dialects we emit for.
func unrenderable(stmt sqlparser.Statement) (string, bool) {
	switch stmt.(type) {
	case *sqlparser.Load:
		return "LOAD DATA has no target-dialect equivalent", true
	case *sqlparser.LockTables, *sqlparser.UnlockTables:
		return "table locking has no target-dialect equivalent", true
	case *sqlparser.Flush:
		return "FLUSH has no target-dialect equivalent", true
	case *sqlparser.Kill:
		return "KILL has no target-dialect equivalent", true
	}
	return "", false
}
