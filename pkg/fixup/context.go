package fixup

// PreparedStmt is wrapper metadata recorded when a PREPARE statement is
// unwrapped, keyed by statement name for the paired EXECUTE.
type PreparedStmt struct {
	Name string
	SQL  string // inner statement with placeholders intact
}

// Context carries per-job state between rules. The prepared-statement side
// table is scoped to one job and discarded with it; rules never keep state
// of their own.
type Context struct {
	SourceDialect string
	TargetDialect string

	// Unwrapped is set by wrapper rules for the current statement when an
	// inner statement was extracted from a wrapper construct. Escape-repair
	// rules only apply to unwrapped text, where doubled quoting is a wrapper
	// artifact rather than deliberate SQL escaping.
	Unwrapped bool
	// WrapperName is the wrapper's statement name, when Unwrapped is set.
	WrapperName string

	prepared map[string]PreparedStmt
}

// ResetStatement clears per-statement wrapper state. The pipeline calls this
// before each statement; the prepared side table survives across statements
// within the job.
func (c *Context) ResetStatement() {
	c.Unwrapped = false
	c.WrapperName = ""
}

// NewContext creates a context for one job.
func NewContext(from, to string) *Context {
	return &Context{
		SourceDialect: from,
		TargetDialect: to,
		prepared:      make(map[string]PreparedStmt),
	}
}

// RegisterPrepared records wrapper metadata for a later EXECUTE.
func (c *Context) RegisterPrepared(name, sql string) {
	c.prepared[name] = PreparedStmt{Name: name, SQL: sql}
}

// Prepared looks up wrapper metadata by statement name.
func (c *Context) Prepared(name string) (PreparedStmt, bool) {
	p, ok := c.prepared[name]
	return p, ok
}
