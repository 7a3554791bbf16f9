package rules

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/sqlshift/pkg/fixup"
)

func init() {
	fixup.Register(UnwrapPrepare)
}

var prepareRe = regexp.MustCompile(`(?is)^\s*PREPARE\s+(\w+)\s+FROM\s+(.+)$`)

// UnwrapPrepare extracts the inner statement from PREPARE <name> FROM <sql>.
// The inner statement is recorded in the job's side table, keyed by name, so
// a later EXECUTE can bind its arguments; the unit itself continues through
// the pipeline as the inner statement.
var UnwrapPrepare = fixup.Rule{
	Name:        "unwrap-prepare",
	Group:       "wrapper",
	Stage:       fixup.StagePre,
	Priority:    20,
	Description: "Unwrap PREPARE ... FROM and record the inner statement for EXECUTE.",
	Apply: func(ctx *fixup.Context, sql string) string {
		m := prepareRe.FindStringSubmatch(sql)
		if m == nil {
			return sql
		}
		name := m[1]
		inner := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(m[2]), ";"))
		if inner == "" {
			return sql
		}
		ctx.RegisterPrepared(name, inner)
		ctx.Unwrapped = true
		ctx.WrapperName = name
		return inner
	},
}
