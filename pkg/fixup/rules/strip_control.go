package rules

import (
	"github.com/leapstack-labs/sqlshift/pkg/fixup"
)

func init() {
	fixup.Register(StripControl)
}

// StripControl removes ANSI escape sequences and control characters that
// terminal copy-paste tends to smuggle into SQL text.
var StripControl = fixup.Rule{
	Name:        "strip-control",
	Group:       "cleanup",
	Stage:       fixup.StagePre,
	Priority:    10,
	Description: "Remove ANSI escape sequences and non-printing control characters.",
	Apply: func(_ *fixup.Context, sql string) string {
		return stripControl(sql)
	},
}
