package rules

import (
	"github.com/leapstack-labs/sqlshift/pkg/fixup"
)

func init() {
	fixup.Register(RepairTrailing)
	fixup.Register(BalanceQuotes)
}

// RepairTrailing fixes the dangling-comma-before-close mistake common in
// hand-edited exports: a trailing comma becomes an explicit empty string
// argument.
var RepairTrailing = fixup.Rule{
	Name:        "repair-trailing",
	Group:       "cleanup",
	Stage:       fixup.StagePre,
	Priority:    80,
	Description: "Repair a dangling comma before a closing parenthesis.",
	Apply: func(_ *fixup.Context, sql string) string {
		return repairTrailing(sql)
	},
}

// BalanceQuotes repairs an odd single-quote count at the statement tail.
// Runs last among the pre rules so it sees the other rules' output.
var BalanceQuotes = fixup.Rule{
	Name:        "balance-quotes",
	Group:       "cleanup",
	Stage:       fixup.StagePre,
	Priority:    90,
	Description: "Repair an unbalanced single quote at the statement tail.",
	Apply: func(_ *fixup.Context, sql string) string {
		return balanceQuotes(sql)
	},
}
