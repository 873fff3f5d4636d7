package ledger

import (
	"sort"

	"fatura/internal/core"
)

// MonthTotals is the income/expense/balance pivot for one calendar month.
type MonthTotals struct {
	Month   core.MonthKey
	Income  core.Money
	Expense core.Money
	Balance core.Money
}

// MonthlySummary aggregates raw transactions into per-month totals inside the
// [from, to] date range, optionally filtered by owner profile (empty matches
// everyone). Months come back in calendar order. Card attribution is not
// applied here: the summary reflects transaction dates, not billing cycles.
func MonthlySummary(txns []core.Transaction, from, to core.Date, ownerProfile string) []MonthTotals {
	byMonth := make(map[core.MonthKey]*MonthTotals)
	for _, txn := range txns {
		if txn.Date.Before(from.Time) || txn.Date.After(to.Time) {
			continue
		}
		if ownerProfile != "" && txn.OwnerProfile != ownerProfile {
			continue
		}
		key := txn.Date.Key()
		totals, ok := byMonth[key]
		if !ok {
			totals = &MonthTotals{Month: key}
			byMonth[key] = totals
		}
		switch txn.Kind {
		case core.Income:
			totals.Income = totals.Income.Add(txn.Amount)
		case core.Expense:
			totals.Expense = totals.Expense.Add(txn.Amount)
		}
	}

	out := make([]MonthTotals, 0, len(byMonth))
	for _, totals := range byMonth {
		totals.Balance = core.Money{Cents: totals.Income.Cents - totals.Expense.Cents}
		out = append(out, *totals)
	}
	sort.Slice(out, func(a, b int) bool {
		return out[a].Month.Before(out[b].Month)
	})
	return out
}
