// Package ledger implements the credit-card installment ledger and the
// invoice projection pipeline: splitting purchases into installment shares,
// resolving billing cycles, aggregating installments into monthly invoices
// and classifying them against alert thresholds.
//
// Every function here is pure: inputs are immutable snapshots handed in by
// the persistence layer, outputs are freshly constructed values.
package ledger

import (
	"fatura/internal/core"
)

// SplitAmount divides total into n shares that reconcile to the cent.
//
// Each share starts at floor(total/n); the remainder is distributed one cent
// at a time, round-robin from share 0. Consequences: shares differ by at most
// one cent, they sum exactly to total, and identical inputs always produce
// identical output. n <= 0 means "no split requested" and yields nil.
func SplitAmount(total core.Money, n int) []core.Money {
	if n <= 0 {
		return nil
	}
	base := total.Cents / int64(n)
	rem := total.Cents - base*int64(n)
	shares := make([]core.Money, n)
	for i := range shares {
		shares[i] = core.Money{Cents: base}
		if int64(i) < rem {
			shares[i].Cents++
		}
	}
	return shares
}

// sumShares is used to verify the conservation invariant after a split.
func sumShares(shares []core.Money) core.Money {
	var total core.Money
	for _, s := range shares {
		total = total.Add(s)
	}
	return total
}
