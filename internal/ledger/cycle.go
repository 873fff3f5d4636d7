package ledger

import "fatura/internal/core"

// BillingMonth maps an installment date to the invoice month it belongs to.
//
// Charges up to and including the card's closing day stay on the current
// month's statement; later charges roll to the next calendar month. A closing
// day beyond the month's length needs no special casing: the installment's
// own day can never exceed its month, so the comparison clamps implicitly.
func BillingMonth(date core.Date, closingDay int) core.MonthKey {
	if date.Day() <= closingDay {
		return date.Key()
	}
	return date.Key().Next()
}
