package ledger

import "fatura/internal/core"

// DueDate builds the invoice's payment date from its month and captured due
// day, clamped to the month's actual length (due day 31 in February becomes
// the 28th or 29th).
func DueDate(inv core.Invoice) core.Date {
	day := inv.DueDay
	if last := core.DaysInMonth(inv.Year, inv.Month); day > last {
		day = last
	}
	return core.NewDate(inv.Year, inv.Month, day)
}

// EvaluateStatus computes an invoice's due date and classifies it relative to
// the reference date.
//
// Precedence is fixed and first match wins: an overdue invoice is closed even
// when its total is above the threshold, and due-soon outranks high-value.
// The ordering is part of the contract, not an accident of evaluation.
func EvaluateStatus(inv core.Invoice, today core.Date, alertAmount core.Money, alertDaysBeforeDue int) (core.Date, core.Status) {
	dueDate := DueDate(inv)
	daysUntilDue := today.DaysUntil(dueDate)

	switch {
	case daysUntilDue < 0:
		return dueDate, core.StatusClosed
	case daysUntilDue <= alertDaysBeforeDue:
		return dueDate, core.StatusDueSoon
	case inv.Total.Cents > alertAmount.Cents:
		return dueDate, core.StatusHighValue
	default:
		return dueDate, core.StatusOK
	}
}
