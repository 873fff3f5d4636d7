package ledger

import "errors"

// Per-record problems are recovered locally so one malformed transaction never
// blocks projection for the rest of the batch. Warnings accumulate per run and
// are handed back to the caller, which reports them once per batch.

const (
	// WarnValidation covers unusable per-transaction input: a current
	// installment outside [1..count] or a negative amount. The transaction is
	// skipped.
	WarnValidation WarningKind = "validation"
	// WarnInstallmentCount covers a card purchase whose installment count is
	// negative. The expander degrades to the single-installment path.
	WarnInstallmentCount WarningKind = "installment-count"
	// WarnMissingCard covers installments referencing a card that is absent
	// from the registry. The fallback card profile is applied.
	WarnMissingCard WarningKind = "missing-card"
)

type (
	WarningKind string

	// Warning is one recovered per-record problem.
	Warning struct {
		Kind          WarningKind
		TransactionID string
		CardID        string
		Message       string
	}
)

// ErrShareMismatch signals that computed installment shares do not reconcile
// to the original transaction amount. This breaks the core guarantee of the
// splitter and is treated as a programming defect, not a recoverable warning.
var ErrShareMismatch = errors.New("installment shares do not sum to the transaction amount")

// ErrInvalidWindow signals an out-of-range projection window.
var ErrInvalidWindow = errors.New("projection window must cover between 1 and 24 months")
