package ledger

import (
	"fmt"

	"github.com/google/uuid"

	"fatura/internal/core"
)

// IDGenerator produces group ids for multi-installment purchases. It is
// injected so tests can supply deterministic ids; the default draws a random
// UUID once per expansion, never during projection.
type IDGenerator func() string

// Expander turns one logical purchase into its dated installment line items.
type Expander struct {
	newGroupID IDGenerator
}

// NewExpander creates an Expander. A nil generator falls back to random UUIDs.
func NewExpander(gen IDGenerator) *Expander {
	if gen == nil {
		gen = uuid.NewString
	}
	return &Expander{newGroupID: gen}
}

// Expand converts a transaction into one or more installments.
//
// Non-card transactions and single-shot purchases yield exactly one
// installment carrying the full amount. Multi-installment card purchases are
// split to the cent; the installment being recorded now keeps the transaction
// date, and when the transaction asks for future generation the remaining
// indices are materialized one calendar month apart (month-end clamped).
// When future generation is off only the current installment is returned:
// the rest of the purchase stays untracked until re-entered manually, which
// under-counts future invoices. That matches the recorded entry flow and is
// kept as-is.
//
// Unusable input is skipped with a warning rather than failing the batch.
// The only hard error is a split that fails to reconcile to the cent.
func (e *Expander) Expand(txn core.Transaction) ([]core.Installment, []Warning, error) {
	var warnings []Warning

	if txn.Amount.Cents < 0 {
		warnings = append(warnings, Warning{
			Kind:          WarnValidation,
			TransactionID: txn.ID,
			Message:       fmt.Sprintf("negative amount %s, transaction skipped", txn.Amount),
		})
		return nil, warnings, nil
	}

	count := txn.InstallmentCount
	if txn.PaidByCard && count < 0 {
		warnings = append(warnings, Warning{
			Kind:          WarnInstallmentCount,
			TransactionID: txn.ID,
			CardID:        txn.CardID,
			Message:       fmt.Sprintf("installment count %d is not a positive number, treating as a single payment", count),
		})
		count = 1
	}

	if !txn.PaidByCard || count <= 1 {
		return []core.Installment{e.single(txn)}, warnings, nil
	}

	current := txn.CurrentInstallment
	if current == 0 {
		current = 1
	}
	if current < 1 || current > count {
		warnings = append(warnings, Warning{
			Kind:          WarnValidation,
			TransactionID: txn.ID,
			CardID:        txn.CardID,
			Message:       fmt.Sprintf("current installment %d outside [1..%d], transaction skipped", current, count),
		})
		return nil, warnings, nil
	}

	shares := SplitAmount(txn.Amount, count)
	if got := sumShares(shares); got != txn.Amount {
		return nil, warnings, fmt.Errorf("%w: transaction %s: %s split into %d gives %s",
			ErrShareMismatch, txn.ID, txn.Amount, count, got)
	}

	groupID := e.newGroupID()

	last := current
	if txn.AutoGenerateFuture {
		last = count
	}

	installments := make([]core.Installment, 0, last-current+1)
	for idx := current; idx <= last; idx++ {
		installments = append(installments, core.Installment{
			GroupID:           groupID,
			Index:             idx,
			TotalInstallments: count,
			Date:              txn.Date.AddMonths(idx - current),
			Amount:            shares[idx-1],
			CardID:            txn.CardID,
			Kind:              txn.Kind,
			Category:          txn.Category,
			Description:       installmentDescription(txn.Description, idx, count),
			OwnerProfile:      txn.OwnerProfile,
		})
	}
	return installments, warnings, nil
}

// single builds the one-installment form used for non-card transactions and
// single-shot purchases.
func (e *Expander) single(txn core.Transaction) core.Installment {
	index := txn.CurrentInstallment
	if index < 1 {
		index = 1
	}
	total := txn.InstallmentCount
	if total < 1 {
		total = 1
	}
	return core.Installment{
		Index:             index,
		TotalInstallments: total,
		Date:              txn.Date,
		Amount:            txn.Amount,
		CardID:            txn.CardID,
		Kind:              txn.Kind,
		Category:          txn.Category,
		Description:       installmentDescription(txn.Description, index, total),
		OwnerProfile:      txn.OwnerProfile,
	}
}

func installmentDescription(base string, index, total int) string {
	if total <= 1 {
		return base
	}
	return fmt.Sprintf("%s (%d/%d)", base, index, total)
}
