package ledger

import (
	"fmt"

	"fatura/internal/core"
)

type (
	// Params are the scalar knobs of one projection run.
	Params struct {
		Today              core.Date
		AlertAmount        core.Money
		AlertDaysBeforeDue int
		Window             Window
	}

	// Projection is the result of one run: the ordered invoice list, the
	// drill-down detail per invoice, and the warnings recovered along the way.
	Projection struct {
		Invoices []core.Invoice
		Details  map[core.InvoiceKey][]core.Installment
		Warnings []Warning
	}

	// Projector runs the full pipeline: expansion, billing-cycle resolution,
	// windowed aggregation and status classification.
	Projector struct {
		expander *Expander
	}
)

// NewProjector creates a Projector. The id generator is only used when
// expanding purchases, see NewExpander.
func NewProjector(gen IDGenerator) *Projector {
	return &Projector{expander: NewExpander(gen)}
}

// Project computes the forward-looking invoice schedule for a snapshot of
// transactions and cards. Given identical inputs the output is identical,
// ordering included; nothing is mutated and nothing is persisted.
func (p *Projector) Project(txns []core.Transaction, cards []core.Card, params Params) (Projection, error) {
	var (
		installments []core.Installment
		warnings     []Warning
	)
	for _, txn := range txns {
		expanded, warns, err := p.expander.Expand(txn)
		if err != nil {
			return Projection{}, fmt.Errorf("expand transaction %s: %w", txn.ID, err)
		}
		warnings = append(warnings, warns...)
		installments = append(installments, expanded...)
	}

	invoices, details, aggWarnings, err := Aggregate(installments, cards, params.Window)
	if err != nil {
		return Projection{}, err
	}
	warnings = append(warnings, aggWarnings...)

	for i := range invoices {
		invoices[i].DueDate, invoices[i].Status = EvaluateStatus(
			invoices[i], params.Today, params.AlertAmount, params.AlertDaysBeforeDue)
	}

	return Projection{Invoices: invoices, Details: details, Warnings: warnings}, nil
}
