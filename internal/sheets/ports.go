package sheets

import (
	"context"

	"fatura/internal/core"
)

// Ports for outbound adapters.
type (
	// InvoiceWriter appends one projected invoice to an external sheet.
	InvoiceWriter interface {
		Append(ctx context.Context, inv core.Invoice) (rowRef string, err error)
	}
)
