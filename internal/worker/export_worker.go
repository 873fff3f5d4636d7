// Package worker exports alerted invoices to an external sheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fatura/internal/amqp"
	"fatura/internal/core"
	"fatura/internal/sheets"
)

// ExportWorker turns invoice alert messages into sheet rows.
type ExportWorker struct {
	writer sheets.InvoiceWriter
}

func NewExportWorker(writer sheets.InvoiceWriter) *ExportWorker {
	return &ExportWorker{writer: writer}
}

// HandleAlertMessage appends the alerted invoice to the configured sheet. The
// message carries the full invoice payload so no projection re-run is needed.
func (w *ExportWorker) HandleAlertMessage(msg *amqp.InvoiceAlertMessage) error {
	ctx := context.Background()

	if w.writer == nil {
		slog.WarnContext(ctx, "No invoice writer configured, skipping export",
			"card_id", msg.CardID)
		return nil
	}

	inv, err := invoiceFromMessage(msg)
	if err != nil {
		// Malformed payloads cannot succeed on retry.
		slog.ErrorContext(ctx, "Dropping malformed alert message",
			"card_id", msg.CardID,
			"due_date", msg.DueDate,
			"error", err)
		return nil
	}

	ref, err := w.writer.Append(ctx, inv)
	if err != nil {
		return fmt.Errorf("append invoice to sheet: %w", err)
	}

	slog.InfoContext(ctx, "Exported invoice alert",
		"card_id", inv.CardID,
		"year", inv.Year,
		"month", inv.Month,
		"total_cents", inv.Total.Cents,
		"row_ref", ref)
	return nil
}

func invoiceFromMessage(msg *amqp.InvoiceAlertMessage) (core.Invoice, error) {
	if msg.CardID == "" {
		return core.Invoice{}, fmt.Errorf("missing card id")
	}
	if msg.Month < 1 || msg.Month > 12 {
		return core.Invoice{}, fmt.Errorf("invalid month %d", msg.Month)
	}
	due, err := time.Parse("2006-01-02", msg.DueDate)
	if err != nil {
		return core.Invoice{}, fmt.Errorf("parse due date %q: %w", msg.DueDate, err)
	}
	return core.Invoice{
		CardID:  msg.CardID,
		Owner:   msg.Owner,
		Year:    msg.Year,
		Month:   msg.Month,
		Total:   core.Money{Cents: msg.TotalCents},
		DueDate: core.Date{Time: due},
		Status:  core.Status(msg.Status),
	}, nil
}
