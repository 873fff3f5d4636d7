package services

import (
	"context"
	"fmt"
	"log/slog"

	"fatura/internal/amqp"
	"fatura/internal/core"
)

// AlertPublisher is the messaging port of the alert processor. The AMQP
// client satisfies it.
type AlertPublisher interface {
	PublishInvoiceAlert(ctx context.Context, msg *amqp.InvoiceAlertMessage) error
}

// AlertProcessor runs one projection and publishes an alert message for every
// invoice that is due soon or over the amount threshold. Closed invoices are
// history and are not re-announced.
type AlertProcessor struct {
	projections *ProjectionService
	publisher   AlertPublisher
	monthsAhead int
}

func NewAlertProcessor(projections *ProjectionService, publisher AlertPublisher, monthsAhead int) *AlertProcessor {
	return &AlertProcessor{
		projections: projections,
		publisher:   publisher,
		monthsAhead: monthsAhead,
	}
}

// ProcessAlerts projects the configured window and publishes alerts. Returns
// the number of alerts published; per-invoice publish failures are logged and
// skipped so one broker hiccup does not drop the rest of the batch.
func (p *AlertProcessor) ProcessAlerts(ctx context.Context) (int, error) {
	if p.publisher == nil {
		slog.WarnContext(ctx, "AMQP publisher not available, skipping alert cycle")
		return 0, nil
	}

	proj, err := p.projections.Project(ctx, p.monthsAhead)
	if err != nil {
		return 0, fmt.Errorf("project invoices: %w", err)
	}

	published := 0
	for _, inv := range proj.Invoices {
		if !alertable(inv.Status) {
			continue
		}
		msg := amqp.NewInvoiceAlertMessage(
			inv.CardID,
			inv.Owner,
			inv.Year,
			inv.Month,
			inv.Total.Cents,
			string(inv.Status),
			inv.DueDate.Format("2006-01-02"),
		)
		if err := p.publisher.PublishInvoiceAlert(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "Failed to publish invoice alert",
				"card_id", inv.CardID,
				"year", inv.Year,
				"month", inv.Month,
				"error", err)
			continue
		}
		published++
	}

	slog.InfoContext(ctx, "Alert cycle complete",
		"invoices", len(proj.Invoices),
		"alerts_published", published)
	return published, nil
}

func alertable(s core.Status) bool {
	return s == core.StatusDueSoon || s == core.StatusHighValue
}
