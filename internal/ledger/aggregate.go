package ledger

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"fatura/internal/core"
)

// Window is the span of consecutive invoice months a projection covers.
type Window struct {
	Start  core.MonthKey
	Months int
}

func (w Window) Validate() error {
	if err := w.Start.Validate(); err != nil {
		return err
	}
	if w.Months < 1 || w.Months > 24 {
		return ErrInvalidWindow
	}
	return nil
}

// Contains reports whether k falls inside the window.
func (w Window) Contains(k core.MonthKey) bool {
	idx := (k.Year-w.Start.Year)*12 + k.Month - w.Start.Month
	return idx >= 0 && idx < w.Months
}

// Keys returns the window's month keys in calendar order.
func (w Window) Keys() []core.MonthKey {
	keys := make([]core.MonthKey, 0, w.Months)
	k := w.Start
	for i := 0; i < w.Months; i++ {
		keys = append(keys, k)
		k = k.Next()
	}
	return keys
}

// Aggregate groups card installments into invoice candidates inside the
// requested window.
//
// Installments whose card is missing from the registry are not dropped: they
// aggregate under their own card id with the fallback card profile, and a
// single warning is emitted per missing card. Each card's installments are
// disjoint, so per-card grouping runs concurrently; the merge is sequential
// and ordered, keeping the output deterministic. Invoices come back sorted by
// (year, month, card id) and detail lines by (date, group, index); callers
// rely on that ordering.
//
// Due day and owner are captured from the card here, not recomputed later.
func Aggregate(installments []core.Installment, cards []core.Card, w Window) ([]core.Invoice, map[core.InvoiceKey][]core.Installment, []Warning, error) {
	if err := w.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("aggregate: %w", err)
	}

	registry := make(map[string]core.Card, len(cards))
	for _, c := range cards {
		registry[c.ID] = c
	}

	// Group by card, keeping first-seen order out of the way by sorting ids.
	byCard := make(map[string][]core.Installment)
	for _, inst := range installments {
		if inst.CardID == "" {
			continue // cash and debit movements never reach an invoice
		}
		byCard[inst.CardID] = append(byCard[inst.CardID], inst)
	}
	cardIDs := make([]string, 0, len(byCard))
	for id := range byCard {
		cardIDs = append(cardIDs, id)
	}
	sort.Strings(cardIDs)

	var warnings []Warning
	for _, id := range cardIDs {
		if _, ok := registry[id]; !ok {
			warnings = append(warnings, Warning{
				Kind:    WarnMissingCard,
				CardID:  id,
				Message: fmt.Sprintf("card %q not found in registry, using fallback closing/due day %d", id, core.FallbackCardDay),
			})
		}
	}

	// Per-card billing-cycle resolution; cards share nothing, so fan out.
	perCard := make([]map[core.MonthKey][]core.Installment, len(cardIDs))
	var g errgroup.Group
	for i, id := range cardIDs {
		card, ok := registry[id]
		if !ok {
			card = core.FallbackCard(id)
		}
		group := byCard[id]
		g.Go(func() error {
			months := make(map[core.MonthKey][]core.Installment)
			for _, inst := range group {
				key := BillingMonth(inst.Date, card.ClosingDay)
				if !w.Contains(key) {
					continue
				}
				months[key] = append(months[key], inst)
			}
			perCard[i] = months
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, nil, fmt.Errorf("aggregate: %w", err)
	}

	invoices := make([]core.Invoice, 0)
	details := make(map[core.InvoiceKey][]core.Installment)
	for _, month := range w.Keys() {
		for i, id := range cardIDs {
			group := perCard[i][month]
			if len(group) == 0 {
				continue
			}
			card, ok := registry[id]
			if !ok {
				card = core.FallbackCard(id)
			}

			lines := append([]core.Installment(nil), group...)
			sort.Slice(lines, func(a, b int) bool {
				if !lines[a].Date.Equal(lines[b].Date.Time) {
					return lines[a].Date.Before(lines[b].Date.Time)
				}
				if lines[a].GroupID != lines[b].GroupID {
					return lines[a].GroupID < lines[b].GroupID
				}
				return lines[a].Index < lines[b].Index
			})

			var total core.Money
			for _, line := range lines {
				total = total.Add(line.Amount)
			}

			invoices = append(invoices, core.Invoice{
				CardID:           id,
				Owner:            card.OwnerProfile,
				Year:             month.Year,
				Month:            month.Month,
				Total:            total,
				TransactionCount: len(lines),
				DueDay:           card.EffectiveDueDay(),
			})
			details[core.InvoiceKey{CardID: id, Month: month}] = lines
		}
	}
	return invoices, details, warnings, nil
}
