// Package services orchestrates the ledger engine across storage, cache and
// messaging.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fatura/internal/cache"
	"fatura/internal/core"
	"fatura/internal/ledger"
	"fatura/internal/storage"
)

// ProjectionService computes invoice projections from storage snapshots and
// memoizes them until the next write.
type ProjectionService struct {
	repo      storage.Repository
	projector *ledger.Projector
	cache     *cache.LRUCache[ledger.Projection]

	alertAmount        core.Money
	alertDaysBeforeDue int

	// now is swappable in tests.
	now func() time.Time
}

func NewProjectionService(repo storage.Repository, alertAmount core.Money, alertDaysBeforeDue int) *ProjectionService {
	return &ProjectionService{
		repo:               repo,
		projector:          ledger.NewProjector(nil),
		cache:              cache.NewLRUCache[ledger.Projection](32, 15*time.Minute),
		alertAmount:        alertAmount,
		alertDaysBeforeDue: alertDaysBeforeDue,
		now:                time.Now,
	}
}

// Cache exposes the projection cache for cleanup registration.
func (s *ProjectionService) Cache() *cache.LRUCache[ledger.Projection] {
	return s.cache
}

// InvalidateCache drops all memoized projections. Called after every write.
func (s *ProjectionService) InvalidateCache() {
	s.cache.Clear()
}

// Project returns the invoice schedule for the next months starting at the
// current calendar month. Results are cached per day and window length.
func (s *ProjectionService) Project(ctx context.Context, months int) (ledger.Projection, error) {
	today := core.Date{Time: s.now().UTC().Truncate(24 * time.Hour)}
	key := fmt.Sprintf("projection:%s:%d", today.Format("2006-01-02"), months)

	if proj, ok := s.cache.Get(key); ok {
		return proj, nil
	}

	txns, cards, err := s.repo.Snapshot(ctx)
	if err != nil {
		return ledger.Projection{}, fmt.Errorf("snapshot: %w", err)
	}

	params := ledger.Params{
		Today:              today,
		AlertAmount:        s.alertAmount,
		AlertDaysBeforeDue: s.alertDaysBeforeDue,
		Window:             ledger.Window{Start: today.Key(), Months: months},
	}

	started := time.Now()
	proj, err := s.projector.Project(txns, cards, params)
	if err != nil {
		return ledger.Projection{}, err
	}

	slog.InfoContext(ctx, "Projection computed",
		"transactions", len(txns),
		"cards", len(cards),
		"months", months,
		"invoices", len(proj.Invoices),
		"warnings", len(proj.Warnings),
		"duration", time.Since(started))

	for _, w := range proj.Warnings {
		slog.WarnContext(ctx, "Projection warning",
			"kind", string(w.Kind),
			"transaction_id", w.TransactionID,
			"card_id", w.CardID,
			"message", w.Message)
	}

	s.cache.Set(key, proj)
	return proj, nil
}
