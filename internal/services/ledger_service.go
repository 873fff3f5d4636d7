package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"fatura/internal/core"
	"fatura/internal/ledger"
	"fatura/internal/storage"
)

// LedgerService is the write path: it persists transactions and cards and
// invalidates memoized projections on every change.
type LedgerService struct {
	repo        storage.Repository
	projections *ProjectionService
	newID       func() string
}

func NewLedgerService(repo storage.Repository, projections *ProjectionService) *LedgerService {
	return &LedgerService{
		repo:        repo,
		projections: projections,
		newID:       uuid.NewString,
	}
}

// CreateTransaction stores the transaction and returns its id, generating one
// when the caller left it empty.
func (s *LedgerService) CreateTransaction(ctx context.Context, t core.Transaction) (string, error) {
	if t.ID == "" {
		t.ID = s.newID()
	}
	if err := s.repo.CreateTransaction(ctx, t); err != nil {
		return "", fmt.Errorf("save transaction: %w", err)
	}
	s.projections.InvalidateCache()
	return t.ID, nil
}

func (s *LedgerService) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.repo.SoftDeleteTransaction(ctx, id); err != nil {
		return err
	}
	s.projections.InvalidateCache()
	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}

func (s *LedgerService) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return s.repo.ListTransactions(ctx)
}

func (s *LedgerService) UpsertCard(ctx context.Context, c core.Card) error {
	if err := s.repo.UpsertCard(ctx, c); err != nil {
		return err
	}
	s.projections.InvalidateCache()
	return nil
}

func (s *LedgerService) DeleteCard(ctx context.Context, id string) error {
	if err := s.repo.DeleteCard(ctx, id); err != nil {
		return err
	}
	s.projections.InvalidateCache()
	slog.InfoContext(ctx, "Card deleted", "id", id)
	return nil
}

func (s *LedgerService) ListCards(ctx context.Context) ([]core.Card, error) {
	return s.repo.ListCards(ctx)
}

// MonthlySummary pivots the raw transactions into per-month income, expense
// and balance totals.
func (s *LedgerService) MonthlySummary(ctx context.Context, from, to core.Date, ownerProfile string) ([]ledger.MonthTotals, error) {
	txns, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return ledger.MonthlySummary(txns, from, to, ownerProfile), nil
}

func (s *LedgerService) Close() error {
	return s.repo.Close()
}
