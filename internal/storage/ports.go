package storage

import (
	"context"

	"fatura/internal/core"
)

// Repository is the persistence port shared by the HTTP layer and the
// projection services. Both the SQLite and the in-memory implementations
// satisfy it.
type Repository interface {
	CreateTransaction(ctx context.Context, t core.Transaction) error
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
	SoftDeleteTransaction(ctx context.Context, id string) error

	UpsertCard(ctx context.Context, c core.Card) error
	ListCards(ctx context.Context) ([]core.Card, error)
	DeleteCard(ctx context.Context, id string) error

	// Snapshot returns independent copies of the live transactions and the
	// card registry for one projection run.
	Snapshot(ctx context.Context) ([]core.Transaction, []core.Card, error)

	Close() error
}
