package storage

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"fatura/internal/core"
)

// MemoryRepository keeps everything in process memory. Useful for tests and
// for running the server without a database file.
type MemoryRepository struct {
	mu      sync.Mutex
	txns    map[string]core.Transaction
	deleted map[string]time.Time
	cards   map[string]core.Card
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		txns:    make(map[string]core.Transaction),
		deleted: make(map[string]time.Time),
		cards:   make(map[string]core.Card),
	}
}

func (m *MemoryRepository) CreateTransaction(_ context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txns[t.ID] = t
	return nil
}

func (m *MemoryRepository) SoftDeleteTransaction(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.txns[id]; !ok {
		return sql.ErrNoRows
	}
	if _, gone := m.deleted[id]; gone {
		return sql.ErrNoRows
	}
	m.deleted[id] = time.Now().UTC()
	return nil
}

func (m *MemoryRepository) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]core.Transaction, 0, len(m.txns))
	for id, t := range m.txns {
		if _, gone := m.deleted[id]; gone {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.Before(out[j].Date.Time)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryRepository) UpsertCard(_ context.Context, c core.Card) error {
	if err := c.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cards[c.ID] = c
	return nil
}

func (m *MemoryRepository) DeleteCard(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cards[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.cards, id)
	return nil
}

func (m *MemoryRepository) ListCards(_ context.Context) ([]core.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]core.Card, 0, len(m.cards))
	for _, c := range m.cards {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryRepository) Snapshot(ctx context.Context) ([]core.Transaction, []core.Card, error) {
	txns, err := m.ListTransactions(ctx)
	if err != nil {
		return nil, nil, err
	}
	cards, err := m.ListCards(ctx)
	if err != nil {
		return nil, nil, err
	}
	return txns, cards, nil
}

func (m *MemoryRepository) Close() error { return nil }
