// Package memory is an in-process InvoiceWriter used in tests and when no
// spreadsheet is configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"fatura/internal/core"
	ports "fatura/internal/sheets"
)

type Store struct {
	mu    sync.Mutex
	items []core.Invoice
}

var _ ports.InvoiceWriter = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// Append stores the invoice and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, inv core.Invoice) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, inv)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// Invoices returns a copy of everything appended so far.
func (s *Store) Invoices() []core.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Invoice(nil), s.items...)
}
