package memory

import (
	"context"
	"testing"

	"fatura/internal/core"
)

func TestAppendReturnsSequentialRefs(t *testing.T) {
	s := New()
	ctx := context.Background()

	inv := core.Invoice{CardID: "visa", Year: 2024, Month: 3, Total: core.Money{Cents: 12345}}
	ref, err := s.Append(ctx, inv)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if ref != "mem:1" {
		t.Errorf("ref = %q, want mem:1", ref)
	}

	ref, _ = s.Append(ctx, inv)
	if ref != "mem:2" {
		t.Errorf("second ref = %q, want mem:2", ref)
	}

	if got := len(s.Invoices()); got != 2 {
		t.Errorf("stored = %d, want 2", got)
	}
}

func TestInvoicesReturnsCopy(t *testing.T) {
	s := New()
	_, _ = s.Append(context.Background(), core.Invoice{CardID: "visa"})

	out := s.Invoices()
	out[0].CardID = "changed"
	if s.Invoices()[0].CardID != "visa" {
		t.Error("mutation of returned slice leaked into store")
	}
}
