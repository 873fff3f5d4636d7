package services

import (
	"context"
	"testing"
	"time"

	"fatura/internal/core"
	"fatura/internal/storage"
)

func fixedNow(date string) func() time.Time {
	t, _ := time.Parse("2006-01-02", date)
	return func() time.Time { return t }
}

func seedRepo(t *testing.T) *storage.MemoryRepository {
	t.Helper()
	ctx := context.Background()
	repo := storage.NewMemoryRepository()

	if err := repo.UpsertCard(ctx, core.Card{ID: "visa", OwnerProfile: "ana", ClosingDay: 10, DueDay: 15}); err != nil {
		t.Fatal(err)
	}
	txn := core.Transaction{
		ID:                 "t1",
		Date:               core.NewDate(2024, 1, 20),
		Kind:               core.Expense,
		Category:           "eletrônicos",
		Description:        "notebook",
		Amount:             core.Money{Cents: 30000},
		PaidByCard:         true,
		CardID:             "visa",
		InstallmentCount:   3,
		AutoGenerateFuture: true,
	}
	if err := repo.CreateTransaction(ctx, txn); err != nil {
		t.Fatal(err)
	}
	return repo
}

func TestProjectionService_Project(t *testing.T) {
	svc := NewProjectionService(seedRepo(t), core.Money{Cents: 100000}, 5)
	svc.now = fixedNow("2024-01-20")

	proj, err := svc.Project(context.Background(), 6)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}

	// Purchase on Jan 20 with closing day 10 bills in Feb, Mar and Apr.
	if len(proj.Invoices) != 3 {
		t.Fatalf("invoices = %d, want 3", len(proj.Invoices))
	}
	first := proj.Invoices[0]
	if first.Year != 2024 || first.Month != 2 {
		t.Errorf("first invoice month = %d-%d, want 2024-2", first.Year, first.Month)
	}
	if first.Total.Cents != 10000 {
		t.Errorf("first invoice total = %d, want 10000", first.Total.Cents)
	}
	if first.DueDate.Format("2006-01-02") != "2024-02-15" {
		t.Errorf("first due date = %s", first.DueDate.Format("2006-01-02"))
	}
	if len(proj.Warnings) != 0 {
		t.Errorf("warnings = %v", proj.Warnings)
	}
}

func TestProjectionService_CachesUntilInvalidated(t *testing.T) {
	repo := seedRepo(t)
	svc := NewProjectionService(repo, core.Money{Cents: 100000}, 5)
	svc.now = fixedNow("2024-01-20")
	ctx := context.Background()

	before, err := svc.Project(ctx, 6)
	if err != nil {
		t.Fatal(err)
	}

	extra := core.Transaction{
		ID:          "t2",
		Date:        core.NewDate(2024, 1, 5),
		Kind:        core.Expense,
		Category:    "mercado",
		Description: "compra",
		Amount:      core.Money{Cents: 5000},
		PaidByCard:  true,
		CardID:      "visa",
	}
	if err := repo.CreateTransaction(ctx, extra); err != nil {
		t.Fatal(err)
	}

	// Same key, still cached: the new transaction is not visible yet.
	cached, err := svc.Project(ctx, 6)
	if err != nil {
		t.Fatal(err)
	}
	if len(cached.Invoices) != len(before.Invoices) {
		t.Fatalf("cached projection changed without invalidation")
	}

	svc.InvalidateCache()
	fresh, err := svc.Project(ctx, 6)
	if err != nil {
		t.Fatal(err)
	}
	// The Jan 5 purchase bills in January, adding one invoice to the window.
	if len(fresh.Invoices) != len(before.Invoices)+1 {
		t.Fatalf("fresh invoices = %d, want %d", len(fresh.Invoices), len(before.Invoices)+1)
	}
}

func TestLedgerService_WritesInvalidateProjections(t *testing.T) {
	repo := seedRepo(t)
	projections := NewProjectionService(repo, core.Money{Cents: 100000}, 5)
	projections.now = fixedNow("2024-01-20")
	svc := NewLedgerService(repo, projections)
	ctx := context.Background()

	before, err := projections.Project(ctx, 6)
	if err != nil {
		t.Fatal(err)
	}

	id, err := svc.CreateTransaction(ctx, core.Transaction{
		Date:        core.NewDate(2024, 1, 5),
		Kind:        core.Expense,
		Category:    "mercado",
		Description: "compra",
		Amount:      core.Money{Cents: 5000},
		PaidByCard:  true,
		CardID:      "visa",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated id")
	}

	after, err := projections.Project(ctx, 6)
	if err != nil {
		t.Fatal(err)
	}
	if len(after.Invoices) != len(before.Invoices)+1 {
		t.Fatalf("projection not refreshed after write")
	}

	if err := svc.DeleteTransaction(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	again, _ := projections.Project(ctx, 6)
	if len(again.Invoices) != len(before.Invoices) {
		t.Fatalf("projection not refreshed after delete")
	}
}

func TestLedgerService_MonthlySummary(t *testing.T) {
	repo := storage.NewMemoryRepository()
	projections := NewProjectionService(repo, core.Money{Cents: 100000}, 5)
	svc := NewLedgerService(repo, projections)
	ctx := context.Background()

	_, _ = svc.CreateTransaction(ctx, core.Transaction{
		Date: core.NewDate(2024, 3, 5), Kind: core.Income,
		Category: "salário", Description: "salário março",
		Amount: core.Money{Cents: 500000}, OwnerProfile: "ana",
	})
	_, _ = svc.CreateTransaction(ctx, core.Transaction{
		Date: core.NewDate(2024, 3, 10), Kind: core.Expense,
		Category: "mercado", Description: "compra",
		Amount: core.Money{Cents: 120000}, OwnerProfile: "ana",
	})

	totals, err := svc.MonthlySummary(ctx, core.NewDate(2024, 1, 1), core.NewDate(2024, 12, 31), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(totals) != 1 {
		t.Fatalf("months = %d, want 1", len(totals))
	}
	if totals[0].Balance.Cents != 380000 {
		t.Errorf("balance = %d, want 380000", totals[0].Balance.Cents)
	}
}
