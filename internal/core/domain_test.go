package core

import (
	"testing"
)

func TestDateAddMonths(t *testing.T) {
	cases := []struct {
		in   Date
		n    int
		want Date
	}{
		{NewDate(2024, 1, 20), 1, NewDate(2024, 2, 20)},
		{NewDate(2024, 1, 20), 2, NewDate(2024, 3, 20)},
		{NewDate(2024, 1, 31), 1, NewDate(2024, 2, 29)}, // leap year clamp
		{NewDate(2023, 1, 31), 1, NewDate(2023, 2, 28)},
		{NewDate(2024, 10, 31), 1, NewDate(2024, 11, 30)},
		{NewDate(2024, 11, 15), 2, NewDate(2025, 1, 15)}, // year rollover
		{NewDate(2024, 12, 31), 2, NewDate(2025, 2, 28)},
	}
	for i, tc := range cases {
		got := tc.in.AddMonths(tc.n)
		if !got.Equal(tc.want.Time) {
			t.Fatalf("case %d: %v + %d months = %v, want %v", i, tc.in, tc.n, got, tc.want)
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year, month, want int
	}{
		{2024, 2, 29},
		{2023, 2, 28},
		{2024, 4, 30},
		{2024, 12, 31},
		{2024, 13, 31}, // normalized to Jan 2025
	}
	for _, tc := range cases {
		if got := DaysInMonth(tc.year, tc.month); got != tc.want {
			t.Fatalf("DaysInMonth(%d, %d) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
}

func TestMonthKeyNext(t *testing.T) {
	if got := (MonthKey{Year: 2024, Month: 3}).Next(); got != (MonthKey{Year: 2024, Month: 4}) {
		t.Fatalf("Next() = %v", got)
	}
	if got := (MonthKey{Year: 2024, Month: 12}).Next(); got != (MonthKey{Year: 2025, Month: 1}) {
		t.Fatalf("Next() across year = %v", got)
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Date:        NewDate(2024, 1, 20),
		Kind:        Expense,
		Category:    "Groceries",
		Description: "market",
		Amount:      Money{Cents: 1000},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	card := good
	card.PaidByCard = true
	card.CardID = "visa"
	card.InstallmentCount = 3
	card.CurrentInstallment = 1
	if err := card.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Kind: Expense, Category: "c", Description: "d", Amount: Money{Cents: 1}}, // zero date
		{Date: NewDate(2024, 1, 1), Kind: "other", Category: "c", Description: "d", Amount: Money{Cents: 1}},
		{Date: NewDate(2024, 1, 1), Kind: Expense, Category: "c", Description: "", Amount: Money{Cents: 1}},
		{Date: NewDate(2024, 1, 1), Kind: Expense, Category: "", Description: "d", Amount: Money{Cents: 1}},
		{Date: NewDate(2024, 1, 1), Kind: Expense, Category: "c", Description: "d", Amount: Money{Cents: -1}},
		{Date: NewDate(2024, 1, 1), Kind: Expense, Category: "c", Description: "d", Amount: Money{Cents: 1}, PaidByCard: true},                                                           // missing card id
		{Date: NewDate(2024, 1, 1), Kind: Expense, Category: "c", Description: "d", Amount: Money{Cents: 1}, PaidByCard: true, CardID: "v", InstallmentCount: 3, CurrentInstallment: 4},  // out of range
		{Date: NewDate(2024, 1, 1), Kind: Expense, Category: "c", Description: "d", Amount: Money{Cents: 1}, PaidByCard: true, CardID: "v", InstallmentCount: 3, CurrentInstallment: -1}, // negative
	}
	for i, txn := range bads {
		if err := txn.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestCardValidate(t *testing.T) {
	if err := (Card{ID: "visa", ClosingDay: 10, DueDay: 20}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Card{ID: "visa", ClosingDay: 10}).Validate(); err != nil {
		t.Fatalf("expected ok without due day, got %v", err)
	}
	bads := []Card{
		{ID: "", ClosingDay: 10},
		{ID: "visa", ClosingDay: 0},
		{ID: "visa", ClosingDay: 32},
		{ID: "visa", ClosingDay: 10, DueDay: 40},
	}
	for i, c := range bads {
		if err := c.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestCardEffectiveDueDay(t *testing.T) {
	if got := (Card{ClosingDay: 5}).EffectiveDueDay(); got != 5 {
		t.Fatalf("EffectiveDueDay() = %d, want closing day fallback", got)
	}
	if got := (Card{ClosingDay: 5, DueDay: 15}).EffectiveDueDay(); got != 15 {
		t.Fatalf("EffectiveDueDay() = %d, want 15", got)
	}
}

func TestFallbackCard(t *testing.T) {
	c := FallbackCard("gone")
	if c.ID != "gone" || c.ClosingDay != 31 || c.DueDay != 31 || c.OwnerProfile != "" {
		t.Fatalf("unexpected fallback card: %+v", c)
	}
	if c.Validate() != nil {
		t.Fatalf("fallback card must be valid")
	}
}

func TestDaysUntil(t *testing.T) {
	today := NewDate(2024, 3, 10)
	if got := today.DaysUntil(NewDate(2024, 3, 15)); got != 5 {
		t.Fatalf("DaysUntil = %d, want 5", got)
	}
	if got := today.DaysUntil(NewDate(2024, 3, 9)); got != -1 {
		t.Fatalf("DaysUntil = %d, want -1", got)
	}
}
