package http

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"fatura/internal/core"
)

func TestTransactionRequest_ToTransaction(t *testing.T) {
	req := transactionRequest{
		Date:               "2024-01-20",
		Kind:               "expense",
		Category:           "eletrônicos",
		Description:        "  notebook  ",
		Amount:             "1500,00",
		OwnerProfile:       "ana",
		PaidByCard:         true,
		CardID:             "visa",
		InstallmentCount:   3,
		AutoGenerateFuture: true,
	}

	txn, err := req.toTransaction()
	if err != nil {
		t.Fatalf("toTransaction: %v", err)
	}
	if txn.Amount.Cents != 150000 {
		t.Errorf("amount = %d, want 150000", txn.Amount.Cents)
	}
	if txn.Description != "notebook" {
		t.Errorf("description = %q, want trimmed", txn.Description)
	}
	if txn.Date.Format("2006-01-02") != "2024-01-20" {
		t.Errorf("date = %s", txn.Date.Format("2006-01-02"))
	}
}

func TestTransactionRequest_Invalid(t *testing.T) {
	base := func() transactionRequest {
		return transactionRequest{
			Date:        "2024-01-20",
			Kind:        "expense",
			Category:    "mercado",
			Description: "compra",
			Amount:      "10.50",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*transactionRequest)
		errText string
		wantErr error
	}{
		{name: "bad date", mutate: func(r *transactionRequest) { r.Date = "20/01/2024" }, errText: "invalid date"},
		{name: "bad amount", mutate: func(r *transactionRequest) { r.Amount = "abc" }, errText: "invalid amount"},
		{name: "bad kind", mutate: func(r *transactionRequest) { r.Kind = "transfer" }, wantErr: core.ErrInvalidKind},
		{name: "card without id", mutate: func(r *transactionRequest) { r.PaidByCard = true }, wantErr: core.ErrEmptyCardID},
		{
			name: "installment out of range",
			mutate: func(r *transactionRequest) {
				r.PaidByCard = true
				r.CardID = "visa"
				r.InstallmentCount = 3
				r.CurrentInstallment = 5
			},
			wantErr: core.ErrInvalidInstallment,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base()
			tt.mutate(&req)
			_, err := req.toTransaction()
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.errText != "" && !strings.Contains(err.Error(), tt.errText) {
				t.Errorf("error = %v, want it to contain %q", err, tt.errText)
			}
		})
	}
}

func TestAmountField_UnmarshalJSON(t *testing.T) {
	var a amountField
	if err := a.UnmarshalJSON([]byte(`"33,50"`)); err != nil || string(a) != "33,50" {
		t.Errorf("string amount = %q, err %v", a, err)
	}
	if err := a.UnmarshalJSON([]byte(`33.5`)); err != nil || string(a) != "33.5" {
		t.Errorf("number amount = %q, err %v", a, err)
	}
	if err := a.UnmarshalJSON([]byte(`true`)); err == nil {
		t.Error("expected error for boolean amount")
	}
}

func TestParseMonths(t *testing.T) {
	q := url.Values{}
	if m, err := parseMonths(q, 12); err != nil || m != 12 {
		t.Errorf("default months = %d, err %v", m, err)
	}
	q.Set("months", "6")
	if m, err := parseMonths(q, 12); err != nil || m != 6 {
		t.Errorf("months = %d, err %v", m, err)
	}
	q.Set("months", "abc")
	if _, err := parseMonths(q, 12); err == nil {
		t.Error("expected error for non-numeric months")
	}
}

func TestParseInvoicePath(t *testing.T) {
	card, year, month, err := parseInvoicePath("/api/invoices/nubank%20gold/2024/3")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if card != "nubank gold" || year != 2024 || month != 3 {
		t.Errorf("got %q %d %d", card, year, month)
	}

	for _, path := range []string{
		"/api/invoices/",
		"/api/invoices/visa/2024",
		"/api/invoices/visa/abcd/3",
		"/api/invoices/visa/2024/13",
	} {
		if _, _, _, err := parseInvoicePath(path); err == nil {
			t.Errorf("expected error for %q", path)
		}
	}
}

func TestParseDateRange(t *testing.T) {
	q := url.Values{}
	q.Set("from", "2024-03-01")
	q.Set("to", "2024-06-30")
	from, to, err := parseDateRange(q)
	if err != nil {
		t.Fatal(err)
	}
	if from.Format("2006-01-02") != "2024-03-01" || to.Format("2006-01-02") != "2024-06-30" {
		t.Errorf("range = %s .. %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	}

	q.Set("to", "2024-01-01")
	if _, _, err := parseDateRange(q); err == nil {
		t.Error("expected error for inverted range")
	}
}

func TestPathID(t *testing.T) {
	id, err := pathID("/api/transactions/abc-123", "/api/transactions/")
	if err != nil || id != "abc-123" {
		t.Errorf("id = %q, err %v", id, err)
	}
	if _, err := pathID("/api/transactions/", "/api/transactions/"); err == nil {
		t.Error("expected error for empty id")
	}
	if _, err := pathID("/api/transactions/a/b", "/api/transactions/"); err == nil {
		t.Error("expected error for nested path")
	}
}
