package http

import (
	"encoding/json"
	"net/http"

	"fatura/internal/core"
	"fatura/internal/ledger"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type transactionResponse struct {
	ID                 string `json:"id"`
	Date               string `json:"date"`
	Kind               string `json:"kind"`
	Category           string `json:"category"`
	Description        string `json:"description"`
	AmountCents        int64  `json:"amount_cents"`
	Amount             string `json:"amount"`
	OwnerProfile       string `json:"owner_profile,omitempty"`
	PaidByCard         bool   `json:"paid_by_card"`
	CardID             string `json:"card_id,omitempty"`
	InstallmentCount   int    `json:"installment_count,omitempty"`
	CurrentInstallment int    `json:"current_installment,omitempty"`
	AutoGenerateFuture bool   `json:"auto_generate_future,omitempty"`
}

func buildTransactionResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:                 t.ID,
		Date:               t.Date.Format("2006-01-02"),
		Kind:               string(t.Kind),
		Category:           t.Category,
		Description:        t.Description,
		AmountCents:        t.Amount.Cents,
		Amount:             t.Amount.String(),
		OwnerProfile:       t.OwnerProfile,
		PaidByCard:         t.PaidByCard,
		CardID:             t.CardID,
		InstallmentCount:   t.InstallmentCount,
		CurrentInstallment: t.CurrentInstallment,
		AutoGenerateFuture: t.AutoGenerateFuture,
	}
}

type cardResponse struct {
	ID           string `json:"id"`
	Brand        string `json:"brand,omitempty"`
	OwnerProfile string `json:"owner_profile,omitempty"`
	ClosingDay   int    `json:"closing_day"`
	DueDay       int    `json:"due_day"`
}

func buildCardResponse(c core.Card) cardResponse {
	return cardResponse{
		ID:           c.ID,
		Brand:        c.Brand,
		OwnerProfile: c.OwnerProfile,
		ClosingDay:   c.ClosingDay,
		DueDay:       c.EffectiveDueDay(),
	}
}

type invoiceResponse struct {
	CardID           string `json:"card_id"`
	Owner            string `json:"owner,omitempty"`
	Year             int    `json:"year"`
	Month            int    `json:"month"`
	TotalCents       int64  `json:"total_cents"`
	Total            string `json:"total"`
	TransactionCount int    `json:"transaction_count"`
	DueDate          string `json:"due_date"`
	Status           string `json:"status"`
}

func buildInvoiceResponse(inv core.Invoice) invoiceResponse {
	return invoiceResponse{
		CardID:           inv.CardID,
		Owner:            inv.Owner,
		Year:             inv.Year,
		Month:            inv.Month,
		TotalCents:       inv.Total.Cents,
		Total:            inv.Total.String(),
		TransactionCount: inv.TransactionCount,
		DueDate:          inv.DueDate.Format("2006-01-02"),
		Status:           string(inv.Status),
	}
}

type installmentResponse struct {
	GroupID     string `json:"group_id,omitempty"`
	Index       int    `json:"index"`
	Total       int    `json:"total_installments"`
	Date        string `json:"date"`
	AmountCents int64  `json:"amount_cents"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Owner       string `json:"owner,omitempty"`
}

func buildInstallmentResponse(in core.Installment) installmentResponse {
	return installmentResponse{
		GroupID:     in.GroupID,
		Index:       in.Index,
		Total:       in.TotalInstallments,
		Date:        in.Date.Format("2006-01-02"),
		AmountCents: in.Amount.Cents,
		Amount:      in.Amount.String(),
		Category:    in.Category,
		Description: in.Description,
		Owner:       in.OwnerProfile,
	}
}

type warningResponse struct {
	Kind          string `json:"kind"`
	TransactionID string `json:"transaction_id,omitempty"`
	CardID        string `json:"card_id,omitempty"`
	Message       string `json:"message"`
}

func buildWarningResponses(warnings []ledger.Warning) []warningResponse {
	out := make([]warningResponse, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, warningResponse{
			Kind:          string(w.Kind),
			TransactionID: w.TransactionID,
			CardID:        w.CardID,
			Message:       w.Message,
		})
	}
	return out
}

type monthTotalsResponse struct {
	Year         int    `json:"year"`
	Month        int    `json:"month"`
	IncomeCents  int64  `json:"income_cents"`
	Income       string `json:"income"`
	ExpenseCents int64  `json:"expense_cents"`
	Expense      string `json:"expense"`
	BalanceCents int64  `json:"balance_cents"`
}

func buildMonthTotalsResponse(t ledger.MonthTotals) monthTotalsResponse {
	return monthTotalsResponse{
		Year:         t.Month.Year,
		Month:        t.Month.Month,
		IncomeCents:  t.Income.Cents,
		Income:       t.Income.String(),
		ExpenseCents: t.Expense.Cents,
		Expense:      t.Expense.String(),
		BalanceCents: t.Balance.Cents,
	}
}
