package http

import (
	"errors"
	"log/slog"
	"net/http"

	"fatura/internal/core"
	"fatura/internal/ledger"
)

func (s *Server) handleInvoices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	months, err := parseMonths(r.URL.Query(), s.defaultMonths)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	proj, err := s.projections.Project(r.Context(), months)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidWindow) {
			writeError(w, http.StatusBadRequest, "months must be between 1 and 24")
			return
		}
		slog.ErrorContext(r.Context(), "Projection failed", "months", months, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to project invoices")
		return
	}

	profile := r.URL.Query().Get("profile")
	invoices := make([]invoiceResponse, 0, len(proj.Invoices))
	for _, inv := range proj.Invoices {
		if profile != "" && inv.Owner != profile {
			continue
		}
		invoices = append(invoices, buildInvoiceResponse(inv))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"months":   months,
		"invoices": invoices,
		"warnings": buildWarningResponses(proj.Warnings),
	})
}

// handleInvoiceDetail drills down into one invoice's installment lines at
// /api/invoices/{card}/{year}/{month}.
func (s *Server) handleInvoiceDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	cardID, year, month, err := parseInvoicePath(r.URL.Path)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	months, err := parseMonths(r.URL.Query(), s.defaultMonths)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	proj, err := s.projections.Project(r.Context(), months)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidWindow) {
			writeError(w, http.StatusBadRequest, "months must be between 1 and 24")
			return
		}
		slog.ErrorContext(r.Context(), "Projection failed", "months", months, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to project invoices")
		return
	}

	key := core.InvoiceKey{CardID: cardID, Month: core.MonthKey{Year: year, Month: month}}
	lines, ok := proj.Details[key]
	if !ok {
		writeError(w, http.StatusNotFound, "no invoice for that card and month in the window")
		return
	}

	var header invoiceResponse
	for _, inv := range proj.Invoices {
		if inv.CardID == cardID && inv.Year == year && inv.Month == month {
			header = buildInvoiceResponse(inv)
			break
		}
	}

	out := make([]installmentResponse, 0, len(lines))
	for _, line := range lines {
		out = append(out, buildInstallmentResponse(line))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"invoice":      header,
		"installments": out,
	})
}
