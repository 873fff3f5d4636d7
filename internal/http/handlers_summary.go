package http

import (
	"log/slog"
	"net/http"
	"strings"
)

// handleSummary returns per-month income/expense/balance totals for a date
// range, optionally filtered by owner profile.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	from, to, err := parseDateRange(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	profile := strings.TrimSpace(r.URL.Query().Get("profile"))

	totals, err := s.ledger.MonthlySummary(r.Context(), from, to, profile)
	if err != nil {
		slog.ErrorContext(r.Context(), "Monthly summary failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute summary")
		return
	}

	out := make([]monthTotalsResponse, 0, len(totals))
	for _, t := range totals {
		out = append(out, buildMonthTotalsResponse(t))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"from":    from.Format("2006-01-02"),
		"to":      to.Format("2006-01-02"),
		"profile": profile,
		"months":  out,
	})
}

// handleRegistry returns the category and profile lists used by clients to
// populate entry forms.
func (s *Server) handleRegistry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"income_categories":  s.registry.IncomeCategories(),
		"expense_categories": s.registry.ExpenseCategories(),
		"profiles":           s.registry.Profiles(),
	})
}
