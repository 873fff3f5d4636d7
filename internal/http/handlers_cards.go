package http

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
)

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listCards(w, r)
	case http.MethodPost, http.MethodPut:
		s.upsertCard(w, r)
	default:
		w.Header().Set("Allow", "GET, POST, PUT")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) listCards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.ledger.ListCards(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list cards", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list cards")
		return
	}
	out := make([]cardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, buildCardResponse(c))
	}
	writeJSON(w, http.StatusOK, map[string]any{"cards": out})
}

func (s *Server) upsertCard(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	card, err := req.toCard()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.ledger.UpsertCard(r.Context(), card); err != nil {
		slog.ErrorContext(r.Context(), "Failed to save card", "id", card.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save card")
		return
	}

	writeJSON(w, http.StatusOK, buildCardResponse(card))
}

func (s *Server) handleCardByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.Header().Set("Allow", "DELETE")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, err := pathID(r.URL.Path, "/api/cards/")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.ledger.DeleteCard(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "card not found")
			return
		}
		slog.ErrorContext(r.Context(), "Failed to delete card", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete card")
		return
	}

	// Historical transactions keep the card id; projections fall back to the
	// end-of-month card profile from here on.
	w.WriteHeader(http.StatusNoContent)
}
