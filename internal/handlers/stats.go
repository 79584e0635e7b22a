package handlers

import (
	"net/http"

	"expensepro/internal/middleware"
)

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	stats, err := h.stats.ForUser(r.Context(), actor, transactionFilterFromQuery(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.System(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
