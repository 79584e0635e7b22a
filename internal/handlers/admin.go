package handlers

import (
	"encoding/json"
	"net/http"

	"expensepro/internal/middleware"
	"expensepro/internal/models"
	"expensepro/internal/services"
	"expensepro/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

func (h *Handler) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	payload := make([]map[string]any, 0, len(users))
	for _, user := range users {
		payload = append(payload, userResponse(user))
	}
	respondJSON(w, http.StatusOK, payload)
}

func (h *Handler) AdminGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.Get(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, userResponse(user))
}

type userPayload struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Department   string `json:"department"`
	ProfilePhoto string `json:"profile_photo"`
}

func (h *Handler) AdminCreateUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var payload userPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	user, err := h.userService.Create(r.Context(), services.CreateUserRequest{
		Actor:      actor,
		Username:   payload.Username,
		Password:   payload.Password,
		Role:       payload.Role,
		FullName:   payload.FullName,
		Email:      payload.Email,
		Department: payload.Department,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, userResponse(user))
}

func (h *Handler) AdminUpdateUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var payload userPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	user, err := h.userService.Update(r.Context(), services.UpdateUserRequest{
		Actor:        actor,
		Username:     chi.URLParam(r, "username"),
		Password:     payload.Password,
		Role:         payload.Role,
		FullName:     payload.FullName,
		Email:        payload.Email,
		Department:   payload.Department,
		ProfilePhoto: payload.ProfilePhoto,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, userResponse(user))
}

func (h *Handler) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.userService.Delete(r.Context(), actor, chi.URLParam(r, "username")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func logFilterFromQuery(r *http.Request) store.LogFilter {
	q := r.URL.Query()
	return store.LogFilter{
		UserID:    q.Get("user_id"),
		Action:    q.Get("action"),
		StartTime: q.Get("start_time"),
		EndTime:   q.Get("end_time"),
	}
}

func (h *Handler) ListLogs(w http.ResponseWriter, r *http.Request) {
	entries, err := h.logStore.List(r.Context(), logFilterFromQuery(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []models.LogEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

func (h *Handler) ExportLogsCSV(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="system-logs.csv"`)
	if err := h.export.LogsCSV(r.Context(), actor, logFilterFromQuery(r), w); err != nil {
		h.log.Error().Err(err).Msg("log csv export failed")
	}
}

func (h *Handler) ClearLogs(w http.ResponseWriter, r *http.Request) {
	err := h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		return h.logStore.Clear(r.Context(), tx)
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (h *Handler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	snapshot, err := h.backup.Export(r.Context(), actor)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="expensepro-backup.json"`)
	respondJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var snapshot services.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.backup.Import(r.Context(), actor, snapshot); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "restored"})
}

type clearDataRequest struct {
	Scope string `json:"scope"`
}

func (h *Handler) ClearData(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req clearDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.backup.ClearData(r.Context(), actor, req.Scope); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
