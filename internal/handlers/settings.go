package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"expensepro/internal/middleware"
	"expensepro/internal/models"
	"expensepro/internal/services"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	// Settings go out as one object keyed by setting name.
	payload := make(map[string]json.RawMessage, len(settings))
	for _, setting := range settings {
		payload[setting.Key] = json.RawMessage(setting.Value)
	}
	respondJSON(w, http.StatusOK, payload)
}

func (h *Handler) GetSetting(w http.ResponseWriter, r *http.Request) {
	setting, err := h.settings.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]json.RawMessage{
		setting.Key: json.RawMessage(setting.Value),
	})
}

func (h *Handler) SetSetting(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var value json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&value); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	key := chi.URLParam(r, "key")
	if err := h.settings.Set(r.Context(), actor, key, string(value)); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	respondJSON(w, http.StatusOK, categories)
}

type categoryPayload struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID *int64 `json:"parent_id"`
	Color    string `json:"color"`
	Icon     string `json:"icon"`
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var payload categoryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	category, err := h.categories.Create(r.Context(), services.CategoryRequest{
		Actor:    actor,
		Name:     payload.Name,
		Type:     payload.Type,
		ParentID: payload.ParentID,
		Color:    payload.Color,
		Icon:     payload.Icon,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, category)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid category id")
		return
	}
	var payload categoryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	category, err := h.categories.Update(r.Context(), services.CategoryRequest{
		Actor:    actor,
		ID:       id,
		Name:     payload.Name,
		Type:     payload.Type,
		ParentID: payload.ParentID,
		Color:    payload.Color,
		Icon:     payload.Icon,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, category)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid category id")
		return
	}
	if err := h.categories.Delete(r.Context(), actor, id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
