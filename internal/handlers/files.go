package handlers

import (
	"encoding/json"
	"net/http"

	"expensepro/internal/middleware"
	"expensepro/internal/models"
	"expensepro/internal/services"

	"github.com/go-chi/chi/v5"
)

type uploadPayload struct {
	Filename string `json:"filename"`
	Mimetype string `json:"mimetype"`
	Data     string `json:"data"`
}

func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var payload uploadPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	file, err := h.files.Upload(r.Context(), services.UploadRequest{
		Actor:    actor,
		Filename: payload.Filename,
		Mimetype: payload.Mimetype,
		Data:     payload.Data,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, file)
}

func (h *Handler) GetFile(w http.ResponseWriter, r *http.Request) {
	file, err := h.files.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, file)
}

func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.files.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if files == nil {
		files = []models.File{}
	}
	respondJSON(w, http.StatusOK, files)
}

func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.files.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
