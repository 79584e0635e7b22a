package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"expensepro/internal/money"
	"expensepro/internal/services"
	"expensepro/internal/store"
	"expensepro/internal/validator"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError translates domain errors into HTTP statuses. Unknown
// errors become an opaque 500.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrDuplicateKey):
		respondError(w, http.StatusConflict, "already exists")
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrWrongPassword):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrForbidden),
		errors.Is(err, services.ErrSelfDelete):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrNotPending),
		errors.Is(err, services.ErrInvalidTransition):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidType),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrInvalidCategory),
		errors.Is(err, services.ErrInvalidSetting),
		errors.Is(err, services.ErrBadSnapshot),
		errors.Is(err, services.ErrUnknownClearScope),
		errors.Is(err, services.ErrBadUpload),
		errors.Is(err, validator.ErrInvalidEmail),
		errors.Is(err, validator.ErrInvalidUsername),
		errors.Is(err, validator.ErrInvalidPassword),
		errors.Is(err, validator.ErrInvalidDate),
		errors.Is(err, money.ErrInvalidAmount),
		errors.Is(err, money.ErrTooManyDecimals):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
