package handlers

import (
	"encoding/json"
	"net/http"

	"expensepro/internal/middleware"
	"expensepro/internal/models"
	"expensepro/internal/services"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func userResponse(user models.User) map[string]any {
	return map[string]any{
		"username":      user.Username,
		"role":          user.Role,
		"full_name":     user.FullName,
		"email":         user.Email,
		"department":    user.Department,
		"profile_photo": user.ProfilePhoto,
		"created_at":    user.CreatedAt,
		"last_login":    user.LastLogin,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	token, user, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  userResponse(user),
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.authService.Logout(r.Context(), username); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	user, err := h.authService.Me(r.Context(), username)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, userResponse(user))
}

type profileRequest struct {
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Department   string `json:"department"`
	ProfilePhoto string `json:"profile_photo"`
}

// UpdateProfile lets the logged-in user edit their own display fields.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	user, err := h.userService.UpdateProfile(r.Context(), services.UpdateProfileRequest{
		Actor:        username,
		FullName:     req.FullName,
		Email:        req.Email,
		Department:   req.Department,
		ProfilePhoto: req.ProfilePhoto,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, userResponse(user))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.authService.ChangePassword(r.Context(), username, req.CurrentPassword, req.NewPassword); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
