package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"watchstore/auth"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerHandler creates an account and starts a session.
// @Summary Register
// @Accept json
// @Produce json
// @Param creds body registerRequest true "Account details"
// @Success 201
// @Router /api/auth/register [post]
func (a *App) registerHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	user, token, err := a.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if auth.IsValidationError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"user":    toUserInfo(user),
		"token":   token,
	})
}

// loginHandler authenticates and starts a session.
// @Summary Login
// @Accept json
// @Produce json
// @Param creds body loginRequest true "Credentials"
// @Success 200
// @Router /api/auth/login [post]
func (a *App) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	user, token, err := a.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if err == auth.ErrInvalidCredentials || auth.IsValidationError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    toUserInfo(user),
		"token":   token,
	})
}

// meHandler returns the authenticated account.
// @Summary Current user
// @Produce json
// @Success 200
// @Security ApiKeyAuth
// @Router /api/auth/me [get]
func (a *App) meHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r)
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    toUserInfo(user),
	})
}

// permissionsHandler returns the authenticated account's role and
// permission set.
// @Summary Current permissions
// @Produce json
// @Success 200
// @Security ApiKeyAuth
// @Router /api/auth/permissions [get]
func (a *App) permissionsHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r)
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user": map[string]any{
			"id":          user.ID,
			"name":        user.Name,
			"role":        user.Role,
			"permissions": user.Permissions,
		},
	})
}

// logoutHandler invalidates the presented token.
// @Summary Logout
// @Produce json
// @Success 200
// @Security ApiKeyAuth
// @Router /api/auth/logout [post]
func (a *App) logoutHandler(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if err := a.auth.Logout(r.Context(), token); err != nil {
		respondError(w, http.StatusInternalServerError, "Logout failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}
