package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"watchstore/domain"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// respondError writes the {success:false, error:...} envelope every error
// response uses.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{
		"success": false,
		"error":   message,
	})
}

// userInfo is the account shape returned to clients; it never carries the
// password hash.
type userInfo struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	Avatar      string   `json:"avatar"`
}

func toUserInfo(u domain.User) userInfo {
	return userInfo{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Permissions: u.Permissions,
		Avatar:      u.AvatarURL(),
	}
}
