package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"watchstore/domain"
)

func pathID(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[key], 10, 64)
}

// listUsersHandler returns every account. Admin only.
// @Summary List users
// @Produce json
// @Success 200
// @Security ApiKeyAuth
// @Router /api/users [get]
func (a *App) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	actor, _ := userFrom(r)
	users, err := a.users.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Could not list users")
		return
	}
	infos := make([]userInfo, 0, len(users))
	for _, u := range users {
		info := toUserInfo(u)
		info.CreatedAt = u.CreatedAt.Format(time.RFC3339)
		infos = append(infos, info)
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"users":   infos,
		"total":   len(infos),
		"requestedBy": map[string]any{
			"id":   actor.ID,
			"name": actor.Name,
			"role": actor.Role,
		},
	})
}

type updateRoleRequest struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// updateUserRoleHandler changes another account's role. Admin only; an
// admin cannot change their own role.
// @Summary Update user role
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Success 200
// @Security ApiKeyAuth
// @Router /api/admin/users/{id}/role [put]
func (a *App) updateUserRoleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	var req updateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	validRoles := []string{domain.RoleAdmin, domain.RoleUser}
	valid := false
	for _, role := range validRoles {
		if req.Role == role {
			valid = true
			break
		}
	}
	if !valid {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(
			"Invalid role. Valid roles: %s", strings.Join(validRoles, ", ")))
		return
	}

	actor, _ := userFrom(r)
	if actor.ID == id {
		respondError(w, http.StatusBadRequest, "Cannot change your own role")
		return
	}

	user, err := a.users.UpdateRole(r.Context(), id, req.Role, req.Permissions)
	if err != nil {
		if domain.IsUserNotFoundError(err) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Could not update role")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    toUserInfo(user),
		"message": fmt.Sprintf("User role updated to %s", req.Role),
	})
}

// deleteUserHandler removes an account. Admin only; an admin cannot delete
// themselves.
// @Summary Delete user
// @Produce json
// @Param id path int true "User ID"
// @Success 200
// @Security ApiKeyAuth
// @Router /api/admin/users/{id} [delete]
func (a *App) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	actor, _ := userFrom(r)
	if actor.ID == id {
		respondError(w, http.StatusBadRequest, "Cannot delete your own account")
		return
	}

	user, err := a.users.Get(r.Context(), id)
	if err != nil {
		if domain.IsUserNotFoundError(err) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Could not delete user")
		return
	}
	if err := a.users.Delete(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, "Could not delete user")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("User %s has been deleted", user.Name),
		"deletedUser": map[string]any{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}
