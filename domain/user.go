package domain

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Roles understood by the API layer's access checks.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is an account record. PasswordHash is a bcrypt hash and is never
// serialized.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Permissions  []string  `json:"permissions"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AvatarURL derives the user's avatar image from their name.
func (u User) AvatarURL() string {
	return fmt.Sprintf(
		"https://ui-avatars.com/api/?name=%s&background=3b82f6&color=fff&size=128&rounded=true&bold=true",
		url.QueryEscape(u.Name),
	)
}

// DefaultPermissions returns the permission set granted with a role.
func DefaultPermissions(role string) []string {
	if role == RoleAdmin {
		return []string{"read", "write", "delete", "manage_users"}
	}
	return []string{"read"}
}

// HasPermission reports whether the user holds the named permission.
func (u User) HasPermission(p string) bool {
	for _, have := range u.Permissions {
		if have == p {
			return true
		}
	}
	return false
}

// UserStore defines the storage interface for accounts.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	Get(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
	UpdateRole(ctx context.Context, id int64, role string, permissions []string) (User, error)
	Delete(ctx context.Context, id int64) error
}

// SessionStore maps opaque bearer tokens to user IDs.
type SessionStore interface {
	Put(ctx context.Context, token string, userID int64, ttl time.Duration) error
	Get(ctx context.Context, token string) (int64, error)
	Delete(ctx context.Context, token string) error
}
