package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"watchstore/domain"
)

// InMemoryUsers is a thread-safe in-memory domain.UserStore.
type InMemoryUsers struct {
	mu     sync.Mutex
	users  map[int64]domain.User
	nextID int64
}

// NewInMemoryUsers constructs an empty InMemoryUsers.
func NewInMemoryUsers() *InMemoryUsers {
	return &InMemoryUsers{
		users:  make(map[int64]domain.User),
		nextID: 1,
	}
}

// compile-time assertion that InMemoryUsers implements domain.UserStore
var _ domain.UserStore = (*InMemoryUsers)(nil)

// Create stores the user under the next sequential ID. Emails are unique,
// case-insensitively.
func (s *InMemoryUsers) Create(ctx context.Context, user domain.User) (domain.User, error) {
	select {
	case <-ctx.Done():
		return domain.User{}, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(user.Email))
	for _, u := range s.users {
		if u.Email == email {
			return domain.User{}, &domain.DuplicateEmailError{Email: email}
		}
	}
	user.ID = s.nextID
	s.nextID++
	user.Email = email
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *InMemoryUsers) Get(ctx context.Context, id int64) (domain.User, error) {
	select {
	case <-ctx.Done():
		return domain.User{}, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return domain.User{}, &domain.UserNotFoundError{UserID: id}
	}
	return u, nil
}

func (s *InMemoryUsers) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	select {
	case <-ctx.Done():
		return domain.User{}, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, &domain.UserNotFoundError{Email: email}
}

func (s *InMemoryUsers) List(ctx context.Context) ([]domain.User, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

// UpdateRole sets the user's role and permission set. Empty permissions
// fall back to the role's defaults.
func (s *InMemoryUsers) UpdateRole(ctx context.Context, id int64, role string, permissions []string) (domain.User, error) {
	select {
	case <-ctx.Done():
		return domain.User{}, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return domain.User{}, &domain.UserNotFoundError{UserID: id}
	}
	u.Role = role
	if len(permissions) == 0 {
		permissions = domain.DefaultPermissions(role)
	}
	u.Permissions = permissions
	s.users[id] = u
	return u, nil
}

func (s *InMemoryUsers) Delete(ctx context.Context, id int64) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return &domain.UserNotFoundError{UserID: id}
	}
	delete(s.users, id)
	return nil
}
