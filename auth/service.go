package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"watchstore/domain"
)

// SessionTTL is how long a login stays valid.
const SessionTTL = 7 * 24 * time.Hour

// ErrInvalidCredentials is returned on any login failure. It deliberately
// does not distinguish an unknown email from a wrong password.
var ErrInvalidCredentials = errors.New("Invalid email or password")

// ValidationError is a user-facing registration complaint.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is allows error type checking with errors.Is()
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

var emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Service handles registration, login, and token resolution.
type Service struct {
	users    domain.UserStore
	sessions domain.SessionStore
}

// NewService constructs an auth Service over the given stores.
func NewService(users domain.UserStore, sessions domain.SessionStore) *Service {
	return &Service{users: users, sessions: sessions}
}

// Register creates an account with the default user role and returns the
// stored user plus a fresh session token.
func (s *Service) Register(ctx context.Context, name, email, password string) (domain.User, string, error) {
	name = strings.TrimSpace(name)
	if name == "" || email == "" || password == "" {
		return domain.User{}, "", &ValidationError{Message: "Please fill in all fields"}
	}
	if len(name) < 2 {
		return domain.User{}, "", &ValidationError{Message: "Name must be at least 2 characters"}
	}
	if !emailRe.MatchString(email) {
		return domain.User{}, "", &ValidationError{Message: "Invalid email address"}
	}
	if len(password) < 6 {
		return domain.User{}, "", &ValidationError{Message: "Password must be at least 6 characters"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, "", err
	}

	user, err := s.users.Create(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Permissions:  domain.DefaultPermissions(domain.RoleUser),
		CreatedAt:    time.Now(),
	})
	if err != nil {
		if domain.IsDuplicateEmailError(err) {
			return domain.User{}, "", &ValidationError{Message: "Email already in use"}
		}
		return domain.User{}, "", err
	}

	token, err := s.startSession(ctx, user.ID)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

// Login verifies credentials and returns the user plus a fresh session
// token.
func (s *Service) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	if email == "" || password == "" {
		return domain.User{}, "", &ValidationError{Message: "Please fill in email and password"}
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsUserNotFoundError(err) {
			return domain.User{}, "", ErrInvalidCredentials
		}
		return domain.User{}, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.User{}, "", ErrInvalidCredentials
	}

	token, err := s.startSession(ctx, user.ID)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

// UserFromToken resolves a bearer token to its account. A token whose user
// has since been deleted is treated the same as a dead session.
func (s *Service) UserFromToken(ctx context.Context, token string) (domain.User, error) {
	userID, err := s.sessions.Get(ctx, token)
	if err != nil {
		return domain.User{}, err
	}
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		if domain.IsUserNotFoundError(err) {
			return domain.User{}, ErrSessionNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// Logout invalidates the token.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// SeedUsers installs the two stock accounts when the store is empty. The
// shared development password is "123456".
func (s *Service) SeedUsers(ctx context.Context) error {
	existing, err := s.users.List(ctx)
	if err != nil || len(existing) > 0 {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	seed := []domain.User{
		{
			Name:         "Admin User",
			Email:        "admin@watchstore.com",
			PasswordHash: string(hash),
			Role:         domain.RoleAdmin,
			Permissions:  domain.DefaultPermissions(domain.RoleAdmin),
		},
		{
			Name:         "Regular User",
			Email:        "user@watchstore.com",
			PasswordHash: string(hash),
			Role:         domain.RoleUser,
			Permissions:  domain.DefaultPermissions(domain.RoleUser),
		},
	}
	for _, u := range seed {
		if _, err := s.users.Create(ctx, u); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) startSession(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	if err := s.sessions.Put(ctx, token, userID, SessionTTL); err != nil {
		return "", err
	}
	return token, nil
}
