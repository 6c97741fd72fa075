package services

import (
	"fmt"
	"strings"
	"sync"

	"synchrony/app/models"
	"synchrony/app/store"
)

// AuthService is the credential collaborator: it owns the users
// document and exposes register and login. The rest of the system only
// references users by name or email.
type AuthService struct {
	store *store.AuthStore
	mu    sync.Mutex
}

// NewAuthService creates a new AuthService.
func NewAuthService(st *store.AuthStore) *AuthService {
	return &AuthService{store: st}
}

// Register creates a new account. Emails are unique; accounts are
// never edited or removed afterwards.
func (s *AuthService) Register(name, email, password string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" || email == "" || password == "" {
		return &models.ValidationError{Reason: "name, email and password are required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if users.FindByEmail(email) != nil {
		return &models.ValidationError{Reason: "email already exists"}
	}

	users.Users = append(users.Users, models.User{Name: name, Email: email, Password: password})
	if err := s.store.Save(users); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

// Login checks credentials and returns the matching user. A wrong
// email or password yields ok=false, not an error.
func (s *AuthService) Login(email, password string) (*models.User, bool, error) {
	users, err := s.store.Load()
	if err != nil {
		return nil, false, fmt.Errorf("login: %w", err)
	}

	user := users.FindByEmail(strings.TrimSpace(email))
	if user == nil || user.Password != password {
		return nil, false, nil
	}
	return user, true, nil
}
