package store

import (
	"encoding/json"
	"fmt"
	"os"

	"synchrony/app/models"
)

// AuthStore persists the credential document: {"users": [...]}. It is a
// separate file from the project dataset and is only touched by the
// auth service.
type AuthStore struct {
	path string
}

// NewAuthStore creates a credential store at the given path.
func NewAuthStore(path string) *AuthStore {
	return &AuthStore{path: path}
}

// Load reads all users. A missing file yields an empty set.
func (s *AuthStore) Load() (*models.UserSet, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &models.UserSet{Users: []models.User{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}

	var users models.UserSet
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parse users: %w", err)
	}
	if users.Users == nil {
		users.Users = []models.User{}
	}
	return &users, nil
}

// Save rewrites the credential document atomically.
func (s *AuthStore) Save(users *models.UserSet) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := atomicWriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}
