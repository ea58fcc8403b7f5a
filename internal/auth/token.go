// Package auth stores the backend API token in the OS credential store,
// falling back to an environment variable where no keyring is available.
package auth

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

const (
	ServiceName = "taller"
	TokenName   = "api-token"

	// EnvToken overrides the keyring when set
	EnvToken = "TALLER_API_TOKEN"
)

var ErrNoToken = errors.New("no API token configured")

// TokenStore provides secure token storage abstraction
type TokenStore interface {
	GetToken() (string, error)
	SetToken(token string) error
	DeleteToken() error
	IsAvailable() bool
}

// NewTokenStore returns the best available token store
func NewTokenStore() TokenStore {
	return &keyringStore{}
}

type keyringStore struct{}

// GetToken retrieves the API token. The environment variable wins over the
// keyring so headless and CI use never touches the credential store.
func (s *keyringStore) GetToken() (string, error) {
	if token := os.Getenv(EnvToken); token != "" {
		return token, nil
	}

	token, err := keyring.Get(ServiceName, TokenName)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("failed to retrieve token from keyring: %w", err)
	}
	if token == "" {
		return "", ErrNoToken
	}

	return token, nil
}

// SetToken stores the API token in the keyring
func (s *keyringStore) SetToken(token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}

	if err := keyring.Set(ServiceName, TokenName, token); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}

	return nil
}

// DeleteToken removes the API token from the keyring
func (s *keyringStore) DeleteToken() error {
	err := keyring.Delete(ServiceName, TokenName)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNoToken
		}
		return fmt.Errorf("failed to delete token from keyring: %w", err)
	}

	return nil
}

// IsAvailable checks if the keyring is accessible
func (s *keyringStore) IsAvailable() bool {
	testKey := "__taller_availability_test__"
	if err := keyring.Set(ServiceName, testKey, "test"); err != nil {
		return false
	}
	_ = keyring.Delete(ServiceName, testKey)
	return true
}
