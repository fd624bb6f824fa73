// Package credentials stores the bearer token the backend client sends on every call
package credentials

//go:generate mockgen -destination=mock/mock_store.go -package=credentialsmock github.com/KirkDiggler/pokequest/internal/credentials Store

import (
	"context"
	"strings"
	"sync"

	"github.com/KirkDiggler/pokequest/internal/errors"
)

// ReasonMissing tags the NotFound error returned when no token is stored
const ReasonMissing = "credential_missing"

// DefaultKey is the storage key the mobile client used for the token
const DefaultKey = "authToken"

// Store persists a single bearer token
type Store interface {
	// Get returns the stored token, or a NotFound error when there is none
	Get(ctx context.Context) (string, error)

	// Set replaces the stored token
	Set(ctx context.Context, token string) error

	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// ErrMissing builds the error every Store returns when no token is present
func ErrMissing() *errors.Error {
	return errors.NotFound("no credential stored").WithReason(ReasonMissing)
}

// IsMissing reports whether err means no token is stored
func IsMissing(err error) bool {
	return errors.IsNotFound(err) && errors.GetReason(err) == ReasonMissing
}

func validateToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.InvalidArgument("token cannot be empty")
	}
	return nil
}

// MemoryStore keeps the token in process memory
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore creates a store, optionally seeded with a token
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

var _ Store = (*MemoryStore)(nil)

// Get returns the stored token
func (m *MemoryStore) Get(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.token == "" {
		return "", ErrMissing()
	}
	return m.token, nil
}

// Set replaces the stored token
func (m *MemoryStore) Set(_ context.Context, token string) error {
	if err := validateToken(token); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

// Clear removes the stored token
func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
