// ABOUTME: Bearer token persistence on top of a Store
// ABOUTME: Only the auth session writes through TokenStore

package store

import "errors"

// TokenKey is the storage key holding the bearer token
const TokenKey = "token"

// TokenStore wraps a Store with get/set/clear for the bearer token
type TokenStore struct {
	s Store
}

// NewTokenStore creates a TokenStore backed by s
func NewTokenStore(s Store) *TokenStore {
	return &TokenStore{s: s}
}

// Get returns the stored token, or "" when none is stored
func (t *TokenStore) Get() (string, error) {
	v, err := t.s.Get(TokenKey)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return v, err
}

// Set persists token
func (t *TokenStore) Set(token string) error {
	return t.s.Set(TokenKey, token)
}

// Clear removes the stored token
func (t *TokenStore) Clear() error {
	return t.s.Delete(TokenKey)
}
