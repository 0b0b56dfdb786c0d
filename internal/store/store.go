// ABOUTME: Local key-value storage for client state that survives restarts
// ABOUTME: Stands in for browser storage: the bearer token is the only durable value

package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when a key has no value
var ErrNotFound = errors.New("key not found")

// Store is a minimal persistent key-value store
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Backend names accepted by Open
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// DefaultConfigDir returns the default config directory following XDG conventions
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hackctl")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "hackctl")
}

// Open returns the store for the given backend rooted at configDir
func Open(backend, configDir string) (Store, error) {
	switch backend {
	case "", BackendFile:
		return NewFileStore(configDir), nil
	case BackendSQLite:
		return OpenSQLite(filepath.Join(configDir, "state.db"))
	default:
		return nil, fmt.Errorf("unknown store backend %q (want %s or %s)", backend, BackendFile, BackendSQLite)
	}
}
