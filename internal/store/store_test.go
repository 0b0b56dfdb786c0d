// ABOUTME: Tests for the key-value stores and token wrapper
// ABOUTME: Runs the same contract against the file and SQLite backends

package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()

	sq, err := OpenSQLite(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { sq.Close() })

	return map[string]Store{
		"file":   NewFileStore(t.TempDir()),
		"sqlite": sq,
	}
}

func TestStoreContract(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}

			if err := s.Set("k", "v1"); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := s.Set("k", "v2"); err != nil {
				t.Fatalf("Set overwrite: %v", err)
			}
			got, err := s.Get("k")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got != "v2" {
				t.Errorf("expected v2, got %q", got)
			}

			if err := s.Delete("k"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if err := s.Delete("k"); err != nil {
				t.Errorf("second Delete should be a no-op, got %v", err)
			}
			if _, err := s.Get("k"); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound after delete, got %v", err)
			}
		})
	}
}

func TestTokenStore(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ts := NewTokenStore(s)

			tok, err := ts.Get()
			if err != nil || tok != "" {
				t.Fatalf("expected empty token, got %q (%v)", tok, err)
			}

			if err := ts.Set("abc"); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if tok, _ := ts.Get(); tok != "abc" {
				t.Errorf("expected abc, got %q", tok)
			}

			if err := ts.Clear(); err != nil {
				t.Fatalf("Clear: %v", err)
			}
			if tok, _ := ts.Get(); tok != "" {
				t.Errorf("expected cleared token, got %q", tok)
			}
		})
	}
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	if err := NewFileStore(dir).Set("token", "persisted"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := NewFileStore(dir).Get("token")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "persisted" {
		t.Errorf("expected persisted, got %q", got)
	}

	info, err := os.Stat(filepath.Join(dir, "state.json"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 permissions, got %v", info.Mode().Perm())
	}
}

func TestFileStoreCorruptFileReadsEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "state.json"), []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileStore(dir)
	if _, err := fs.Get("token"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for corrupt file, got %v", err)
	}
	if err := fs.Set("token", "fresh"); err != nil {
		t.Fatalf("Set after corrupt file: %v", err)
	}
}

func TestOpenBackends(t *testing.T) {
	dir := t.TempDir()

	s, err := Open("", dir)
	if err != nil {
		t.Fatalf("Open default: %v", err)
	}
	if _, ok := s.(*FileStore); !ok {
		t.Errorf("expected FileStore by default, got %T", s)
	}

	s, err = Open(BackendSQLite, dir)
	if err != nil {
		t.Fatalf("Open sqlite: %v", err)
	}
	sq, ok := s.(*SQLiteStore)
	if !ok {
		t.Fatalf("expected SQLiteStore, got %T", s)
	}
	sq.Close()

	if _, err := Open("redis", dir); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestDefaultConfigDirXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultConfigDir(); got != "/tmp/xdg/hackctl" {
		t.Errorf("expected /tmp/xdg/hackctl, got %s", got)
	}
}
