// ABOUTME: JSON file implementation of Store kept in the config directory
// ABOUTME: Rewrites the whole file on every change; values are tiny

package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps all keys in a single JSON object on disk
type FileStore struct {
	configDir string
	mu        sync.Mutex
}

type fileData struct {
	Values map[string]string `json:"values"`
}

// NewFileStore creates a FileStore writing to configDir/state.json
func NewFileStore(configDir string) *FileStore {
	return &FileStore{configDir: configDir}
}

func (fs *FileStore) path() string {
	return filepath.Join(fs.configDir, "state.json")
}

// load reads the state file; a missing or corrupt file reads as empty
func (fs *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(fs.path())
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}

	var fd fileData
	if err := json.Unmarshal(data, &fd); err != nil || fd.Values == nil {
		return map[string]string{}, nil
	}
	return fd.Values, nil
}

func (fs *FileStore) save(values map[string]string) error {
	if err := os.MkdirAll(fs.configDir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(fileData{Values: values}, "", "  ")
	if err != nil {
		return err
	}

	// Write then rename so a crash never leaves a half-written token behind
	tmp := fs.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, fs.path())
}

// Get implements Store
func (fs *FileStore) Get(key string) (string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	values, err := fs.load()
	if err != nil {
		return "", err
	}
	v, ok := values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set implements Store
func (fs *FileStore) Set(key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	values, err := fs.load()
	if err != nil {
		return err
	}
	values[key] = value
	return fs.save(values)
}

// Delete implements Store. Deleting a missing key is not an error.
func (fs *FileStore) Delete(key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	values, err := fs.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return fs.save(values)
}
