// Package localstore is a small durable key/value store backed by a single
// JSON file. Writes are synchronous so state survives an abrupt exit.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type Store struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// Open loads the file at path, creating parent directories as needed. A
// missing file yields an empty store.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("localstore path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create localstore directory: %w", err)
	}

	store := &Store{path: path, values: map[string]string{}}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read localstore: %w", err)
	}
	if len(raw) == 0 {
		return store, nil
	}
	if err := json.Unmarshal(raw, &store.values); err != nil {
		return nil, fmt.Errorf("parse localstore: %w", err)
	}
	return store, nil
}

func (store *Store) Get(key string) (string, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()

	value, found := store.values[key]
	return value, found
}

func (store *Store) Set(key string, value string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.values[key] = value
	return store.flush()
}

func (store *Store) Delete(key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, found := store.values[key]; !found {
		return nil
	}
	delete(store.values, key)
	return store.flush()
}

func (store *Store) Clear() error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.values = map[string]string{}
	return store.flush()
}

// flush writes via a temp file and rename so a crash mid-write cannot leave
// a truncated file. Callers must hold the mutex.
func (store *Store) flush() error {
	encoded, err := json.MarshalIndent(store.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode localstore: %w", err)
	}

	temp := store.path + ".tmp"
	if err := os.WriteFile(temp, encoded, 0o600); err != nil {
		return fmt.Errorf("write localstore: %w", err)
	}
	if err := os.Rename(temp, store.path); err != nil {
		return fmt.Errorf("replace localstore: %w", err)
	}
	return nil
}
