package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileBackend stores slots as one JSON object in a local file
type FileBackend struct {
	path string
	mu   sync.Mutex
}

// NewFileBackend creates a backend for path; the file is created on first write
func NewFileBackend(path string) (*FileBackend, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve store path: %w", err)
	}
	return &FileBackend{path: abs}, nil
}

// Path returns the absolute file location
func (f *FileBackend) Path() string {
	return f.path
}

// ReadSlots returns the requested slots present in the file.
// A missing file is an empty store.
func (f *FileBackend) ReadSlots(_ context.Context, keys []string) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	all, err := f.readAll()
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := all[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

// WriteSlots merges slots into the file and replaces it atomically
func (f *FileBackend) WriteSlots(_ context.Context, slots map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	all, err := f.readAll()
	if err != nil {
		// An unreadable file is replaced rather than blocking every future save
		all = make(map[string]string)
	}
	for k, v := range slots {
		all[k] = v
	}

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".eduplan-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}

// Close is a no-op
func (f *FileBackend) Close() error {
	return nil
}

func (f *FileBackend) readAll() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("failed to read store file %s: %w", f.path, err)
	}

	all := make(map[string]string)
	if len(data) == 0 {
		return all, nil
	}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("failed to parse store file %s: %w", f.path, err)
	}
	return all, nil
}
