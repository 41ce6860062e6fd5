package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/agolabs/architect/internal/logging"
)

// errCorruptFile marks a store file that exists but does not parse.
var errCorruptFile = errors.New("store file is corrupt")

// FileStore keeps all keys in one JSON object file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by path. The file is created on first write.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("file store path is required")
	}
	return &FileStore{path: path}, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) readAll() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}
	entries := map[string]json.RawMessage{}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return map[string]json.RawMessage{}, fmt.Errorf("%w: %s: %v", errCorruptFile, s.path, err)
	}
	return entries, nil
}

// readRecover is readAll for callers that can continue from an empty store.
// A corrupt file is logged and read as empty; the next write replaces it.
func (s *FileStore) readRecover() (entries map[string]json.RawMessage, corrupt bool, err error) {
	entries, err = s.readAll()
	if errors.Is(err, errCorruptFile) {
		logging.Warn("Discarding corrupt store file", zap.String("path", s.path), zap.Error(err))
		return entries, true, nil
	}
	return entries, false, err
}

func (s *FileStore) writeAll(entries map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary store file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save store file: %w", err)
	}
	return nil
}

// Get implements KV. Values are stored as JSON strings.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, _, err := s.readRecover()
	if err != nil {
		return nil, err
	}
	raw, ok := entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("failed to decode value for %q: %w", key, err)
	}
	return []byte(value), nil
}

// Put implements KV.
func (s *FileStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, _, err := s.readRecover()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(string(value))
	if err != nil {
		return err
	}
	entries[key] = raw
	return s.writeAll(entries)
}

// Delete implements KV.
func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, corrupt, err := s.readRecover()
	if err != nil {
		return err
	}
	if _, ok := entries[key]; !ok && !corrupt {
		return nil
	}
	delete(entries, key)
	return s.writeAll(entries)
}

// Close implements KV.
func (s *FileStore) Close() error { return nil }
