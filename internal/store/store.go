package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/agolabs/architect/internal/blueprint"
	"github.com/agolabs/architect/internal/logging"
)

// LastDeploymentKey holds the serialized last successful blueprint.
const LastDeploymentKey = "last_meta_deployment"

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// ErrNotFound is returned by Get for missing keys.
var ErrNotFound = errors.New("store: key not found")

// KV is a minimal string-keyed blob store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open opens the named backend at path.
func Open(backend, path string) (KV, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(path)
	case BackendSQLite:
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// LoadLast returns the persisted blueprint, or nil when none is stored. A
// corrupt blob is logged and treated as absent.
func LoadLast(ctx context.Context, kv KV) (*blueprint.Blueprint, error) {
	data, err := kv.Get(ctx, LastDeploymentKey)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load last deployment: %w", err)
	}

	var bp blueprint.Blueprint
	if err := json.Unmarshal(data, &bp); err != nil {
		logging.Warn("Ignoring corrupt persisted blueprint", zap.Error(err), zap.Int("length", len(data)))
		return nil, nil
	}
	return &bp, nil
}

// SaveLast persists bp as the last successful blueprint.
func SaveLast(ctx context.Context, kv KV, bp *blueprint.Blueprint) error {
	if bp == nil {
		return errors.New("cannot persist nil blueprint")
	}
	data, err := json.Marshal(bp)
	if err != nil {
		return fmt.Errorf("failed to encode blueprint: %w", err)
	}
	if err := kv.Put(ctx, LastDeploymentKey, data); err != nil {
		return fmt.Errorf("failed to save last deployment: %w", err)
	}
	return nil
}

// ClearLast removes the persisted blueprint. Clearing an empty store is not
// an error.
func ClearLast(ctx context.Context, kv KV) error {
	if err := kv.Delete(ctx, LastDeploymentKey); err != nil {
		return fmt.Errorf("failed to clear last deployment: %w", err)
	}
	return nil
}
