// Package persist stores keyed JSON snapshot documents. The appointment
// collection and the user preferences each live under their own key and are
// rewritten whole on every mutation. Reads are best-effort: a missing or
// unreadable document falls back to caller-supplied defaults.
package persist

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"calvoro-backend/pkg/config"
)

// ErrNotFound is returned by Load when no document exists under the key.
var ErrNotFound = errors.New("snapshot not found")

type Store interface {
	// Load reads and unmarshals the document under key into out.
	Load(key string, out any) error
	// Save marshals value and overwrites the document under key.
	Save(key string, value any) error
}

// LoadOr reads the document under key, absorbing every failure: absence,
// read errors and decode errors all yield fallback. Failures other than
// plain absence are logged for diagnostics, never propagated.
func LoadOr[T any](s Store, key string, fallback T, logger *zap.Logger) T {
	var out T
	if err := s.Load(key, &out); err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn("snapshot unreadable, using defaults",
				zap.String("key", key), zap.Error(err))
		}
		return fallback
	}
	return out
}

// Open builds the snapshot store named by cfg.StoreDriver.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.StoreDriver {
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres store driver")
		}
		return NewDocumentStore(cfg.DatabaseURL)
	case "file", "":
		return NewFileStore(cfg.DataDir)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
