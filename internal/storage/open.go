package storage

import (
	"context"

	"go.uber.org/zap"
)

// Open picks the backend: PostgreSQL when databaseURL is set, otherwise the JSON file at path
func Open(ctx context.Context, databaseURL, path string, logger *zap.Logger) (*Store, error) {
	if databaseURL != "" {
		backend, err := ConnectPostgres(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		return New(backend, logger), nil
	}

	backend, err := NewFileBackend(path)
	if err != nil {
		return nil, err
	}
	return New(backend, logger), nil
}
