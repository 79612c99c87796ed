package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createSlotsTable = `CREATE TABLE IF NOT EXISTS plan_slots (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresBackend stores slots in a PostgreSQL table
type PostgresBackend struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool and ensures the slot table exists
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresBackend, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, createSlotsTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create plan_slots table: %w", err)
	}

	return &PostgresBackend{pool: pool}, nil
}

// ReadSlots returns the requested slots that have rows
func (p *PostgresBackend) ReadSlots(ctx context.Context, keys []string) (map[string]string, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT key, value FROM plan_slots WHERE key = ANY($1)`,
		keys,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read slots: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string, len(keys))
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan slot: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate slots: %w", err)
	}
	return out, nil
}

// WriteSlots upserts every slot in one transaction
func (p *PostgresBackend) WriteSlots(ctx context.Context, slots map[string]string) error {
	return pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		for key, value := range slots {
			_, err := tx.Exec(ctx,
				`INSERT INTO plan_slots (key, value)
				 VALUES ($1, $2)
				 ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`,
				key, value,
			)
			if err != nil {
				return fmt.Errorf("failed to save slot %s: %w", key, err)
			}
		}
		return nil
	})
}

// Close closes the connection pool
func (p *PostgresBackend) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}
