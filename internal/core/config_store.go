package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgConfigStore struct {
	pool *pgxpool.Pool
}

// NewConfigStore constructs a ConfigStore over the config_params table
// (the mirror of the host ERP's system parameters).
func NewConfigStore(pool *pgxpool.Pool) ConfigStore {
	return &pgConfigStore{pool: pool}
}

// GetParam returns the stored value for key, or "" when the key is absent.
func (s *pgConfigStore) GetParam(ctx context.Context, key string) (string, error) {
	var value string
	err := s.pool.QueryRow(ctx,
		"SELECT value FROM config_params WHERE key = $1", key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read config param %q: %w", key, err)
	}
	return value, nil
}
