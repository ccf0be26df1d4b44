package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SelectionStore persists the manual order selection of one wizard
// session. This is the only write the statement service performs.
type SelectionStore interface {
	Save(ctx context.Context, sessionID string, orderIDs []int) error
	Load(ctx context.Context, sessionID string) ([]int, error)
	Clear(ctx context.Context, sessionID string) error
}

type pgSelectionStore struct {
	pool *pgxpool.Pool
}

func NewSelectionStore(pool *pgxpool.Pool) SelectionStore {
	return &pgSelectionStore{pool: pool}
}

// Save replaces the session's selection atomically.
func (s *pgSelectionStore) Save(ctx context.Context, sessionID string, orderIDs []int) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin selection transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		"DELETE FROM statement_selections WHERE session_id = $1", sessionID); err != nil {
		return fmt.Errorf("failed to clear previous selection: %w", err)
	}
	for _, id := range orderIDs {
		if _, err := tx.Exec(ctx,
			"INSERT INTO statement_selections (session_id, order_id) VALUES ($1, $2)",
			sessionID, id); err != nil {
			return fmt.Errorf("failed to save selection: %w", err)
		}
	}
	return tx.Commit(ctx)
}

func (s *pgSelectionStore) Load(ctx context.Context, sessionID string) ([]int, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT order_id FROM statement_selections WHERE session_id = $1 ORDER BY order_id", sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load selection: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan selection: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *pgSelectionStore) Clear(ctx context.Context, sessionID string) error {
	if _, err := s.pool.Exec(ctx,
		"DELETE FROM statement_selections WHERE session_id = $1", sessionID); err != nil {
		return fmt.Errorf("failed to clear selection: %w", err)
	}
	return nil
}
