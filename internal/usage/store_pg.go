package usage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PGStore persists quota records in Postgres so guest limits survive
// restarts and multiple instances.
type PGStore struct {
	db *sql.DB
}

// NewPGStore wraps an existing database pool.
func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Get(ctx context.Context, userKey string) (*Record, error) {
	const query = `SELECT plan, limit_amount, used, resets_at FROM usage WHERE user_id = $1`

	rec := Record{UserKey: userKey}
	err := s.db.QueryRowContext(ctx, query, userKey).Scan(&rec.Plan, &rec.Limit, &rec.Used, &rec.ResetsAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("usage get: %w", err)
	}
	return &rec, nil
}

func (s *PGStore) Save(ctx context.Context, rec *Record) error {
	const query = `
		INSERT INTO usage (user_id, plan, limit_amount, used, resets_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			plan = EXCLUDED.plan,
			limit_amount = EXCLUDED.limit_amount,
			used = EXCLUDED.used,
			resets_at = EXCLUDED.resets_at`

	if _, err := s.db.ExecContext(ctx, query, rec.UserKey, rec.Plan, rec.Limit, rec.Used, rec.ResetsAt); err != nil {
		return fmt.Errorf("usage save: %w", err)
	}
	return nil
}
