package idempotency

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Check returns the stored result for key and whether it exists.
func (r *Repository) Check(ctx context.Context, key string) ([]byte, bool, error) {
	var result []byte
	err := r.pool.QueryRow(ctx,
		`SELECT result_jsonb FROM processed_operations WHERE idempotency_key = $1`, key,
	).Scan(&result)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("checking idempotency key: %w", err)
	}
	return result, true, nil
}

// Store keeps the first result recorded for key; later writes are ignored.
func (r *Repository) Store(ctx context.Context, key string, senderID *uuid.UUID, opType string, resultJSON []byte) error {
	query := `
		INSERT INTO processed_operations (idempotency_key, sender_id, operation_type, result_jsonb, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (idempotency_key) DO NOTHING`

	if _, err := r.pool.Exec(ctx, query, key, senderID, opType, resultJSON); err != nil {
		return fmt.Errorf("storing idempotency key: %w", err)
	}
	return nil
}

// Purge drops operations older than the given number of days.
func (r *Repository) Purge(ctx context.Context, olderThanDays int) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM processed_operations WHERE created_at < NOW() - make_interval(days => $1)`,
		olderThanDays,
	)
	if err != nil {
		return 0, fmt.Errorf("purging idempotency keys: %w", err)
	}
	return tag.RowsAffected(), nil
}
