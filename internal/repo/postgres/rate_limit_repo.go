package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type RateLimitRepo struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewRateLimitRepo(pool *pgxpool.Pool) *RateLimitRepo {
	return &RateLimitRepo{pool: pool, now: time.Now}
}

const rateLimitSchema = `
	CREATE TABLE IF NOT EXISTS rate_limits (
		key          TEXT PRIMARY KEY,
		count        INTEGER NOT NULL,
		window_start TIMESTAMPTZ NOT NULL,
		expires_at   TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS rate_limits_expires_at_idx ON rate_limits (expires_at);`

// EnsureSchema creates the counters table when missing.
func (r *RateLimitRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, rateLimitSchema); err != nil {
		return fmt.Errorf("create rate_limits: %w", err)
	}
	return nil
}

// Hit atomically starts or advances the key's window.
func (r *RateLimitRepo) Hit(ctx context.Context, key string, window time.Duration) (int, error) {
	now := r.now()
	windowStart := now.Add(-window)

	query := `
		INSERT INTO rate_limits (key, count, window_start, expires_at)
		VALUES ($1, 1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET
			count = CASE
				WHEN rate_limits.window_start <= $4 THEN 1
				ELSE rate_limits.count + 1
			END,
			window_start = CASE
				WHEN rate_limits.window_start <= $4 THEN $2
				ELSE rate_limits.window_start
			END,
			expires_at = $3
		RETURNING count`

	var count int
	err := r.pool.QueryRow(ctx, query, key, now, now.Add(window), windowStart).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("rate limit upsert: %w", err)
	}
	return count, nil
}

// Purge drops expired counters.
func (r *RateLimitRepo) Purge(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM rate_limits WHERE expires_at < $1`, r.now())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
