package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stylist/internal/domain"
)

// LookRepositoryPG archives settled looks in PostgreSQL. The in-memory job
// store stays authoritative for live jobs; this table is the durable record
// for analytics and replay.
type LookRepositoryPG struct {
	pool *pgxpool.Pool
}

func NewLookRepository(pool *pgxpool.Pool) *LookRepositoryPG {
	return &LookRepositoryPG{pool: pool}
}

// EnsureSchema creates the archive table when it does not exist yet.
func (r *LookRepositoryPG) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS looks (
    look_id      text PRIMARY KEY,
    status       text NOT NULL,
    plan_json    jsonb NOT NULL,
    result_json  jsonb NOT NULL,
    total_price  numeric,
    currency     text NOT NULL,
    created_at   timestamptz NOT NULL DEFAULT now(),
    updated_at   timestamptz NOT NULL DEFAULT now()
);
`)
	if err != nil {
		return fmt.Errorf("ensure looks schema: %w", err)
	}
	return nil
}

// SaveLook upserts the settled look. Restarted jobs overwrite their earlier
// partial archive row.
func (r *LookRepositoryPG) SaveLook(ctx context.Context, job *domain.Job, result *domain.LookResult) error {
	planJSON, err := json.Marshal(job.Plan)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO looks (look_id, status, plan_json, result_json, total_price, currency)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (look_id) DO UPDATE SET
    status      = EXCLUDED.status,
    result_json = EXCLUDED.result_json,
    total_price = EXCLUDED.total_price,
    updated_at  = now();
`,
		result.LookID,
		string(result.Status),
		planJSON,
		resultJSON,
		result.TotalPrice,
		result.Currency,
	)
	return err
}

// GetByLookID fetches one archived look.
func (r *LookRepositoryPG) GetByLookID(ctx context.Context, lookID string) (*domain.LookResult, error) {
	row := r.pool.QueryRow(ctx, `
SELECT result_json
FROM looks
WHERE look_id = $1;
`, lookID)
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var result domain.LookResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("unmarshal archived look: %w", err)
	}
	return &result, nil
}

// Recent lists the most recently settled looks, newest first.
func (r *LookRepositoryPG) Recent(ctx context.Context, limit int) ([]*domain.LookResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, `
SELECT result_json
FROM looks
ORDER BY updated_at DESC
LIMIT $1;
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.LookResult
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var result domain.LookResult
		if err := json.Unmarshal(raw, &result); err != nil {
			return nil, fmt.Errorf("unmarshal archived look: %w", err)
		}
		out = append(out, &result)
	}
	return out, rows.Err()
}
