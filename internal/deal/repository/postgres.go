package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trendsinusa/dealsignals/internal/deal/domain"
)

// PostgresRepository reads deal snapshots from the deals table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns a deal repository backed by pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// GetByIDs returns snapshots for ids in a single query. Missing ids are
// absent from the result map.
func (r *PostgresRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.DealSnapshot, error) {
	out := make(map[string]*domain.DealSnapshot, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, COALESCE(category, ''), COALESCE(category_override, ''),
		        COALESCE(old_price_cents, 0), COALESCE(current_price_cents, 0), expires_at
		 FROM deals WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var d domain.DealSnapshot
		var expiresAt *time.Time
		if err := rows.Scan(&d.ID, &d.Category, &d.CategoryOverride, &d.OldPriceCents, &d.CurrentPriceCents, &expiresAt); err != nil {
			return nil, err
		}
		if expiresAt != nil {
			d.ExpiresAt = *expiresAt
		}
		out[d.ID] = &d
	}
	return out, rows.Err()
}
