package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trendsinusa/dealsignals/internal/partner/domain"
)

// PostgresRepository reads partners from the partners table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns a partner repository backed by pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// GetByKey returns the partner for key, or nil if not registered.
func (r *PostgresRepository) GetByKey(ctx context.Context, key string) (*domain.Partner, error) {
	var p domain.Partner
	var tier string
	err := r.pool.QueryRow(ctx,
		`SELECT key, name, enabled, scopes, rate_limit_per_minute, max_limit, tier, secret_hash, billing_enabled
		 FROM partners WHERE key = $1`, key,
	).Scan(&p.Key, &p.Name, &p.Enabled, &p.Scopes, &p.RateLimitPerMinute, &p.MaxLimit, &tier, &p.SecretHash, &p.BillingEnabled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	p.Tier = domain.Tier(tier)
	return &p, nil
}
