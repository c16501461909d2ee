package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trendsinusa/dealsignals/internal/alert/domain"
)

// PostgresRepository stores alerts in the alerts table via a pgx pool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns an alert repository backed by pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create appends one alert row.
func (r *PostgresRepository) Create(ctx context.Context, a *domain.Alert) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO alerts (id, created_at, type, severity, noisy, message, resolved_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.CreatedAt, a.Type, string(a.Severity), a.Noisy, a.Message, a.ResolvedAt,
	)
	return err
}

// ExistsUnresolvedMessage reports whether an unresolved alert with the exact
// message exists at or after since.
func (r *PostgresRepository) ExistsUnresolvedMessage(ctx context.Context, message string, since time.Time) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM alerts
		   WHERE message = $1 AND resolved_at IS NULL AND created_at >= $2
		 )`, message, since,
	).Scan(&exists)
	return exists, err
}

// CountUnresolvedByPrefix counts unresolved alerts whose message starts with
// prefix, created at or after since.
func (r *PostgresRepository) CountUnresolvedByPrefix(ctx context.Context, prefix string, since time.Time) (int, int, error) {
	var total, critical int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE severity = 'CRITICAL')
		 FROM alerts
		 WHERE resolved_at IS NULL
		   AND created_at >= $1
		   AND message LIKE $2 || '%'`, since, prefix,
	).Scan(&total, &critical)
	if err != nil {
		return 0, 0, err
	}
	return total, critical, nil
}

// Resolve soft-resolves the alert; no-op if already resolved.
func (r *PostgresRepository) Resolve(ctx context.Context, id string, at time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE alerts SET resolved_at = $2 WHERE id = $1 AND resolved_at IS NULL`, id, at)
	return err
}
