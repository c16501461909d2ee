package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trendsinusa/dealsignals/internal/event/domain"
)

// PostgresRepository stores events in the events table via a pgx pool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns an event repository backed by pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create appends one event row.
func (r *PostgresRepository) Create(ctx context.Context, e *domain.Event) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO events (id, occurred_at, kind, href, asin, deal_id, attribution, user_agent)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.OccurredAt, string(e.Kind), e.Href,
		nullable(e.ASIN), nullable(e.DealID), e.Attribution, nullable(e.UserAgent),
	)
	return err
}

// FetchWindow returns events since the given time, newest first, capped at
// MaxWindowRows per call.
func (r *PostgresRepository) FetchWindow(ctx context.Context, since time.Time, f FetchFilters) ([]domain.Event, error) {
	q := `SELECT id, occurred_at, kind, href, COALESCE(asin, ''), COALESCE(deal_id, ''),
	             attribution, COALESCE(user_agent, '')
	      FROM events
	      WHERE occurred_at >= $1`
	args := []any{since}
	if f.Kind != "" {
		args = append(args, string(f.Kind))
		q += ` AND kind = $2`
	}
	if f.DealID != "" {
		args = append(args, f.DealID)
		if f.Kind != "" {
			q += ` AND deal_id = $3`
		} else {
			q += ` AND deal_id = $2`
		}
	}
	q += ` ORDER BY occurred_at DESC LIMIT ` + strconv.Itoa(MaxWindowRows)

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Event, 0, 256)
	for rows.Next() {
		var e domain.Event
		var kind string
		if err := rows.Scan(&e.ID, &e.OccurredAt, &kind, &e.Href, &e.ASIN, &e.DealID, &e.Attribution, &e.UserAgent); err != nil {
			return nil, err
		}
		e.Kind = domain.Kind(kind)
		out = append(out, e)
	}
	return out, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
