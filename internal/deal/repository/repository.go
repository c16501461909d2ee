package repository

import (
	"context"

	"github.com/trendsinusa/dealsignals/internal/deal/domain"
)

// Repository defines read access to deal snapshots.
type Repository interface {
	// GetByIDs returns snapshots for the given deal ids in one round trip.
	// Missing ids are simply absent from the map; only store failures error.
	GetByIDs(ctx context.Context, ids []string) (map[string]*domain.DealSnapshot, error)
}
