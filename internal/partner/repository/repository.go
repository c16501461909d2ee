package repository

import (
	"context"

	"github.com/trendsinusa/dealsignals/internal/partner/domain"
)

// Repository defines read access to the partner registry.
type Repository interface {
	// GetByKey returns the partner for key, or nil if not registered.
	// It returns an error only for store failures, not for missing rows.
	GetByKey(ctx context.Context, key string) (*domain.Partner, error)
}
