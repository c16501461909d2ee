package repository

import (
	"context"
	"time"

	"github.com/trendsinusa/dealsignals/internal/alert/domain"
)

// Repository defines persistence for the alert log.
type Repository interface {
	// Create appends one alert.
	Create(ctx context.Context, a *domain.Alert) error
	// ExistsUnresolvedMessage reports whether an unresolved alert with the
	// exact rendered message was created at or after since.
	ExistsUnresolvedMessage(ctx context.Context, message string, since time.Time) (bool, error)
	// CountUnresolvedByPrefix counts unresolved alerts created at or after
	// since whose message starts with prefix, returning the total and the
	// CRITICAL subtotal.
	CountUnresolvedByPrefix(ctx context.Context, prefix string, since time.Time) (total, critical int, err error)
	// Resolve marks the alert resolved at the given time. Resolving an
	// already-resolved alert is a no-op.
	Resolve(ctx context.Context, id string, at time.Time) error
}
