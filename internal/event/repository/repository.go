package repository

import (
	"context"
	"time"

	"github.com/trendsinusa/dealsignals/internal/event/domain"
)

// MaxWindowRows is the hard per-call cap on fetched events. It is a
// cost/latency guard, not a sampling strategy: callers must treat results as
// "events in window, truncated at MaxWindowRows" and flag truncated
// aggregates rather than presenting them as exact.
const MaxWindowRows = 100_000

// FetchFilters narrows a window fetch by columns the store can index.
// Attribution-level filters (site, partner) are applied by the caller after
// decoding, since attribution is an opaque string at this layer.
type FetchFilters struct {
	// Kind restricts to one event kind when non-empty.
	Kind domain.Kind
	// DealID restricts to one deal when non-empty.
	DealID string
}

// Repository defines persistence for the append-only event log.
type Repository interface {
	// Create appends one event. Events are never updated or deleted.
	Create(ctx context.Context, e *domain.Event) error
	// FetchWindow returns events with OccurredAt >= since, newest first,
	// capped at MaxWindowRows. Store errors are returned, never swallowed.
	FetchWindow(ctx context.Context, since time.Time, f FetchFilters) ([]domain.Event, error)
}
