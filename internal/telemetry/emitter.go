// Package telemetry fans accepted events out to downstream consumers (the
// content-ingestion worker, offline dashboards). Emission is best-effort:
// the event log in Postgres is the source of truth, and a lost message here
// never fails the request that produced it.
package telemetry

import (
	"context"

	eventdomain "github.com/trendsinusa/dealsignals/internal/event/domain"
)

// EventEmitter emits accepted events to a stream (e.g. Kafka). Best-effort;
// callers log and ignore errors.
type EventEmitter interface {
	Emit(ctx context.Context, event *eventdomain.Event) error
}
