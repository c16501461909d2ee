package telemetry

import (
	"context"
	"log"
	"time"

	eventdomain "github.com/trendsinusa/dealsignals/internal/event/domain"
)

// emitTimeout is the max time allowed for a single async emit. Used by
// EmitAsync and by ShutdownDrainDuration.
const emitTimeout = 5 * time.Second

// ShutdownDrainDuration is how long to wait after the HTTP server stops
// before closing the producer, so in-flight async emits can complete.
// Must be >= emitTimeout.
const ShutdownDrainDuration = emitTimeout

// EmitAsync runs Emit in a goroutine with a short timeout so request
// handlers are never blocked on the stream. The goroutine uses
// context.Background() so request cancellation does not abort an in-flight
// emit; errors are logged and dropped.
//
// emitter and event may be nil; EmitAsync then returns without starting a
// goroutine.
func EmitAsync(emitter EventEmitter, event *eventdomain.Event) {
	if emitter == nil || event == nil {
		return
	}
	go func() {
		emitCtx, cancel := context.WithTimeout(context.Background(), emitTimeout)
		defer cancel()
		if err := emitter.Emit(emitCtx, event); err != nil {
			log.Printf("telemetry: async emit failed: %v", err)
		}
	}()
}
