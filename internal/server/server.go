// Package server wires the HTTP surface: public tracking/redirect endpoints,
// the partner signals API with its governance gate, and the internal
// dashboard view.
package server

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trendsinusa/dealsignals/internal/alert"
	"github.com/trendsinusa/dealsignals/internal/config"
	eventrepo "github.com/trendsinusa/dealsignals/internal/event/repository"
	"github.com/trendsinusa/dealsignals/internal/governance"
	partnerrepo "github.com/trendsinusa/dealsignals/internal/partner/repository"
	"github.com/trendsinusa/dealsignals/internal/ratelimit"
	"github.com/trendsinusa/dealsignals/internal/security"
	"github.com/trendsinusa/dealsignals/internal/signals"
	"github.com/trendsinusa/dealsignals/internal/telemetry"
)

// Pinger reports store readiness for the health endpoint (e.g. a pgx pool
// wrapped by db.Ready).
type Pinger func(ctx context.Context) error

// Deps holds the service dependencies for HTTP handlers. Nil optional
// fields degrade the matching endpoint rather than panicking.
type Deps struct {
	// Cfg is the loaded application config. Required.
	Cfg *config.Config
	// Events is the append-only event log. Required for /track and /out.
	Events eventrepo.Repository
	// Partners is the partner registry. Required for the partner API.
	Partners partnerrepo.Repository
	// Signals builds reports. Required for signals endpoints.
	Signals *signals.Engine
	// Governance gates partner API calls. Required for the partner API.
	Governance *governance.Engine
	// Sink records deduplicated governance alerts. May be nil; then
	// governance bookkeeping is skipped.
	Sink *alert.Sink
	// Limiter is the shared fixed-window limiter. Required.
	Limiter ratelimit.Limiter
	// Tokens issues and validates partner API tokens. Required for the
	// partner API.
	Tokens *security.TokenProvider
	// Hasher verifies partner secrets on token exchange.
	Hasher *security.Hasher
	// Emitter fans accepted events out to the stream. May be nil (disabled).
	Emitter telemetry.EventEmitter
	// Ready reports store readiness for /healthz. May be nil.
	Ready Pinger
}

// NewRouter builds the gin router with all routes and middleware.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestMetrics())

	r.GET("/healthz", deps.handleHealthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/track", deps.publicRateLimit("track"), deps.handleTrack)
	r.GET("/out", deps.publicRateLimit("out"), deps.handleOut)

	r.GET("/internal/signals", deps.handleInternalSignals)

	api := r.Group("/api/v1/partner")
	api.POST("/token", deps.handlePartnerToken)
	api.GET("/signals",
		deps.partnerAuth(),
		deps.governanceGate(),
		deps.partnerRateLimit(),
		deps.handlePartnerSignals,
	)
	return r
}
