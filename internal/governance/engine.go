// Package governance computes the enforcement action for a partner from its
// unresolved governance alerts. The action is a pure function of current
// alert counts, recomputed on every cache miss; there is no persisted state
// machine and no transition history.
package governance

import (
	"context"
	"log"
	"time"

	"github.com/trendsinusa/dealsignals/internal/alert"
)

// Action is the enforcement tier applied to a partner. The ordering
// allow < warn < throttle < suspend < terminate is load-bearing: escalation
// must be monotonic in the unresolved-alert count.
type Action int

const (
	ActionAllow Action = iota
	ActionWarn
	ActionThrottle
	ActionSuspend
	ActionTerminate
)

// String returns the wire name of the action.
func (a Action) String() string {
	switch a {
	case ActionWarn:
		return "warn"
	case ActionThrottle:
		return "throttle"
	case ActionSuspend:
		return "suspend"
	case ActionTerminate:
		return "terminate"
	default:
		return "allow"
	}
}

// State is the derived enforcement snapshot for one partner. It is never
// written back to storage; it lives only in the in-process cache.
type State struct {
	Action         Action
	OpenViolations int
	OpenCritical   int
}

// AlertCounter is the slice of the alert repository the engine needs.
type AlertCounter interface {
	CountUnresolvedByPrefix(ctx context.Context, prefix string, since time.Time) (total, critical int, err error)
}

const (
	defaultCacheTTL = 60 * time.Second
	defaultLookback = 30 * 24 * time.Hour
)

// Engine evaluates enforcement state per partner with a short-TTL cache to
// bound load on the alert store.
type Engine struct {
	alerts   AlertCounter
	cache    *stateCache
	cacheTTL time.Duration
	lookback time.Duration
	nowF     func() time.Time
}

// NewEngine returns an Engine counting alerts via counter. cacheTTL and
// lookback fall back to 60s and 30d when non-positive.
func NewEngine(counter AlertCounter, cacheTTL, lookback time.Duration) *Engine {
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	if lookback <= 0 {
		lookback = defaultLookback
	}
	return &Engine{
		alerts:   counter,
		cache:    newStateCache(),
		cacheTTL: cacheTTL,
		lookback: lookback,
		nowF:     func() time.Time { return time.Now().UTC() },
	}
}

// Evaluate returns the enforcement state for partnerKey. On any alert-store
// error it fails open: partner traffic must never be blocked by an
// observability-store outage, so the error is logged and allow is returned.
func (e *Engine) Evaluate(ctx context.Context, partnerKey string) State {
	if st, ok := e.cache.get(partnerKey, e.nowF()); ok {
		return st
	}

	total, critical, err := e.alerts.CountUnresolvedByPrefix(ctx, alert.GovernancePrefix(partnerKey), e.nowF().Add(-e.lookback))
	if err != nil {
		log.Printf("governance: alert count for %s failed, failing open: %v", partnerKey, err)
		return State{Action: ActionAllow}
	}

	st := State{
		Action:         actionFor(total, critical),
		OpenViolations: total,
		OpenCritical:   critical,
	}
	e.cache.put(partnerKey, st, e.nowF().Add(e.cacheTTL))
	return st
}

// Invalidate drops the cached state for partnerKey so the next Evaluate
// recounts. Used after writing an alert that should take effect immediately.
func (e *Engine) Invalidate(partnerKey string) {
	e.cache.drop(partnerKey)
}

// actionFor maps unresolved alert counts to an action. Thresholds are a
// simple OR: a weighted severity score is deliberately not used.
func actionFor(total, critical int) Action {
	switch {
	case total >= 15 || critical >= 3:
		return ActionTerminate
	case total >= 10 || critical >= 2:
		return ActionSuspend
	case total >= 5:
		return ActionThrottle
	case total >= 2:
		return ActionWarn
	default:
		return ActionAllow
	}
}

// ThrottledLimit is the secondary per-minute limit applied to throttled
// partners: 25% of the configured limit, floor 5.
func ThrottledLimit(perMinute int) int {
	l := perMinute / 4
	if l < 5 {
		l = 5
	}
	return l
}
