// Package ratelimit provides a fixed-window request counter keyed by an
// identity string. Windows are process-local: in a multi-process deployment
// the effective limit is configured_limit x process_count. That is an
// accepted limitation; the Limiter interface exists so a shared counter
// store can replace this implementation without touching callers.
package ratelimit

import (
	"math"
	"sync"
	"time"
)

// Result is the outcome of one Allow call. Exceeding the limit is normal
// control flow, not an error.
type Result struct {
	OK                bool
	RetryAfterSeconds int
}

// Limiter admits or rejects calls under a per-key fixed-window limit.
type Limiter interface {
	Allow(key string, limit int, window time.Duration) Result
}

type windowState struct {
	count     int
	startedAt time.Time
}

// FixedWindow is the in-process Limiter. Fixed windows admit bursts at
// window boundaries; that tradeoff is accepted for simplicity over a
// sliding-window or token-bucket scheme.
type FixedWindow struct {
	mu   sync.Mutex
	m    map[string]*windowState
	nowF func() time.Time
}

// NewFixedWindow returns an empty limiter.
func NewFixedWindow() *FixedWindow {
	return &FixedWindow{
		m:    make(map[string]*windowState),
		nowF: time.Now,
	}
}

// Allow counts one call against key. On first use a window opens now; once
// the window has fully elapsed the count resets and a new window opens
// before the current call is evaluated.
func (l *FixedWindow) Allow(key string, limit int, window time.Duration) Result {
	now := l.nowF()

	l.mu.Lock()
	defer l.mu.Unlock()

	st, ok := l.m[key]
	if !ok || now.Sub(st.startedAt) >= window {
		st = &windowState{startedAt: now}
		l.m[key] = st
	}
	st.count++
	if st.count > limit {
		remaining := window - now.Sub(st.startedAt)
		retry := int(math.Ceil(remaining.Seconds()))
		if retry < 1 {
			retry = 1
		}
		return Result{OK: false, RetryAfterSeconds: retry}
	}
	return Result{OK: true}
}
