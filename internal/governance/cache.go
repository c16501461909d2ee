package governance

import (
	"sync"
	"time"
)

// stateCache is an in-process TTL cache of enforcement states keyed by
// partner. Process-local by design: in a horizontally scaled deployment each
// process holds its own view, which only bounds alert-store load and never
// affects correctness (every entry expires and is recounted).
type stateCache struct {
	mu sync.RWMutex
	m  map[string]cachedState
}

type cachedState struct {
	state     State
	expiresAt time.Time
}

func newStateCache() *stateCache {
	return &stateCache{m: make(map[string]cachedState)}
}

func (c *stateCache) get(key string, now time.Time) (State, bool) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok || !e.expiresAt.After(now) {
		return State{}, false
	}
	return e.state, true
}

func (c *stateCache) put(key string, st State, expiresAt time.Time) {
	c.mu.Lock()
	c.m[key] = cachedState{state: st, expiresAt: expiresAt}
	c.mu.Unlock()
}

func (c *stateCache) drop(key string) {
	c.mu.Lock()
	delete(c.m, key)
	c.mu.Unlock()
}
