package timeutil

import (
	"sync"
	"time"
)

// nowFunc is swapped out in tests via SetNow so due-date logic is deterministic.
var (
	mu      sync.RWMutex
	nowFunc = time.Now
)

// Now returns the current business time.
func Now() time.Time {
	mu.RLock()
	defer mu.RUnlock()
	return nowFunc()
}

// Today returns the current date truncated to midnight UTC.
func Today() time.Time {
	t := Now().UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SetNow overrides the clock. Pass nil to restore the real clock.
func SetNow(fn func() time.Time) {
	mu.Lock()
	defer mu.Unlock()
	if fn == nil {
		nowFunc = time.Now
		return
	}
	nowFunc = fn
}
