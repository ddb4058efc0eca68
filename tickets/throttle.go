package tickets

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Throttle limits how often one member can open tickets in a guild.
type Throttle struct {
	every time.Duration
	burst int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewThrottle allows burst tickets and then one per every. A zero every disables throttling.
func NewThrottle(every time.Duration, burst int) *Throttle {
	if burst < 1 {
		burst = 1
	}
	return &Throttle{every: every, burst: burst, limiters: make(map[string]*rate.Limiter)}
}

// Allow reports whether the member may open a ticket now.
func (t *Throttle) Allow(guildID, userID string) bool {
	if t == nil || t.every <= 0 {
		return true
	}
	key := guildID + "/" + userID

	t.mu.Lock()
	l, ok := t.limiters[key]
	if !ok {
		l = rate.NewLimiter(rate.Every(t.every), t.burst)
		t.limiters[key] = l
	}
	t.mu.Unlock()

	return l.Allow()
}

// Prune drops limiters that have refilled completely, which behave exactly
// like a new one. It returns how many were dropped.
func (t *Throttle) Prune() int {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	pruned := 0
	for key, l := range t.limiters {
		if l.Tokens() >= float64(t.burst) {
			delete(t.limiters, key)
			pruned++
		}
	}
	return pruned
}

// Len returns the number of tracked members.
func (t *Throttle) Len() int {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.limiters)
}
