package phonebook

import (
	"context"
	"sync"
	"time"
)

// DefaultNoticeTTL is how long a notice stays on screen.
const DefaultNoticeTTL = 10 * time.Second

// Expiry keeps at most one pending notice expiry. Scheduling a new one
// cancels the previous, so an old timer can never clear a newer notice.
type Expiry struct {
	ttl time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewExpiry returns a scheduler whose notices last ttl.
func NewExpiry(ttl time.Duration) *Expiry {
	if ttl <= 0 {
		ttl = DefaultNoticeTTL
	}
	return &Expiry{ttl: ttl}
}

// TTL returns the visibility window.
func (e *Expiry) TTL() time.Duration { return e.ttl }

// Schedule cancels any pending expiry and returns a wait function for the
// notice with id. The wait function blocks until the TTL elapses and returns
// NotificationExpired, or returns nil as soon as it is cancelled.
func (e *Expiry) Schedule(id uint64) func() Action {
	ctx, cancel := context.WithCancel(context.Background())

	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
	}
	e.cancel = cancel
	e.mu.Unlock()

	return func() Action {
		t := time.NewTimer(e.ttl)
		defer t.Stop()
		select {
		case <-t.C:
			return NotificationExpired{ID: id}
		case <-ctx.Done():
			return nil
		}
	}
}

// Stop cancels the pending expiry, if any.
func (e *Expiry) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}
