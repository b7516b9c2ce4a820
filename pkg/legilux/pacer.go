package legilux

import (
	"context"
	"sync"
	"time"
)

// DefaultRequestDelay is the minimum spacing between requests to the
// shared public endpoint.
const DefaultRequestDelay = 500 * time.Millisecond

// Pacer serializes outbound requests with a minimum delay between them.
// One Pacer is shared by every code path that talks to the upstream host,
// regardless of which logical phase issues the request.
type Pacer struct {
	mu       sync.Mutex
	minDelay time.Duration
	next     time.Time
}

// NewPacer creates a Pacer with the given minimum delay. A non-positive
// delay falls back to DefaultRequestDelay.
func NewPacer(minDelay time.Duration) *Pacer {
	if minDelay <= 0 {
		minDelay = DefaultRequestDelay
	}
	return &Pacer{minDelay: minDelay}
}

// Wait blocks until the next request slot is available or the context is
// cancelled. On success the caller owns the slot and the next slot moves
// one delay into the future.
func (p *Pacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	now := time.Now()
	wait := p.next.Sub(now)
	if wait < 0 {
		wait = 0
	}
	p.next = now.Add(wait + p.minDelay)
	p.mu.Unlock()

	if wait == 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
