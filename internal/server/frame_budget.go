// Package server meters inbound frames per connection so one player cannot
// flood the lobby loop with joins or moves.
package server

import "time"

// frameBudget is a token bucket over inbound frames: every join, move or
// leave spends one token, and tokens refill continuously up to the burst.
// Only the connection's read pump touches it.
type frameBudget struct {
	left     float64
	burst    float64
	perSec   float64
	refilled time.Time
	clock    func() time.Time
}

func newFrameBudget(cfg RateLimitConfig, clock func() time.Time) *frameBudget {
	burst := max(cfg.Burst, 1)
	window := cfg.RefillInterval
	if window <= 0 {
		window = time.Second
	}

	return &frameBudget{
		left:     float64(burst),
		burst:    float64(burst),
		perSec:   float64(burst) / window.Seconds(),
		refilled: clock(),
		clock:    clock,
	}
}

// spend takes one token, reporting false when the frame must be dropped.
func (b *frameBudget) spend() bool {
	now := b.clock()
	if since := now.Sub(b.refilled); since > 0 {
		b.left = min(b.burst, b.left+since.Seconds()*b.perSec)
	}
	b.refilled = now

	if b.left < 1 {
		return false
	}
	b.left--
	return true
}
