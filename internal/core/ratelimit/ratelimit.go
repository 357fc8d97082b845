// Package ratelimit spaces outbound calls so no two are granted closer together
// than a configured minimum interval
//
// Slots are reserved on a shared token bucket (burst 1) at the moment a caller
// observes the limiter. Concurrent callers therefore queue in observation order,
// each one slot behind the previous
package ratelimit

import (
	"context"
	"time"

	ptime "trendscout/internal/platform/time"

	"golang.org/x/time/rate"
)

// DefaultMinInterval is the spacing used when none is configured
const DefaultMinInterval = 2 * time.Second

// Waiter is what callers depend on
type Waiter interface {
	Wait(ctx context.Context) error
}

// Option tweaks a Limiter
type Option func(*Limiter)

// WithClock injects the time source used to reserve and wait
func WithClock(c ptime.Clock) Option {
	return func(l *Limiter) {
		if c != nil {
			l.clock = c
		}
	}
}

// Limiter is a minimum interval gate. The zero value is not usable, call New
type Limiter struct {
	interval time.Duration
	lim      *rate.Limiter
	clock    ptime.Clock
}

// New builds a Limiter granting at most one call per minInterval
func New(minInterval time.Duration, opts ...Option) *Limiter {
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	l := &Limiter{
		interval: minInterval,
		lim:      rate.NewLimiter(rate.Every(minInterval), 1),
		clock:    ptime.System(),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Interval returns the configured minimum spacing
func (l *Limiter) Interval() time.Duration { return l.interval }

// Wait blocks until the caller's slot arrives. A cancelled ctx gives the slot back
func (l *Limiter) Wait(ctx context.Context) error {
	now := l.clock.Now()
	r := l.lim.ReserveN(now, 1)
	if !r.OK() {
		// burst is 1 so a single token is always reservable
		return nil
	}
	delay := r.DelayFrom(now)
	if delay <= 0 {
		return nil
	}
	select {
	case <-l.clock.After(delay):
		return nil
	case <-ctx.Done():
		r.CancelAt(l.clock.Now())
		return ctx.Err()
	}
}
