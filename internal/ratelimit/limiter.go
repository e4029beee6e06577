package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

const DefaultRequestsPerSecond = 3

type Config struct {
	RequestsPerSecond float64

	// Now and Sleep default to the wall clock. Tests replace them.
	Now   func() time.Time
	Sleep func(ctx context.Context, d time.Duration) error
}

// Limiter enforces a minimum spacing between calls. All callers share one token bucket of size
// one, so concurrent callers are serialized but not ordered.
type Limiter struct {
	lim      *rate.Limiter
	interval time.Duration
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
}

func New(c Config) *Limiter {
	rps := c.RequestsPerSecond
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}

	interval := time.Duration(float64(time.Second) / rps)
	l := &Limiter{
		lim:      rate.NewLimiter(rate.Every(interval), 1),
		interval: interval,
		now:      c.Now,
		sleep:    c.Sleep,
	}
	if l.now == nil {
		l.now = time.Now
	}
	if l.sleep == nil {
		l.sleep = Sleep
	}

	return l
}

func (l *Limiter) Interval() time.Duration {
	return l.interval
}

// Wait blocks until the interval has passed since the previous slot. Every call takes a slot,
// including calls that did not have to wait. A canceled wait gives its slot back.
func (l *Limiter) Wait(ctx context.Context) error {
	now := l.now()
	r := l.lim.ReserveN(now, 1)

	if d := r.DelayFrom(now); d > 0 {
		if err := l.sleep(ctx, d); err != nil {
			r.CancelAt(l.now())
			return err
		}
	}

	return nil
}

// Sleep pauses for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
