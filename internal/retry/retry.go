package retry

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/victornm/pollquiz/internal/errors"
	"github.com/victornm/pollquiz/internal/ratelimit"
)

const DefaultMaxAttempts = 3

const (
	ReasonThrottled = "throttled"
	ReasonFailure   = "failure"
)

// Policy maps a 0-based attempt number to the delay before the next attempt.
type Policy func(attempt int) time.Duration

// Exponential doubles base on every attempt: base, 2*base, 4*base...
func Exponential(base time.Duration) Policy {
	return func(attempt int) time.Duration {
		if attempt < 0 {
			attempt = 0
		}
		return base << attempt
	}
}

// Throttled is returned by an operation when the remote side asked the caller to slow down.
// After is the requested pause; zero means the policy delay is used instead.
type Throttled struct {
	After time.Duration
	Err   error
}

func (e *Throttled) Error() string {
	return fmt.Sprintf("throttled, retry after %s: %v", e.After, e.Err)
}

func (e *Throttled) Unwrap() error {
	return e.Err
}

type permanent struct {
	err error
}

func (p permanent) Error() string { return p.err.Error() }
func (p permanent) Unwrap() error { return p.err }

// Stop marks err as not worth retrying. Do returns it unwrapped.
func Stop(err error) error {
	if err == nil {
		return nil
	}
	return permanent{err: err}
}

type Config struct {
	MaxAttempts int
	Policy      Policy
	Sleep       func(ctx context.Context, d time.Duration) error
	// OnRetry is called before every pause with the operation name and ReasonThrottled or ReasonFailure.
	OnRetry func(op, reason string, err error)
}

type Retrier struct {
	maxAttempts int
	policy      Policy
	sleep       func(ctx context.Context, d time.Duration) error
	onRetry     func(op, reason string, err error)
}

func New(c Config) *Retrier {
	r := &Retrier{
		maxAttempts: c.MaxAttempts,
		policy:      c.Policy,
		sleep:       c.Sleep,
		onRetry:     c.OnRetry,
	}

	if r.maxAttempts <= 0 {
		r.maxAttempts = DefaultMaxAttempts
	}
	if r.policy == nil {
		r.policy = Exponential(time.Second)
	}
	if r.sleep == nil {
		r.sleep = ratelimit.Sleep
	}
	if r.onRetry == nil {
		r.onRetry = func(string, string, error) {}
	}

	return r
}

// Do runs fn until it succeeds or the attempt budget is spent.
//
// A *Throttled failure pauses for the requested time and does not consume an attempt,
// but at most MaxAttempts throttled retries happen per call so the caller stays bounded.
// When attempts run out the last error is returned as a request error.
func Do[T any](ctx context.Context, r *Retrier, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	var (
		zero      T
		attempt   int
		throttles int
	)

	for {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}

		var p permanent
		if stderrors.As(err, &p) {
			return zero, p.err
		}

		var (
			th    *Throttled
			delay time.Duration
		)
		if stderrors.As(err, &th) && throttles < r.maxAttempts {
			throttles++
			delay = th.After
			if delay <= 0 {
				delay = r.policy(attempt)
			}
			r.onRetry(op, ReasonThrottled, err)
		} else {
			attempt++
			if attempt >= r.maxAttempts {
				return zero, errors.Request(op, err)
			}
			delay = r.policy(attempt - 1)
			r.onRetry(op, ReasonFailure, err)
		}

		if serr := r.sleep(ctx, delay); serr != nil {
			return zero, errors.Request(op, stderrors.Join(err, serr))
		}
	}
}
