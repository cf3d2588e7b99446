package fetch

import (
	"context"
	"math/rand"
	"time"
)

// RetryPolicy controls the exponential backoff used for retryable source
// fetches (spec §4.D: "default 3 tries, initial 1s, factor 2, cap 30s,
// jitter up to 30%").
type RetryPolicy struct {
	MaxAttempts int
	Initial     time.Duration
	Factor      float64
	Cap         time.Duration
	JitterFrac  float64
}

// DefaultRetryPolicy is the policy described in §4.D.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Initial:     1 * time.Second,
		Factor:      2,
		Cap:         30 * time.Second,
		JitterFrac:  0.3,
	}
}

// delay returns the backoff delay after failed attempt n (1-indexed:
// delay(1) precedes the 2nd attempt, delay(2) the 3rd, and so on).
func (p RetryPolicy) delay(attempt int) time.Duration {
	d := float64(p.Initial)
	for i := 1; i < attempt; i++ {
		d *= p.Factor
	}
	if cap := float64(p.Cap); d > cap {
		d = cap
	}
	if p.JitterFrac > 0 {
		jitter := d * p.JitterFrac * rand.Float64()
		d = d - (d*p.JitterFrac)/2 + jitter
	}
	if d < 0 {
		d = 0
	}
	return time.Duration(d)
}

// do runs attempt with retries. The attempt function returns
// (result, retryable, err); attempt is retried up to
// MaxAttempts times with backoff when retryable is true and err != nil.
func do[T any](ctx context.Context, p RetryPolicy, attempt func(ctx context.Context, n int) (T, bool, error)) (T, error) {
	var zero T
	var lastErr error
	for n := 1; n <= p.MaxAttempts; n++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		result, retryable, err := attempt(ctx, n)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !retryable || n == p.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(p.delay(n)):
		}
	}
	return zero, lastErr
}
