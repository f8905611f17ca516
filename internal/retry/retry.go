package retry

import (
	"log/slog"
	"time"
)

// Policy controls how many times an operation is attempted and how long to
// wait between attempts. The delay before retry i (zero-indexed) is
// 2^i * BaseDelay.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration

	// sleep is swapped out in tests.
	sleep func(time.Duration)
}

// DefaultPolicy matches the provider contract: 3 attempts, 1s base delay.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 3, BaseDelay: time.Second, sleep: time.Sleep}
}

// NewPolicy builds a policy with the given attempt budget and base delay.
func NewPolicy(maxAttempts int, baseDelay time.Duration) Policy {
	return Policy{MaxAttempts: maxAttempts, BaseDelay: baseDelay, sleep: time.Sleep}
}

// WithSleep returns a copy of the policy using fn instead of time.Sleep.
func (p Policy) WithSleep(fn func(time.Duration)) Policy {
	p.sleep = fn
	return p
}

// Do runs op until it succeeds or the attempt budget is exhausted, sleeping
// 2^attempt * BaseDelay between failures. The last error is returned as-is;
// no partial result is synthesized. Each failed attempt is logged with the
// service name and attempt index. An attempt already in flight is never
// interrupted.
func Do[T any](p Policy, service string, op func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	sleep := p.sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		result, err := op()
		if err == nil {
			return result, nil
		}
		lastErr = err
		slog.Error("provider call failed",
			"service", service,
			"attempt", attempt+1,
			"max_attempts", maxAttempts,
			"error", err.Error(),
		)

		if attempt < maxAttempts-1 {
			sleep(time.Duration(1<<uint(attempt)) * p.BaseDelay)
		}
	}

	return zero, lastErr
}
