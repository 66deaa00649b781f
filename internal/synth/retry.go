package synth

import (
	"errors"
	"math/rand"
	"time"
)

// MaxRetries bounds how often a transient gateway failure is retried
// before Synthesize gives up and surfaces the error.
const MaxRetries = 3

const backoffCap = 30 * time.Second

// IsRetryable reports whether an error represents a transient failure
// (rate limit or server-side) rather than a permanent one.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff returns the wait before retry attempt n (0-indexed):
// exponential growth capped at 30s, plus up to 50% jitter so parallel
// runs against the same account do not retry in lockstep.
func Backoff(attempt int) time.Duration {
	d := time.Second << uint(attempt)
	if d > backoffCap || d <= 0 {
		d = backoffCap
	}
	return d + time.Duration(rand.Int63n(int64(d/2)))
}
