package retry

import (
	"fmt"
	"time"
)

// Policy defines the backoff and deadline parameters for one retry loop.
//
// A Policy is read-only for the lifetime of a Do or UntilSuccessful call;
// the engine never mutates it and callers may reuse the same value across
// any number of concurrent calls.
type Policy struct {
	// InitialDelay is the delay before the first retry.
	// Every subsequent delay doubles the previous one.
	// Must be positive.
	InitialDelay time.Duration

	// MaxDelay caps the exponential growth of the delay between attempts.
	// Zero means uncapped.
	MaxDelay time.Duration

	// MaxTotalDuration bounds the total wall-clock time spent retrying.
	// The deadline is computed once when the loop starts and is never
	// recomputed. Zero means no deadline: the loop retries until the
	// response validator accepts a result or the error validator rejects
	// an error, potentially forever. A negative value places the deadline
	// in the past, so the first attempt is also the last.
	//
	// There is no maximum attempt count, only this duration bound. Callers
	// wanting bounded attempts must derive a duration from their expected
	// per-attempt cost.
	MaxTotalDuration time.Duration
}

// Validate checks policy values.
func (p Policy) Validate() error {
	if p.InitialDelay <= 0 {
		return fmt.Errorf("initial delay must be positive, got %v", p.InitialDelay)
	}
	if p.MaxDelay != 0 && p.MaxDelay < p.InitialDelay {
		return fmt.Errorf(
			"max delay %v must be >= initial delay %v",
			p.MaxDelay, p.InitialDelay,
		)
	}
	return nil
}

// hasDeadline reports whether the policy bounds total retry time.
func (p Policy) hasDeadline() bool {
	return p.MaxTotalDuration != 0
}
