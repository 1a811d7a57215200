package retry

import (
	"time"

	"github.com/madebyform/17lands-mac/logger"
)

type engineConfig struct {
	logger logger.Logger

	// now and sleep exist so tests can drive the clock without waiting
	// out real backoff delays.
	now   func() time.Time
	sleep func(time.Duration)
}

func defaultEngineConfig() engineConfig {
	return engineConfig{
		logger: logger.Noop{},
		now:    time.Now,
		sleep:  time.Sleep,
	}
}

type EngineOption func(c *engineConfig)

func WithLogger(log logger.Logger) EngineOption {
	return func(c *engineConfig) {
		c.logger = log
	}
}

// WithClock replaces the wall clock used for deadline accounting.
func WithClock(now func() time.Time) EngineOption {
	return func(c *engineConfig) {
		c.now = now
	}
}

// WithSleep replaces the blocking sleep between attempts. Useful in tests
// that need to observe or skip backoff delays.
func WithSleep(sleep func(time.Duration)) EngineOption {
	return func(c *engineConfig) {
		c.sleep = sleep
	}
}

// Engine drives retry loops. It holds no per-call state: a single Engine
// may be shared by any number of goroutines, each Do call owning its own
// backoff and deadline.
type Engine struct {
	config engineConfig
}

func NewEngine(opts ...EngineOption) *Engine {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(&config)
	}

	return &Engine{config}
}

var defaultEngine = NewEngine()

// UntilSuccessful repeatedly invokes op until validResponse accepts its
// result, retryableError rejects its error, or the policy's time budget
// runs out. It is Do on a shared default engine.
func UntilSuccessful[T any](
	op func() (T, error),
	validResponse func(T) bool,
	retryableError func(error) bool,
	policy Policy,
) (T, error) {
	return Do(defaultEngine, op, validResponse, retryableError, policy)
}

// Do runs op on the calling goroutine until one of:
//   - op returns a value that validResponse accepts: that value is
//     returned.
//   - op returns an error that retryableError rejects: that error is
//     returned unchanged, immediately, with no further attempts.
//   - the policy deadline has passed at the top of an iteration: the
//     iteration still runs, and an unacceptable result maps to
//     ErrRetryLimitExceeded while an error is returned unchanged.
//
// Between attempts Do blocks for the current backoff delay, which starts
// at policy.InitialDelay and doubles after every absorbed failure, clamped
// to policy.MaxDelay when set. There is no jitter: independent loops
// started together will back off in lockstep.
//
// op may have side effects; Do assumes it is safe to invoke repeatedly and
// does nothing to enforce that.
//
// Do is a package-level function rather than an Engine method because
// methods cannot carry type parameters.
func Do[T any](
	e *Engine,
	op func() (T, error),
	validResponse func(T) bool,
	retryableError func(error) bool,
	policy Policy,
) (T, error) {
	var zero T
	if err := policy.Validate(); err != nil {
		return zero, err
	}

	var deadline time.Time
	if policy.hasDeadline() {
		deadline = e.config.now().Add(policy.MaxTotalDuration)
	}

	nextDelay := policy.InitialDelay
	for {
		// Checked once per iteration, before the attempt. A slow op can
		// carry execution past the deadline without being aborted; the
		// next iteration's check picks that up.
		isLastCall := policy.hasDeadline() && e.config.now().After(deadline)

		result, err := op()
		if err == nil {
			if validResponse(result) {
				return result, nil
			}
			if isLastCall {
				return zero, ErrRetryLimitExceeded
			}
			e.config.logger.Warnf(
				"Response rejected by validator; retrying. backoff=%v",
				nextDelay,
			)
		} else {
			if isLastCall || !retryableError(err) {
				return zero, err
			}
			e.config.logger.Warnf(
				"Recoverable error; retrying. backoff=%v, error=%v",
				nextDelay, err,
			)
		}

		e.config.sleep(nextDelay)

		nextDelay *= 2
		if policy.MaxDelay != 0 && nextDelay > policy.MaxDelay {
			nextDelay = policy.MaxDelay
		}
	}
}
