package retry

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// fakeClock replaces the engine's wall clock and sleep so tests can walk
// through hours of backoff instantly. Each sleep advances the clock by the
// slept amount.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newTestEngine() (*Engine, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	e := NewEngine(
		WithClock(func() time.Time {
			return clock.now
		}),
		WithSleep(func(d time.Duration) {
			clock.sleeps = append(clock.sleeps, d)
			clock.now = clock.now.Add(d)
		}),
	)
	return e, clock
}

func alwaysValid(string) bool { return true }

func neverValid(string) bool { return false }

func alwaysRetryable(error) bool { return true }

func neverRetryable(error) bool { return false }

func Test_Do_first_call_success_no_sleeps(t *testing.T) {
	e, clock := newTestEngine()
	calls := 0

	result, err := Do(e, func() (string, error) {
		calls++
		return "ok", nil
	}, alwaysValid, neverRetryable, Policy{InitialDelay: time.Second})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 1, calls)
	assert.Empty(t, clock.sleeps)
}

func Test_Do_fails_n_times_then_succeeds(t *testing.T) {
	e, clock := newTestEngine()
	calls := 0

	result, err := Do(e, func() (string, error) {
		calls++
		if calls <= 4 {
			return "", fmt.Errorf("transient %d", calls)
		}
		return "ok", nil
	}, alwaysValid, alwaysRetryable, Policy{InitialDelay: time.Second})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 5, calls)
	assert.Equal(t, []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
	}, clock.sleeps)
}

func Test_Do_clamps_backoff_to_max_delay(t *testing.T) {
	e, clock := newTestEngine()
	calls := 0

	result, err := Do(e, func() (string, error) {
		calls++
		if calls <= 6 {
			return "", fmt.Errorf("transient")
		}
		return "ok", nil
	}, alwaysValid, alwaysRetryable, Policy{
		InitialDelay: 1 * time.Second,
		MaxDelay:     10 * time.Second,
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	// 16s would be the fifth delay; it clamps to 10s and stays there.
	assert.Equal(t, []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		10 * time.Second,
		10 * time.Second,
	}, clock.sleeps)
}

func Test_Do_non_retryable_error_propagates_on_first_attempt(t *testing.T) {
	e, clock := newTestEngine()
	opErr := fmt.Errorf("bad credentials")
	calls := 0

	_, err := Do(e, func() (string, error) {
		calls++
		return "", opErr
	}, alwaysValid, neverRetryable, Policy{InitialDelay: time.Second})

	assert.Same(t, opErr, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, clock.sleeps)
}

func Test_Do_expired_deadline_with_unacceptable_result(t *testing.T) {
	e, clock := newTestEngine()
	calls := 0

	_, err := Do(e, func() (string, error) {
		calls++
		return "not good enough", nil
	}, neverValid, alwaysRetryable, Policy{
		InitialDelay:     time.Second,
		MaxTotalDuration: -time.Nanosecond,
	})

	assert.ErrorIs(t, err, ErrRetryLimitExceeded)
	assert.Equal(t, 1, calls)
	assert.Empty(t, clock.sleeps)
}

func Test_Do_deadline_elapses_mid_loop_propagates_error(t *testing.T) {
	e, clock := newTestEngine()
	opErr := fmt.Errorf("still down")
	calls := 0

	_, err := Do(e, func() (string, error) {
		calls++
		return "", opErr
	}, alwaysValid, alwaysRetryable, Policy{
		InitialDelay:     time.Second,
		MaxTotalDuration: 10 * time.Second,
	})

	// Delays 1+2+4+8 = 15s push the clock past the 10s deadline, so the
	// fifth iteration is the last call and the retryable error surfaces
	// unchanged instead of being absorbed again.
	assert.Same(t, opErr, err)
	assert.Equal(t, 5, calls)
	assert.Equal(t, []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
	}, clock.sleeps)
}

func Test_Do_rejected_result_retries_until_accepted(t *testing.T) {
	e, clock := newTestEngine()
	calls := 0

	result, err := Do(e, func() (int, error) {
		calls++
		return calls, nil
	}, func(n int) bool {
		return n >= 3
	}, neverRetryable, Policy{InitialDelay: time.Second})

	require.NoError(t, err)
	assert.Equal(t, 3, result)
	assert.Equal(t, []time.Duration{
		1 * time.Second,
		2 * time.Second,
	}, clock.sleeps)
}

func Test_Do_invalid_policy(t *testing.T) {
	e, clock := newTestEngine()
	calls := 0

	_, err := Do(e, func() (string, error) {
		calls++
		return "ok", nil
	}, alwaysValid, alwaysRetryable, Policy{})

	assert.Error(t, err)
	assert.Equal(t, 0, calls)
	assert.Empty(t, clock.sleeps)
}

func Test_UntilSuccessful_first_call(t *testing.T) {
	result, err := UntilSuccessful(func() (string, error) {
		return "ok", nil
	}, alwaysValid, neverRetryable, Policy{InitialDelay: time.Second})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
}

func Test_Do_concurrent_loops_are_isolated(t *testing.T) {
	e := NewEngine()

	var group errgroup.Group
	for i := 0; i < 8; i++ {
		group.Go(func() error {
			calls := 0
			result, err := Do(e, func() (string, error) {
				calls++
				if calls <= 2 {
					return "", fmt.Errorf("transient")
				}
				return "ok", nil
			}, alwaysValid, alwaysRetryable, Policy{
				InitialDelay: time.Microsecond,
			})
			if err != nil {
				return err
			}
			if result != "ok" {
				return fmt.Errorf("unexpected result %q", result)
			}
			return nil
		})
	}

	require.NoError(t, group.Wait())
}
