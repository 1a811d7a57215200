package retry

import "errors"

// ErrRetryLimitExceeded is returned when the retry deadline has passed and
// the last attempt still produced a result the response validator rejected.
//
// It is deliberately NOT returned when the last attempt failed with an
// error: in that case the engine re-surfaces the operation's own error
// unchanged, whether the loop stopped because the error was classified as
// non-retryable or because the deadline had passed. Callers that need to
// tell those two apart must track the deadline themselves.
var ErrRetryLimitExceeded = errors.New("retry limit exceeded")
