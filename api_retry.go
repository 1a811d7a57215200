package seventeenlands

import (
	"time"

	seventeenlands_errors "github.com/madebyform/17lands-mac/errors"
	"github.com/madebyform/17lands-mac/logger"
	"github.com/madebyform/17lands-mac/retry"
)

// Team-wide retry parameters for 17Lands API access.
const (
	initialRetryDelay     = 1 * time.Second
	maxRetryDelay         = 10 * time.Minute
	maxTotalRetryDuration = 24 * time.Hour
)

var apiCallPolicy = retry.Policy{
	InitialDelay:     initialRetryDelay,
	MaxDelay:         maxRetryDelay,
	MaxTotalDuration: maxTotalRetryDuration,
}

// ApiRetry binds the retry engine to the fixed policy used for all 17Lands
// API traffic, so call sites don't restate backoff parameters. Errors are
// retried only when they are connection-level transport failures; anything
// else (malformed request, auth failure, server-side error payload) is
// logged and propagated unchanged.
type ApiRetry struct {
	config *config
	engine *retry.Engine
}

func NewApiRetry(opts ...ConfigOption) *ApiRetry {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	// Resolved after options so that injecting a logger never touches
	// the process-wide registry.
	if cfg.logger == nil {
		cfg.logger = logger.Named(apiRetryLoggerName)
	}

	engine := cfg.engine
	if engine == nil {
		engine = retry.NewEngine()
	}

	return &ApiRetry{
		config: cfg,
		engine: engine,
	}
}

// ApiCall invokes op until validResponse accepts its result, retrying
// connection-level failures with exponential backoff (1s initial, 10min
// cap) for up to 24 hours. Every error op produces is logged at Error
// level, retried or not.
//
// ApiCall is a package-level function rather than an ApiRetry method
// because methods cannot carry type parameters.
func ApiCall[T any](
	r *ApiRetry,
	op func() (T, error),
	validResponse func(T) bool,
) (T, error) {
	return retry.Do(r.engine, op, validResponse, r.shouldRetryError, apiCallPolicy)
}

func (r *ApiRetry) shouldRetryError(err error) bool {
	r.config.logger.Errorf("Error: %v", err)
	return seventeenlands_errors.IsConnectionError(err)
}
