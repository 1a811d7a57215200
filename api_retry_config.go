package seventeenlands

import (
	"github.com/madebyform/17lands-mac/logger"
	"github.com/madebyform/17lands-mac/retry"
)

const apiRetryLoggerName = "api_retry"

type config struct {
	// logger receives an Error-level entry for every failed API attempt.
	// default: the registry logger named "api_retry"
	logger logger.Logger

	// engine runs the retry loop. Useful for injecting a custom-configured
	// engine (e.g. one with its own logger).
	// default: retry.NewEngine()
	engine *retry.Engine
}

func defaultConfig() *config {
	return &config{}
}

type ConfigOption func(c *config)

func WithLogger(log logger.Logger) ConfigOption {
	return func(c *config) {
		c.logger = log
	}
}

func WithEngine(engine *retry.Engine) ConfigOption {
	return func(c *config) {
		c.engine = engine
	}
}
