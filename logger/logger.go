package logger

// Logger is the logging interface consumed throughout this library.
// It defines methods for different log levels (Debug, Info, Warn, Error)
// so callers can plug in their preferred logging implementation
// (e.g., slog, logrus, zap, standard log) or use the provided Noop
// logger to disable logging entirely.
//
// The logger is used for:
// - retry attempt tracking inside the retry engine
// - error reporting from the API retry preset
//
// Usage Example:
//
//	// Inject a custom logger into the API retry preset
//	r := seventeenlands.NewApiRetry(seventeenlands.WithLogger(myLogger))
//
//	// Use the process-wide registry (colored console + rotating file)
//	log := logger.Named("retry_utils")
//
//	// Disable logging entirely
//	r := seventeenlands.NewApiRetry(seventeenlands.WithLogger(logger.Noop{}))
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
