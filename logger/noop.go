package logger

// Noop discards everything. It is the default logger for the retry engine
// and the API retry preset, keeping the library silent unless a caller
// injects something real.
type Noop struct{}

var _ Logger = Noop{}

func (Noop) Debugf(format string, args ...any) {}

func (Noop) Infof(format string, args ...any) {}

func (Noop) Warnf(format string, args ...any) {}

func (Noop) Errorf(format string, args ...any) {}
