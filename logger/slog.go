package logger

import (
	"fmt"
	"log/slog"
)

type slogLogger struct {
	log *slog.Logger
}

var _ Logger = &slogLogger{}

// NewSlog wraps an *slog.Logger in the package Logger interface.
// Formatted messages are rendered with fmt.Sprintf before being handed to
// slog, so attribute-style arguments are not interpreted.
func NewSlog(log *slog.Logger) Logger {
	return &slogLogger{log: log}
}

func (s *slogLogger) Debugf(format string, args ...any) {
	s.log.Debug(fmt.Sprintf(format, args...))
}

func (s *slogLogger) Infof(format string, args ...any) {
	s.log.Info(fmt.Sprintf(format, args...))
}

func (s *slogLogger) Warnf(format string, args ...any) {
	s.log.Warn(fmt.Sprintf(format, args...))
}

func (s *slogLogger) Errorf(format string, args ...any) {
	s.log.Error(fmt.Sprintf(format, args...))
}
