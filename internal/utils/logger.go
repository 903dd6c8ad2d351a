// Package utils provides common utilities shared across packages
package utils

// Logger is the logging surface the engine packages depend on.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// NoopLogger discards everything.
type NoopLogger struct{}

func (NoopLogger) Debug(format string, args ...any) {}
func (NoopLogger) Info(format string, args ...any)  {}
func (NoopLogger) Warn(format string, args ...any)  {}
func (NoopLogger) Error(format string, args ...any) {}

// FuncLogger sends every level to one callback. It lets callers that only
// want a verbose hook plug into APIs that take a Logger.
type FuncLogger func(level, format string, args ...any)

func (f FuncLogger) Debug(format string, args ...any) { f("debug", format, args...) }
func (f FuncLogger) Info(format string, args ...any)  { f("info", format, args...) }
func (f FuncLogger) Warn(format string, args ...any)  { f("warn", format, args...) }
func (f FuncLogger) Error(format string, args ...any) { f("error", format, args...) }
