package logger

import (
	"sync/atomic"

	"github.com/philipp01105/nlogstream/core"
	"github.com/philipp01105/nlogstream/formatter"
	"github.com/philipp01105/nlogstream/handler/consolehandler"
	"github.com/philipp01105/nlogstream/stream"
)

var defaultLogger atomic.Pointer[Logger]

func init() {
	h := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Async:      true,
		BufferSize: 1000,
		Formatter:  formatter.NewTextFormatter(formatter.Config{}),
	})
	defaultLogger.Store(NewBuilder().WithHandler(h).WithLevel(core.InfoLevel).Build())
}

// Default returns the logger used by the package-level functions. It
// starts as an asynchronous INFO logger writing text to stdout.
func Default() *Logger {
	return defaultLogger.Load()
}

// SetDefault replaces the package-level logger and returns the previous
// one. A nil l is ignored.
func SetDefault(l *Logger) *Logger {
	if l == nil {
		return Default()
	}
	return defaultLogger.Swap(l)
}

func Debug(msg string, fields ...core.Field) { Default().Debug(msg, fields...) }
func Info(msg string, fields ...core.Field)  { Default().Info(msg, fields...) }
func Warn(msg string, fields ...core.Field)  { Default().Warn(msg, fields...) }
func Error(msg string, fields ...core.Field) { Default().Error(msg, fields...) }

// Fatal logs through the default logger and exits the process.
func Fatal(msg string, fields ...core.Field) { Default().Fatal(msg, fields...) }

// Panic logs through the default logger and panics with msg.
func Panic(msg string, fields ...core.Field) { Default().Panic(msg, fields...) }

func Debugf(format string, args ...any) { Default().Debugf(format, args...) }
func Infof(format string, args ...any)  { Default().Infof(format, args...) }
func Warnf(format string, args ...any)  { Default().Warnf(format, args...) }
func Errorf(format string, args ...any) { Default().Errorf(format, args...) }
func Fatalf(format string, args ...any) { Default().Fatalf(format, args...) }
func Panicf(format string, args ...any) { Default().Panicf(format, args...) }

// With derives a child of the default logger.
func With(fields ...core.Field) *Logger {
	return Default().With(fields...)
}

// Stream returns a stream of the default logger at level; see
// Logger.Stream.
func Stream(level core.Level) *stream.Stream {
	return Default().Stream(level)
}

func DebugStream() *stream.Stream { return Default().DebugStream() }
func InfoStream() *stream.Stream  { return Default().InfoStream() }
func WarnStream() *stream.Stream  { return Default().WarnStream() }
func ErrorStream() *stream.Stream { return Default().ErrorStream() }

// WithStream runs fn with a stream of the default logger at level and
// flushes it afterwards.
func WithStream(level core.Level, fn func(s *stream.Stream)) {
	Default().WithStream(level, fn)
}
