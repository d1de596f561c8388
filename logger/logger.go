package logger

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/philipp01105/nlogstream/core"
	"github.com/philipp01105/nlogstream/handler"
	"github.com/philipp01105/nlogstream/stream"
)

// osExit is a variable to allow overriding os.Exit in tests
var osExit = os.Exit

// disabledThreshold is above every loggable level.
const disabledThreshold = core.PanicLevel + 1

// Logger is the main logging interface (immutable)
type Logger struct {
	handler       handler.Handler
	fastHandler   handler.FastHandler
	level         core.Level
	threshold     core.Level // level, or disabledThreshold for NotSetLevel
	fields        []core.Field
	includeCaller bool
	callerSkip    int
	recycleEntry  bool
	now           func() time.Time
}

var _ stream.Sink = (*Logger)(nil)

// Builder provides a fluent API for building Logger instances
type Builder struct {
	handler       handler.Handler
	level         core.Level
	fields        []core.Field
	includeCaller bool
	callerSkip    int
	coarseClock   bool
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{
		level:      core.InfoLevel,
		callerSkip: 3, // GetCaller, log, exported method
	}
}

// WithHandler sets the handler
func (b *Builder) WithHandler(h handler.Handler) *Builder {
	b.handler = h
	return b
}

// WithLevel sets the minimum level. NotSetLevel disables the logger.
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// WithFields adds default fields to all log entries
func (b *Builder) WithFields(fields ...core.Field) *Builder {
	b.fields = append(b.fields, fields...)
	return b
}

// WithCaller enables caller information
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.includeCaller = enabled
	return b
}

// WithCoarseClock timestamps entries with core.CoarseNow instead of
// time.Now. Timestamps lose sub-millisecond precision.
func (b *Builder) WithCoarseClock(enabled bool) *Builder {
	b.coarseClock = enabled
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() *Logger {
	l := &Logger{
		handler:       b.handler,
		level:         b.level,
		threshold:     thresholdFor(b.level),
		fields:        b.fields,
		includeCaller: b.includeCaller,
		callerSkip:    b.callerSkip,
		now:           time.Now,
	}
	if b.handler != nil {
		l.recycleEntry = handler.CanRecycle(b.handler)
		l.fastHandler, _ = b.handler.(handler.FastHandler)
	}
	if b.coarseClock {
		core.StartCoarseClock()
		l.now = core.CoarseNow
	}
	return l
}

func thresholdFor(level core.Level) core.Level {
	if level == core.NotSetLevel {
		return disabledThreshold
	}
	return level
}

// With creates a new Logger with additional fields (immutable operation)
func (l *Logger) With(fields ...core.Field) *Logger {
	newFields := make([]core.Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	child := *l
	child.fields = newFields
	return &child
}

// WithContext returns a child logger carrying trace_id and span_id of the
// span in ctx. Without a valid span context the receiver is returned.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return l
	}
	return l.With(
		String("trace_id", sc.TraceID().String()),
		String("span_id", sc.SpanID().String()),
	)
}

// Level returns the configured minimum level.
func (l *Logger) Level() core.Level {
	return l.level
}

// Enabled reports whether a message at level would be handed to the
// handler. NotSetLevel is never enabled.
func (l *Logger) Enabled(level core.Level) bool {
	return level >= l.threshold && level <= core.PanicLevel
}

// Log logs a message at the specified level. It never exits or panics,
// whatever the level, which makes Logger usable as a stream.Sink.
func (l *Logger) Log(level core.Level, msg string, fields ...core.Field) {
	// NotSetLevel sorts below every threshold.
	if level < l.threshold {
		return
	}
	l.log(level, msg, fields)
}

// log is the internal logging method that takes a pre-allocated slice
func (l *Logger) log(level core.Level, msg string, fields []core.Field) {
	if l.handler == nil {
		return
	}

	// Fast path: use FastHandler when there are no call-site fields.
	// Passing variadic fields through the interface would make them
	// escape to the heap.
	if l.fastHandler != nil && len(fields) == 0 {
		var caller core.CallerInfo
		if l.includeCaller {
			caller = core.GetCaller(l.callerSkip)
		}
		_ = l.fastHandler.HandleLog(l.now(), level, msg, l.fields, nil, caller)
		return
	}

	entry := core.GetEntry()
	var caller core.CallerInfo
	if l.includeCaller {
		caller = core.GetCaller(l.callerSkip)
	}
	entry.Fill(l.now(), level, msg, l.fields, fields, caller)

	err := l.handler.Handle(entry)
	if err == nil && l.recycleEntry {
		core.PutEntry(entry)
	}
}

// Stream returns a stream that composes one message at level and hands
// it to the logger on EndLine, Flush or Close. When level is not enabled
// the stream is bound to NotSetLevel and discards everything without
// allocating.
func (l *Logger) Stream(level core.Level) *stream.Stream {
	if !l.Enabled(level) {
		return stream.New(l, core.NotSetLevel)
	}
	return stream.New(l, level)
}

// DebugStream returns Stream(DebugLevel).
func (l *Logger) DebugStream() *stream.Stream {
	return l.Stream(core.DebugLevel)
}

// InfoStream returns Stream(InfoLevel).
func (l *Logger) InfoStream() *stream.Stream {
	return l.Stream(core.InfoLevel)
}

// WarnStream returns Stream(WarnLevel).
func (l *Logger) WarnStream() *stream.Stream {
	return l.Stream(core.WarnLevel)
}

// ErrorStream returns Stream(ErrorLevel).
func (l *Logger) ErrorStream() *stream.Stream {
	return l.Stream(core.ErrorLevel)
}

// WithStream runs fn with Stream(level) and flushes whatever fn composed
// when it returns or panics.
func (l *Logger) WithStream(level core.Level, fn func(s *stream.Stream)) {
	s := l.Stream(level)
	defer s.Flush()
	fn(s)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...core.Field) {
	if core.DebugLevel < l.threshold {
		return
	}
	l.log(core.DebugLevel, msg, fields)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...core.Field) {
	if core.InfoLevel < l.threshold {
		return
	}
	l.log(core.InfoLevel, msg, fields)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...core.Field) {
	if core.WarnLevel < l.threshold {
		return
	}
	l.log(core.WarnLevel, msg, fields)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...core.Field) {
	if core.ErrorLevel < l.threshold {
		return
	}
	l.log(core.ErrorLevel, msg, fields)
}

// Fatal logs a fatal message and exits the program with os.Exit(1)
func (l *Logger) Fatal(msg string, fields ...core.Field) {
	l.log(core.FatalLevel, msg, fields)
	osExit(1)
}

// Panic logs a panic message and panics
func (l *Logger) Panic(msg string, fields ...core.Field) {
	l.log(core.PanicLevel, msg, fields)
	panic(msg)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...interface{}) {
	if core.DebugLevel < l.threshold {
		return
	}
	l.log(core.DebugLevel, fmt.Sprintf(format, args...), nil)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...interface{}) {
	if core.InfoLevel < l.threshold {
		return
	}
	l.log(core.InfoLevel, fmt.Sprintf(format, args...), nil)
}

// Warnf logs a warning message with formatting
func (l *Logger) Warnf(format string, args ...interface{}) {
	if core.WarnLevel < l.threshold {
		return
	}
	l.log(core.WarnLevel, fmt.Sprintf(format, args...), nil)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...interface{}) {
	if core.ErrorLevel < l.threshold {
		return
	}
	l.log(core.ErrorLevel, fmt.Sprintf(format, args...), nil)
}

// Fatalf logs a fatal message with formatting and exits the program with os.Exit(1)
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.log(core.FatalLevel, fmt.Sprintf(format, args...), nil)
	osExit(1)
}

// Panicf logs a panic message with formatting and panics
func (l *Logger) Panicf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.log(core.PanicLevel, msg, nil)
	panic(msg)
}

// Close closes the logger's handler
func (l *Logger) Close() error {
	if l.handler != nil {
		return l.handler.Close()
	}
	return nil
}
