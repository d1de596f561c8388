// Package logger is the public API of nlogstream. Most users only need to
// import this package.
//
// A Logger is immutable after construction: fields, level and handler
// are set once via the Builder. It is safe for concurrent use without
// locking on the read path.
//
// The package initializes a default Logger (async, InfoLevel, text
// format to stdout) in init(). The package-level functions Info,
// Error, Debugf, InfoStream, etc. delegate to this default instance:
//
//	logger.Info("ready", logger.Int("port", 8080))
//
// For custom configuration, use the Builder:
//
//	log := logger.NewBuilder().
//	    WithHandler(myHandler).
//	    WithLevel(logger.DebugLevel).
//	    WithCaller(true).
//	    Build()
//
// # Streams
//
// A Logger is a stream.Sink. Stream, InfoStream and friends return a
// stream.Stream that builds one message from many fragments and logs it
// when stream.EndLine is appended:
//
//	log.WarnStream().Append("disk ").Append(93).Append("%").Append(stream.EndLine)
//
// The level is checked once, when the stream is created. A stream for a
// disabled level is bound to NotSetLevel and drops every fragment
// without allocating, so composing a filtered-out message is cheap.
//
// Child loggers with extra fields are created via With or, for
// OpenTelemetry trace correlation, WithContext.
package logger
