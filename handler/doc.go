// Package handler provides the Handler interface and the pieces shared by
// the built-in handlers in its sub-packages.
//
// A Handler receives finished entries from a logger. Handlers may also
// implement FastHandler to take the parts of an entry without a pooled
// Entry, StatsProvider to expose counters, and Recycler to tell the
// logger whether an entry can be reused once Handle returns.
//
// AsyncQueue moves writes onto a background goroutine. When the bounded
// queue is full, a per-level OverflowPolicy applies: DropNewest (default
// for Debug, Info and Warn), DropOldest, or Block with a timeout (default
// for Error and above) after which the entry is written synchronously.
//
// Sub-packages:
//
//   - consolehandler writes to any io.Writer (default: stdout).
//   - filehandler writes to a rotated file, optionally under a
//     cross-process lock.
//   - zaphandler forwards entries to a zapcore.Core.
//   - natshandler publishes entries to a NATS subject.
//
// MultiHandler fans out to several handlers and SlogHandler adapts a
// Handler to log/slog.
package handler
