// Package consolehandler provides handlers that write formatted log
// entries to any io.Writer (default: os.Stdout).
//
//   - SyncConsoleHandler writes on the caller's goroutine. When its lock
//     is contended it formats into a pooled buffer outside the lock.
//   - AsyncConsoleHandler hands entries to a handler.AsyncQueue, which
//     applies the per-level OverflowPolicy.
//
// NewConsoleHandler picks the variant from ConsoleConfig.Async.
package consolehandler
