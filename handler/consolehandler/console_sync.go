package consolehandler

import (
	"sync/atomic"
	"time"

	"github.com/philipp01105/nlogstream/core"
)

// SyncConsoleHandler writes each entry on the caller's goroutine.
type SyncConsoleHandler struct {
	consoleBase
	closed atomic.Bool
}

func newSyncConsoleHandler(cfg ConsoleConfig) *SyncConsoleHandler {
	h := &SyncConsoleHandler{}
	h.init(cfg)
	return h
}

// HandleLog builds a stack entry and writes it, avoiding the entry pool.
func (h *SyncConsoleHandler) HandleLog(t time.Time, level core.Level, msg string, loggerFields, callFields []core.Field, caller core.CallerInfo) error {
	var entry core.Entry
	if len(loggerFields) > 0 || len(callFields) > 0 {
		entry.Fields = make([]core.Field, 0, len(loggerFields)+len(callFields))
	}
	entry.Fill(t, level, msg, loggerFields, callFields, caller)
	return h.write(&entry)
}

// Handle processes a log entry synchronously.
func (h *SyncConsoleHandler) Handle(entry *core.Entry) error {
	return h.write(entry)
}

// CanRecycleEntry returns true because sync handler processes entries immediately.
func (h *SyncConsoleHandler) CanRecycleEntry() bool {
	return true
}

// Close marks the handler closed. The writer is not closed because the
// handler does not own it.
func (h *SyncConsoleHandler) Close() error {
	h.closed.Store(true)
	return nil
}
