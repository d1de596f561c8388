package filehandler

import (
	"time"

	"github.com/philipp01105/nlogstream/core"
)

// SyncFileHandler writes each entry on the caller's goroutine.
type SyncFileHandler struct {
	fileBase
	syncEntry core.Entry // guarded by mu
}

func newSyncFileHandler(cfg FileConfig) *SyncFileHandler {
	h := &SyncFileHandler{}
	initFileBase(&h.fileBase, cfg)
	h.syncEntry.Fields = make([]core.Field, 0, 16)
	return h
}

// HandleLog writes log data directly, reusing a handler-owned entry.
func (h *SyncFileHandler) HandleLog(t time.Time, level core.Level, msg string, loggerFields, callFields []core.Field, caller core.CallerInfo) error {
	h.mu.Lock()
	h.syncEntry.Fill(t, level, msg, loggerFields, callFields, caller)
	err := h.writeLocked(&h.syncEntry)
	h.mu.Unlock()

	if err != nil {
		h.stats.IncrementFailed()
		return err
	}
	h.stats.IncrementProcessed()
	return nil
}

// Handle processes a log entry synchronously.
func (h *SyncFileHandler) Handle(entry *core.Entry) error {
	return h.write(entry)
}

// CanRecycleEntry returns true because sync handler processes entries immediately.
func (h *SyncFileHandler) CanRecycleEntry() bool {
	return true
}

// Close flushes and closes the file.
func (h *SyncFileHandler) Close() error {
	return h.closeFile()
}
