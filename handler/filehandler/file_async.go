package filehandler

import (
	"time"

	"github.com/philipp01105/nlogstream/core"
	"github.com/philipp01105/nlogstream/handler"
)

// AsyncFileHandler writes entries on a background goroutine through a
// handler.AsyncQueue.
type AsyncFileHandler struct {
	fileBase
	queue *handler.AsyncQueue
}

func newAsyncFileHandler(cfg FileConfig) *AsyncFileHandler {
	h := &AsyncFileHandler{}
	initFileBase(&h.fileBase, cfg)
	h.queue = handler.NewAsyncQueue(handler.AsyncConfig{
		BufferSize:     cfg.BufferSize,
		OverflowPolicy: cfg.OverflowPolicy,
		BlockTimeout:   cfg.BlockTimeout,
		DrainTimeout:   cfg.DrainTimeout,
	}, h.stats, h.write)
	return h
}

// HandleLog queues an entry built from its parts.
func (h *AsyncFileHandler) HandleLog(t time.Time, level core.Level, msg string, loggerFields, callFields []core.Field, caller core.CallerInfo) error {
	return h.queue.EnqueueLog(t, level, msg, loggerFields, callFields, caller)
}

// Handle queues a copy of the entry.
func (h *AsyncFileHandler) Handle(entry *core.Entry) error {
	return h.queue.Enqueue(entry)
}

// CanRecycleEntry returns true: the queue keeps its own copy.
func (h *AsyncFileHandler) CanRecycleEntry() bool {
	return true
}

// Close drains the queue, then flushes and closes the file.
func (h *AsyncFileHandler) Close() error {
	if err := h.queue.Close(); err != nil {
		return err
	}
	return h.closeFile()
}
