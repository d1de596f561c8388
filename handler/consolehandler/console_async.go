package consolehandler

import (
	"time"

	"github.com/philipp01105/nlogstream/core"
	"github.com/philipp01105/nlogstream/handler"
)

// AsyncConsoleHandler writes entries on a background goroutine through
// a handler.AsyncQueue.
type AsyncConsoleHandler struct {
	consoleBase
	queue *handler.AsyncQueue
}

func newAsyncConsoleHandler(cfg ConsoleConfig) *AsyncConsoleHandler {
	h := &AsyncConsoleHandler{}
	h.init(cfg)
	h.queue = handler.NewAsyncQueue(cfg.asyncConfig(), h.stats, h.write)
	return h
}

// HandleLog queues an entry built from its parts.
func (h *AsyncConsoleHandler) HandleLog(t time.Time, level core.Level, msg string, loggerFields, callFields []core.Field, caller core.CallerInfo) error {
	return h.queue.EnqueueLog(t, level, msg, loggerFields, callFields, caller)
}

// Handle queues a copy of the entry.
func (h *AsyncConsoleHandler) Handle(entry *core.Entry) error {
	return h.queue.Enqueue(entry)
}

// CanRecycleEntry returns true: the queue keeps its own copy.
func (h *AsyncConsoleHandler) CanRecycleEntry() bool {
	return true
}

// Close drains the queue and stops the background goroutine.
func (h *AsyncConsoleHandler) Close() error {
	return h.queue.Close()
}
