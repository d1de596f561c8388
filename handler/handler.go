package handler

import (
	"time"

	"github.com/philipp01105/nlogstream/core"
)

// Handler defines the interface for log handlers
type Handler interface {
	// Handle processes a log entry
	Handle(entry *core.Entry) error

	// Close closes the handler and releases resources
	Close() error
}

// FastHandler is an optional interface that handlers can implement
// to process log data directly without requiring an Entry from the pool.
type FastHandler interface {
	HandleLog(t time.Time, level core.Level, msg string, loggerFields, callFields []core.Field, caller core.CallerInfo) error
}

// StatsProvider is implemented by handlers that count processed, dropped
// and blocked entries.
type StatsProvider interface {
	Stats() Snapshot
}

// Recycler is implemented by handlers that are done with an entry when
// Handle returns, so the caller may put it back into the pool.
type Recycler interface {
	CanRecycleEntry() bool
}

// CanRecycle reports whether entries passed to h may be recycled after
// Handle returns.
func CanRecycle(h Handler) bool {
	rc, ok := h.(Recycler)
	return ok && rc.CanRecycleEntry()
}
