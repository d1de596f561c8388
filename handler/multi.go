package handler

import (
	"errors"
	"time"

	"github.com/philipp01105/nlogstream/core"
)

// MultiHandler sends log entries to multiple handlers
type MultiHandler struct {
	handlers     []Handler
	fastHandlers []FastHandler // nil where the child does not implement FastHandler
	allFast      bool
	recycleEntry bool
}

// NewMultiHandler creates a new multi-handler
func NewMultiHandler(handlers ...Handler) *MultiHandler {
	m := &MultiHandler{
		handlers:     handlers,
		fastHandlers: make([]FastHandler, len(handlers)),
		allFast:      true,
		recycleEntry: true,
	}
	for i, h := range handlers {
		if fh, ok := h.(FastHandler); ok {
			m.fastHandlers[i] = fh
		} else {
			m.allFast = false
		}
		if !CanRecycle(h) {
			m.recycleEntry = false
		}
	}
	return m
}

// HandleLog processes log data directly. When every child implements
// FastHandler no Entry is built at all.
func (h *MultiHandler) HandleLog(t time.Time, level core.Level, msg string, loggerFields, callFields []core.Field, caller core.CallerInfo) error {
	var errs []error
	if h.allFast {
		for _, fh := range h.fastHandlers {
			if err := fh.HandleLog(t, level, msg, loggerFields, callFields, caller); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	entry := core.GetEntry()
	entry.Fill(t, level, msg, loggerFields, callFields, caller)
	for i, child := range h.handlers {
		var err error
		if fh := h.fastHandlers[i]; fh != nil {
			err = fh.HandleLog(t, level, msg, loggerFields, callFields, caller)
		} else {
			err = child.Handle(entry)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	if h.recycleEntry {
		core.PutEntry(entry)
	}
	return errors.Join(errs...)
}

// Handle processes a log entry by sending it to all handlers
func (h *MultiHandler) Handle(entry *core.Entry) error {
	var errs []error
	for _, child := range h.handlers {
		if err := child.Handle(entry); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CanRecycleEntry returns true if the caller can recycle the entry after
// Handle returns, which holds when every child can.
func (h *MultiHandler) CanRecycleEntry() bool {
	return h.recycleEntry
}

// Close closes all handlers
func (h *MultiHandler) Close() error {
	var errs []error
	for _, child := range h.handlers {
		if err := child.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
