// Package benchmark compares composing log messages with nlogstream
// streams against zap, zerolog, logrus and log/slog.
package benchmark

import (
	"time"

	"github.com/philipp01105/nlogstream/core"
)

// noopHandler measures the cost of producing entries without formatting
// or writing them.
type noopHandler struct{}

func (noopHandler) Handle(e *core.Entry) error {
	_ = len(e.Message)
	return nil
}

func (noopHandler) HandleLog(_ time.Time, _ core.Level, msg string, _, _ []core.Field, _ core.CallerInfo) error {
	_ = len(msg)
	return nil
}

func (noopHandler) CanRecycleEntry() bool { return true }

func (noopHandler) Close() error { return nil }

// countingSink is a stream.Sink that only counts deliveries.
type countingSink struct {
	n int
}

func (s *countingSink) Log(_ core.Level, msg string, _ ...core.Field) {
	s.n += len(msg)
}
