package zaphandler

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/nlogstream/core"
	"github.com/philipp01105/nlogstream/handler"
)

// ZapHandler forwards entries to a zapcore.Core.
//
// Entries are written to the core directly, so FATAL and PANIC records
// never terminate the process or panic: that decision belongs to the
// logger, not to a destination.
type ZapHandler struct {
	core   zapcore.Core
	stats  *handler.Stats
	closed atomic.Bool
}

// New wraps c. Level filtering configured on c still applies.
func New(c zapcore.Core) *ZapHandler {
	return &ZapHandler{core: c, stats: handler.NewStats()}
}

// FromLogger wraps the core of an existing zap logger.
func FromLogger(l *zap.Logger) *ZapHandler {
	return New(l.Core())
}

// HandleLog converts the parts to a zap entry and writes it.
func (h *ZapHandler) HandleLog(t time.Time, level core.Level, msg string, loggerFields, callFields []core.Field, caller core.CallerInfo) error {
	if h.closed.Load() {
		return nil
	}
	zl, ok := ZapLevel(level)
	if !ok || !h.core.Enabled(zl) {
		return nil
	}

	ent := zapcore.Entry{
		Level:   zl,
		Time:    t,
		Message: msg,
	}
	if caller.Defined {
		ent.Caller = zapcore.NewEntryCaller(0, caller.File, caller.Line, true)
		ent.Caller.Function = caller.Function
	}

	fields := make([]zapcore.Field, 0, len(loggerFields)+len(callFields))
	fields = appendZapFields(fields, loggerFields)
	fields = appendZapFields(fields, callFields)

	if err := h.core.Write(ent, fields); err != nil {
		h.stats.IncrementFailed()
		return err
	}
	h.stats.IncrementProcessed()
	return nil
}

// Handle writes a pooled entry.
func (h *ZapHandler) Handle(entry *core.Entry) error {
	return h.HandleLog(entry.Time, entry.Level, entry.Message, entry.Fields, nil, entry.Caller)
}

// CanRecycleEntry returns true: entries are converted before Handle returns.
func (h *ZapHandler) CanRecycleEntry() bool {
	return true
}

// Stats returns a snapshot of the current statistics
func (h *ZapHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close syncs the core. Later entries are ignored.
func (h *ZapHandler) Close() error {
	if h.closed.Swap(true) {
		return nil
	}
	return h.core.Sync()
}

// ZapLevel maps a level to its zap counterpart. NotSetLevel and unknown
// levels have none.
func ZapLevel(level core.Level) (zapcore.Level, bool) {
	switch level {
	case core.DebugLevel:
		return zapcore.DebugLevel, true
	case core.InfoLevel:
		return zapcore.InfoLevel, true
	case core.WarnLevel:
		return zapcore.WarnLevel, true
	case core.ErrorLevel:
		return zapcore.ErrorLevel, true
	case core.FatalLevel:
		return zapcore.FatalLevel, true
	case core.PanicLevel:
		return zapcore.PanicLevel, true
	default:
		return zapcore.InvalidLevel, false
	}
}

func appendZapFields(dst []zapcore.Field, fields []core.Field) []zapcore.Field {
	for _, f := range fields {
		dst = append(dst, zapField(f))
	}
	return dst
}

func zapField(f core.Field) zapcore.Field {
	switch f.Type {
	case core.StringType:
		return zap.String(f.Key, f.Str)
	case core.IntType, core.Int64Type:
		return zap.Int64(f.Key, f.Int64)
	case core.Float64Type:
		return zap.Float64(f.Key, f.Float64)
	case core.BoolType:
		return zap.Bool(f.Key, f.Int64 == 1)
	case core.TimeType:
		return zap.Time(f.Key, time.Unix(0, f.Int64))
	case core.DurationType:
		return zap.Duration(f.Key, time.Duration(f.Int64))
	case core.ErrorType:
		// The error value is gone by now; keep its text under the same key.
		return zap.String(f.Key, f.Str)
	default:
		return zap.Any(f.Key, f.Any)
	}
}
