package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/nlogstream/core"
	"github.com/philipp01105/nlogstream/handler"
)

type staticStats struct {
	snap handler.Snapshot
}

func (s staticStats) Stats() handler.Snapshot { return s.snap }

type plainHandler struct{}

func (plainHandler) Handle(*core.Entry) error { return nil }
func (plainHandler) Close() error             { return nil }

func TestCollector_Counters(t *testing.T) {
	c := NewCollector("")
	require.NoError(t, c.Add("file", staticStats{handler.Snapshot{
		ProcessedTotal: 42,
		BlockedTotal:   3,
		FailedTotal:    1,
		DroppedTotal:   map[core.Level]uint64{core.DebugLevel: 5, core.InfoLevel: 2},
	}}))

	expected := `
# HELP nlog_handler_processed_total Total number of entries written by the handler
# TYPE nlog_handler_processed_total counter
nlog_handler_processed_total{handler="file"} 42
# HELP nlog_handler_blocked_total Total number of times a caller blocked on a full queue
# TYPE nlog_handler_blocked_total counter
nlog_handler_blocked_total{handler="file"} 3
# HELP nlog_handler_failed_total Total number of entries the handler failed to write
# TYPE nlog_handler_failed_total counter
nlog_handler_failed_total{handler="file"} 1
# HELP nlog_handler_dropped_total Total number of entries dropped by the overflow policy
# TYPE nlog_handler_dropped_total counter
nlog_handler_dropped_total{handler="file",level="DEBUG"} 5
nlog_handler_dropped_total{handler="file",level="ERROR"} 0
nlog_handler_dropped_total{handler="file",level="FATAL"} 0
nlog_handler_dropped_total{handler="file",level="INFO"} 2
nlog_handler_dropped_total{handler="file",level="PANIC"} 0
nlog_handler_dropped_total{handler="file",level="WARN"} 0
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected)))
}

func TestCollector_LiveStats(t *testing.T) {
	stats := handler.NewStats()
	q := handler.NewAsyncQueue(handler.AsyncConfig{BufferSize: 4}, stats, func(*core.Entry) error {
		stats.IncrementProcessed()
		return nil
	})

	c := NewCollector("app")
	require.NoError(t, c.Add("queue", statsFunc(stats.GetSnapshot)))

	entry := core.GetEntry()
	entry.Level = core.InfoLevel
	entry.Message = "counted"
	require.NoError(t, q.Enqueue(entry))
	core.PutEntry(entry)
	require.NoError(t, q.Close())

	expected := `
# HELP app_handler_processed_total Total number of entries written by the handler
# TYPE app_handler_processed_total counter
app_handler_processed_total{handler="queue"} 1
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected), "app_handler_processed_total"))
}

func TestCollector_Duplicate(t *testing.T) {
	c := NewCollector("")
	require.NoError(t, c.Add("a", staticStats{}))
	assert.ErrorIs(t, c.Add("a", staticStats{}), ErrDuplicateHandler)

	c.Remove("a")
	assert.NoError(t, c.Add("a", staticStats{}))
}

func TestCollector_AddHandler(t *testing.T) {
	c := NewCollector("")

	added, err := c.AddHandler("plain", plainHandler{})
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 0, testutil.CollectAndCount(c))
}

func TestCollector_Register(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector("")
	require.NoError(t, c.Add("console", staticStats{handler.Snapshot{ProcessedTotal: 7}}))
	require.NoError(t, reg.Register(c))

	families, err := reg.Gather()
	require.NoError(t, err)

	found := make(map[string]bool)
	for _, mf := range families {
		found[mf.GetName()] = true
	}
	assert.True(t, found["nlog_handler_processed_total"])
	assert.True(t, found["nlog_handler_dropped_total"])
	assert.Equal(t, 9, testutil.CollectAndCount(c))
}

type statsFunc func() handler.Snapshot

func (f statsFunc) Stats() handler.Snapshot { return f() }

