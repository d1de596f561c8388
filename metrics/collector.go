package metrics

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/philipp01105/nlogstream/core"
	"github.com/philipp01105/nlogstream/handler"
)

// DefaultNamespace prefixes every metric name unless NewCollector is given another one.
const DefaultNamespace = "nlog"

// ErrDuplicateHandler is returned by Add when the name is already registered.
var ErrDuplicateHandler = errors.New("metrics: handler already registered")

// Collector exports handler statistics as Prometheus counters:
//   - <ns>_handler_processed_total{handler}
//   - <ns>_handler_blocked_total{handler}
//   - <ns>_handler_failed_total{handler}
//   - <ns>_handler_dropped_total{handler,level}
//
// Values are read from each handler's Stats snapshot at scrape time.
type Collector struct {
	mu        sync.RWMutex
	providers map[string]handler.StatsProvider

	processed *prometheus.Desc
	blocked   *prometheus.Desc
	failed    *prometheus.Desc
	dropped   *prometheus.Desc
}

// NewCollector creates an empty collector. An empty namespace selects DefaultNamespace.
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Collector{
		providers: make(map[string]handler.StatsProvider),
		processed: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "handler", "processed_total"),
			"Total number of entries written by the handler",
			[]string{"handler"}, nil,
		),
		blocked: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "handler", "blocked_total"),
			"Total number of times a caller blocked on a full queue",
			[]string{"handler"}, nil,
		),
		failed: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "handler", "failed_total"),
			"Total number of entries the handler failed to write",
			[]string{"handler"}, nil,
		),
		dropped: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "handler", "dropped_total"),
			"Total number of entries dropped by the overflow policy",
			[]string{"handler", "level"}, nil,
		),
	}
}

// Add registers a handler under name.
func (c *Collector) Add(name string, p handler.StatsProvider) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.providers[name]; ok {
		return errors.Wrap(ErrDuplicateHandler, name)
	}
	c.providers[name] = p
	return nil
}

// AddHandler registers h if it reports statistics and reports whether it did.
func (c *Collector) AddHandler(name string, h handler.Handler) (bool, error) {
	p, ok := h.(handler.StatsProvider)
	if !ok {
		return false, nil
	}
	return true, c.Add(name, p)
}

// Remove unregisters the handler called name.
func (c *Collector) Remove(name string) {
	c.mu.Lock()
	delete(c.providers, name)
	c.mu.Unlock()
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.processed
	ch <- c.blocked
	ch <- c.failed
	ch <- c.dropped
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	names := make([]string, 0, len(c.providers))
	for name := range c.providers {
		names = append(names, name)
	}
	providers := make([]handler.StatsProvider, len(names))
	sort.Strings(names)
	for i, name := range names {
		providers[i] = c.providers[name]
	}
	c.mu.RUnlock()

	for i, name := range names {
		snap := providers[i].Stats()
		ch <- prometheus.MustNewConstMetric(c.processed, prometheus.CounterValue, float64(snap.ProcessedTotal), name)
		ch <- prometheus.MustNewConstMetric(c.blocked, prometheus.CounterValue, float64(snap.BlockedTotal), name)
		ch <- prometheus.MustNewConstMetric(c.failed, prometheus.CounterValue, float64(snap.FailedTotal), name)
		for l := core.DebugLevel; l <= core.PanicLevel; l++ {
			ch <- prometheus.MustNewConstMetric(c.dropped, prometheus.CounterValue, float64(snap.DroppedTotal[l]), name, l.String())
		}
	}
}
