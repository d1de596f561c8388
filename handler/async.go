package handler

import (
	"sync"
	"time"

	"github.com/philipp01105/nlogstream/core"
)

// AsyncConfig configures an AsyncQueue.
type AsyncConfig struct {
	// BufferSize is the size of the queue (default: 1000)
	BufferSize int
	// OverflowPolicy defines per-level overflow behavior (default: DefaultLevelPolicy)
	OverflowPolicy map[core.Level]OverflowPolicy
	// BlockTimeout bounds how long a Block policy waits (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout bounds how long Close drains the queue (default: 5s)
	DrainTimeout time.Duration
}

// ApplyDefaults fills in zero-value fields with defaults.
func (c *AsyncConfig) ApplyDefaults() {
	if c.BufferSize <= 0 {
		c.BufferSize = 1000
	}
	if c.OverflowPolicy == nil {
		c.OverflowPolicy = DefaultLevelPolicy()
	}
	if c.BlockTimeout == 0 {
		c.BlockTimeout = 100 * time.Millisecond
	}
	if c.DrainTimeout == 0 {
		c.DrainTimeout = 5 * time.Second
	}
}

// WriteFunc writes one entry synchronously. It is expected to record its
// own processed and failed counts; the queue only counts drops and blocks.
type WriteFunc func(entry *core.Entry) error

// AsyncQueue hands entries to a background goroutine that writes them
// with a WriteFunc. When the queue is full the per-level OverflowPolicy
// decides whether the entry is dropped, an older entry is evicted, or the
// caller waits up to BlockTimeout before writing synchronously.
//
// The queue copies every entry it accepts, so callers keep ownership of
// the entries they pass in.
type AsyncQueue struct {
	queue        chan *core.Entry
	policy       map[core.Level]OverflowPolicy
	blockTimeout time.Duration
	drainTimeout time.Duration
	stats        *Stats
	write        WriteFunc
	closed       chan struct{}
	closeOnce    sync.Once
	wg           sync.WaitGroup
}

// NewAsyncQueue starts the background writer.
func NewAsyncQueue(cfg AsyncConfig, stats *Stats, write WriteFunc) *AsyncQueue {
	cfg.ApplyDefaults()
	q := &AsyncQueue{
		queue:        make(chan *core.Entry, cfg.BufferSize),
		policy:       cfg.OverflowPolicy,
		blockTimeout: cfg.BlockTimeout,
		drainTimeout: cfg.DrainTimeout,
		stats:        stats,
		write:        write,
		closed:       make(chan struct{}),
	}
	q.wg.Add(1)
	go q.process()
	return q
}

// Enqueue queues a copy of entry.
func (q *AsyncQueue) Enqueue(entry *core.Entry) error {
	return q.enqueue(entry.Clone())
}

// EnqueueLog queues an entry built from its parts.
func (q *AsyncQueue) EnqueueLog(t time.Time, level core.Level, msg string, loggerFields, callFields []core.Field, caller core.CallerInfo) error {
	e := core.GetEntry()
	e.Fill(t, level, msg, loggerFields, callFields, caller)
	return q.enqueue(e)
}

func (q *AsyncQueue) enqueue(e *core.Entry) error {
	select {
	case <-q.closed:
		return q.writeNow(e)
	default:
	}

	policy, ok := q.policy[e.Level]
	if !ok {
		policy = DropNewest
	}

	select {
	case q.queue <- e:
		return nil
	default:
	}

	switch policy {
	case Block:
		timer := time.NewTimer(q.blockTimeout)
		defer timer.Stop()
		select {
		case q.queue <- e:
			return nil
		case <-timer.C:
			q.stats.IncrementBlocked()
			return q.writeNow(e)
		case <-q.closed:
			return q.writeNow(e)
		}

	case DropOldest:
		select {
		case old := <-q.queue:
			q.stats.IncrementDropped(old.Level)
			core.PutEntry(old)
		default:
		}
		select {
		case q.queue <- e:
			return nil
		default:
		}
	}

	q.stats.IncrementDropped(e.Level)
	core.PutEntry(e)
	return nil
}

// writeNow writes e on the caller's goroutine and recycles it.
func (q *AsyncQueue) writeNow(e *core.Entry) error {
	err := q.write(e)
	core.PutEntry(e)
	return err
}

func (q *AsyncQueue) process() {
	defer q.wg.Done()

	for {
		select {
		case e := <-q.queue:
			q.handle(e)
		case <-q.closed:
			q.drain()
			return
		}
	}
}

// handle writes e on the background goroutine. Errors have no caller to
// return to; the WriteFunc has already counted them.
func (q *AsyncQueue) handle(e *core.Entry) {
	_ = q.write(e)
	core.PutEntry(e)
}

// drain writes whatever is still queued, giving up after drainTimeout.
func (q *AsyncQueue) drain() {
	deadline := time.NewTimer(q.drainTimeout)
	defer deadline.Stop()
	for {
		select {
		case e := <-q.queue:
			q.handle(e)
		case <-deadline.C:
			return
		default:
			return
		}
	}
}

// Close stops the background writer after draining the queue. Entries
// enqueued after Close are written synchronously.
func (q *AsyncQueue) Close() error {
	q.closeOnce.Do(func() {
		close(q.closed)
	})
	q.wg.Wait()
	return nil
}
