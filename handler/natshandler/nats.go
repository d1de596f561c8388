package natshandler

import (
	"bytes"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"

	"github.com/philipp01105/nlogstream/core"
	"github.com/philipp01105/nlogstream/formatter"
	"github.com/philipp01105/nlogstream/handler"
)

// ErrNoSubject is returned when NATSConfig.Subject is empty.
var ErrNoSubject = errors.New("natshandler: subject is required")

// Publisher is the part of *nats.Conn the handler needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NATSConfig holds configuration for the NATS handler
type NATSConfig struct {
	// URL is the server list passed to nats.Connect (default: nats.DefaultURL)
	URL string
	// Subject records are published on
	Subject string
	// LevelSubjects appends the lower-cased level to Subject, e.g. "logs.warn"
	LevelSubjects bool
	// Name identifies the connection on the server (default: "nlogstream")
	Name string
	// MaxReconnects bounds reconnection attempts (default: nats default)
	MaxReconnects int
	// ReconnectWait is the pause between reconnection attempts
	ReconnectWait time.Duration
	// Formatter to use (default: JSONFormatter)
	Formatter formatter.Formatter
	// Async publishes from a background goroutine
	Async bool
	// BufferSize is the size of the async queue (default: 1000)
	BufferSize int
	// OverflowPolicy defines per-level overflow behavior (default: uses DefaultLevelPolicy)
	OverflowPolicy map[core.Level]handler.OverflowPolicy
	// BlockTimeout is the timeout for blocking overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining queue on Close (default: 5s)
	DrainTimeout time.Duration
}

func applyNATSDefaults(cfg *NATSConfig) {
	if cfg.URL == "" {
		cfg.URL = nats.DefaultURL
	}
	if cfg.Name == "" {
		cfg.Name = "nlogstream"
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewJSONFormatter(formatter.Config{})
	}
}

// NATSHandler publishes one message per log entry.
type NATSHandler struct {
	pub             Publisher
	conn            *nats.Conn // set only when the handler dialed it
	subject         string
	levelSubjects   bool
	subjects        [core.LevelCount]string
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	bufPool         sync.Pool
	stats           *handler.Stats
	queue           *handler.AsyncQueue // nil when synchronous
	closed          atomic.Bool
}

// New publishes through pub, which stays owned by the caller.
func New(pub Publisher, cfg NATSConfig) (*NATSHandler, error) {
	if cfg.Subject == "" {
		return nil, ErrNoSubject
	}
	applyNATSDefaults(&cfg)

	h := &NATSHandler{
		pub:           pub,
		subject:       cfg.Subject,
		levelSubjects: cfg.LevelSubjects,
		formatter:     cfg.Formatter,
		stats:         handler.NewStats(),
	}
	h.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)
	h.bufPool.New = func() any { return new(bytes.Buffer) }
	for l := core.DebugLevel; l <= core.PanicLevel; l++ {
		h.subjects[l] = cfg.Subject + "." + strings.ToLower(l.String())
	}

	if cfg.Async {
		h.queue = handler.NewAsyncQueue(handler.AsyncConfig{
			BufferSize:     cfg.BufferSize,
			OverflowPolicy: cfg.OverflowPolicy,
			BlockTimeout:   cfg.BlockTimeout,
			DrainTimeout:   cfg.DrainTimeout,
		}, h.stats, h.publish)
	}
	return h, nil
}

// Dial connects to cfg.URL and returns a handler owning the connection.
func Dial(cfg NATSConfig) (*NATSHandler, error) {
	if cfg.Subject == "" {
		return nil, ErrNoSubject
	}
	applyNATSDefaults(&cfg)

	opts := []nats.Option{nats.Name(cfg.Name)}
	if cfg.MaxReconnects != 0 {
		opts = append(opts, nats.MaxReconnects(cfg.MaxReconnects))
	}
	if cfg.ReconnectWait > 0 {
		opts = append(opts, nats.ReconnectWait(cfg.ReconnectWait))
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "natshandler: connect %s", cfg.URL)
	}

	h, err := New(conn, cfg)
	if err != nil {
		conn.Close()
		return nil, err
	}
	h.conn = conn
	return h, nil
}

// SubjectFor returns the subject an entry at level is published on.
func (h *NATSHandler) SubjectFor(level core.Level) string {
	if h.levelSubjects && level.Valid() {
		return h.subjects[level]
	}
	return h.subject
}

func (h *NATSHandler) publish(entry *core.Entry) error {
	buf := h.bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer h.bufPool.Put(buf)

	if h.bufferFormatter != nil {
		h.bufferFormatter.FormatEntry(entry, buf)
	} else {
		data, err := h.formatter.Format(entry)
		if err != nil {
			h.stats.IncrementFailed()
			return err
		}
		buf.Write(data)
	}

	data := bytes.TrimSuffix(buf.Bytes(), []byte{'\n'})
	if err := h.pub.Publish(h.SubjectFor(entry.Level), data); err != nil {
		h.stats.IncrementFailed()
		return errors.Wrap(err, "natshandler: publish")
	}
	h.stats.IncrementProcessed()
	return nil
}

// HandleLog publishes, or queues, an entry built from its parts.
func (h *NATSHandler) HandleLog(t time.Time, level core.Level, msg string, loggerFields, callFields []core.Field, caller core.CallerInfo) error {
	if h.closed.Load() {
		return nats.ErrConnectionClosed
	}
	if h.queue != nil {
		return h.queue.EnqueueLog(t, level, msg, loggerFields, callFields, caller)
	}
	var entry core.Entry
	if len(loggerFields) > 0 || len(callFields) > 0 {
		entry.Fields = make([]core.Field, 0, len(loggerFields)+len(callFields))
	}
	entry.Fill(t, level, msg, loggerFields, callFields, caller)
	return h.publish(&entry)
}

// Handle publishes, or queues a copy of, entry.
func (h *NATSHandler) Handle(entry *core.Entry) error {
	if h.closed.Load() {
		return nats.ErrConnectionClosed
	}
	if h.queue != nil {
		return h.queue.Enqueue(entry)
	}
	return h.publish(entry)
}

// CanRecycleEntry returns true: the async queue keeps its own copy.
func (h *NATSHandler) CanRecycleEntry() bool {
	return true
}

// Stats returns a snapshot of the current statistics
func (h *NATSHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close drains the queue and, if the handler dialed the connection,
// flushes and closes it.
func (h *NATSHandler) Close() error {
	if h.closed.Swap(true) {
		return nil
	}
	var err error
	if h.queue != nil {
		err = h.queue.Close()
	}
	if h.conn != nil {
		if flushErr := h.conn.FlushTimeout(2 * time.Second); flushErr != nil && err == nil {
			err = errors.Wrap(flushErr, "natshandler: flush")
		}
		h.conn.Close()
	}
	return err
}
