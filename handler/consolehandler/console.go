package consolehandler

import (
	"bytes"
	"io"
	"os"
	"sync"
	"time"

	"github.com/philipp01105/nlogstream/core"
	"github.com/philipp01105/nlogstream/formatter"
	"github.com/philipp01105/nlogstream/handler"
)

// isConcurrentSafeWriter returns true if the writer is known to be safe for
// concurrent Write calls, allowing the handler to skip write-level locking.
func isConcurrentSafeWriter(w io.Writer) bool {
	if w == io.Discard {
		return true
	}
	_, ok := w.(*os.File)
	return ok
}

// consoleBase formats entries and writes them to the configured writer.
type consoleBase struct {
	writer          io.Writer
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	concurrentSafe  bool
	stats           *handler.Stats
	mu              sync.Mutex // guards syncBuf, and writer unless concurrentSafe
	syncBuf         bytes.Buffer
	bufPool         sync.Pool // *bytes.Buffer used when mu is contended
}

func (b *consoleBase) init(cfg ConsoleConfig) {
	b.writer = cfg.Writer
	b.formatter = cfg.Formatter
	b.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)
	b.concurrentSafe = cfg.ConcurrentWriter || isConcurrentSafeWriter(cfg.Writer)
	b.stats = handler.NewStats()
	b.syncBuf.Grow(256)
	b.bufPool.New = func() interface{} {
		buf := new(bytes.Buffer)
		buf.Grow(256)
		return buf
	}
}

// write formats and writes an entry. The handler-owned buffer is used
// when the lock is free; under contention the entry is formatted into a
// pooled buffer outside the lock.
func (b *consoleBase) write(entry *core.Entry) error {
	var err error
	switch {
	case b.bufferFormatter != nil && b.mu.TryLock():
		b.syncBuf.Reset()
		b.bufferFormatter.FormatEntry(entry, &b.syncBuf)
		_, err = b.writer.Write(b.syncBuf.Bytes())
		b.mu.Unlock()

	case b.bufferFormatter != nil:
		buf := b.bufPool.Get().(*bytes.Buffer)
		buf.Reset()
		b.bufferFormatter.FormatEntry(entry, buf)
		err = b.writeBytes(buf.Bytes())
		b.bufPool.Put(buf)

	default:
		var data []byte
		data, err = b.formatter.Format(entry)
		if err == nil {
			err = b.writeBytes(data)
		}
	}

	if err != nil {
		b.stats.IncrementFailed()
		return err
	}
	b.stats.IncrementProcessed()
	return nil
}

func (b *consoleBase) writeBytes(p []byte) error {
	if b.concurrentSafe {
		_, err := b.writer.Write(p)
		return err
	}
	b.mu.Lock()
	_, err := b.writer.Write(p)
	b.mu.Unlock()
	return err
}

// Stats returns a snapshot of the current statistics
func (b *consoleBase) Stats() handler.Snapshot {
	return b.stats.GetSnapshot()
}

// ConsoleConfig holds configuration for console handler
type ConsoleConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// Async enables asynchronous logging
	Async bool
	// BufferSize is the size of the async queue (default: 1000)
	BufferSize int
	// OverflowPolicy defines per-level overflow behavior (default: uses DefaultLevelPolicy)
	OverflowPolicy map[core.Level]handler.OverflowPolicy
	// BlockTimeout is the timeout for blocking overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining queue on Close (default: 5s)
	DrainTimeout time.Duration
	// ConcurrentWriter indicates the Writer supports concurrent Write calls.
	// Detected automatically for io.Discard and *os.File.
	ConcurrentWriter bool
}

// applyConsoleDefaults fills in zero-value fields with defaults.
func applyConsoleDefaults(cfg *ConsoleConfig) {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}
}

func (cfg ConsoleConfig) asyncConfig() handler.AsyncConfig {
	return handler.AsyncConfig{
		BufferSize:     cfg.BufferSize,
		OverflowPolicy: cfg.OverflowPolicy,
		BlockTimeout:   cfg.BlockTimeout,
		DrainTimeout:   cfg.DrainTimeout,
	}
}

// NewConsoleHandler creates a new console handler.
// Returns a SyncConsoleHandler when Async is false, or an AsyncConsoleHandler
// when Async is true. Both implement Handler, FastHandler and StatsProvider.
func NewConsoleHandler(cfg ConsoleConfig) handler.Handler {
	applyConsoleDefaults(&cfg)
	if cfg.Async {
		return newAsyncConsoleHandler(cfg)
	}
	return newSyncConsoleHandler(cfg)
}
