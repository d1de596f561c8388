package filehandler

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/philipp01105/nlogstream/core"
	"github.com/philipp01105/nlogstream/formatter"
	"github.com/philipp01105/nlogstream/handler"
)

// ErrNoFilename is returned by NewFileHandler when FileConfig.Filename is empty.
var ErrNoFilename = errors.New("filehandler: filename is required")

// fileBase contains shared fields and methods for file handlers.
type fileBase struct {
	filename        string
	rotator         *lumberjack.Logger
	bufWriter       *bufio.Writer
	lock            *flock.Flock // nil unless ProcessLock is set
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	mu              sync.Mutex
	syncBuf         bytes.Buffer
	rotateInterval  time.Duration
	lastRotateTime  time.Time
	stats           *handler.Stats
	closed          bool
}

// write formats and writes an entry under the handler lock.
func (b *fileBase) write(entry *core.Entry) error {
	b.mu.Lock()
	err := b.writeLocked(entry)
	b.mu.Unlock()

	if err != nil {
		b.stats.IncrementFailed()
		return err
	}
	b.stats.IncrementProcessed()
	return nil
}

func (b *fileBase) writeLocked(entry *core.Entry) error {
	if b.closed {
		return os.ErrClosed
	}
	if err := b.rotateIfDue(); err != nil {
		return err
	}

	b.syncBuf.Reset()
	if b.bufferFormatter != nil {
		b.bufferFormatter.FormatEntry(entry, &b.syncBuf)
	} else {
		data, err := b.formatter.Format(entry)
		if err != nil {
			return err
		}
		b.syncBuf.Write(data)
	}

	if b.lock == nil {
		_, err := b.bufWriter.Write(b.syncBuf.Bytes())
		return err
	}

	// Other processes append to the same file: the record must reach the
	// file while the lock is held.
	if err := b.lock.Lock(); err != nil {
		return errors.Wrapf(err, "filehandler: lock %s", b.lock.Path())
	}
	_, err := b.bufWriter.Write(b.syncBuf.Bytes())
	if err == nil {
		err = b.bufWriter.Flush()
	}
	if unlockErr := b.lock.Unlock(); err == nil && unlockErr != nil {
		err = errors.Wrapf(unlockErr, "filehandler: unlock %s", b.lock.Path())
	}
	return err
}

// rotateIfDue rotates when RotateInterval has elapsed. Size and age
// limits are enforced by lumberjack on every write.
func (b *fileBase) rotateIfDue() error {
	if b.rotateInterval <= 0 || time.Since(b.lastRotateTime) < b.rotateInterval {
		return nil
	}
	return b.rotateLocked()
}

func (b *fileBase) rotateLocked() error {
	if err := b.bufWriter.Flush(); err != nil {
		return errors.Wrap(err, "filehandler: flush before rotation")
	}
	if err := b.rotator.Rotate(); err != nil {
		return errors.Wrapf(err, "filehandler: rotate %s", b.filename)
	}
	b.lastRotateTime = time.Now()
	return nil
}

// Rotate closes the current file, renames it with a timestamp and opens
// a fresh one.
func (b *fileBase) Rotate() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return os.ErrClosed
	}
	return b.rotateLocked()
}

// Flush writes buffered records to the file.
func (b *fileBase) Flush() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	return b.bufWriter.Flush()
}

// Stats returns a snapshot of the current statistics
func (b *fileBase) Stats() handler.Snapshot {
	return b.stats.GetSnapshot()
}

// closeFile flushes and closes the underlying file. It is idempotent.
func (b *fileBase) closeFile() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	flushErr := b.bufWriter.Flush()
	closeErr := b.rotator.Close()
	if b.lock != nil {
		_ = b.lock.Close()
	}
	if flushErr != nil {
		return errors.Wrap(flushErr, "filehandler: flush on close")
	}
	return closeErr
}

// FileConfig holds configuration for file handler
type FileConfig struct {
	// Filename is the path to the log file
	Filename string
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// Async enables asynchronous logging
	Async bool
	// BufferSize is the size of the async queue (default: 1000)
	BufferSize int
	// MaxSizeMB is the size in megabytes at which the file is rotated (default: 100)
	MaxSizeMB int
	// MaxAgeDays is how long rotated files are kept (0 = keep regardless of age)
	MaxAgeDays int
	// MaxBackups is the maximum number of old log files to retain (0 = keep all)
	MaxBackups int
	// Compress gzips rotated files
	Compress bool
	// LocalTime uses local time in backup file names instead of UTC
	LocalTime bool
	// RotateInterval rotates the file periodically (0 = no interval rotation)
	RotateInterval time.Duration
	// ProcessLock serializes writes from several processes appending to the
	// same file through an flock on Filename + ".lock". Every record is
	// flushed while the lock is held.
	ProcessLock bool
	// OverflowPolicy defines per-level overflow behavior (default: uses DefaultLevelPolicy)
	OverflowPolicy map[core.Level]handler.OverflowPolicy
	// BlockTimeout is the timeout for blocking overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining queue on Close (default: 5s)
	DrainTimeout time.Duration
}

// applyFileDefaults fills in zero-value fields with defaults.
func applyFileDefaults(cfg *FileConfig) {
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 100
	}
}

// initFileBase initializes a fileBase in place.
func initFileBase(b *fileBase, cfg FileConfig) {
	b.filename = cfg.Filename
	b.rotator = &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSizeMB,
		MaxAge:     cfg.MaxAgeDays,
		MaxBackups: cfg.MaxBackups,
		Compress:   cfg.Compress,
		LocalTime:  cfg.LocalTime,
	}
	b.bufWriter = bufio.NewWriterSize(b.rotator, 4096)
	b.formatter = cfg.Formatter
	b.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)
	b.rotateInterval = cfg.RotateInterval
	b.lastRotateTime = time.Now()
	b.stats = handler.NewStats()
	if cfg.ProcessLock {
		b.lock = flock.New(cfg.Filename + ".lock")
	}
	b.syncBuf.Grow(256)
}

// NewFileHandler creates a new file handler.
// Returns a SyncFileHandler when Async is false, or an AsyncFileHandler
// when Async is true. Both implement Handler, FastHandler and StatsProvider.
func NewFileHandler(cfg FileConfig) (handler.Handler, error) {
	if cfg.Filename == "" {
		return nil, ErrNoFilename
	}
	applyFileDefaults(&cfg)

	dir := filepath.Dir(cfg.Filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "filehandler: create directory %s", dir)
	}

	// lumberjack opens lazily; surface permission problems now.
	file, err := os.OpenFile(cfg.Filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "filehandler: open %s", cfg.Filename)
	}
	if err := file.Close(); err != nil {
		return nil, errors.Wrapf(err, "filehandler: close %s", cfg.Filename)
	}

	if cfg.Async {
		return newAsyncFileHandler(cfg), nil
	}
	return newSyncFileHandler(cfg), nil
}
