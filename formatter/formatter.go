package formatter

import (
	"bytes"
	"io"
	"sync"

	"github.com/philipp01105/nlogstream/core"
)

// Formatter defines the interface for log formatters
type Formatter interface {
	// Format formats a log entry into bytes
	Format(entry *core.Entry) ([]byte, error)
}

// WriterFormatter is an optional interface that formatters can implement
// to write directly to a writer without intermediate byte slice allocation.
type WriterFormatter interface {
	// FormatTo formats a log entry and writes it directly to the writer
	FormatTo(entry *core.Entry, w io.Writer) error
}

// BufferFormatter is an optional interface that formatters can implement
// to format directly into a caller-provided buffer, avoiding internal
// buffer pool overhead.
type BufferFormatter interface {
	// FormatEntry formats a log entry into the given buffer.
	FormatEntry(entry *core.Entry, buf *bytes.Buffer)
}

// Config holds common formatter configuration
type Config struct {
	// IncludeCaller enables caller information in log output
	IncludeCaller bool
	// TimestampFormat specifies the time format (empty for RFC3339)
	TimestampFormat string
	// Keys renames the fixed JSON keys. Ignored by TextFormatter.
	Keys Keys
}

// Keys names the fixed members of a JSON record. Empty names fall back
// to the defaults.
type Keys struct {
	Time    string // default "time"
	Level   string // default "level"
	Message string // default "message"
	Caller  string // default "caller"
}

func (k Keys) withDefaults() Keys {
	if k.Time == "" {
		k.Time = "time"
	}
	if k.Level == "" {
		k.Level = "level"
	}
	if k.Message == "" {
		k.Message = "message"
	}
	if k.Caller == "" {
		k.Caller = "caller"
	}
	return k
}

// maxPooledBuffer caps the capacity of buffers returned to the pool so a
// single huge record does not pin memory.
const maxPooledBuffer = 64 << 10

var bufferPool = sync.Pool{
	New: func() any { return bytes.NewBuffer(make([]byte, 0, 256)) },
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() <= maxPooledBuffer {
		bufferPool.Put(buf)
	}
}

// formatBytes renders entry through a pooled buffer and returns a copy
// the caller owns.
func formatBytes(f BufferFormatter, entry *core.Entry) []byte {
	buf := getBuffer()
	defer putBuffer(buf)
	f.FormatEntry(entry, buf)
	return bytes.Clone(buf.Bytes())
}

func formatTo(f BufferFormatter, entry *core.Entry, w io.Writer) error {
	buf := getBuffer()
	defer putBuffer(buf)
	f.FormatEntry(entry, buf)
	_, err := w.Write(buf.Bytes())
	return err
}
