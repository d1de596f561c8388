package formatter

import (
	"bytes"
	"io"
	"strconv"
	"time"

	"github.com/philipp01105/nlogstream/core"
)

// TextFormatter formats log entries as human-readable text:
//
//	2026-02-18T13:00:00Z [INFO] [main.go:42] message key=value
type TextFormatter struct {
	Config
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(cfg Config) *TextFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339
	}
	return &TextFormatter{Config: cfg}
}

// Format returns the entry rendered as text.
func (f *TextFormatter) Format(entry *core.Entry) ([]byte, error) {
	return formatBytes(f, entry), nil
}

// FormatTo writes the rendered entry to w with a single Write call.
func (f *TextFormatter) FormatTo(entry *core.Entry, w io.Writer) error {
	return formatTo(f, entry, w)
}

// pre-formatted level strings, indexed by level
var levelBrackets = [core.LevelCount]string{
	core.DebugLevel: " [DEBUG] ",
	core.InfoLevel:  " [INFO] ",
	core.WarnLevel:  " [WARN] ",
	core.ErrorLevel: " [ERROR] ",
	core.FatalLevel: " [FATAL] ",
	core.PanicLevel: " [PANIC] ",
}

func levelBracket(l core.Level) string {
	if l.Valid() {
		return levelBrackets[l]
	}
	return " [" + l.String() + "] "
}

// FormatEntry formats an entry as text into buf (implements BufferFormatter).
func (f *TextFormatter) FormatEntry(entry *core.Entry, buf *bytes.Buffer) {
	buf.Write(entry.Time.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))
	buf.WriteString(levelBracket(entry.Level))

	if f.IncludeCaller && entry.Caller.Defined {
		buf.WriteByte('[')
		buf.WriteString(entry.Caller.ShortFile)
		buf.WriteByte(':')
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(entry.Caller.Line), 10))
		buf.WriteString("] ")
	}

	buf.WriteString(entry.Message)

	for _, field := range entry.Fields {
		buf.WriteByte(' ')
		buf.WriteString(field.Key)
		buf.WriteByte('=')
		buf.Write(field.AppendValue(buf.AvailableBuffer()))
	}

	buf.WriteByte('\n')
}
