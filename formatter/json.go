package formatter

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/philipp01105/nlogstream/core"
)

// JSONFormatter formats log entries as one JSON object per line.
type JSONFormatter struct {
	Config
	keys Keys
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(cfg Config) *JSONFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339Nano
	}
	return &JSONFormatter{Config: cfg, keys: cfg.Keys.withDefaults()}
}

// Format returns the entry rendered as JSON.
func (f *JSONFormatter) Format(entry *core.Entry) ([]byte, error) {
	return formatBytes(f, entry), nil
}

// FormatTo writes the rendered entry to w with a single Write call.
func (f *JSONFormatter) FormatTo(entry *core.Entry, w io.Writer) error {
	return formatTo(f, entry, w)
}

// FormatEntry writes the entry as a single JSON object line into buf.
func (f *JSONFormatter) FormatEntry(entry *core.Entry, buf *bytes.Buffer) {
	obj := jsonObject{buf: buf}
	buf.WriteByte('{')

	obj.key(f.keys.Time)
	buf.WriteByte('"')
	buf.Write(entry.Time.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))
	buf.WriteByte('"')

	obj.key(f.keys.Level)
	obj.str(entry.Level.String())
	obj.key(f.keys.Message)
	obj.str(entry.Message)

	if f.IncludeCaller && entry.Caller.Defined {
		obj.key(f.keys.Caller)
		caller := jsonObject{buf: buf}
		buf.WriteByte('{')
		caller.key("file")
		caller.str(entry.Caller.ShortFile)
		caller.key("line")
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(entry.Caller.Line), 10))
		if entry.Caller.Function != "" {
			caller.key("function")
			caller.str(entry.Caller.Function)
		}
		buf.WriteByte('}')
	}

	for _, field := range entry.Fields {
		obj.key(field.Key)
		obj.value(field)
	}
	buf.WriteString("}\n")
}

// jsonObject writes the members of one JSON object. The caller writes
// the braces.
type jsonObject struct {
	buf     *bytes.Buffer
	members int
}

func (o *jsonObject) key(k string) {
	if o.members > 0 {
		o.buf.WriteByte(',')
	}
	o.members++
	o.str(k)
	o.buf.WriteByte(':')
}

func (o *jsonObject) str(s string) {
	o.buf.WriteByte('"')
	escapeJSON(o.buf, s)
	o.buf.WriteByte('"')
}

// value writes numbers, booleans and marshalable Any values unquoted and
// everything else as a string.
func (o *jsonObject) value(f core.Field) {
	b := o.buf
	switch f.Type {
	case core.IntType, core.Int64Type, core.DurationType:
		b.Write(strconv.AppendInt(b.AvailableBuffer(), f.Int64, 10))
	case core.Float64Type:
		b.Write(strconv.AppendFloat(b.AvailableBuffer(), f.Float64, 'f', -1, 64))
	case core.BoolType:
		b.Write(strconv.AppendBool(b.AvailableBuffer(), f.Int64 == 1))
	case core.TimeType:
		b.WriteByte('"')
		b.Write(time.Unix(0, f.Int64).AppendFormat(b.AvailableBuffer(), time.RFC3339Nano))
		b.WriteByte('"')
	case core.AnyType:
		if raw, err := json.Marshal(f.Any); err == nil {
			b.Write(raw)
		} else {
			o.str(f.StringValue())
		}
	default:
		o.str(f.StringValue())
	}
}

const hexDigits = "0123456789abcdef"

// escapeJSON writes s with quotes, backslashes and control bytes escaped.
// Bytes >= 0x80 pass through unchanged.
func escapeJSON(buf *bytes.Buffer, s string) {
	last := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		buf.WriteString(s[last:i])
		last = i + 1
		switch c {
		case '"', '\\':
			buf.WriteByte('\\')
			buf.WriteByte(c)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexDigits[c>>4])
			buf.WriteByte(hexDigits[c&0xf])
		}
	}
	buf.WriteString(s[last:])
}
