package formatter

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/philipp01105/nlogstream/core"
)

var (
	testTime   = time.Date(2026, 2, 18, 13, 0, 0, 0, time.UTC)
	testCaller = core.CallerInfo{
		File:      "/src/app/main.go",
		ShortFile: "main.go",
		Line:      42,
		Function:  "main.run",
		Defined:   true,
	}
)

func TestTextFormatter_Lines(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		entry core.Entry
		want  string
	}{
		{
			name:  "message only",
			entry: core.Entry{Time: testTime, Level: core.InfoLevel, Message: "ready"},
			want:  "2026-02-18T13:00:00Z [INFO] ready\n",
		},
		{
			name: "fields keep order",
			entry: core.Entry{Time: testTime, Level: core.WarnLevel, Message: "disk 93%", Fields: []core.Field{
				{Key: "mount", Type: core.StringType, Str: "/var"},
				{Key: "free", Type: core.IntType, Int64: 7},
				{Key: "ro", Type: core.BoolType},
			}},
			want: "2026-02-18T13:00:00Z [WARN] disk 93% mount=/var free=7 ro=false\n",
		},
		{
			name:  "caller",
			cfg:   Config{IncludeCaller: true},
			entry: core.Entry{Time: testTime, Level: core.ErrorLevel, Message: "boom", Caller: testCaller},
			want:  "2026-02-18T13:00:00Z [ERROR] [main.go:42] boom\n",
		},
		{
			name:  "caller not captured",
			cfg:   Config{IncludeCaller: true},
			entry: core.Entry{Time: testTime, Level: core.ErrorLevel, Message: "boom"},
			want:  "2026-02-18T13:00:00Z [ERROR] boom\n",
		},
		{
			name:  "custom timestamp",
			cfg:   Config{TimestampFormat: time.Kitchen},
			entry: core.Entry{Time: testTime, Level: core.DebugLevel, Message: "tick"},
			want:  "1:00PM [DEBUG] tick\n",
		},
		{
			name:  "not set level",
			entry: core.Entry{Time: testTime, Level: core.NotSetLevel, Message: "x"},
			want:  "2026-02-18T13:00:00Z [NOTSET] x\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewTextFormatter(tt.cfg)
			got, err := f.Format(&tt.entry)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJSONFormatter_Objects(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		entry core.Entry
		want  string
	}{
		{
			name:  "message only",
			entry: core.Entry{Time: testTime, Level: core.InfoLevel, Message: "ready"},
			want:  `{"time":"2026-02-18T13:00:00Z","level":"INFO","message":"ready"}`,
		},
		{
			name: "typed fields",
			entry: core.Entry{Time: testTime, Level: core.InfoLevel, Message: "req", Fields: []core.Field{
				{Key: "path", Type: core.StringType, Str: "/v1"},
				{Key: "status", Type: core.IntType, Int64: 200},
				{Key: "ratio", Type: core.Float64Type, Float64: 0.5},
				{Key: "cached", Type: core.BoolType, Int64: 1},
				{Key: "took", Type: core.DurationType, Int64: int64(time.Millisecond)},
				{Key: "error", Type: core.ErrorType, Str: errors.New(`bad "input"`).Error()},
			}},
			want: `{"time":"2026-02-18T13:00:00Z","level":"INFO","message":"req","path":"/v1","status":200,` +
				`"ratio":0.5,"cached":true,"took":1000000,"error":"bad \"input\""}`,
		},
		{
			name:  "caller",
			cfg:   Config{IncludeCaller: true},
			entry: core.Entry{Time: testTime, Level: core.ErrorLevel, Message: "boom", Caller: testCaller},
			want: `{"time":"2026-02-18T13:00:00Z","level":"ERROR","message":"boom",` +
				`"caller":{"file":"main.go","line":42,"function":"main.run"}}`,
		},
		{
			name:  "escaped message and custom keys",
			cfg:   Config{TimestampFormat: "-", Keys: Keys{Time: "ts", Message: "msg"}},
			entry: core.Entry{Time: testTime, Level: core.WarnLevel, Message: "a\tb\nc\x01"},
			want:  `{"ts":"-","level":"WARN","msg":"a\tb\nc\u0001"}`,
		},
		{
			name: "any values",
			cfg:  Config{TimestampFormat: "-"},
			entry: core.Entry{Time: testTime, Level: core.InfoLevel, Message: "m", Fields: []core.Field{
				{Key: "tags", Type: core.AnyType, Any: []string{"a", "b"}},
				{Key: "ch", Type: core.AnyType, Any: make(chan int)},
			}},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewJSONFormatter(tt.cfg)
			got, err := f.Format(&tt.entry)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if !json.Valid(got) {
				t.Fatalf("Format() produced invalid JSON: %s", got)
			}
			if tt.want != "" && string(got) != tt.want+"\n" {
				t.Errorf("Format() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestJSONFormatter_AnyFallsBackToString(t *testing.T) {
	f := NewJSONFormatter(Config{})
	entry := &core.Entry{Time: testTime, Level: core.InfoLevel, Fields: []core.Field{
		{Key: "tags", Type: core.AnyType, Any: []string{"a", "b"}},
		{Key: "fn", Type: core.AnyType, Any: func() {}},
	}}

	out, _ := f.Format(entry)
	var data struct {
		Tags []string `json:"tags"`
		Fn   string   `json:"fn"`
	}
	if err := json.Unmarshal(out, &data); err != nil {
		t.Fatalf("Unmarshal: %v (%s)", err, out)
	}
	if len(data.Tags) != 2 || data.Fn == "" {
		t.Errorf("decoded %+v", data)
	}
}

func TestFormatters_WritePathsAgree(t *testing.T) {
	entry := &core.Entry{Time: testTime, Level: core.WarnLevel, Message: "disk", Caller: testCaller,
		Fields: []core.Field{{Key: "pct", Type: core.IntType, Int64: 93}}}

	for _, f := range []interface {
		Formatter
		WriterFormatter
		BufferFormatter
	}{
		NewTextFormatter(Config{IncludeCaller: true}),
		NewJSONFormatter(Config{IncludeCaller: true}),
	} {
		want, _ := f.Format(entry)

		var viaWriter, viaBuffer bytes.Buffer
		if err := f.FormatTo(entry, &viaWriter); err != nil {
			t.Fatalf("FormatTo() error = %v", err)
		}
		f.FormatEntry(entry, &viaBuffer)

		if viaWriter.String() != string(want) || viaBuffer.String() != string(want) {
			t.Errorf("%T: Format=%q FormatTo=%q FormatEntry=%q", f, want, viaWriter.String(), viaBuffer.String())
		}
	}
}

func TestFormat_ResultOutlivesPool(t *testing.T) {
	f := NewTextFormatter(Config{})
	first, _ := f.Format(&core.Entry{Time: testTime, Level: core.InfoLevel, Message: "first"})
	_, _ = f.Format(&core.Entry{Time: testTime, Level: core.InfoLevel, Message: "second"})

	if string(first) != "2026-02-18T13:00:00Z [INFO] first\n" {
		t.Errorf("earlier result was overwritten: %q", first)
	}
}

func benchmarkFormatter(b *testing.B, f Formatter) {
	entry := &core.Entry{
		Time:    time.Now(),
		Level:   core.InfoLevel,
		Message: "test message",
		Fields: []core.Field{
			{Key: "key1", Type: core.StringType, Str: "value1"},
			{Key: "key2", Type: core.IntType, Int64: 42},
		},
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = f.Format(entry)
	}
}

func BenchmarkTextFormatter(b *testing.B) { benchmarkFormatter(b, NewTextFormatter(Config{})) }
func BenchmarkJSONFormatter(b *testing.B) { benchmarkFormatter(b, NewJSONFormatter(Config{})) }
