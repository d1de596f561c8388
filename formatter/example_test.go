package formatter_test

import (
	"fmt"
	"time"

	"github.com/philipp01105/nlogstream/core"
	"github.com/philipp01105/nlogstream/formatter"
)

func ExampleNewTextFormatter() {
	f := formatter.NewTextFormatter(formatter.Config{})

	entry := &core.Entry{
		Time:    time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
		Level:   core.InfoLevel,
		Message: "hello world",
		Fields:  []core.Field{{Key: "user", Type: core.StringType, Str: "alice"}},
	}

	out, _ := f.Format(entry)
	fmt.Print(string(out))
	// Output:
	// 2026-01-15T12:00:00Z [INFO] hello world user=alice
}

func ExampleNewJSONFormatter() {
	f := formatter.NewJSONFormatter(formatter.Config{
		TimestampFormat: time.DateTime,
		Keys:            formatter.Keys{Message: "msg"},
	})

	entry := &core.Entry{
		Time:    time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
		Level:   core.ErrorLevel,
		Message: "request failed",
		Fields: []core.Field{
			{Key: "status", Int64: 503, Type: core.Int64Type},
		},
	}

	out, _ := f.Format(entry)
	fmt.Print(string(out))
	// Output:
	// {"time":"2026-01-15 12:00:00","level":"ERROR","msg":"request failed","status":503}
}
