package logger

import (
	"fmt"
	"time"

	"github.com/philipp01105/nlogstream/core"
)

// String, Int, Int64, Float64, Bool, Time and Duration build typed fields
// that formatters render without reflection.

func String(key, val string) core.Field {
	return core.Field{Key: key, Type: core.StringType, Str: val}
}

func Int(key string, val int) core.Field {
	return core.Field{Key: key, Type: core.IntType, Int64: int64(val)}
}

func Int64(key string, val int64) core.Field {
	return core.Field{Key: key, Type: core.Int64Type, Int64: val}
}

func Float64(key string, val float64) core.Field {
	return core.Field{Key: key, Type: core.Float64Type, Float64: val}
}

func Bool(key string, val bool) core.Field {
	f := core.Field{Key: key, Type: core.BoolType}
	if val {
		f.Int64 = 1
	}
	return f
}

func Time(key string, val time.Time) core.Field {
	return core.Field{Key: key, Type: core.TimeType, Int64: val.UnixNano()}
}

func Duration(key string, val time.Duration) core.Field {
	return core.Field{Key: key, Type: core.DurationType, Int64: int64(val)}
}

// Stringer stores val.String(), evaluated immediately. A nil val yields
// "<nil>".
func Stringer(key string, val fmt.Stringer) core.Field {
	if val == nil {
		return String(key, "<nil>")
	}
	return String(key, val.String())
}

// Err is NamedErr under the key "error".
func Err(err error) core.Field {
	return NamedErr("error", err)
}

// NamedErr stores err's message under key; a nil error has an empty
// message.
func NamedErr(key string, err error) core.Field {
	f := core.Field{Key: key, Type: core.ErrorType}
	if err != nil {
		f.Str = err.Error()
	}
	return f
}

// Any defers rendering of val to the formatter.
func Any(key string, val any) core.Field {
	return core.Field{Key: key, Type: core.AnyType, Any: val}
}
