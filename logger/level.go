package logger

import "github.com/philipp01105/nlogstream/core"

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	NotSetLevel = core.NotSetLevel
	DebugLevel  = core.DebugLevel
	InfoLevel   = core.InfoLevel
	WarnLevel   = core.WarnLevel
	ErrorLevel  = core.ErrorLevel
	FatalLevel  = core.FatalLevel
	PanicLevel  = core.PanicLevel
)

// ParseLevel converts a string to a Level. Unknown names yield InfoLevel
// and core.ErrUnknownLevel.
func ParseLevel(s string) (Level, error) {
	return core.ParseLevel(s)
}

// MustParseLevel is like ParseLevel but panics on an unknown name.
func MustParseLevel(s string) Level {
	l, err := core.ParseLevel(s)
	if err != nil {
		panic(err)
	}
	return l
}
