package core

import (
	"errors"
	"strings"
)

// ErrUnknownLevel is returned by ParseLevel for names it does not recognize.
var ErrUnknownLevel = errors.New("unknown log level")

// Level represents the severity level of a log entry
type Level int8

const (
	// NotSetLevel marks a disabled destination. Nothing is ever logged at
	// this level; streams bound to it discard everything written to them.
	NotSetLevel Level = iota - 1
	// DebugLevel for detailed debugging information
	DebugLevel
	// InfoLevel for general informational messages (default)
	InfoLevel
	// WarnLevel for warning messages
	WarnLevel
	// ErrorLevel for error messages
	ErrorLevel
	// FatalLevel for fatal messages
	FatalLevel
	// PanicLevel for panic messages
	PanicLevel
)

// LevelCount is the number of loggable levels (NotSetLevel excluded).
const LevelCount = int(PanicLevel) + 1

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case NotSetLevel:
		return "NOTSET"
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	case PanicLevel:
		return "PANIC"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether l is a loggable level.
func (l Level) Valid() bool {
	return l >= DebugLevel && l <= PanicLevel
}

// ParseLevel converts a level name to a Level. Names are case-insensitive.
// Unknown names yield InfoLevel together with ErrUnknownLevel.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NOTSET", "OFF":
		return NotSetLevel, nil
	case "DEBUG":
		return DebugLevel, nil
	case "INFO":
		return InfoLevel, nil
	case "WARN", "WARNING":
		return WarnLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	case "FATAL":
		return FatalLevel, nil
	case "PANIC":
		return PanicLevel, nil
	default:
		return InfoLevel, ErrUnknownLevel
	}
}
