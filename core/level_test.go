package core

import (
	"errors"
	"testing"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{NotSetLevel, "NOTSET"},
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{FatalLevel, "FATAL"},
		{PanicLevel, "PANIC"},
		{Level(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevel_Ordering(t *testing.T) {
	if !(NotSetLevel < DebugLevel && DebugLevel < InfoLevel && InfoLevel < WarnLevel &&
		WarnLevel < ErrorLevel && ErrorLevel < FatalLevel && FatalLevel < PanicLevel) {
		t.Fatal("levels are not strictly ordered")
	}
	if NotSetLevel.Valid() {
		t.Error("NotSetLevel must not be a valid log level")
	}
	if !DebugLevel.Valid() || !PanicLevel.Valid() {
		t.Error("Debug and Panic must be valid log levels")
	}
	if LevelCount != 6 {
		t.Errorf("LevelCount = %d, want 6", LevelCount)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", DebugLevel, false},
		{"INFO", InfoLevel, false},
		{"Warning", WarnLevel, false},
		{"warn", WarnLevel, false},
		{" error ", ErrorLevel, false},
		{"fatal", FatalLevel, false},
		{"panic", PanicLevel, false},
		{"notset", NotSetLevel, false},
		{"off", NotSetLevel, false},
		{"verbose", InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if tt.wantErr != errors.Is(err, ErrUnknownLevel) {
				t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}
