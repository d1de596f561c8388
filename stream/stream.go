package stream

import (
	"fmt"

	"github.com/philipp01105/nlogstream/core"
)

// Sink receives finished messages. Implementations must be safe for
// concurrent use because many streams may flush into the same Sink.
type Sink interface {
	Log(level core.Level, msg string, fields ...core.Field)
}

// Separator is a control value that can be appended to a Stream.
type Separator int

const (
	// EndLine terminates the current message and flushes it to the Sink.
	EndLine Separator = iota
	// EOL is an alias of EndLine.
	EOL = EndLine
)

// Stream accumulates fragments of one log message at a fixed level.
//
// The zero value is not usable; create streams with New or through a
// logger's Stream methods.
type Stream struct {
	sink      Sink
	level     core.Level
	buf       *buffer // nil while no message is being composed
	fragments int
	state     formatState
}

// New binds a stream to sink at level. Nothing is allocated and the sink
// is not contacted until the first flush.
func New(sink Sink, level core.Level) *Stream {
	return &Stream{
		sink:  sink,
		level: level,
		state: newFormatState(),
	}
}

// Use runs fn with a new stream bound to sink at level and flushes it on
// every exit path, including a panic in fn.
func Use(sink Sink, level core.Level, fn func(s *Stream)) {
	s := New(sink, level)
	defer s.Flush()
	fn(s)
}

// Sink returns the destination of the stream.
func (s *Stream) Sink() Sink {
	return s.sink
}

// Level returns the level messages are delivered at.
func (s *Stream) Level() core.Level {
	return s.level
}

// Enabled reports whether the stream records anything at all.
func (s *Stream) Enabled() bool {
	return s.level != core.NotSetLevel
}

// Empty reports whether the stream holds no buffer, i.e. nothing has been
// appended or formatted since the last flush.
func (s *Stream) Empty() bool {
	return s.buf == nil
}

// Len returns the number of bytes composed so far.
func (s *Stream) Len() int {
	if s.buf == nil {
		return 0
	}
	return s.buf.text.Len()
}

// Append renders v and adds it to the current message. Appending EndLine
// flushes the message instead.
func (s *Stream) Append(v any) *Stream {
	if sep, ok := v.(Separator); ok {
		if sep == EndLine {
			s.Flush()
		}
		return s
	}
	if s.level == core.NotSetLevel {
		return s
	}
	s.acquire()
	if s.state.width == 0 {
		s.buf.text.Write(appendValue(s.buf.text.AvailableBuffer(), v))
	} else {
		s.buf.scratch = appendValue(s.buf.scratch[:0], v)
		s.commitPadded()
	}
	s.fragments++
	return s
}

// Print appends each value in order, as if by consecutive Append calls.
func (s *Stream) Print(vs ...any) *Stream {
	for _, v := range vs {
		s.Append(v)
	}
	return s
}

// Printf formats according to format and appends the result as a single
// fragment, so a pending width applies to the whole formatted text.
func (s *Stream) Printf(format string, args ...any) *Stream {
	if s.level == core.NotSetLevel {
		return s
	}
	s.acquire()
	s.buf.scratch = fmt.Appendf(s.buf.scratch[:0], format, args...)
	s.commitPadded()
	s.fragments++
	return s
}

// Write implements io.Writer. The bytes are appended verbatim: width,
// alignment and fill do not apply.
func (s *Stream) Write(p []byte) (int, error) {
	if s.level == core.NotSetLevel {
		return len(p), nil
	}
	s.acquire()
	s.buf.text.Write(p)
	s.fragments++
	return len(p), nil
}

// Width sets the minimum width, in runes, of the next rendered fragment
// and returns the previous width. A disabled stream ignores the call and
// returns 0.
func (s *Stream) Width(n int) int {
	if s.level == core.NotSetLevel {
		return 0
	}
	s.acquire()
	prev := s.state.width
	if n < 0 {
		n = 0
	}
	s.state.width = n
	return prev
}

// Left pads subsequent fragments on the right, until the next flush.
func (s *Stream) Left() *Stream {
	if s.level != core.NotSetLevel {
		s.acquire()
		s.state.left = true
	}
	return s
}

// Right restores the default alignment: padding goes before the value.
func (s *Stream) Right() *Stream {
	if s.level != core.NotSetLevel {
		s.acquire()
		s.state.left = false
	}
	return s
}

// Fill sets the padding rune used until the next flush and returns the
// previous one.
func (s *Stream) Fill(r rune) rune {
	if s.level == core.NotSetLevel {
		return ' '
	}
	s.acquire()
	prev := s.state.fill
	s.state.fill = r
	return prev
}

// Flush delivers the composed message to the sink and resets the stream.
// A stream that received no fragment since the last flush delivers
// nothing, even if a formatting call acquired a buffer.
func (s *Stream) Flush() {
	if s.level == core.NotSetLevel || s.buf == nil {
		return
	}
	deliver := s.fragments > 0
	var msg string
	if deliver {
		msg = s.buf.text.String()
	}
	s.release()
	if deliver && s.sink != nil {
		s.sink.Log(s.level, msg)
	}
}

// Close flushes the stream. It always returns nil and lets streams be
// released with defer.
func (s *Stream) Close() error {
	s.Flush()
	return nil
}

func (s *Stream) acquire() {
	if s.buf == nil {
		s.buf = getBuffer()
	}
}

func (s *Stream) release() {
	putBuffer(s.buf)
	s.buf = nil
	s.fragments = 0
	s.state = newFormatState()
}

// commitPadded copies the rendered scratch fragment into the message,
// honoring the pending width, then clears the width.
func (s *Stream) commitPadded() {
	s.buf.text.Write(appendPadded(s.buf.text.AvailableBuffer(), s.buf.scratch, s.state))
	s.state.width = 0
}
