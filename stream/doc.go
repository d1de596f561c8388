// Package stream composes a log message from many fragments and hands it
// to a Sink as one record.
//
// A Stream is bound to a Sink and a Level when it is created. Values
// appended to it are rendered with their default text form and collected
// in a lazily acquired buffer. Appending EndLine (or its alias EOL), calling
// Flush, or closing the stream delivers the collected text to the Sink at
// the bound level and leaves the stream ready for the next message:
//
//	s := stream.New(log, core.InfoLevel)
//	s.Append("x=").Append(42).Append(stream.EndLine) // log.Log(INFO, "x=42")
//
// A stream bound to core.NotSetLevel is disabled. It never acquires a
// buffer and never calls the Sink, so gating a stream costs one
// comparison per fragment.
//
// Width, Left, Right and Fill control padding the way a text-formatting
// stream does: the width applies to the next rendered fragment only,
// while alignment and fill persist until the message is flushed.
//
// A Stream is meant to live inside one call site and must not be shared
// between goroutines. The Sink is shared and must serialize on its own.
package stream
