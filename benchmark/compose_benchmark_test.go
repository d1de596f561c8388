package benchmark

import (
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/nlogstream/core"
	"github.com/philipp01105/nlogstream/formatter"
	"github.com/philipp01105/nlogstream/handler/consolehandler"
	"github.com/philipp01105/nlogstream/handler/zaphandler"
	"github.com/philipp01105/nlogstream/logger"
	"github.com/philipp01105/nlogstream/stream"
)

// Every framework writes JSON to io.Discard.

func newStreamLogger(level core.Level) *logger.Logger {
	h := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:    io.Discard,
		Formatter: formatter.NewJSONFormatter(formatter.Config{}),
	})
	return logger.NewBuilder().WithHandler(h).WithLevel(level).Build()
}

func newZapCore(level zapcore.Level) zapcore.Core {
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	return zapcore.NewCore(enc, zapcore.AddSync(io.Discard), level)
}

func newLogrusLogger(level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(level)
	return l
}

func newSlogLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: level}))
}

// ---------------------------------------------------------------------------
// A message built from several values: "request 42 took 12.5 ms (ok=true)"
// ---------------------------------------------------------------------------

func BenchmarkCompose(b *testing.B) {
	b.Run("nlogstream/stream", func(b *testing.B) {
		l := newStreamLogger(core.InfoLevel)
		defer l.Close()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.InfoStream().Append("request ").Append(i).Append(" took ").Append(12.5).
				Append(" ms (ok=").Append(true).Append(")").Append(stream.EndLine)
		}
	})

	b.Run("nlogstream/infof", func(b *testing.B) {
		l := newStreamLogger(core.InfoLevel)
		defer l.Close()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Infof("request %d took %g ms (ok=%t)", i, 12.5, true)
		}
	})

	b.Run("zap/sugar", func(b *testing.B) {
		l := zap.New(newZapCore(zapcore.InfoLevel)).Sugar()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Infof("request %d took %g ms (ok=%t)", i, 12.5, true)
		}
	})

	b.Run("zerolog", func(b *testing.B) {
		l := zerolog.New(io.Discard).Level(zerolog.InfoLevel)
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info().Msgf("request %d took %g ms (ok=%t)", i, 12.5, true)
		}
	})

	b.Run("logrus", func(b *testing.B) {
		l := newLogrusLogger(logrus.InfoLevel)
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Infof("request %d took %g ms (ok=%t)", i, 12.5, true)
		}
	})

	b.Run("slog", func(b *testing.B) {
		l := newSlogLogger(slog.LevelInfo)
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info(fmt.Sprintf("request %d took %g ms (ok=%t)", i, 12.5, true))
		}
	})
}

// ---------------------------------------------------------------------------
// The same message at a disabled level
// ---------------------------------------------------------------------------

func BenchmarkComposeDisabled(b *testing.B) {
	b.Run("nlogstream/stream", func(b *testing.B) {
		l := newStreamLogger(core.WarnLevel)
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.DebugStream().Append("request ").Append(i).Append(" took ").Append(12.5).Append(stream.EndLine)
		}
	})

	b.Run("zap/sugar", func(b *testing.B) {
		l := zap.New(newZapCore(zapcore.WarnLevel)).Sugar()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Debugf("request %d took %g", i, 12.5)
		}
	})

	b.Run("zerolog", func(b *testing.B) {
		l := zerolog.New(io.Discard).Level(zerolog.WarnLevel)
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Debug().Msgf("request %d took %g", i, 12.5)
		}
	})

	b.Run("logrus", func(b *testing.B) {
		l := newLogrusLogger(logrus.WarnLevel)
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Debugf("request %d took %g", i, 12.5)
		}
	})
}

// ---------------------------------------------------------------------------
// Column-aligned output: width and alignment versus fmt verbs
// ---------------------------------------------------------------------------

var rows = []struct {
	name  string
	count int
}{
	{"db", 12}, {"cache", 4031}, {"queue", 7},
}

func BenchmarkAligned(b *testing.B) {
	b.Run("stream", func(b *testing.B) {
		sink := &countingSink{}
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			s := stream.New(sink, core.InfoLevel)
			for _, r := range rows {
				s.Left()
				s.Width(8)
				s.Append(r.name)
				s.Right()
				s.Width(6)
				s.Append(r.count).Append(stream.EndLine)
			}
		}
	})

	b.Run("fmt", func(b *testing.B) {
		sink := &countingSink{}
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			for _, r := range rows {
				sink.Log(core.InfoLevel, fmt.Sprintf("%-8s%6d", r.name, r.count))
			}
		}
	})
}

// ---------------------------------------------------------------------------
// Producing entries without formatting
// ---------------------------------------------------------------------------

func BenchmarkNoopHandler(b *testing.B) {
	l := logger.NewBuilder().WithHandler(noopHandler{}).Build()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		s := l.InfoStream()
		i := 0
		for pb.Next() {
			s.Append("tick ").Append(i).Append(stream.EndLine)
			i++
		}
	})
}

// ---------------------------------------------------------------------------
// Streams writing through zap versus zap directly
// ---------------------------------------------------------------------------

func BenchmarkThroughZap(b *testing.B) {
	b.Run("stream->zaphandler", func(b *testing.B) {
		l := logger.NewBuilder().WithHandler(zaphandler.New(newZapCore(zapcore.InfoLevel))).Build()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.InfoStream().Append("request ").Append(i).Append(stream.EndLine)
		}
	})

	b.Run("zap", func(b *testing.B) {
		l := zap.New(newZapCore(zapcore.InfoLevel)).Sugar()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Infof("request %d", i)
		}
	})
}

// ---------------------------------------------------------------------------
// Parallel composition
// ---------------------------------------------------------------------------

func BenchmarkComposeParallel(b *testing.B) {
	b.Run("nlogstream/stream", func(b *testing.B) {
		l := newStreamLogger(core.InfoLevel)
		defer l.Close()
		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			s := l.InfoStream()
			for pb.Next() {
				s.Append("worker done in ").Append(3).Append(" ms").Append(stream.EndLine)
			}
		})
	})

	b.Run("zerolog", func(b *testing.B) {
		l := zerolog.New(io.Discard)
		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				l.Info().Msgf("worker done in %d ms", 3)
			}
		})
	})
}

func TestStreamMatchesSprintf(t *testing.T) {
	var got atomic.Value
	sink := sinkFunc(func(_ core.Level, msg string, _ ...core.Field) { got.Store(msg) })

	for _, r := range rows {
		s := stream.New(sink, core.InfoLevel).Left()
		s.Width(8)
		s.Append(r.name)
		s.Right()
		s.Width(6)
		s.Append(r.count).Append(stream.EndLine)

		if want := fmt.Sprintf("%-8s%6d", r.name, r.count); got.Load() != want {
			t.Errorf("stream rendered %q, want %q", got.Load(), want)
		}
	}
}

type sinkFunc func(level core.Level, msg string, fields ...core.Field)

func (f sinkFunc) Log(level core.Level, msg string, fields ...core.Field) { f(level, msg, fields...) }
