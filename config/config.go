package config

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/philipp01105/nlogstream/core"
	"github.com/philipp01105/nlogstream/formatter"
	"github.com/philipp01105/nlogstream/handler"
	"github.com/philipp01105/nlogstream/handler/consolehandler"
	"github.com/philipp01105/nlogstream/handler/filehandler"
	"github.com/philipp01105/nlogstream/handler/natshandler"
	"github.com/philipp01105/nlogstream/logger"
)

// Output names accepted in Config.Output.
const (
	OutputStdout = "stdout"
	OutputStderr = "stderr"
	OutputFile   = "file"
	OutputNATS   = "nats"
)

var (
	// ErrUnknownOutput is returned by Build for an unsupported Output.
	ErrUnknownOutput = errors.New("config: unknown output")
	// ErrUnknownFormat is returned by Build for an unsupported Format.
	ErrUnknownFormat = errors.New("config: unknown format")
)

// Config describes a logger. Every field can be overridden by its NLOG_*
// environment variable.
//
// Defaults come from Default, not from env-default tags: cleanenv applies
// env-default values over fields already decoded from YAML.
type Config struct {
	// Level - minimum level (debug, info, warn, error, fatal, panic, off)
	Level string `yaml:"level" env:"NLOG_LEVEL"`
	// Format - text or json
	Format string `yaml:"format" env:"NLOG_FORMAT"`
	// TimestampFormat - Go time layout for entry timestamps
	TimestampFormat string `yaml:"timestampFormat" env:"NLOG_TIMESTAMP_FORMAT"`
	// Output - stdout, stderr, file or nats; several comma-separated
	// outputs receive every entry
	Output string `yaml:"output" env:"NLOG_OUTPUT"`
	// Caller - record file and line of the call site
	Caller bool `yaml:"caller" env:"NLOG_CALLER"`
	// CoarseClock - timestamp with the cached coarse clock
	CoarseClock bool `yaml:"coarseClock" env:"NLOG_COARSE_CLOCK"`

	// Async - write from a background goroutine
	Async bool `yaml:"async" env:"NLOG_ASYNC"`
	// BufferSize - async queue capacity
	BufferSize int `yaml:"bufferSize" env:"NLOG_BUFFER_SIZE"`
	// BlockTimeout - how long a Block-policy caller waits on a full queue
	BlockTimeout time.Duration `yaml:"blockTimeout" env:"NLOG_BLOCK_TIMEOUT"`
	// DrainTimeout - how long Close waits for the queue to empty
	DrainTimeout time.Duration `yaml:"drainTimeout" env:"NLOG_DRAIN_TIMEOUT"`

	File FileConfig `yaml:"file"`
	NATS NATSConfig `yaml:"nats"`
}

// FileConfig configures OutputFile.
type FileConfig struct {
	Path           string        `yaml:"path" env:"NLOG_FILE_PATH"`
	MaxSizeMB      int           `yaml:"maxSize" env:"NLOG_FILE_MAX_SIZE"`
	MaxBackups     int           `yaml:"maxBackups" env:"NLOG_FILE_MAX_BACKUPS"`
	MaxAgeDays     int           `yaml:"maxAge" env:"NLOG_FILE_MAX_AGE"`
	Compress       bool          `yaml:"compress" env:"NLOG_FILE_COMPRESS"`
	RotateInterval time.Duration `yaml:"rotateInterval" env:"NLOG_FILE_ROTATE_INTERVAL"`
	ProcessLock    bool          `yaml:"processLock" env:"NLOG_FILE_PROCESS_LOCK"`
}

// NATSConfig configures OutputNATS.
type NATSConfig struct {
	URL           string `yaml:"url" env:"NLOG_NATS_URL"`
	Subject       string `yaml:"subject" env:"NLOG_NATS_SUBJECT"`
	LevelSubjects bool   `yaml:"levelSubjects" env:"NLOG_NATS_LEVEL_SUBJECTS"`
}

// Default returns the configuration used for anything YAML and the
// environment leave unset.
func Default() *Config {
	return &Config{
		Level:           "info",
		Format:          "text",
		TimestampFormat: time.RFC3339,
		Output:          OutputStderr,
		BufferSize:      1000,
		BlockTimeout:    100 * time.Millisecond,
		DrainTimeout:    5 * time.Second,
		File: FileConfig{
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
		NATS: NATSConfig{
			Subject: "logs",
		},
	}
}

// Load reads the YAML file at path, then applies NLOG_* environment
// overrides. An empty path loads defaults and the environment only.
func Load(path string) (*Config, error) {
	if path == "" {
		return FromEnv()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: read %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config: %s", path)
	}
	return cfg, nil
}

// Parse decodes YAML over Default and applies environment overrides.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "config: parse yaml")
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, errors.Wrap(err, "config: read environment")
	}
	return cfg, nil
}

// FromEnv returns Default with environment overrides applied.
func FromEnv() (*Config, error) {
	cfg := Default()
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, errors.Wrap(err, "config: read environment")
	}
	return cfg, nil
}

// Usage writes the environment variables Config understands to w.
func Usage(w io.Writer) {
	header := "nlogstream environment variables:"
	cleanenv.FUsage(w, Default(), &header)()
}

// Build creates a logger and the handler behind it from cfg. The caller
// owns the logger and must Close it.
func Build(cfg *Config) (*logger.Logger, error) {
	level, err := core.ParseLevel(cfg.Level)
	if err != nil {
		return nil, errors.Wrapf(err, "config: level %q", cfg.Level)
	}

	f, err := buildFormatter(cfg)
	if err != nil {
		return nil, err
	}

	h, err := buildOutputs(cfg, f)
	if err != nil {
		return nil, err
	}

	return logger.NewBuilder().
		WithHandler(h).
		WithLevel(level).
		WithCaller(cfg.Caller).
		WithCoarseClock(cfg.CoarseClock).
		Build(), nil
}

func buildFormatter(cfg *Config) (formatter.Formatter, error) {
	fc := formatter.Config{
		IncludeCaller:   cfg.Caller,
		TimestampFormat: cfg.TimestampFormat,
	}
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		return formatter.NewTextFormatter(fc), nil
	case "json":
		return formatter.NewJSONFormatter(fc), nil
	default:
		return nil, errors.Wrap(ErrUnknownFormat, cfg.Format)
	}
}

// buildOutputs builds one handler per comma-separated output and fans
// out to all of them when there is more than one.
func buildOutputs(cfg *Config, f formatter.Formatter) (handler.Handler, error) {
	names := strings.Split(cfg.Output, ",")
	handlers := make([]handler.Handler, 0, len(names))
	for _, name := range names {
		h, err := buildHandler(cfg, strings.ToLower(strings.TrimSpace(name)), f)
		if err != nil {
			for _, built := range handlers {
				_ = built.Close()
			}
			return nil, err
		}
		handlers = append(handlers, h)
	}
	if len(handlers) == 1 {
		return handlers[0], nil
	}
	return handler.NewMultiHandler(handlers...), nil
}

func buildHandler(cfg *Config, output string, f formatter.Formatter) (handler.Handler, error) {
	switch output {
	case OutputStdout, OutputStderr, "":
		w := os.Stderr
		if output == OutputStdout {
			w = os.Stdout
		}
		return consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
			Writer:       w,
			Formatter:    f,
			Async:        cfg.Async,
			BufferSize:   cfg.BufferSize,
			BlockTimeout: cfg.BlockTimeout,
			DrainTimeout: cfg.DrainTimeout,
		}), nil

	case OutputFile:
		h, err := filehandler.NewFileHandler(filehandler.FileConfig{
			Filename:       cfg.File.Path,
			Formatter:      f,
			Async:          cfg.Async,
			BufferSize:     cfg.BufferSize,
			MaxSizeMB:      cfg.File.MaxSizeMB,
			MaxBackups:     cfg.File.MaxBackups,
			MaxAgeDays:     cfg.File.MaxAgeDays,
			Compress:       cfg.File.Compress,
			RotateInterval: cfg.File.RotateInterval,
			ProcessLock:    cfg.File.ProcessLock,
			BlockTimeout:   cfg.BlockTimeout,
			DrainTimeout:   cfg.DrainTimeout,
		})
		if err != nil {
			return nil, errors.Wrap(err, "config: file output")
		}
		return h, nil

	case OutputNATS:
		h, err := natshandler.Dial(natshandler.NATSConfig{
			URL:           cfg.NATS.URL,
			Subject:       cfg.NATS.Subject,
			LevelSubjects: cfg.NATS.LevelSubjects,
			Formatter:     f,
			Async:         cfg.Async,
			BufferSize:    cfg.BufferSize,
			BlockTimeout:  cfg.BlockTimeout,
			DrainTimeout:  cfg.DrainTimeout,
		})
		if err != nil {
			return nil, errors.Wrap(err, "config: nats output")
		}
		return h, nil

	default:
		return nil, errors.Wrap(ErrUnknownOutput, output)
	}
}
