package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"filetools/internal/config"
)

// Formats accepted by New.
const (
	FormatPlain   = "plain"
	FormatConsole = "console"
	FormatJSON    = "json"
)

// ErrUnknownLevel is returned for level names outside debug, info, warning and error.
var ErrUnknownLevel = errors.New("unknown log level")

// Levels lists the level names accepted on the command line.
var Levels = []string{"debug", "info", "warning", "error"}

// FileOptions configures the optional rotated log file.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	Writer io.Writer
	File   FileOptions
}

// New constructs a slog logger using the provided options. The returned closer
// releases the log file, if one was opened.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}
	addSource := level <= slog.LevelDebug

	var terminal slog.Handler
	switch format := strings.ToLower(strings.TrimSpace(opts.Format)); format {
	case "", FormatPlain:
		terminal = newTextHandler(writer, levelVar, textStyle{}, addSource)
	case FormatConsole:
		terminal = newTextHandler(writer, levelVar, textStyle{timestamp: true, shortLevels: true}, addSource)
	case FormatJSON:
		terminal = newJSONHandler(writer, levelVar, addSource)
	default:
		return nil, nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	path := strings.TrimSpace(opts.File.Path)
	if path == "" {
		return slog.New(terminal), nopCloser{}, nil
	}
	if err := ensureLogDir(path); err != nil {
		return nil, nil, fmt.Errorf("ensure log directory: %w", err)
	}
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.File.MaxSizeMB,
		MaxBackups: opts.File.MaxBackups,
		MaxAge:     opts.File.MaxAgeDays,
		Compress:   opts.File.Compress,
	}
	file := newJSONHandler(rotator, levelVar, true)
	return slog.New(TeeHandler(terminal, file)), rotator, nil
}

// NewFromConfig creates a logger from the [logging] section of the config.
// Non-empty level and format arguments override the configured values.
func NewFromConfig(cfg config.Logging, level, format string, w io.Writer) (*slog.Logger, io.Closer, error) {
	if strings.TrimSpace(level) == "" {
		level = cfg.Level
	}
	if strings.TrimSpace(format) == "" {
		format = cfg.Format
	}
	return New(Options{
		Level:  level,
		Format: format,
		Writer: w,
		File: FileOptions{
			Path:       cfg.File,
			MaxSizeMB:  cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAgeDays: cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		},
	})
}

// ParseLevel maps a command-line level name onto a slog level. An empty name
// selects info.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warning", "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w %q (want one of %s)", ErrUnknownLevel, level, strings.Join(Levels, ", "))
	}
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	opts := slog.HandlerOptions{
		Level:     lvl,
		AddSource: addSource,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.TimeKey:
				attr.Key = "ts"
				if attr.Value.Kind() == slog.KindTime {
					attr.Value = slog.StringValue(attr.Value.Time().UTC().Format("2006-01-02T15:04:05Z07:00"))
				}
			case slog.LevelKey:
				attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
			case slog.SourceKey:
				if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
					attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
				}
			}
			return attr
		},
	}
	return slog.NewJSONHandler(w, &opts)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
