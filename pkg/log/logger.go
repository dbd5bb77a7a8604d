package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/YuminosukeSato/houseprice/pkg/errors"
)

// Options configures SetupLogger.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // json or console

	// File, when set, also writes JSON lines to a rotated file.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// SetupLogger builds the process logger, installs it as the default for this
// package and for zerolog's global logger, and returns it. The returned
// closer releases the rotated log file, if any.
func SetupLogger(opts Options) (*ZerologLogger, io.Closer, error) {
	level, err := ToLogLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	var console io.Writer = os.Stdout
	switch strings.ToLower(opts.Format) {
	case "", "json":
	case "console":
		console = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	default:
		return nil, nil, errors.NewValidationError("log.format", "must be json or console", opts.Format)
	}

	var (
		out    = console
		closer io.Closer = nopCloser{}
	)
	if opts.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		}
		out = zerolog.MultiLevelWriter(console, rotated)
		closer = rotated
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zl := zerolog.New(out).Level(toZerologLevel(level)).With().Timestamp().Logger()
	zlog.Logger = zl

	logger := NewZerologLogger(zl)
	SetLogger(logger)
	return logger, closer, nil
}

// ToLogLevel parses a level name.
func ToLogLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, errors.NewValidationError("log.level", "must be debug, info, warn or error", level)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
