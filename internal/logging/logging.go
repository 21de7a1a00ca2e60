// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger setup
type Options struct {
	Level  string
	Format string
	// File enables rotating file output instead of Writer
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	// Writer receives log output when File is empty; nil means stderr
	Writer  io.Writer
	Verbose bool
}

// ParseLevel maps a level name or a numeric slog level to slog.Level
func ParseLevel(level string, defaultLevel slog.Level) slog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}
	return defaultLevel
}

// New builds a logger from the options. The returned closer releases the log file, if any.
func New(opts Options) (*slog.Logger, io.Closer) {
	level := ParseLevel(opts.Level, slog.LevelWarn)
	if opts.Verbose {
		level = slog.LevelDebug
	}

	var (
		writer io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if strings.TrimSpace(opts.File) != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   opts.Compress,
		}
		writer, closer = lj, lj
	} else if opts.Writer != nil {
		writer = opts.Writer
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(writer, handlerOpts)
	} else {
		handler = slog.NewTextHandler(writer, handlerOpts)
	}
	return slog.New(handler), closer
}

// Setup builds a logger and installs it as the slog default
func Setup(opts Options) io.Closer {
	logger, closer := New(opts)
	slog.SetDefault(logger)
	return closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
