package logger

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"sched-autogen/config"
)

const (
	LevelTrace = slog.Level(-8)
	levelOff   = slog.Level(12)
)

// New builds the process logger. Records go to a rotated log file when
// cfg.File is set and to stderr otherwise. The returned closer releases the
// log file and is a no-op for stderr.
func New(cfg config.LogConfig) (*slog.Logger, io.Closer) {
	var w io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		}
		w, closer = lj, lj
	}
	return NewWithWriter(w, cfg), closer
}

func NewWithWriter(w io.Writer, cfg config.LogConfig) *slog.Logger {
	programLevel := new(slog.LevelVar)
	setLoggingLevel(cfg.Level, programLevel)
	opts := &slog.HandlerOptions{Level: programLevel}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: levelOff}))
}

func setLoggingLevel(level string, programLevel *slog.LevelVar) {
	// logs having severity >= the configured value will be logged.
	switch level {
	case "TRACE":
		programLevel.Set(LevelTrace)
	case "DEBUG":
		programLevel.Set(slog.LevelDebug)
	case "WARNING":
		programLevel.Set(slog.LevelWarn)
	case "ERROR":
		programLevel.Set(slog.LevelError)
	case "OFF":
		programLevel.Set(levelOff)
	default:
		programLevel.Set(slog.LevelInfo)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
