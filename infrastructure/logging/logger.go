package logging

import (
	"fmt"
	"io"
	"strings"

	"drive-uploader/infrastructure/config"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a logger from cfg that writes to out and, when cfg.File is set,
// to a size-rotated log file as well. verbose forces debug level.
func New(cfg config.LoggingConfig, out io.Writer, verbose bool) (*logrus.Logger, error) {
	logger := logrus.New()

	level := logrus.InfoLevel
	if cfg.Level != "" {
		parsed, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}
	if verbose {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("invalid log format %q: expected text or json", cfg.Format)
	}

	if out == nil {
		out = io.Discard
	}
	if cfg.File != "" {
		out = io.MultiWriter(out, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		})
	}
	logger.SetOutput(out)

	return logger, nil
}

// WithRun returns an entry tagged with a fresh run identifier
func WithRun(logger *logrus.Logger) *logrus.Entry {
	return logger.WithField("run_id", uuid.NewString())
}

// Discard returns an entry that drops everything, for callers that were given no logger
func Discard() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}
