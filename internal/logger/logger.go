package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"daysquare/internal/config"
	"daysquare/internal/parser"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// Logger provides logging functionality
type Logger struct {
	*logrus.Logger
	file *os.File
}

// NewLogger creates a logger writing to stdout and, when cfg.Dir is set,
// to a timestamped file inside it
func NewLogger(cfg config.LogConfig) (*Logger, error) {
	return NewLoggerWithOutput(cfg, os.Stdout)
}

// NewLoggerWithOutput is NewLogger writing to out instead of stdout
func NewLoggerWithOutput(cfg config.LogConfig, out io.Writer) (*Logger, error) {
	log := logrus.New()

	level := cfg.Level
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(lvl)

	switch cfg.Format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	l := &Logger{Logger: log}
	if cfg.Dir == "" {
		log.SetOutput(out)
		return l, nil
	}

	// Create log directory if it doesn't exist
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logPath := filepath.Join(cfg.Dir, fmt.Sprintf("daysquare_%s.log", timestamp))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}
	log.SetOutput(io.MultiWriter(out, file))
	l.file = file
	return l, nil
}

// Close closes the log file
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// LogParse logs the outcome of parsing one endpoint line
func (l *Logger) LogParse(line string, desc *parser.EndpointDescriptor, err error) {
	entry := l.WithField("line", line)
	if err != nil {
		entry.WithError(err).Warn("Rejected endpoint line")
		return
	}
	entry.WithFields(logrus.Fields{
		"base_url": desc.BaseURL,
		"version":  desc.Version,
		"paths":    len(desc.Paths),
		"queries":  len(desc.Queries),
	}).Debug("Parsed endpoint line")
}

// WithReqIDFromCtx create logger with request id from the context, request id is set by middleware.RequestID
func WithReqIDFromCtx(ctx context.Context, inner logrus.FieldLogger) logrus.FieldLogger {
	return inner.WithField("request_id", middleware.GetReqID(ctx))
}
