package server

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger interface for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a structured log field
type Field struct {
	Key   string
	Value interface{}
}

// DefaultLogger writes JSON lines through zerolog.
type DefaultLogger struct {
	logger zerolog.Logger
}

// NewDefaultLogger logs at info level to stdout.
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{
		logger: zerolog.New(os.Stdout).Level(zerolog.InfoLevel).With().Timestamp().Logger(),
	}
}

// NewLogger logs to w at the named level (debug, info, warn, error).
func NewLogger(w io.Writer, level string) (*DefaultLogger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return &DefaultLogger{
		logger: zerolog.New(w).Level(lvl).With().Timestamp().Logger(),
	}, nil
}

func (l *DefaultLogger) Debug(msg string, fields ...Field) {
	l.log(l.logger.Debug(), msg, fields)
}

func (l *DefaultLogger) Info(msg string, fields ...Field) {
	l.log(l.logger.Info(), msg, fields)
}

func (l *DefaultLogger) Warn(msg string, fields ...Field) {
	l.log(l.logger.Warn(), msg, fields)
}

func (l *DefaultLogger) Error(msg string, fields ...Field) {
	l.log(l.logger.Error(), msg, fields)
}

func (l *DefaultLogger) log(e *zerolog.Event, msg string, fields []Field) {
	// disabled level
	if e == nil {
		return
	}
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			e = e.Str(f.Key, v)
		case error:
			e = e.AnErr(f.Key, v)
		case int:
			e = e.Int(f.Key, v)
		case int64:
			e = e.Int64(f.Key, v)
		default:
			e = e.Interface(f.Key, v)
		}
	}
	e.Msg(msg)
}

// NullLogger discards all logs (for testing)
type NullLogger struct{}

func (n *NullLogger) Debug(msg string, fields ...Field) {}
func (n *NullLogger) Info(msg string, fields ...Field)  {}
func (n *NullLogger) Warn(msg string, fields ...Field)  {}
func (n *NullLogger) Error(msg string, fields ...Field) {}
