// Package logging configures zerolog and adapts it to the domain Logger interface.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jeantessier/depfind-stamp/internal/domain/interfaces"
)

// ParseLevel maps debug, info, warn and error to zerolog levels (default: info)
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New creates a console logger writing to out (stderr when nil)
func New(level string, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stderr
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: true}).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// Adapter implements interfaces.Logger on top of zerolog
type Adapter struct {
	logger zerolog.Logger
}

// NewAdapter wraps a zerolog logger
func NewAdapter(logger zerolog.Logger) *Adapter {
	return &Adapter{logger: logger}
}

// Debug logs debug-level messages
func (a *Adapter) Debug(msg string, fields ...interfaces.Field) {
	a.emit(a.logger.Debug(), msg, fields)
}

// Info logs informational messages
func (a *Adapter) Info(msg string, fields ...interfaces.Field) {
	a.emit(a.logger.Info(), msg, fields)
}

// Warn logs warning messages
func (a *Adapter) Warn(msg string, fields ...interfaces.Field) {
	a.emit(a.logger.Warn(), msg, fields)
}

// Error logs error messages
func (a *Adapter) Error(msg string, fields ...interfaces.Field) {
	a.emit(a.logger.Error(), msg, fields)
}

func (a *Adapter) emit(event *zerolog.Event, msg string, fields []interfaces.Field) {
	if event == nil {
		return
	}
	for _, f := range fields {
		if err, ok := f.Value.(error); ok {
			event = event.AnErr(f.Key, err)
			continue
		}
		event = event.Interface(f.Key, f.Value)
	}
	event.Msg(msg)
}
