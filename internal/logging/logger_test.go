package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/jeantessier/depfind-stamp/internal/domain/interfaces"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{input: "debug", want: zerolog.DebugLevel},
		{input: "INFO", want: zerolog.InfoLevel},
		{input: " warn ", want: zerolog.WarnLevel},
		{input: "warning", want: zerolog.WarnLevel},
		{input: "error", want: zerolog.ErrorLevel},
		{input: "", want: zerolog.InfoLevel},
		{input: "verbose", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestAdapter_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	var logger interfaces.Logger = NewAdapter(New("debug", &buf))

	logger.Info("stamped artifact",
		interfaces.F("jar", "lib/DependencyFinder.jar"),
		interfaces.F("entries", 42))
	logger.Error("signing failed", interfaces.F("error", errors.New("bad passphrase")))

	out := buf.String()
	assert.Contains(t, out, "stamped artifact")
	assert.Contains(t, out, "jar=lib/DependencyFinder.jar")
	assert.Contains(t, out, "entries=42")
	assert.Contains(t, out, "signing failed")
	assert.Contains(t, out, "bad passphrase")
}

func TestAdapter_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewAdapter(New("warn", &buf))

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("marker entry missing")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "marker entry missing")
}
