package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func reset() {
	SetLevel(LevelOff)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer reset()

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("test message %s", "arg")

	assert.Equal(t, "[DEBUG] test message arg\n", buf.String())
}

func TestNothingPrintedByDefault(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	Debug("d")
	Info("i")
	Warn("w")
	Section("s")

	assert.Empty(t, buf.String())
}

func TestWarnLevelFiltersLower(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(LevelWarn)

	Debug("debug line")
	Info("info line")
	Warn("price %.2f", 1.5)
	Section("hidden")

	assert.Equal(t, "[WARN] price 1.50\n", buf.String())
}

func TestSection_AtInfo(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(LevelInfo)

	Section("Decode")

	assert.Equal(t, "\n=== Decode ===\n", buf.String())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in    string
		level Level
		ok    bool
	}{
		{"debug", LevelDebug, true},
		{"INFO", LevelInfo, true},
		{"warning", LevelWarn, true},
		{"off", LevelOff, true},
		{"", LevelOff, true},
		{"loud", LevelOff, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			l, ok := ParseLevel(tt.in)
			assert.Equal(t, tt.level, l)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
