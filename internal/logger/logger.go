// Package logger provides levelled diagnostic logging for ordersnap.
// Nothing is printed until a level is enabled, either with --verbose
// (everything) or --log-level. Extraction heuristics log every fallback
// they take so that site-layout changes can be spotted in the output.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Level is a logging threshold.
type Level int

// Logging levels, most verbose first.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelOff
)

var (
	mu     sync.RWMutex
	level  = LevelOff
	output io.Writer = os.Stderr
)

// ParseLevel converts a level name to a Level.
// Unknown names return LevelOff and false.
func ParseLevel(name string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "off", "none", "":
		return LevelOff, true
	default:
		return LevelOff, false
	}
}

// SetLevel sets the minimum level that is printed.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// SetVerbose enables or disables all log output.
func SetVerbose(v bool) {
	if v {
		SetLevel(LevelDebug)
		return
	}
	SetLevel(LevelOff)
}

// IsVerbose returns true if debug output is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return level == LevelDebug
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(l Level, tag, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if l >= level && level != LevelOff {
		fmt.Fprintf(output, "["+tag+"] "+format+"\n", args...)
	}
}

// Debug prints a message at debug level.
func Debug(format string, args ...any) {
	logf(LevelDebug, "DEBUG", format, args...)
}

// Info prints a message at info level.
func Info(format string, args ...any) {
	logf(LevelInfo, "INFO", format, args...)
}

// Warn prints a message at warn level.
func Warn(format string, args ...any) {
	logf(LevelWarn, "WARN", format, args...)
}

// Section prints a section header when info output is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if level <= LevelInfo {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}
