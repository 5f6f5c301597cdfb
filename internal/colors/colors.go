// Package colors provides color output utilities.
package colors

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Color constants
const (
	Red    = "\033[0;31m"
	Green  = "\033[0;32m"
	Yellow = "\033[1;33m"
	Blue   = "\033[0;34m"
	Cyan   = "\033[0;36m"
	Reset  = "\033[0m"
)

const checkmark = "✓"

// Logger defines the interface for structured logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var (
	mu           sync.RWMutex
	debugEnabled = false
	colorEnabled = true
	logger       Logger
	stdout       io.Writer = os.Stdout
	stderr       io.Writer = os.Stderr
)

func init() {
	if val := os.Getenv("MOLMARK_DEBUG"); val == "true" || val == "1" {
		debugEnabled = true
	}
}

// SetDebug enables or disables debug output.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	debugEnabled = enabled
}

// SetColor enables or disables ANSI color codes.
func SetColor(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	colorEnabled = enabled
}

// SetLogger sets the structured logger to mirror console output.
func SetLogger(l Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// SetOutput redirects console output. Nil writers restore the process streams.
func SetOutput(out, errOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	stdout, stderr = out, errOut
}

// emit writes one colored line and mirrors it to the structured logger.
func emit(toErr bool, color, prefix string, mirror func(Logger, string), msgs []string) {
	msg := strings.Join(msgs, " ")
	mu.RLock()
	l, w, useColor := logger, stdout, colorEnabled
	if toErr {
		w = stderr
	}
	mu.RUnlock()

	if l != nil {
		mirror(l, msg)
	}
	if !useColor {
		color = ""
	}
	reset := Reset
	if color == "" {
		reset = ""
	}
	if _, err := fmt.Fprintf(w, "%s%s%s%s\n", color, prefix, reset, msg); err != nil {
		// Direct write to stderr, ignore errors
		fmt.Fprintf(os.Stderr, "failed to print message: %v\n", err)
	}
}

// Error outputs an error message to stderr.
func Error(msgs ...string) {
	emit(true, Red, "Error: ", func(l Logger, m string) { l.Error(m) }, msgs)
}

// Warning outputs a warning message to stderr.
func Warning(msgs ...string) {
	emit(true, Yellow, "Warning: ", func(l Logger, m string) { l.Warn(m) }, msgs)
}

// Success outputs a success message to stdout.
func Success(msgs ...string) {
	emit(false, Green, checkmark+" ", func(l Logger, m string) { l.Info(m, "type", "success") }, msgs)
}

// Info outputs an informational message to stdout.
func Info(msgs ...string) {
	emit(false, Blue, "", func(l Logger, m string) { l.Info(m) }, msgs)
}

// Debug outputs a debug message to stderr if debug is enabled.
func Debug(msgs ...string) {
	mu.RLock()
	enabled := debugEnabled
	mu.RUnlock()
	if !enabled {
		return
	}
	emit(true, Cyan, "Debug: ", func(l Logger, m string) { l.Debug(m) }, msgs)
}
