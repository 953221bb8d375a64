// Package logger provides a small printf-style logging interface shared by the
// overlay, the surface and the simulated subsystems. Messages go through the
// standard log package so the TUI can redirect them with tea.LogToFile.
package logger

import (
	"fmt"
	"log"
	"os"
	"sync"
)

// DebugEnv is the environment variable that enables debug output.
const DebugEnv = "STATOVERLAY_DEBUG"

// Logger defines the interface for logging operations.
// All methods accept a format string and arguments, similar to fmt.Printf.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// envLogger writes to the std logger. Debug lines are dropped unless
// STATOVERLAY_DEBUG is set when the logger is created.
type envLogger struct {
	prefix string
	debug  bool
}

// NewEnvLogger creates a logger that respects STATOVERLAY_DEBUG.
// The prefix is prepended to all log messages (e.g. "[sampler]").
func NewEnvLogger(prefix string) Logger {
	return &envLogger{prefix: prefix, debug: DebugEnabled()}
}

// DebugEnabled reports whether STATOVERLAY_DEBUG is set.
func DebugEnabled() bool {
	return os.Getenv(DebugEnv) != ""
}

func (l *envLogger) printf(level, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	switch {
	case l.prefix != "" && level != "":
		log.Printf("%s %s: %s", l.prefix, level, msg)
	case l.prefix != "":
		log.Printf("%s %s", l.prefix, msg)
	case level != "":
		log.Printf("%s: %s", level, msg)
	default:
		log.Print(msg)
	}
}

func (l *envLogger) Debug(format string, args ...interface{}) {
	if l.debug {
		l.printf("", format, args...)
	}
}

func (l *envLogger) Info(format string, args ...interface{}) {
	l.printf("", format, args...)
}

func (l *envLogger) Warn(format string, args ...interface{}) {
	l.printf("WARN", format, args...)
}

func (l *envLogger) Error(format string, args ...interface{}) {
	l.printf("ERROR", format, args...)
}

type noopLogger struct{}

// Noop returns a logger that discards all messages.
func Noop() Logger {
	return noopLogger{}
}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// LogMessage represents a captured log message.
type LogMessage struct {
	Level   string
	Message string
}

// BufferLogger captures log messages for test assertions. It is safe for
// concurrent use since the simulator logs from its own goroutine.
type BufferLogger struct {
	mu       sync.Mutex
	Messages []LogMessage
}

// NewBufferLogger creates a logger that captures messages for inspection.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{Messages: make([]LogMessage, 0)}
}

func (l *BufferLogger) add(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, LogMessage{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Debug(format string, args ...interface{}) { l.add("debug", format, args...) }
func (l *BufferLogger) Info(format string, args ...interface{})  { l.add("info", format, args...) }
func (l *BufferLogger) Warn(format string, args ...interface{})  { l.add("warn", format, args...) }
func (l *BufferLogger) Error(format string, args ...interface{}) { l.add("error", format, args...) }

// Snapshot returns a copy of the captured messages.
func (l *BufferLogger) Snapshot() []LogMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogMessage, len(l.Messages))
	copy(out, l.Messages)
	return out
}

// Count returns how many messages were logged at the given level.
func (l *BufferLogger) Count(level string) int {
	n := 0
	for _, m := range l.Snapshot() {
		if m.Level == level {
			n++
		}
	}
	return n
}

// HasLevel returns true if any message was logged at the given level.
func (l *BufferLogger) HasLevel(level string) bool {
	return l.Count(level) > 0
}

// Clear removes all captured messages.
func (l *BufferLogger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = l.Messages[:0]
}
