// Package logger is the logging interface shared by the cookie store and its
// command line tool. Messages are printf-style; callers must never pass
// cookie values as arguments.
package logger

import (
	"fmt"
	"log"
	"sync"
)

// Logger receives diagnostics from the cookie store.
type Logger interface {
	// Info logs routine progress, e.g. "loaded cookie [domain: x, name: y]".
	Info(format string, args ...interface{})

	// Warning logs something the caller may want to fix, e.g. a defaulted path.
	Warning(format string, args ...interface{})

	// Error logs a failed operation.
	Error(format string, args ...interface{})

	// Close releases resources held by the logger. Safe to call multiple times.
	Close() error
}

// StandardLogger writes through a stdlib *log.Logger with a level prefix.
type StandardLogger struct {
	logger *log.Logger
}

// NewStandardLogger wraps l, typically log.Default().
func NewStandardLogger(l *log.Logger) *StandardLogger {
	return &StandardLogger{logger: l}
}

func (s *StandardLogger) printf(level Level, format string, args []interface{}) {
	s.logger.Printf("["+level.String()+"] "+format, args...)
}

// Info logs a message with the [INFO] prefix.
func (s *StandardLogger) Info(format string, args ...interface{}) {
	s.printf(LevelInfo, format, args)
}

// Warning logs a message with the [WARNING] prefix.
func (s *StandardLogger) Warning(format string, args ...interface{}) {
	s.printf(LevelWarning, format, args)
}

// Error logs a message with the [ERROR] prefix.
func (s *StandardLogger) Error(format string, args ...interface{}) {
	s.printf(LevelError, format, args)
}

// Close does nothing; the wrapped *log.Logger is owned by the caller.
func (s *StandardLogger) Close() error {
	return nil
}

// NopLogger discards everything. It is the store's default.
type NopLogger struct{}

// NewNopLogger returns a logger that drops every message.
func NewNopLogger() *NopLogger {
	return &NopLogger{}
}

// Info drops the message.
func (NopLogger) Info(string, ...interface{}) {}

// Warning drops the message.
func (NopLogger) Warning(string, ...interface{}) {}

// Error drops the message.
func (NopLogger) Error(string, ...interface{}) {}

// Close always returns nil.
func (NopLogger) Close() error {
	return nil
}

var (
	_ Logger = (*StandardLogger)(nil)
	_ Logger = (*NopLogger)(nil)
	_ Logger = (*MockLogger)(nil)
)

// MockLogger records formatted messages for assertions in tests.
type MockLogger struct {
	mu           sync.Mutex
	InfoCalls    []string
	WarningCalls []string
	ErrorCalls   []string
	CloseCalled  bool
}

// NewMockLogger returns an empty MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

// Info records the formatted message.
func (m *MockLogger) Info(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InfoCalls = append(m.InfoCalls, fmt.Sprintf(format, args...))
}

// Warning records the formatted message.
func (m *MockLogger) Warning(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WarningCalls = append(m.WarningCalls, fmt.Sprintf(format, args...))
}

// Error records the formatted message.
func (m *MockLogger) Error(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorCalls = append(m.ErrorCalls, fmt.Sprintf(format, args...))
}

// Close marks the logger closed.
func (m *MockLogger) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalled = true
	return nil
}

// All returns every recorded message, in no particular level order.
func (m *MockLogger) All() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.InfoCalls)+len(m.WarningCalls)+len(m.ErrorCalls))
	out = append(out, m.InfoCalls...)
	out = append(out, m.WarningCalls...)
	return append(out, m.ErrorCalls...)
}
