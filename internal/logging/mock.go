package logging

import "fmt"

// MemoryLogger captures log messages for assertions in tests.
type MemoryLogger struct {
	Messages []string
}

// NewMemoryLogger returns an empty capturing logger.
func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (m *MemoryLogger) record(level, msg string) {
	m.Messages = append(m.Messages, level+": "+msg)
}

func (m *MemoryLogger) Debug(msg string, _ ...Field) { m.record("debug", msg) }
func (m *MemoryLogger) Info(msg string, _ ...Field)  { m.record("info", msg) }
func (m *MemoryLogger) Warn(msg string, _ ...Field)  { m.record("warn", msg) }
func (m *MemoryLogger) Error(msg string, _ ...Field) { m.record("error", msg) }

func (m *MemoryLogger) WithError(error) Logger                 { return m }
func (m *MemoryLogger) WithField(string, interface{}) Logger   { return m }
func (m *MemoryLogger) Fatalf(format string, args ...interface{}) {
	m.record("fatal", fmt.Sprintf(format, args...))
	panic("fatal log in test")
}
