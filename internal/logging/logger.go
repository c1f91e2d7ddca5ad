// Package logging decouples the application from the underlying logging
// framework. Packages depend on the Logger interface; the logrus adapter
// is the only implementation used outside tests.
package logging

// Logger is the structured logging contract used throughout the pipeline.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a derived logger with an error field attached.
	WithError(err error) Logger

	// WithField returns a derived logger with one field attached.
	WithField(key string, value interface{}) Logger

	// Fatalf logs a fatal message and exits the program.
	Fatalf(format string, args ...interface{})
}

// Field is a key-value pair attached to a log message.
type Field struct {
	Key   string
	Value interface{}
}

var defaultLogger Logger = NewLogrusAdapter("info", "text")

// GetLogger returns the process-wide default logger.
func GetLogger() Logger {
	return defaultLogger
}

// SetDefault replaces the process-wide default logger.
func SetDefault(l Logger) {
	if l != nil {
		defaultLogger = l
	}
}
