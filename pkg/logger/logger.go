// Package logger provides structured key-value logging for took.
// Log output goes to a file only: stdout and stderr belong to the
// timed child and the report.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Logger is the structured logging interface.
type Logger interface {
	// Debug logs debug-level messages with optional key-value pairs.
	Debug(msg string, keysAndValues ...any)

	// Info logs info-level messages with optional key-value pairs.
	Info(msg string, keysAndValues ...any)

	// Error logs error-level messages with optional key-value pairs.
	Error(msg string, keysAndValues ...any)

	// With returns a new logger with additional key-value pairs.
	With(keysAndValues ...any) Logger
}

// Level represents the log level.
type Level string

const (
	// LevelDebug represents debug-level logging.
	LevelDebug Level = "DEBUG"

	// LevelInfo represents info-level logging.
	LevelInfo Level = "INFO"

	// LevelError represents error-level logging.
	LevelError Level = "ERROR"

	// LogFilePermissions is the mode for log files (owner read/write only).
	LogFilePermissions = 0o600
)

// FileLogger implements Logger with file output.
type FileLogger struct {
	file    io.Writer
	baseKVs []any
	debug   bool
}

// NewFileLogger creates a FileLogger appending to the given path.
func NewFileLogger(path string, debug bool) (*FileLogger, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &FileLogger{file: file, debug: debug}, nil
}

// NewFileLoggerWithWriter creates a FileLogger around a custom writer.
func NewFileLoggerWithWriter(file io.Writer, debug bool) *FileLogger {
	return &FileLogger{file: file, debug: debug}
}

// Debug logs debug-level messages when debug mode is on.
func (l *FileLogger) Debug(msg string, keysAndValues ...any) {
	if !l.debug {
		return
	}

	l.log(LevelDebug, msg, keysAndValues...)
}

// Info logs info-level messages.
func (l *FileLogger) Info(msg string, keysAndValues ...any) {
	l.log(LevelInfo, msg, keysAndValues...)
}

// Error logs error-level messages.
func (l *FileLogger) Error(msg string, keysAndValues ...any) {
	l.log(LevelError, msg, keysAndValues...)
}

// With returns a new logger with additional base key-value pairs.
//
//nolint:ireturn // With is intended to return an interface for chaining
func (l *FileLogger) With(keysAndValues ...any) Logger {
	newKVs := make([]any, len(l.baseKVs)+len(keysAndValues))
	copy(newKVs, l.baseKVs)
	copy(newKVs[len(l.baseKVs):], keysAndValues)

	return &FileLogger{file: l.file, baseKVs: newKVs, debug: l.debug}
}

func (l *FileLogger) log(level Level, msg string, keysAndValues ...any) {
	var builder strings.Builder

	builder.WriteString(time.Now().UTC().Format("2006-01-02T15:04:05Z"))
	builder.WriteString(" ")
	builder.WriteString(string(level))
	builder.WriteString(" ")
	builder.WriteString(msg)

	writeKeyValues(&builder, l.baseKVs)
	writeKeyValues(&builder, keysAndValues)

	builder.WriteString("\n")

	if l.file != nil {
		_, _ = l.file.Write([]byte(builder.String()))
	}
}

// writeKeyValues formats key-value pairs and appends them to builder.
// An odd trailing argument is dropped.
func writeKeyValues(builder *strings.Builder, kvs []any) {
	for i := 0; i+1 < len(kvs); i += 2 {
		key := fmt.Sprintf("%v", kvs[i])
		value := fmt.Sprintf("%v", kvs[i+1])

		builder.WriteString(" ")
		builder.WriteString(key)
		builder.WriteString("=")

		if strings.ContainsAny(value, " \t\n\"") {
			builder.WriteString(quote(value))
		} else {
			builder.WriteString(value)
		}
	}
}

// quote escapes and quotes a string value.
func quote(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")

	return "\"" + s + "\""
}

// NopLogger is a logger that does nothing.
type NopLogger struct{}

// NewNopLogger creates a NopLogger.
func NewNopLogger() *NopLogger {
	return &NopLogger{}
}

// Debug does nothing.
func (*NopLogger) Debug(string, ...any) {}

// Info does nothing.
func (*NopLogger) Info(string, ...any) {}

// Error does nothing.
func (*NopLogger) Error(string, ...any) {}

// With returns the same NopLogger.
//
//nolint:ireturn // With is intended to return an interface for chaining
func (l *NopLogger) With(...any) Logger {
	return l
}
