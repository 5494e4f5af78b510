package internal

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// LogLevel represents different logging verbosity levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

var levelNames = map[string]LogLevel{
	"ERROR": LogLevelError,
	"WARN":  LogLevelWarn,
	"INFO":  LogLevelInfo,
	"DEBUG": LogLevelDebug,
	"TRACE": LogLevelTrace,
}

// ParseLogLevel maps a level name to a LogLevel, defaulting to INFO.
func ParseLogLevel(name string) LogLevel {
	if level, ok := levelNames[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return level
	}
	return LogLevelInfo
}

// Logger provides leveled logging on the diagnostic side channel. It never
// writes to stdout, which carries the analysis result.
type Logger struct {
	level  LogLevel
	out    *log.Logger
	prefix string
}

// NewLogger creates a new logger with the specified level writing to stderr
func NewLogger(level LogLevel) *Logger {
	return NewLoggerTo(os.Stderr, level)
}

// NewLoggerTo creates a logger writing to w.
func NewLoggerTo(w io.Writer, level LogLevel) *Logger {
	return &Logger{level: level, out: log.New(w, "", log.LstdFlags)}
}

// NewNopLogger discards everything.
func NewNopLogger() *Logger {
	return NewLoggerTo(io.Discard, LogLevelError)
}

// With returns a logger that tags every line with component.
func (l *Logger) With(component string) *Logger {
	prefix := "[" + component + "] "
	return &Logger{level: l.level, out: l.out, prefix: l.prefix + prefix}
}

func (l *Logger) emit(tag, format string, args ...interface{}) {
	l.out.Print(tag + l.prefix + fmt.Sprintf(format, args...))
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	if l.level >= LogLevelError {
		l.emit("[ERROR] ", format, args...)
	}
}

// Warn logs warning messages
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.level >= LogLevelWarn {
		l.emit("[WARN] ", format, args...)
	}
}

// Info logs info messages
func (l *Logger) Info(format string, args ...interface{}) {
	if l.level >= LogLevelInfo {
		l.emit("[INFO] ", format, args...)
	}
}

// Debug logs debug messages
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level >= LogLevelDebug {
		l.emit("[DEBUG] ", format, args...)
	}
}

// Trace logs trace messages
func (l *Logger) Trace(format string, args ...interface{}) {
	if l.level >= LogLevelTrace {
		l.emit("[TRACE] ", format, args...)
	}
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() LogLevel {
	return l.level
}
