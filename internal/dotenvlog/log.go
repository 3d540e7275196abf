// Package dotenvlog provides structured logging for the dotenv loader.
// By default, logging is disabled (null logger) for zero overhead.
// Enable logging by calling SetLogger with a custom implementation.
package dotenvlog

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Level represents the logging level.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value any
}

// String creates a string field.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an integer field.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Err creates an error field.
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Key creates a field naming the dotenv entry key a log line concerns,
// e.g. the key currently being expanded by the postprocessor.
func Key(name string) Field {
	return Field{Key: "key", Value: name}
}

// Position creates a pair of fields locating a parser failure or entry
// within the source buffer, ready to be spread into a Debug/Error call
// alongside other fields: dotenvlog.Debug("...", dotenvlog.Position(3, 12)...).
// Zero values are suppressed to avoid cluttering log lines for callers
// that never had position information in the first place (e.g. decrypt
// or file-read failures, where line/column are meaningless).
func Position(line, column int) []Field {
	if line == 0 && column == 0 {
		return nil
	}
	return []Field{{Key: "line", Value: line}, {Key: "column", Value: column}}
}

// Kind creates a field from a dotenverr.Kind (or any other Stringer-based
// classification), recorded by its name rather than its numeric value so
// log lines stay greppable across a code-numbering change.
func Kind(k fmt.Stringer) Field {
	return Field{Key: "kind", Value: k.String()}
}

// Code creates a field for a stable numeric error code.
func Code(code int) Field {
	return Field{Key: "code", Value: code}
}

// Logger is the interface for structured logging.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	WithFields(fields ...Field) Logger
}

// nullLogger is a no-op logger that discards all output.
type nullLogger struct{}

func (n *nullLogger) Debug(msg string, fields ...Field) {}
func (n *nullLogger) Info(msg string, fields ...Field)  {}
func (n *nullLogger) Warn(msg string, fields ...Field)  {}
func (n *nullLogger) Error(msg string, fields ...Field) {}
func (n *nullLogger) WithFields(fields ...Field) Logger { return n }

// simpleLogger writes logs to an io.Writer.
type simpleLogger struct {
	mu     sync.Mutex
	out    io.Writer
	level  Level
	fields []Field
}

// NewSimpleLogger creates a simple logger that writes to the given writer.
func NewSimpleLogger(out io.Writer, level Level) Logger {
	return &simpleLogger{out: out, level: level}
}

func (s *simpleLogger) log(level Level, msg string, fields ...Field) {
	if level < s.level {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	fmt.Fprintf(s.out, "%s %s %s", timestamp, level.String(), msg)

	for _, f := range s.fields {
		fmt.Fprintf(s.out, " %s=%v", f.Key, f.Value)
	}
	for _, f := range fields {
		fmt.Fprintf(s.out, " %s=%v", f.Key, f.Value)
	}

	fmt.Fprintln(s.out)
}

func (s *simpleLogger) Debug(msg string, fields ...Field) { s.log(LevelDebug, msg, fields...) }
func (s *simpleLogger) Info(msg string, fields ...Field)  { s.log(LevelInfo, msg, fields...) }
func (s *simpleLogger) Warn(msg string, fields ...Field)  { s.log(LevelWarn, msg, fields...) }
func (s *simpleLogger) Error(msg string, fields ...Field) { s.log(LevelError, msg, fields...) }

func (s *simpleLogger) WithFields(fields ...Field) Logger {
	newFields := make([]Field, len(s.fields)+len(fields))
	copy(newFields, s.fields)
	copy(newFields[len(s.fields):], fields)
	return &simpleLogger{out: s.out, level: s.level, fields: newFields}
}

// Package-level logger (null by default for zero overhead).
var (
	defaultLogger Logger = &nullLogger{}
	loggerMu      sync.RWMutex
)

// SetLogger sets the package-level logger. Call with nil to disable logging.
func SetLogger(l Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if l == nil {
		defaultLogger = &nullLogger{}
	} else {
		defaultLogger = l
	}
}

// GetLogger returns the current package-level logger.
func GetLogger() Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return defaultLogger
}

// Debug logs a debug message using the package-level logger.
func Debug(msg string, fields ...Field) { GetLogger().Debug(msg, fields...) }

// Info logs an info message using the package-level logger.
func Info(msg string, fields ...Field) { GetLogger().Info(msg, fields...) }

// Warn logs a warning message using the package-level logger.
func Warn(msg string, fields ...Field) { GetLogger().Warn(msg, fields...) }

// Error logs an error message using the package-level logger.
func Error(msg string, fields ...Field) { GetLogger().Error(msg, fields...) }
