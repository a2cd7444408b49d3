// Package logger is the logging hook used across the module. Callers may
// replace the backend with SetLogger; the default writes warnings and errors
// through logrus.
package logger

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// LogLevel represents log severity
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// LogFunc is a single logger function that handles all levels
type LogFunc func(level LogLevel, msg string, keyvals ...interface{})

var logFunc = NewLogrus(defaultLogrus())

func defaultLogrus() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l
}

// SetLogger sets the global logger function. A nil function is ignored.
func SetLogger(f LogFunc) {
	if f != nil {
		logFunc = f
	}
}

// Discard drops every message
func Discard(LogLevel, string, ...interface{}) {}

// NewLogrus adapts a logrus logger. Key/value pairs become fields; a
// trailing key without a value is logged under "extra".
func NewLogrus(l *logrus.Logger) LogFunc {
	return func(level LogLevel, msg string, keyvals ...interface{}) {
		entry := l.WithFields(fields(keyvals))
		switch level {
		case DebugLevel:
			entry.Debug(msg)
		case WarnLevel:
			entry.Warn(msg)
		default:
			entry.Error(msg)
		}
	}
}

func fields(keyvals []interface{}) logrus.Fields {
	f := make(logrus.Fields, len(keyvals)/2)
	for i := 0; i < len(keyvals); i += 2 {
		if i+1 == len(keyvals) {
			f["extra"] = keyvals[i]
			break
		}
		f[fmt.Sprint(keyvals[i])] = keyvals[i+1]
	}
	return f
}

// Debug logs a message at debug level
func Debug(msg string, keyvals ...interface{}) {
	logFunc(DebugLevel, msg, keyvals...)
}

// Warn logs a message at warn level
func Warn(msg string, keyvals ...interface{}) {
	logFunc(WarnLevel, msg, keyvals...)
}

// Error logs a message at error level
func Error(msg string, keyvals ...interface{}) {
	logFunc(ErrorLevel, msg, keyvals...)
}
