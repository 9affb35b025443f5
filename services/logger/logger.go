package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Level is the minimum severity a logger writes
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// ParseLevel maps a config string to a Level, defaulting to InfoLevel
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Logger is the logging surface shared by services, jobs and controllers
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// DefaultLogger implements Logger on top of the log package
type DefaultLogger struct {
	level Level
	out   *log.Logger
}

// NewDefaultLogger writes to stdout
func NewDefaultLogger(level Level) *DefaultLogger {
	return NewWriterLogger(level, os.Stdout)
}

// NewWriterLogger writes to w
func NewWriterLogger(level Level, w io.Writer) *DefaultLogger {
	return &DefaultLogger{
		level: level,
		out:   log.New(w, "", log.Ldate|log.Ltime|log.Lshortfile),
	}
}

// NewFileLogger writes to stdout and to logs/app-YYYY-MM-DD.log under dir.
// The returned closer releases the file.
func NewFileLogger(level Level, dir string) (*DefaultLogger, io.Closer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir %q: %w", dir, err)
	}

	name := filepath.Join(dir, fmt.Sprintf("app-%s.log", time.Now().Format("2006-01-02")))
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	return NewWriterLogger(level, io.MultiWriter(os.Stdout, f)), f, nil
}

func (l *DefaultLogger) write(level Level, prefix, format string, v ...interface{}) {
	if l.level > level {
		return
	}
	_ = l.out.Output(3, prefix+fmt.Sprintf(format, v...))
}

// Debug logs debug output
func (l *DefaultLogger) Debug(format string, v ...interface{}) {
	l.write(DebugLevel, "[DEBUG] ", format, v...)
}

// Info logs informational output
func (l *DefaultLogger) Info(format string, v ...interface{}) {
	l.write(InfoLevel, "[INFO] ", format, v...)
}

// Warn logs recoverable problems
func (l *DefaultLogger) Warn(format string, v ...interface{}) {
	l.write(WarnLevel, "[WARN] ", format, v...)
}

// Error logs failures
func (l *DefaultLogger) Error(format string, v ...interface{}) {
	l.write(ErrorLevel, "[ERROR] ", format, v...)
}

// Nop discards everything. Useful in tests.
type Nop struct{}

func (Nop) Debug(string, ...interface{}) {}
func (Nop) Info(string, ...interface{})  {}
func (Nop) Warn(string, ...interface{})  {}
func (Nop) Error(string, ...interface{}) {}
