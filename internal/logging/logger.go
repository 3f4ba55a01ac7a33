package logging

import (
	"io"
	"log"
	"os"
	"strings"
)

// Level is a logging verbosity level.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

// ParseLevel maps ERROR/WARN/INFO/DEBUG (any case) to a Level. Unknown values give LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return LevelError
	case "WARN", "WARNING":
		return LevelWarn
	case "DEBUG":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// Logger is a leveled wrapper around the standard logger.
type Logger struct {
	level Level
	out   *log.Logger
}

// New creates a logger writing to w.
func New(w io.Writer, level Level) *Logger {
	return &Logger{level: level, out: log.New(w, "", log.LstdFlags)}
}

// FromEnv creates a stderr logger, level taken from LOG_LEVEL.
func FromEnv() *Logger {
	return New(os.Stderr, ParseLevel(os.Getenv("LOG_LEVEL")))
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, LevelError)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.printf(LevelError, "[ERROR] ", format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.printf(LevelWarn, "[WARN] ", format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.printf(LevelInfo, "[INFO] ", format, args...)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.printf(LevelDebug, "[DEBUG] ", format, args...)
}

// Level returns the configured level.
func (l *Logger) Level() Level {
	return l.level
}

func (l *Logger) printf(level Level, prefix, format string, args ...interface{}) {
	if l == nil || l.level < level {
		return
	}
	l.out.Printf(prefix+format, args...)
}
