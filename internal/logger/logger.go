package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

var (
	globalLogger *Logger
	once         sync.Once
)

// Level is a logging threshold
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevel converts a level name (debug, info, warn, error) to a Level.
// "trace" is accepted as an alias for debug and "warning" for warn.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "trace":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Logger writes leveled log lines to stderr and optionally a file
type Logger struct {
	level   Level
	logFile *os.File
	logger  *log.Logger
}

// NewLogger creates a new logger instance.
// Lines below level are dropped. When logFilePath is set, output goes to the
// file, and is mirrored to stderr only at debug level.
func NewLogger(level Level, logFilePath string) (*Logger, error) {
	l := &Logger{
		level: level,
	}

	if logFilePath == "" {
		l.logger = log.New(os.Stderr, "", log.LstdFlags)
		return l, nil
	}

	f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	l.logFile = f

	var writer io.Writer = f
	if level == LevelDebug {
		writer = io.MultiWriter(os.Stderr, f)
	}
	l.logger = log.New(writer, "", log.LstdFlags)

	return l, nil
}

// Close closes the log file if open
func (l *Logger) Close() error {
	if l.logFile != nil {
		err := l.logFile.Close()
		l.logFile = nil // Prevent double close
		return err
	}
	return nil
}

// Level returns the current threshold
func (l *Logger) Level() Level {
	return l.level
}

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	if level < l.level {
		return
	}
	l.logger.Printf("["+level.String()+"] "+format, args...)
}

// Debugf logs a debug message
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logf(LevelDebug, format, args...)
}

// Infof logs an informational message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logf(LevelInfo, format, args...)
}

// Warnf logs a warning message
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logf(LevelWarn, format, args...)
}

// Errorf logs an error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logf(LevelError, format, args...)
}

// Step logs a step in the process with timing
func (l *Logger) Step(name string) *Step {
	l.Debugf("%s started", name)
	return &Step{
		logger:    l,
		name:      name,
		startTime: time.Now(),
	}
}

// Get returns the global logger instance, creating it if necessary
func Get() *Logger {
	once.Do(func() {
		if globalLogger == nil {
			globalLogger, _ = NewLogger(defaultLevelFromEnv(), "")
		}
	})
	return globalLogger
}

// Replace installs l as the global logger and closes the one it replaces
func Replace(l *Logger) error {
	once.Do(func() {})
	previous := globalLogger
	globalLogger = l
	if previous != nil && previous != l {
		return previous.Close()
	}
	return nil
}

// Step represents a timed step in the process
type Step struct {
	logger    *Logger
	name      string
	startTime time.Time
}

// Complete marks the step as complete and logs the duration
func (s *Step) Complete() {
	duration := time.Since(s.startTime)
	s.logger.Infof("%s completed in %.2fs", s.name, duration.Seconds())
}

// Fail marks the step as failed and logs the error
func (s *Step) Fail(err error) {
	duration := time.Since(s.startTime)
	s.logger.Errorf("%s failed after %.2fs: %v", s.name, duration.Seconds(), err)
}

func defaultLevelFromEnv() Level {
	if parseBoolEnv(os.Getenv("GERRIT_EVENTS_DEBUG")) || parseBoolEnv(os.Getenv("LOG_VERBOSE")) {
		return LevelDebug
	}

	level, err := ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return LevelInfo
	}
	return level
}

func parseBoolEnv(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
