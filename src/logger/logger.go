package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

type LogLevel string

const (
	DEBUG LogLevel = "DEBUG"
	INFO  LogLevel = "INFO"
	WARN  LogLevel = "WARN"
	ERROR LogLevel = "ERROR"
)

var levelRank = map[LogLevel]int{
	DEBUG: 0,
	INFO:  1,
	WARN:  2,
	ERROR: 3,
}

// exit is swapped out in tests so Fatalf can be observed without killing the test binary.
var exit = os.Exit

type Logger struct {
	level LogLevel
	mu    sync.Mutex
	out   io.Writer
}

// NewLogger initializes a Logger writing to stdout
func NewLogger(level LogLevel) *Logger {
	return NewLoggerWithWriter(level, os.Stdout)
}

// NewLoggerWithWriter initializes a Logger writing to out
func NewLoggerWithWriter(level LogLevel, out io.Writer) *Logger {
	if _, ok := levelRank[level]; !ok {
		level = INFO
	}
	return &Logger{level: level, out: out}
}

// ParseLevel maps a LOG_LEVEL value to a LogLevel, falling back to INFO
func ParseLevel(s string) LogLevel {
	level := LogLevel(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := levelRank[level]; ok {
		return level
	}
	return INFO
}

// Level returns the minimum level this logger emits
func (l *Logger) Level() LogLevel {
	return l.level
}

func (l *Logger) enabled(level LogLevel) bool {
	return levelRank[level] >= levelRank[l.level]
}

// logMessage prints the log with timestamp, level, and colored output
func (l *Logger) logMessage(level LogLevel, message string) {
	if !l.enabled(level) {
		return
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05")

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[%s] [%s] %s\n", timestamp, getColoredLevel(level), message)
}

// Color mapping for different log levels
func getColoredLevel(level LogLevel) string {
	switch level {
	case INFO:
		return color.New(color.FgBlue).Sprint(string(INFO))
	case ERROR:
		return color.New(color.FgRed).Sprint(string(ERROR))
	case DEBUG:
		return color.New(color.FgCyan).Sprint(string(DEBUG))
	case WARN:
		return color.New(color.FgYellow).Sprint(string(WARN))
	default:
		return string(level)
	}
}

func (l *Logger) Info(msg string)  { l.logMessage(INFO, msg) }
func (l *Logger) Error(msg string) { l.logMessage(ERROR, msg) }
func (l *Logger) Debug(msg string) { l.logMessage(DEBUG, msg) }
func (l *Logger) Warn(msg string)  { l.logMessage(WARN, msg) }

func (l *Logger) Infof(format string, args ...interface{}) {
	l.logMessage(INFO, fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logMessage(ERROR, fmt.Sprintf(format, args...))
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logMessage(DEBUG, fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logMessage(WARN, fmt.Sprintf(format, args...))
}

// Fatalf logs a fatal error message and exits the program with status 1
func (l *Logger) Fatalf(msg string, args ...interface{}) {
	l.logMessage(ERROR, fmt.Sprintf(msg, args...))
	exit(1)
}
