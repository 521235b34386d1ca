package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/panyam/funsh/config"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelOff
)

// String returns the string representation of a log level
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// slogLevel maps to the slog level used for records.  Off maps above every
// level we emit.
func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelError + 4
	}
}

// ParseLogLevel parses a string into a LogLevel
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LogLevelDebug, nil
	case "INFO":
		return LogLevelInfo, nil
	case "WARN", "WARNING":
		return LogLevelWarn, nil
	case "ERROR":
		return LogLevelError, nil
	case "OFF", "NONE":
		return LogLevelOff, nil
	default:
		return LogLevelInfo, fmt.Errorf("unknown log level: %s", s)
	}
}

// Logger interface for levelled logging
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	SetLevel(level LogLevel)
	GetLevel() LogLevel
}

// DefaultLogger implements Logger on top of a slog text handler.
type DefaultLogger struct {
	mu      sync.RWMutex
	level   LogLevel
	slogLvl *slog.LevelVar
	logger  *slog.Logger
}

// NewLogger creates a new logger instance writing to output.
func NewLogger(output io.Writer, level LogLevel) *DefaultLogger {
	lv := &slog.LevelVar{}
	lv.Set(level.slogLevel())
	return &DefaultLogger{
		level:   level,
		slogLvl: lv,
		logger:  slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: lv})),
	}
}

// SetLevel sets the minimum log level
func (l *DefaultLogger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.slogLvl.Set(level.slogLevel())
}

// GetLevel returns the current log level
func (l *DefaultLogger) GetLevel() LogLevel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

func (l *DefaultLogger) log(level LogLevel, format string, args ...any) {
	if level < l.GetLevel() {
		return
	}
	l.logger.Log(context.Background(), level.slogLevel(), fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Debug(format string, args ...any) { l.log(LogLevelDebug, format, args...) }
func (l *DefaultLogger) Info(format string, args ...any)  { l.log(LogLevelInfo, format, args...) }
func (l *DefaultLogger) Warn(format string, args ...any)  { l.log(LogLevelWarn, format, args...) }
func (l *DefaultLogger) Error(format string, args ...any) { l.log(LogLevelError, format, args...) }

// Global logger instance
var globalLogger Logger = NewLogger(os.Stderr, LogLevelInfo)

// Package-level convenience functions

func SetLogLevel(level LogLevel) { globalLogger.SetLevel(level) }
func GetLogLevel() LogLevel      { return globalLogger.GetLevel() }

func Debug(format string, args ...any) { globalLogger.Debug(format, args...) }
func Info(format string, args ...any)  { globalLogger.Info(format, args...) }
func Warn(format string, args ...any)  { globalLogger.Warn(format, args...) }
func Error(format string, args ...any) { globalLogger.Error(format, args...) }

func init() {
	if levelStr := os.Getenv(config.EnvLogLevel); levelStr != "" {
		if level, err := ParseLogLevel(levelStr); err == nil {
			SetLogLevel(level)
		}
	}

	// In test mode, default to ERROR level only
	if strings.HasSuffix(os.Args[0], ".test") {
		SetLogLevel(LogLevelError)
	}
}
