package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

// Level is a log severity. Messages below the current level are dropped.
type Level int32

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var currentLevel atomic.Int32

func init() {
	currentLevel.Store(int32(LevelInfo))
}

// ParseLevel converts a level name into a Level.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level: %s", name)
	}
}

// SetLevel sets the global log level.
func SetLevel(l Level) {
	currentLevel.Store(int32(l))
}

// GetLevel returns the global log level.
func GetLevel() Level {
	return Level(currentLevel.Load())
}

func logAt(l Level, prefix, format string, args ...any) {
	if Level(currentLevel.Load()) > l {
		return
	}
	log.Printf(prefix+" "+format, args...)
}

func Trace(format string, args ...any) { logAt(LevelTrace, "[TRACE]", format, args...) }
func Debug(format string, args ...any) { logAt(LevelDebug, "[DEBUG]", format, args...) }
func Info(format string, args ...any)  { logAt(LevelInfo, "[INFO]", format, args...) }
func Warn(format string, args ...any)  { logAt(LevelWarn, "[WARN]", format, args...) }
func Error(format string, args ...any) { logAt(LevelError, "[ERROR]", format, args...) }

// Fatal logs at fatal level and exits.
func Fatal(format string, args ...any) {
	log.Printf("[FATAL] "+format, args...)
	os.Exit(1)
}
