// Package jsonlog implements structured JSON log entries with different severity levels.
// Only entries at or above a minimum severity level are logged.
package jsonlog

import (
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
)

// Level represents the type for the severity of a log entry.
type Level int8

// The severity type is one of these levels.
const (
	LevelInfo Level = iota
	LevelError
	LevelFatal
	LevelOff
)

// String returns a human-friendly string for the severity level.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return ""
	}
}

// ParseLevel maps a configuration value onto a Level. Unknown values fall back to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	case "off", "disabled":
		return LevelOff
	default:
		return LevelInfo
	}
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelError:
		return zerolog.ErrorLevel
	case LevelFatal:
		return zerolog.FatalLevel
	default:
		return zerolog.Disabled
	}
}

// Logger writes leveled JSON entries through a zerolog logger.
type Logger struct {
	zl       zerolog.Logger
	minLevel Level
	exit     func(int)
}

// New returns a new logger instance which writes logs at or above a severity level
// to a specific output destination.
func New(out io.Writer, minLevel Level) *Logger {
	zl := zerolog.New(out).Level(minLevel.zerolog()).With().Timestamp().Logger()
	return &Logger{
		zl:       zl,
		minLevel: minLevel,
		exit:     os.Exit,
	}
}

func (l *Logger) print(level Level, message string, properties map[string]string) {
	if level < l.minLevel {
		return
	}
	event := l.zl.WithLevel(level.zerolog())
	if len(properties) > 0 {
		dict := zerolog.Dict()
		for k, v := range properties {
			dict = dict.Str(k, v)
		}
		event = event.Dict("properties", dict)
	}
	if level >= LevelError {
		event = event.Str("trace", string(debug.Stack()))
	}
	event.Msg(message)
}

// Write is a method implemented so that the Logger type satisfies the io.Writer interface.
// This writes a log entry at the ERROR level with no additional properties.
func (l *Logger) Write(message []byte) (n int, err error) {
	l.print(LevelError, strings.TrimSpace(string(message)), nil)
	return len(message), nil
}

// PrintInfo writes log entries at the INFO level.
func (l *Logger) PrintInfo(message string, properties map[string]string) {
	l.print(LevelInfo, message, properties)
}

// PrintError writes log entries at the ERROR level.
func (l *Logger) PrintError(err error, properties map[string]string) {
	l.print(LevelError, err.Error(), properties)
}

// PrintFatal writes log entries at the FATAL level and terminates the process.
func (l *Logger) PrintFatal(err error, properties map[string]string) {
	l.print(LevelFatal, err.Error(), properties)
	l.exit(1)
}
