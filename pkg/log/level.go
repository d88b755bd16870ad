// Package log provides structured, leveled logging with asynchronous
// delivery to pluggable transporters.
package log

import (
	"errors"
	"strings"
)

// Level represents the severity of a log entry.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
	Fatal
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

// String returns the string representation of the level.
func (l Level) String() string {
	if l < Debug || l > Fatal {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// Enables returns true if this level allows logging at the given level.
func (l Level) Enables(target Level) bool {
	return target >= l
}

// ErrInvalidLevel is returned when parsing an unknown level string.
var ErrInvalidLevel = errors.New("invalid log level")

// ParseLevel parses a string into a Level. Unknown strings yield Info and
// ErrInvalidLevel.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return Debug, nil
	case "INFO":
		return Info, nil
	case "WARN", "WARNING":
		return Warn, nil
	case "ERROR":
		return Error, nil
	case "FATAL":
		return Fatal, nil
	default:
		return Info, ErrInvalidLevel
	}
}
