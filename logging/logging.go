package logging

import (
	"log"
	"sync/atomic"
)

const (
	// TraceLevel indicates a log message's level of criticality
	TraceLevel = iota
	// DebugLevel indicates a log message's level of criticality
	DebugLevel
	// InfoLevel indicates a log message's level of criticality
	InfoLevel
	// WarnLevel indicates a log message's level of criticality
	WarnLevel
	// ErrorLevel indicates a log message's level of criticality
	ErrorLevel
	// FatalLevel indicates a log message's level of criticality
	FatalLevel
)

var currentLevel int32 = WarnLevel

// LogLevelToString translates a log level enum to a string representation
func LogLevelToString(level int) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "TRACE"
	}
}

// SetLevel sets the minimum level of messages written by Logf. Defaults to WarnLevel.
func SetLevel(level int) {
	atomic.StoreInt32(&currentLevel, int32(level))
}

// GetLevel returns the minimum level of messages written by Logf
func GetLevel() int {
	return int(atomic.LoadInt32(&currentLevel))
}

// Enabled returns true iff messages at the given level would be written
func Enabled(level int) bool {
	return level >= GetLevel()
}

// Logf writes a message to the standard logger, prefixed with its level, if the level is enabled
func Logf(level int, format string, args ...interface{}) {
	if !Enabled(level) {
		return
	}
	log.Printf(LogLevelToString(level)+": "+format, args...)
}
