// Package log provides the logging abstraction used throughout the
// gadget core.
//
// By default the package uses a no-op logger that discards all
// output, so library code (internal/bel, internal/codec,
// internal/trade, internal/storage) is always safe to log from without
// forcing a dependency on any particular logging backend. A host
// binary configures logging once, at startup, by calling SetLogger.
//
// The package ships a production-grade adapter over zerolog
// (NewZerologAdapter); any type implementing Logger works equally
// well.
package log

import "sync"

// Field is a structured key-value pair attached to a log line.
type Field struct {
	Key   string
	Value any
}

// F creates a Field. Used at call sites instead of string
// interpolation so a structured backend can index on Key.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Logger is the logging interface every package in this module writes
// through instead of calling a concrete backend directly.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

var (
	mu     sync.RWMutex
	global Logger = &nullLogger{}
)

// SetLogger installs the logger used by the global Debug/Info/Warn/Error
// functions. Passing nil restores the no-op logger. Safe for concurrent
// use.
func SetLogger(l Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		global = &nullLogger{}
		return
	}
	global = l
}

// GetLogger returns the currently installed logger.
func GetLogger() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

func Debug(msg string, fields ...Field) { GetLogger().Debug(msg, fields...) }
func Info(msg string, fields ...Field)  { GetLogger().Info(msg, fields...) }
func Warn(msg string, fields ...Field)  { GetLogger().Warn(msg, fields...) }
func Error(msg string, fields ...Field) { GetLogger().Error(msg, fields...) }
