// Package logger is a thin facade over zap. Call sites pass a message
// and a flat field map; the singleton is initialized once in main.
package logger

import (
	"sort"
	"sync"

	"go.uber.org/zap"
)

var (
	once     sync.Once
	instance *zap.Logger
)

// Init initializes the singleton logger. Idempotent: only the first
// call has effect.
func Init() {
	once.Do(func() {
		l, err := zap.NewProduction(zap.AddCallerSkip(1))
		if err != nil {
			l = zap.NewNop()
		}
		instance = l
	})
}

// L returns the singleton logger, initializing it if Init was not called.
func L() *zap.Logger {
	if instance == nil {
		Init()
	}
	return instance
}

// Sync flushes buffered entries. Deferred in main.
func Sync() error {
	if instance != nil {
		return instance.Sync()
	}
	return nil
}

func Info(msg string, fields map[string]any) {
	L().Info(msg, zapFields(fields)...)
}

func Warn(msg string, fields map[string]any) {
	L().Warn(msg, zapFields(fields)...)
}

func Error(msg string, fields map[string]any) {
	L().Error(msg, zapFields(fields)...)
}

func Fatal(msg string, fields map[string]any) {
	L().Fatal(msg, zapFields(fields)...)
}

// zapFields converts a field map to zap fields in stable key order.
func zapFields(fields map[string]any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}
