package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the global logger. It is a no-op logger until Init is called.
var Log = zap.NewNop()

var initOnce sync.Once

// Init builds the production logger at info level
func Init() {
	InitWithLevel("info")
}

// InitWithLevel builds the production logger at the given level ("debug", "info", "warn", "error").
// Only the first call has an effect.
func InitWithLevel(level string) {
	initOnce.Do(func() {
		var lvl zapcore.Level
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			lvl = zapcore.InfoLevel
		}

		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(lvl)
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

		l, err := cfg.Build()
		if err != nil {
			return
		}
		Log = l
	})
}

// Sync flushes buffered log entries
func Sync() {
	_ = Log.Sync()
}
