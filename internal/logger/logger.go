package logger

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// log is read by every request goroutine, so it is swapped atomically.
var log atomic.Pointer[zap.Logger]

// Init initializes zap logger depending on the environment.
// "production" logs JSON at info level, "silent" discards everything and
// anything else gets the colored development console.
func Init(env string) {
	if env == "silent" {
		log.Store(zap.NewNop())
		return
	}

	var cfg zap.Config

	if env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "json"
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.MessageKey = "message"
		cfg.EncoderConfig.LevelKey = "level"
		cfg.EncoderConfig.CallerKey = "caller"
		cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{"stdout"}
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.OutputPaths = []string{"stderr"}
	}

	l, err := cfg.Build(zap.AddCaller())
	if err != nil {
		panic(err)
	}
	log.Store(l.Named("yenepay"))
}

// Set replaces the global logger.
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	log.Store(l)
}

// L returns the global logger. Until Init or Set is called it discards
// everything, so the SDK stays quiet inside a host application.
func L() *zap.Logger {
	if l := log.Load(); l != nil {
		return l
	}
	log.CompareAndSwap(nil, zap.NewNop())
	return log.Load()
}

// Sync flushes logs.
func Sync() {
	if l := log.Load(); l != nil {
		_ = l.Sync()
	}
}
