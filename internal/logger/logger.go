package logger

import (
	"os"
	"path/filepath"

	config "github.com/inference-gateway/envkeys/config"
	zap "go.uber.org/zap"
	zapcore "go.uber.org/zap/zapcore"
)

var (
	logger = zap.NewNop()
	sugar  = logger.Sugar()
)

// Init initializes the process logger. Debug output is enabled when verbose
// is set or the config asks for it; cfg may be nil.
func Init(verbose bool, cfg *config.Config) {
	level := zapcore.WarnLevel
	if verbose || (cfg != nil && cfg.Logging.Verbose) {
		level = zapcore.DebugLevel
	}

	outputs := []string{"stderr"}
	if cfg != nil && cfg.Logging.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Logging.File), 0755); err == nil {
			outputs = []string{cfg.Logging.File}
		}
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = outputs
	zcfg.ErrorOutputPaths = []string{"stderr"}
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	built, err := zcfg.Build()
	if err != nil {
		built = zap.NewNop()
	}

	Set(built)
}

// Set replaces the process logger
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
	sugar = l.Sugar()
	zap.ReplaceGlobals(l)
}

// L returns the process logger
func L() *zap.Logger {
	return logger
}

// Close flushes buffered log entries
func Close() {
	_ = logger.Sync()
}

// Debug logs a debug message
func Debug(msg string, keysAndValues ...any) {
	sugar.Debugw(msg, keysAndValues...)
}

// Info logs an info message
func Info(msg string, keysAndValues ...any) {
	sugar.Infow(msg, keysAndValues...)
}

// Warn logs a warning message
func Warn(msg string, keysAndValues ...any) {
	sugar.Warnw(msg, keysAndValues...)
}

// Error logs an error message
func Error(msg string, keysAndValues ...any) {
	sugar.Errorw(msg, keysAndValues...)
}
