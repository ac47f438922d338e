package logger

import (
	zap "go.uber.org/zap"
	observer "go.uber.org/zap/zaptest/observer"
)

// TestLogger creates a logger that captures logs for assertions
// The returned ObservedLogs can be used to verify log messages in tests
func TestLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}
