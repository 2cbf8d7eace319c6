package wasm

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// The decoder logs the section table and export counts at debug level, and
// warns when a section ID repeats. Errors are returned, never logged.
var (
	logger atomic.Pointer[zap.Logger]
	nop    = zap.NewNop()
)

// Logger returns the decoder's logger, a no-op logger until SetLogger is called.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return nop
}

// SetLogger replaces the decoder's logger. A nil logger restores the no-op default.
// It is safe to call while modules are being decoded.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}

// debugEnabled guards log statements whose fields are costly to build.
func debugEnabled() bool {
	return Logger().Core().Enabled(zap.DebugLevel)
}
