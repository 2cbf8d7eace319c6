package introspect

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

// Logger returns the logger used while loading modules and building resolvers.
// verify reports signature mismatches through it as well.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return zap.L()
}

// SetLogger replaces the introspect logger. With nil, the process-wide zap
// logger (zap.L, a no-op unless replaced) is used instead.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}
