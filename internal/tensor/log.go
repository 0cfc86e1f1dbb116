package tensor

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

var logger atomic.Pointer[zerolog.Logger]

func init() {
	nop := zerolog.Nop()
	logger.Store(&nop)
}

// SetLogger installs the logger used for debug events. The default discards
// everything.
func SetLogger(l zerolog.Logger) {
	logger.Store(&l)
}

func currentLogger() *zerolog.Logger {
	return logger.Load()
}
