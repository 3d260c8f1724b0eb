// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(slog.New(slog.DiscardHandler))
}

// SetLogger installs the logger used for clamping warnings and diagnostics
// across the module. A nil logger silences output.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger.Store(l)
}

// Logger returns the current module logger.
func Logger() *slog.Logger {
	return logger.Load()
}
