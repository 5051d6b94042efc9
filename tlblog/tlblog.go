// Package tlblog is the module's package-level logging seam: a single
// swappable *zap.Logger used only for optional debug-level detail (one
// line at the end of each BagOfCells Serialize/Deserialize with its root,
// cell and byte counts). It is never consulted for control flow and never used to
// report errors — every failure already returns through tlberr; logging
// here is strictly supplementary.
package tlblog

import "go.uber.org/zap"

var logger = zap.NewNop()

// SetLogger installs l as the package-level logger. Passing nil restores
// the no-op default. Call sites hold onto the *zap.Logger returned by L()
// at the moment they log, so SetLogger is safe to call once at process
// startup before any concurrent Pack/Unpack traffic begins.
func SetLogger(l *zap.Logger) {
	if l == nil {
		logger = zap.NewNop()
		return
	}
	logger = l
}

// L returns the currently installed logger.
func L() *zap.Logger {
	return logger
}
