package uast

import (
	"io"
	"log/slog"
	"sync"
)

// logger discards everything until SetLogger is called.
var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// SetLogger routes the package diagnostics to l. A nil l restores the
// discarding default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = l
}

var compatOnce sync.Once

// warnCompat is called by every compatibility accessor; only the first call
// logs.
func warnCompat(accessor string) {
	compatOnce.Do(func() {
		logger.Warn("deprecated node compatibility accessor in use",
			"accessor", accessor,
			"hint", "read the reserved @type, @token, @role and @pos keys through Get instead")
	})
}
