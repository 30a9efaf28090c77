// Package logging configures charmbracelet/log loggers and carries them
// through a context.Context.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // process-wide fallback logger
var fallback atomic.Pointer[log.Logger]

type ctxKey struct{}

// ParseLevel maps a level name to a log.Level. Matching ignores case and
// unknown names yield info.
func ParseLevel(name string) log.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		name = "warn"
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// New returns a diagnostic logger writing to w. A nil w means stderr.
func New(w io.Writer, level string) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{Level: ParseLevel(level)})
}

// NewInteractive returns an info logger for command output such as the
// rules listing. A nil w means stdout.
func NewInteractive(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stdout
	}
	return log.NewWithOptions(w, log.Options{Level: log.InfoLevel})
}

// Default returns the process-wide logger, creating an info-level stderr
// logger on first use.
func Default() *log.Logger {
	if l := fallback.Load(); l != nil {
		return l
	}
	fallback.CompareAndSwap(nil, New(os.Stderr, "info"))
	return fallback.Load()
}

// SetDefault replaces the process-wide logger. Nil is ignored.
func SetDefault(l *log.Logger) {
	if l != nil {
		fallback.Store(l)
	}
}

// WithLogger attaches l to ctx.
func WithLogger(ctx context.Context, l *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger attached to ctx, or Default.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok && l != nil {
			return l
		}
	}
	return Default()
}
