package sdlog

import (
	"log/slog"
	"time"

	"github.com/macrocketry/sdlog/pkg/storage"
)

// Defaults.
const (
	DefaultPrefix         = "LOG"
	DefaultBufferCapacity = 64
	DefaultSettleDelay    = 5 * time.Millisecond
)

// Option configures a Logger at construction.
type Option func(*Logger)

// WithPrefix sets the naming root for auto-numbered files.
func WithPrefix(prefix string) Option {
	return func(l *Logger) { l.prefix = prefix }
}

// WithBufferCapacity sets the WriteBuffer window size in bytes.
// Values <= 0 are ignored.
func WithBufferCapacity(n int) Option {
	return func(l *Logger) {
		if n > 0 {
			l.capacity = n
		}
	}
}

// WithChipSelect sets the chip-select line handed to the backend.
func WithChipSelect(cs storage.ChipSelect) Option {
	return func(l *Logger) { l.chipSelect = cs }
}

// WithSettleDelay sets the pause between closing one file and opening the next.
func WithSettleDelay(d time.Duration) Option {
	return func(l *Logger) { l.settle = d }
}

// WithSleep replaces time.Sleep for the settle delay.
func WithSleep(sleep func(time.Duration)) Option {
	return func(l *Logger) {
		if sleep != nil {
			l.sleep = sleep
		}
	}
}

// WithLogger sets the logger for operational messages.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Logger) {
		if logger != nil {
			l.log = logger
		}
	}
}
