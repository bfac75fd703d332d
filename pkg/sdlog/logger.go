package sdlog

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/macrocketry/sdlog/pkg/storage"
)

// StartMarker is the first line written to every opened file.
const StartMarker = "start logging..."

// Logger writes text lines to one file on a storage backend.
type Logger struct {
	backend storage.Backend

	prefix     string
	capacity   int
	chipSelect storage.ChipSelect
	settle     time.Duration
	sleep      func(time.Duration)
	log        *slog.Logger

	connectSD   bool
	connectFile bool
	file        storage.File
	path        string
	bufferFill  int
	err         error
}

// New creates a Logger, connects the backend and opens the next free
// auto-numbered file. Check ConnectFile to see whether a file was opened.
func New(backend storage.Backend, opts ...Option) *Logger {
	l := newLogger(backend, opts)
	l.connect()
	l.OpenNextFile()
	return l
}

// NewWithPath creates a Logger, connects the backend and opens path.
func NewWithPath(backend storage.Backend, path string, opts ...Option) *Logger {
	l := newLogger(backend, opts)
	l.connect()
	l.OpenFile(path)
	return l
}

func newLogger(backend storage.Backend, opts []Option) *Logger {
	l := &Logger{
		backend:    backend,
		prefix:     DefaultPrefix,
		capacity:   DefaultBufferCapacity,
		chipSelect: storage.DefaultChipSelect,
		settle:     DefaultSettleDelay,
		sleep:      time.Sleep,
		log:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.init()
	return l
}

// init resets the connection state and the buffer window.
func (l *Logger) init() {
	l.connectSD = false
	l.connectFile = false
	l.bufferFill = 0
}

func (l *Logger) connect() {
	if err := l.backend.Begin(l.chipSelect); err != nil {
		l.fail(fmt.Errorf("%w: %v", ErrStorageDisconnected, err))
		l.log.Warn("storage init failed", "chip_select", int(l.chipSelect), "error", err)
		return
	}
	l.connectSD = true
	l.log.Debug("storage connected", "chip_select", int(l.chipSelect))
}

// ConnectSD reports whether the backend initialized.
func (l *Logger) ConnectSD() bool { return l.connectSD }

// ConnectFile reports whether a file is open for writing.
func (l *Logger) ConnectFile() bool { return l.connectFile }

// Path returns the path of the open file, or "" if none is open.
func (l *Logger) Path() string { return l.path }

// Prefix returns the naming root for auto-numbered files.
func (l *Logger) Prefix() string { return l.prefix }

// BufferFill returns the number of bytes in the current WriteBuffer window.
func (l *Logger) BufferFill() int { return l.bufferFill }

// Capacity returns the WriteBuffer window size.
func (l *Logger) Capacity() int { return l.capacity }

// Err returns the cause of the most recent failed operation, or nil.
func (l *Logger) Err() error { return l.err }

func (l *Logger) fail(err error) {
	l.err = err
}

// OpenFile opens path for appending, closing any open file first.
// On success it writes StartMarker and returns true.
func (l *Logger) OpenFile(path string) bool {
	if !l.connectSD {
		l.fail(ErrStorageDisconnected)
		return false
	}

	if l.file != nil {
		l.release()
		// let the card settle before the next open
		l.sleep(l.settle)
	}

	f, err := l.backend.OpenAppend(path)
	l.connectFile = err == nil
	if err != nil {
		l.fail(fmt.Errorf("%w: %s: %v", ErrOpenFailed, path, err))
		l.log.Warn("open failed", "path", path, "error", err)
		return false
	}
	l.file = f
	l.path = path
	l.log.Info("log file opened", "path", path)

	l.WriteFile(StartMarker)
	return true
}

// Close flushes and closes the open file. Later writes fail until a file is
// opened again. Close on a Logger without an open file returns nil.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	flushErr := l.file.Flush()
	closeErr := l.file.Close()
	l.file = nil
	l.path = ""
	l.connectFile = false
	if flushErr != nil {
		return fmt.Errorf("flush: %w", flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close: %w", closeErr)
	}
	return nil
}

// release closes the open handle without flushing it.
func (l *Logger) release() {
	if err := l.file.Close(); err != nil {
		l.log.Warn("close failed", "path", l.path, "error", err)
	}
	l.file = nil
	l.path = ""
	l.connectFile = false
}
