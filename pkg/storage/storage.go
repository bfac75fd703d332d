package storage

import (
	"errors"
	"io"
)

// ErrNotMounted is returned by backends used before a successful Begin.
var ErrNotMounted = errors.New("storage not mounted")

// ChipSelect identifies the SPI chip-select line the card is wired to.
type ChipSelect int

// DefaultChipSelect is the chip-select line used when none is configured.
const DefaultChipSelect ChipSelect = 10

// Backend is the storage medium capability.
type Backend interface {
	// Begin initializes the medium behind the given chip-select line.
	Begin(cs ChipSelect) error

	// Exists reports whether a file with the given path exists.
	Exists(path string) bool

	// OpenAppend opens path for appended writing, creating it if needed.
	// A nil error means the returned handle is valid.
	OpenAppend(path string) (File, error)
}

// File is an open, append-only handle on the medium.
type File interface {
	io.Writer

	// Flush commits written bytes to the medium.
	Flush() error

	// Close releases the handle.
	Close() error
}

// WriteLine writes text followed by a newline.
func WriteLine(f File, text string) error {
	_, err := io.WriteString(f, text+"\n")
	return err
}
