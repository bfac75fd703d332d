package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FSBackend is a Backend on top of an afero filesystem.
type FSBackend struct {
	fs      afero.Fs
	probe   func() error
	mounted bool
	cs      ChipSelect
}

// NewFSBackend creates a backend over an arbitrary afero filesystem.
func NewFSBackend(fs afero.Fs) *FSBackend {
	return &FSBackend{fs: fs}
}

// NewOSBackend creates a backend rooted in a host directory.
// Begin fails if the directory does not exist.
func NewOSBackend(dir string) *FSBackend {
	// BasePathFs rejects names that do not extend the base path, which a
	// relative base like "." never does.
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	b := NewFSBackend(afero.NewBasePathFs(afero.NewOsFs(), dir))
	b.probe = func() error {
		ok, err := afero.DirExists(afero.NewOsFs(), dir)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("directory %q does not exist", dir)
		}
		return nil
	}
	return b
}

// NewMemoryBackend creates a backend that keeps all files in memory.
func NewMemoryBackend() *FSBackend {
	return NewFSBackend(afero.NewMemMapFs())
}

// Fs returns the underlying filesystem.
func (b *FSBackend) Fs() afero.Fs {
	return b.fs
}

// ChipSelect returns the line passed to the last successful Begin.
func (b *FSBackend) ChipSelect() ChipSelect {
	return b.cs
}

// Begin marks the backend as mounted. The chip-select line is recorded only.
func (b *FSBackend) Begin(cs ChipSelect) error {
	if b.probe != nil {
		if err := b.probe(); err != nil {
			return fmt.Errorf("%w: %v", ErrNotMounted, err)
		}
	}
	b.mounted = true
	b.cs = cs
	return nil
}

// Exists reports whether path exists.
func (b *FSBackend) Exists(path string) bool {
	if !b.mounted {
		return false
	}
	ok, err := afero.Exists(b.fs, path)
	return err == nil && ok
}

// OpenAppend opens path for appending, creating it with mode 0644.
func (b *FSBackend) OpenAppend(path string) (File, error) {
	if !b.mounted {
		return nil, ErrNotMounted
	}
	f, err := b.fs.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &fsFile{f: f}, nil
}

type fsFile struct {
	f afero.File
}

func (f *fsFile) Write(p []byte) (int, error) { return f.f.Write(p) }
func (f *fsFile) Flush() error                { return f.f.Sync() }
func (f *fsFile) Close() error                { return f.f.Close() }

// Compile-time interface satisfaction check.
var _ Backend = (*FSBackend)(nil)
