package storage

import (
	"fmt"

	"github.com/soypat/fat"
)

// DeviceFunc returns the block device wired to a chip-select line along with
// its block size in bytes.
type DeviceFunc func(cs ChipSelect) (dev fat.BlockDevice, blockSize int, err error)

// StaticDevice returns a DeviceFunc that always yields dev, whatever the line.
func StaticDevice(dev fat.BlockDevice, blockSize int) DeviceFunc {
	return func(ChipSelect) (fat.BlockDevice, int, error) {
		return dev, blockSize, nil
	}
}

// FATBackend is a Backend on a FAT-formatted block device such as an SD card.
type FATBackend struct {
	device  DeviceFunc
	fs      fat.FS
	mounted bool
}

// NewFATBackend creates a backend that mounts the device returned by device
// when Begin is called.
func NewFATBackend(device DeviceFunc) *FATBackend {
	return &FATBackend{device: device}
}

// Begin obtains the block device for cs and mounts its FAT volume.
func (b *FATBackend) Begin(cs ChipSelect) error {
	dev, blockSize, err := b.device(cs)
	if err != nil {
		return fmt.Errorf("%w: block device on cs %d: %v", ErrNotMounted, cs, err)
	}
	if err := b.fs.Mount(dev, blockSize, fat.ModeRW); err != nil {
		return fmt.Errorf("%w: mount: %v", ErrNotMounted, err)
	}
	b.mounted = true
	return nil
}

// Exists probes path with a read-only open.
func (b *FATBackend) Exists(path string) bool {
	if !b.mounted {
		return false
	}
	var f fat.File
	if err := b.fs.OpenFile(&f, path, fat.ModeRead); err != nil {
		return false
	}
	_ = f.Close()
	return true
}

// OpenAppend opens path positioned at its end, creating it if missing.
func (b *FATBackend) OpenAppend(path string) (File, error) {
	if !b.mounted {
		return nil, ErrNotMounted
	}
	f := new(fat.File)
	if err := b.fs.OpenFile(f, path, fat.ModeOpenAppend|fat.ModeWrite); err != nil {
		return nil, err
	}
	return &fatFile{f: f}, nil
}

type fatFile struct {
	f *fat.File
}

func (f *fatFile) Write(p []byte) (int, error) { return f.f.Write(p) }
func (f *fatFile) Flush() error                { return f.f.Sync() }
func (f *fatFile) Close() error                { return f.f.Close() }

// Compile-time interface satisfaction check.
var _ Backend = (*FATBackend)(nil)
