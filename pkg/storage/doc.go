// Package storage defines the storage-card capability used by the data logger.
//
// A Backend stands for the medium itself (an SD card behind an SPI chip-select
// line, a host directory, or memory). It answers existence checks and hands out
// append-only File handles. The logger never touches the medium any other way.
//
// # Implementations
//
//   - FSBackend wraps an afero filesystem. NewOSBackend roots it in a host
//     directory; NewMemoryBackend keeps everything in memory and is the usual
//     test double.
//   - FATBackend mounts a FAT volume from a block device, which is how a card
//     attached to a microcontroller is read and written.
//
// The chip-select line is passed to Begin at initialization time rather than
// being read from a global, so backends that do not care about it ignore it.
package storage
