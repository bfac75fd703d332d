package sdlog

import (
	"math"
	"strconv"

	"github.com/macrocketry/sdlog/pkg/storage"
)

// MaxFileNumber is the exhaustion ceiling for auto-numbered names. The scan
// stops there and fails even if prefix + "65535" itself is free.
const MaxFileNumber = math.MaxUint16

// FileName returns prefix followed by the decimal form of n.
func FileName(prefix string, n uint16) string {
	return prefix + strconv.FormatUint(uint64(n), 10)
}

// NextFileName returns the lowest prefix + N not present on backend.
// It returns ErrNamespaceExhausted once N reaches MaxFileNumber.
func NextFileName(backend storage.Backend, prefix string) (string, error) {
	n := uint16(0)
	for backend.Exists(FileName(prefix, n)) && n < MaxFileNumber {
		n++
	}
	if n >= MaxFileNumber {
		return "", ErrNamespaceExhausted
	}
	return FileName(prefix, n), nil
}

// OpenNextFile opens the lowest free auto-numbered file.
func (l *Logger) OpenNextFile() bool {
	if !l.connectSD {
		l.fail(ErrStorageDisconnected)
		return false
	}

	name, err := NextFileName(l.backend, l.prefix)
	if err != nil {
		l.fail(err)
		l.log.Warn("no free file name", "prefix", l.prefix)
		return false
	}
	return l.OpenFile(name)
}
