package sdlog

import "errors"

// Failure causes reported by Err.
var (
	ErrStorageDisconnected = errors.New("storage not connected")
	ErrFileNotOpen         = errors.New("no file open")
	ErrNamespaceExhausted  = errors.New("no free file name")
	ErrOpenFailed          = errors.New("open failed")
)
