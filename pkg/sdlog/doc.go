// Package sdlog writes line-oriented data logs to a storage card.
//
// A Logger connects to its storage backend once, at construction, and then
// opens either an explicit path or the first free auto-numbered name
// (prefix + "0", prefix + "1", ...). Every opened file starts with the line
// "start logging...".
//
// # Writing
//
// WriteFile appends one line and flushes it, so the line is on the medium when
// the call returns. WriteBuffer appends raw text without flushing until a fixed
// number of bytes has accumulated; it then writes the "\nbuffered\n" marker,
// flushes, and starts a new window. Text that did not fit in the window is
// written after the marker but is neither flushed nor counted toward the next
// window.
//
// # Failures
//
// Operations report success as a bool. The cause of the most recent failure is
// available from Err and matches one of ErrStorageDisconnected, ErrFileNotOpen,
// ErrNamespaceExhausted or ErrOpenFailed with errors.Is.
//
// A Logger is not safe for concurrent use; confine it to one goroutine.
package sdlog
