package sdlog

import (
	"fmt"
	"io"
)

// BufferedMarker is written each time a WriteBuffer window fills up.
const BufferedMarker = "\nbuffered\n"

// WriteFile appends data and a newline, then flushes.
func (l *Logger) WriteFile(data string) bool {
	if !l.connectFile {
		l.fail(ErrFileNotOpen)
		return false
	}
	if err := l.write(data + "\n"); err != nil {
		return false
	}
	if err := l.flush(); err != nil {
		return false
	}
	return true
}

// WriteBuffer appends data without flushing until the window is full.
//
// At most Capacity-BufferFill bytes of data count toward the window. When the
// window fills, BufferedMarker is written, the file is flushed, the window is
// reset and the rest of data is written unflushed and uncounted.
func (l *Logger) WriteBuffer(data string) bool {
	if !l.connectFile {
		l.fail(ErrFileNotOpen)
		return false
	}

	take := min(l.capacity-l.bufferFill, len(data))
	if err := l.write(data[:take]); err != nil {
		return false
	}
	l.bufferFill += take

	if l.bufferFill >= l.capacity {
		if err := l.write(BufferedMarker); err != nil {
			return false
		}
		if err := l.flush(); err != nil {
			return false
		}
		l.bufferFill = 0
		l.log.Debug("buffer flushed", "path", l.path)

		if rest := data[take:]; rest != "" {
			if err := l.write(rest); err != nil {
				return false
			}
		}
	}
	return true
}

func (l *Logger) write(s string) error {
	if s == "" {
		return nil
	}
	if _, err := io.WriteString(l.file, s); err != nil {
		l.fail(fmt.Errorf("write %s: %w", l.path, err))
		return l.err
	}
	return nil
}

func (l *Logger) flush() error {
	if err := l.file.Flush(); err != nil {
		l.fail(fmt.Errorf("flush %s: %w", l.path, err))
		return l.err
	}
	return nil
}
