// Package commands implements the sdlog CLI commands.
package commands

import (
	"bufio"
	"fmt"
	"io"

	"github.com/macrocketry/sdlog/pkg/sdlog"
)

// RunWrite logs every line read from in, either as a flushed line or, when
// buffered is set, through the buffered writer. It returns the number of
// lines logged.
func RunWrite(l *sdlog.Logger, in io.Reader, buffered bool) (int, error) {
	if !l.ConnectFile() {
		return 0, fmt.Errorf("no log file open: %w", l.Err())
	}

	n := 0
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		var ok bool
		if buffered {
			ok = l.WriteBuffer(line + "\n")
		} else {
			ok = l.WriteFile(line)
		}
		if !ok {
			return n, fmt.Errorf("write failed after %d lines: %w", n, l.Err())
		}
		n++
	}
	if err := scanner.Err(); err != nil {
		return n, fmt.Errorf("failed to read input: %w", err)
	}
	return n, nil
}
