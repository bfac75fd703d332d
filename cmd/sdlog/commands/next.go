package commands

import (
	"fmt"
	"io"

	"github.com/macrocketry/sdlog/pkg/sdlog"
	"github.com/macrocketry/sdlog/pkg/storage"
)

// RunNext prints the file name the next auto-numbered open would use.
func RunNext(backend storage.Backend, cs storage.ChipSelect, prefix string, w io.Writer) error {
	if err := backend.Begin(cs); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	name, err := sdlog.NextFileName(backend, prefix)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, name)
	return nil
}
