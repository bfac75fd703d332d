package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/macrocketry/sdlog/pkg/logfile"
)

// Compression choices for export.
const (
	CompressNone = "none"
	CompressGzip = "gzip"
	CompressZstd = "zstd"
)

// RunExport exports the log file in format, optionally compressed, to output
// (stdout when empty).
func RunExport(path, format, compress, output string) error {
	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return ExportTo(path, format, compress, w)
}

// ExportTo is RunExport writing to w.
func ExportTo(path, format, compress string, w io.Writer) error {
	reader, err := logfile.Open(path, logfile.Filter{})
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	cw, err := compressWriter(compress, w)
	if err != nil {
		return err
	}
	if _, err := logfile.Export(reader, format, cw); err != nil {
		cw.Close()
		return err
	}
	return cw.Close()
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func compressWriter(kind string, w io.Writer) (io.WriteCloser, error) {
	switch kind {
	case CompressNone, "":
		return nopWriteCloser{w}, nil
	case CompressGzip:
		return gzip.NewWriter(w), nil
	case CompressZstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
		}
		return enc, nil
	default:
		return nil, fmt.Errorf("unknown compression: %s (supported: none, gzip, zstd)", kind)
	}
}
