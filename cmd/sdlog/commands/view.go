package commands

import (
	"fmt"
	"io"

	"github.com/macrocketry/sdlog/pkg/logfile"
)

// RunView prints the records of a log file in human-readable form.
func RunView(path string, filter logfile.Filter, w io.Writer) error {
	reader, err := logfile.Open(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		rec, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read record: %w", err)
		}
		formatRecord(w, rec)
	}
}

// formatRecord writes: line [session/segment] KIND text
func formatRecord(w io.Writer, rec logfile.Record) {
	label := rec.Kind.String()
	switch rec.Kind {
	case logfile.KindStart:
		fmt.Fprintf(w, "%6d [%d/%d] %-8s --- session %d ---\n", rec.Line, rec.Session, rec.Segment, label, rec.Session)
	case logfile.KindBufferMarker:
		fmt.Fprintf(w, "%6d [%d/%d] %-8s --- end of segment %d ---\n", rec.Line, rec.Session, rec.Segment, label, rec.Segment)
	default:
		fmt.Fprintf(w, "%6d [%d/%d] %-8s %s\n", rec.Line, rec.Session, rec.Segment, label, rec.Text)
	}
}
