package logfile

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fxamacker/cbor/v2"
)

// Export formats.
const (
	FormatJSONL = "jsonl"
	FormatCSV   = "csv"
	FormatCBOR  = "cbor"
)

// recordEncMode is the CBOR encoder mode for exported records.
var recordEncMode cbor.EncMode

// recordDecMode is the CBOR decoder mode for exported records.
var recordDecMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
	}
	recordEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create record CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyQuiet,
		IndefLength: cbor.IndefLengthAllowed,
	}
	recordDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create record CBOR decoder mode: %v", err))
	}
}

// NewCBORDecoder creates a decoder for records exported with FormatCBOR.
func NewCBORDecoder(r io.Reader) *cbor.Decoder {
	return recordDecMode.NewDecoder(r)
}

// Export writes every remaining record of r to w in the given format.
// It returns the number of records written.
func Export(r *Reader, format string, w io.Writer) (int, error) {
	var enc func(Record) error
	var done func() error

	switch format {
	case FormatJSONL:
		je := json.NewEncoder(w)
		enc = func(rec Record) error { return je.Encode(rec) }
	case FormatCBOR:
		ce := recordEncMode.NewEncoder(w)
		enc = func(rec Record) error { return ce.Encode(rec) }
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"line", "kind", "session", "segment", "text"}); err != nil {
			return 0, err
		}
		enc = func(rec Record) error {
			return cw.Write([]string{
				strconv.Itoa(rec.Line),
				rec.Kind.String(),
				strconv.Itoa(rec.Session),
				strconv.Itoa(rec.Segment),
				rec.Text,
			})
		}
		done = func() error {
			cw.Flush()
			return cw.Error()
		}
	default:
		return 0, fmt.Errorf("unknown format: %s (supported: jsonl, csv, cbor)", format)
	}

	n := 0
	for {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, fmt.Errorf("failed to read record: %w", err)
		}
		if err := enc(rec); err != nil {
			return n, fmt.Errorf("failed to encode record: %w", err)
		}
		n++
	}
	if done != nil {
		if err := done(); err != nil {
			return n, err
		}
	}
	return n, nil
}
