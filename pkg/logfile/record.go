package logfile

import "fmt"

// Marker lines as they appear in the file.
const (
	StartLine  = "start logging..."
	MarkerLine = "buffered"
)

// Kind classifies a line.
type Kind uint8

const (
	// KindData is an ordinary data line.
	KindData Kind = 0
	// KindStart is the line written when a file is opened.
	KindStart Kind = 1
	// KindBufferMarker is the line written when a buffer window is flushed.
	KindBufferMarker Kind = 2
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindData:
		return "DATA"
	case KindStart:
		return "START"
	case KindBufferMarker:
		return "BUFFERED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", k)
	}
}

// ParseKind parses a kind name as accepted on the command line.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "data":
		return KindData, nil
	case "start":
		return KindStart, nil
	case "buffered", "marker":
		return KindBufferMarker, nil
	default:
		return 0, fmt.Errorf("invalid kind: %s (use data, start, buffered)", s)
	}
}

// Record is one line of a log file.
// CBOR encoding uses integer keys for compactness.
type Record struct {
	// Line is the 1-based line number in the file.
	Line int `cbor:"1,keyasint" json:"line"`

	// Kind classifies the line.
	Kind Kind `cbor:"2,keyasint" json:"kind"`

	// Session counts start lines seen so far; 0 before the first one.
	Session int `cbor:"3,keyasint" json:"session"`

	// Segment counts buffer markers seen since the session started.
	Segment int `cbor:"4,keyasint" json:"segment"`

	// Text is the line content without its newline.
	Text string `cbor:"5,keyasint,omitempty" json:"text,omitempty"`
}

// classify returns the kind of a raw line.
func classify(line string) Kind {
	switch line {
	case StartLine:
		return KindStart
	case MarkerLine:
		return KindBufferMarker
	default:
		return KindData
	}
}
