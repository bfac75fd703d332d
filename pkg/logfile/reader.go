package logfile

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// Filter specifies criteria for filtering records.
// Nil fields match all records.
type Filter struct {
	// Kind filters by record kind.
	Kind *Kind

	// Session filters by session index.
	Session *int

	// Segment filters by segment index.
	Segment *int
}

func (f *Filter) matches(r Record) bool {
	if f.Kind != nil && r.Kind != *f.Kind {
		return false
	}
	if f.Session != nil && r.Session != *f.Session {
		return false
	}
	if f.Segment != nil && r.Segment != *f.Segment {
		return false
	}
	return true
}

// Reader streams records from a log.
type Reader struct {
	scanner *bufio.Scanner
	closer  io.Closer
	filter  Filter

	line    int
	session int
	segment int
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	return NewFilteredReader(r, Filter{})
}

// NewFilteredReader creates a Reader that returns only records matching filter.
func NewFilteredReader(r io.Reader, filter Filter) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), 1<<20)
	rd := &Reader{scanner: s, filter: filter}
	if c, ok := r.(io.Closer); ok {
		rd.closer = c
	}
	return rd
}

// Open creates a Reader for the log file at path.
func Open(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return NewFilteredReader(f, filter), nil
}

// Next returns the next record that matches the filter.
// Returns io.EOF when no more records are available.
func (r *Reader) Next() (Record, error) {
	for r.scanner.Scan() {
		r.line++
		text := strings.TrimSuffix(r.scanner.Text(), "\r")
		rec := Record{Line: r.line, Kind: classify(text), Text: text}

		switch rec.Kind {
		case KindStart:
			r.session++
			r.segment = 0
		case KindBufferMarker:
			// the marker closes the segment it belongs to
			rec.Text = ""
		}
		rec.Session = r.session
		rec.Segment = r.segment
		if rec.Kind == KindBufferMarker {
			r.segment++
		}

		if r.filter.matches(rec) {
			return rec, nil
		}
	}
	if err := r.scanner.Err(); err != nil {
		return Record{}, err
	}
	return Record{}, io.EOF
}

// Close closes the underlying file, if any.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// ReadAll returns every remaining record.
func (r *Reader) ReadAll() ([]Record, error) {
	var out []Record
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}
