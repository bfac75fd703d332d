package logfile

import "io"

// Stats summarizes a log.
type Stats struct {
	Lines     int
	DataLines int
	DataBytes int
	Sessions  int
	Markers   int

	// EmptyLines counts data lines with no text, such as the break the
	// buffered marker inserts in front of itself.
	EmptyLines int
}

// Add folds other into s.
func (s *Stats) Add(other Stats) {
	s.Lines += other.Lines
	s.DataLines += other.DataLines
	s.DataBytes += other.DataBytes
	s.Sessions += other.Sessions
	s.Markers += other.Markers
	s.EmptyLines += other.EmptyLines
}

// Collect reads r to the end and returns its statistics.
func Collect(r *Reader) (Stats, error) {
	var s Stats
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return s, nil
		}
		if err != nil {
			return s, err
		}

		s.Lines++
		switch rec.Kind {
		case KindStart:
			s.Sessions++
		case KindBufferMarker:
			s.Markers++
		default:
			s.DataLines++
			s.DataBytes += len(rec.Text)
			if rec.Text == "" {
				s.EmptyLines++
			}
		}
	}
}
