package commands

import (
	"fmt"
	"io"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/macrocketry/sdlog/pkg/logfile"
)

// ExpandPaths resolves each pattern with doublestar globbing. Results are
// sorted and de-duplicated. A pattern matching nothing is an error.
func ExpandPaths(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", pattern)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// RunStats prints statistics for every file matching patterns, followed by a
// total when more than one file matched.
func RunStats(patterns []string, w io.Writer) error {
	paths, err := ExpandPaths(patterns)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "=== sdlog Statistics ===")
	fmt.Fprintln(w)

	var total logfile.Stats
	for _, path := range paths {
		reader, err := logfile.Open(path, logfile.Filter{})
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		s, err := logfile.Collect(reader)
		reader.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		printStats(w, path, s)
		total.Add(s)
	}

	if len(paths) > 1 {
		printStats(w, fmt.Sprintf("Total (%d files)", len(paths)), total)
	}
	return nil
}

func printStats(w io.Writer, title string, s logfile.Stats) {
	fmt.Fprintf(w, "%s:\n", title)
	fmt.Fprintf(w, "  Lines:       %d\n", s.Lines)
	fmt.Fprintf(w, "  Sessions:    %d\n", s.Sessions)
	fmt.Fprintf(w, "  Data lines:  %d (%d bytes, %d empty)\n", s.DataLines, s.DataBytes, s.EmptyLines)
	fmt.Fprintf(w, "  Buffer flushes: %d\n", s.Markers)
	fmt.Fprintln(w)
}
