package logfile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollect(t *testing.T) {
	s, err := Collect(NewReader(strings.NewReader(sample + "\n")))
	require.NoError(t, err)

	assert.Equal(t, Stats{
		Lines:      8,
		DataLines:  5,
		DataBytes:  3 + 10 + 3 + 3,
		Sessions:   2,
		Markers:    1,
		EmptyLines: 1,
	}, s)
}

func TestStatsAdd(t *testing.T) {
	a := Stats{Lines: 2, DataLines: 1, DataBytes: 4, Sessions: 1}
	a.Add(Stats{Lines: 3, DataLines: 1, DataBytes: 1, Sessions: 1, Markers: 1})

	assert.Equal(t, Stats{Lines: 5, DataLines: 2, DataBytes: 5, Sessions: 2, Markers: 1}, a)
}
