package sdlog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRecorded(t *testing.T, opts ...Option) (*Logger, *recorder, *recFile) {
	t.Helper()
	rec := newRecorder()
	l := NewWithPath(rec, "f", append([]Option{WithSleep(rec.sleep)}, opts...)...)
	require.True(t, l.ConnectFile())
	rec.ops = nil
	return l, rec, rec.files["f"]
}

func TestWriteFile_AppendsLineAndFlushes(t *testing.T) {
	l, rec, f := openRecorded(t)

	require.True(t, l.WriteFile("alt=1203"))

	assert.Equal(t, []string{`f write "alt=1203\n"`, "f flush"}, rec.ops)
	assert.Equal(t, "start logging...\nalt=1203\n", f.data.String())
	assert.Empty(t, f.unflushed())
}

func TestWriteFile_WriteError(t *testing.T) {
	l, rec, _ := openRecorded(t)
	rec.writeErr = errors.New("io error")

	assert.False(t, l.WriteFile("x"))
	assert.ErrorContains(t, l.Err(), "io error")
}

func TestWriteBuffer_BelowCapacity(t *testing.T) {
	l, rec, f := openRecorded(t, WithBufferCapacity(10))

	require.True(t, l.WriteBuffer("1234"))
	require.True(t, l.WriteBuffer("5678"))

	assert.Equal(t, 8, l.BufferFill())
	assert.Equal(t, []string{`f write "1234"`, `f write "5678"`}, rec.ops)
	assert.Equal(t, "12345678", f.unflushed())
}

func TestWriteBuffer_OverflowSplitsData(t *testing.T) {
	l, rec, f := openRecorded(t, WithBufferCapacity(10))
	require.True(t, l.WriteBuffer("12345678"))
	rec.ops = nil

	require.True(t, l.WriteBuffer("abcde"))

	assert.Equal(t, []string{
		`f write "ab"`,
		`f write "\nbuffered\n"`,
		"f flush",
		`f write "cde"`,
	}, rec.ops)
	assert.Equal(t, 0, l.BufferFill())
	assert.Equal(t, "cde", f.unflushed())
	assert.Equal(t, "start logging...\n12345678ab\nbuffered\ncde", f.data.String())
}

func TestWriteBuffer_RemainderNotCounted(t *testing.T) {
	l, rec, f := openRecorded(t, WithBufferCapacity(10))
	require.True(t, l.WriteBuffer("12345678"))
	require.True(t, l.WriteBuffer("abcde"))
	rec.ops = nil

	// a fresh window of 10 starts after "cde"
	require.True(t, l.WriteBuffer("0123456789"))

	assert.Equal(t, []string{
		`f write "0123456789"`,
		`f write "\nbuffered\n"`,
		"f flush",
	}, rec.ops)
	assert.Equal(t, 0, l.BufferFill())
	assert.Empty(t, f.unflushed())
}

func TestWriteBuffer_DataLongerThanWindow(t *testing.T) {
	l, _, f := openRecorded(t, WithBufferCapacity(4))

	require.True(t, l.WriteBuffer("abcdefghij"))

	assert.Equal(t, 0, l.BufferFill())
	assert.Equal(t, "efghij", f.unflushed())
	assert.Equal(t, "start logging...\nabcd\nbuffered\nefghij", f.data.String())
}

func TestWriteBuffer_EmptyData(t *testing.T) {
	l, rec, _ := openRecorded(t, WithBufferCapacity(4))

	assert.True(t, l.WriteBuffer(""))
	assert.Equal(t, 0, l.BufferFill())
	assert.Empty(t, rec.ops)
}

func TestWriteBuffer_FillSurvivesReopen(t *testing.T) {
	l, rec, _ := openRecorded(t, WithBufferCapacity(10))
	require.True(t, l.WriteBuffer("123456"))

	require.True(t, l.OpenFile("g"))
	assert.Equal(t, 6, l.BufferFill())

	rec.ops = nil
	require.True(t, l.WriteBuffer("abcd"))
	assert.Equal(t, []string{
		`g write "abcd"`,
		`g write "\nbuffered\n"`,
		"g flush",
	}, rec.ops)
}

func TestWriteBuffer_WriteError(t *testing.T) {
	l, rec, _ := openRecorded(t, WithBufferCapacity(10))
	rec.writeErr = errors.New("io error")

	assert.False(t, l.WriteBuffer("abc"))
	assert.Equal(t, 0, l.BufferFill())
	assert.ErrorContains(t, l.Err(), "io error")
}

func TestWrites_FailWithoutFile(t *testing.T) {
	rec := newRecorder()
	rec.openErr = errors.New("fault")
	l := NewWithPath(rec, "f")
	rec.ops = nil

	assert.False(t, l.WriteFile("x"))
	assert.False(t, l.WriteBuffer("x"))
	assert.ErrorIs(t, l.Err(), ErrFileNotOpen)
	assert.Empty(t, rec.ops)
}
