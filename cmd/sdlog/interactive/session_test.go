package interactive

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrocketry/sdlog/pkg/sdlog"
	"github.com/macrocketry/sdlog/pkg/storage"
)

func newTestSession(t *testing.T) (*Session, *storage.FSBackend, *bytes.Buffer) {
	t.Helper()
	b := storage.NewMemoryBackend()
	l := sdlog.New(b, sdlog.WithBufferCapacity(4), sdlog.WithSleep(func(time.Duration) {}))
	require.True(t, l.ConnectFile())
	var out bytes.Buffer
	return New(l, b, &out), b, &out
}

func TestExecWrite(t *testing.T) {
	s, b, out := newTestSession(t)

	assert.False(t, s.Exec("write alt 1203"))
	assert.Equal(t, "ok\n", out.String())

	data, err := afero.ReadFile(b.Fs(), "LOG0")
	require.NoError(t, err)
	assert.Equal(t, "start logging...\nalt 1203\n", string(data))
}

func TestExecBuffer(t *testing.T) {
	s, _, out := newTestSession(t)

	s.Exec("buffer ab")
	assert.Equal(t, "ok (2/4)\n", out.String())

	out.Reset()
	s.Exec(`b cd\n`)
	assert.Equal(t, "ok (window flushed, 0/4)\n", out.String())
}

func TestExecOpenAndNext(t *testing.T) {
	s, _, out := newTestSession(t)

	s.Exec("open flight.txt")
	assert.Equal(t, "Opened flight.txt\n", out.String())

	out.Reset()
	s.Exec("next")
	assert.Equal(t, "Opened LOG1\n", out.String())

	out.Reset()
	s.Exec("open")
	assert.Equal(t, "Usage: open <path>\n", out.String())
}

func TestExecStatus(t *testing.T) {
	s, _, out := newTestSession(t)

	s.Exec("status")
	output := out.String()
	assert.Contains(t, output, "Storage: connected")
	assert.Contains(t, output, "File:    connected (LOG0)")
	assert.Contains(t, output, "Buffer:  0/4")
	assert.Contains(t, output, "Next:    LOG1")
}

func TestExecCloseThenWrite(t *testing.T) {
	s, _, out := newTestSession(t)

	s.Exec("close")
	assert.Equal(t, "Closed\n", out.String())

	out.Reset()
	s.Exec("write x")
	assert.Contains(t, out.String(), "write failed: no file open")
}

func TestExecQuitAndUnknown(t *testing.T) {
	s, _, out := newTestSession(t)

	assert.False(t, s.Exec("   "))
	assert.False(t, s.Exec("launch"))
	assert.Contains(t, out.String(), "Unknown command: launch")
	assert.True(t, s.Exec("quit"))
	assert.True(t, s.Exec("EXIT"))
}
