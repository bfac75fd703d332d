package sdlog

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/macrocketry/sdlog/pkg/storage"
	"github.com/stretchr/testify/mock"
)

// stubBackend is a testify mock of storage.Backend.
type stubBackend struct{ mock.Mock }

func (b *stubBackend) Begin(cs storage.ChipSelect) error {
	return b.Called(cs).Error(0)
}

func (b *stubBackend) Exists(path string) bool {
	return b.Called(path).Bool(0)
}

func (b *stubBackend) OpenAppend(path string) (storage.File, error) {
	args := b.Called(path)
	f, _ := args.Get(0).(storage.File)
	return f, args.Error(1)
}

// recorder captures backend, file and sleep operations in call order.
type recorder struct {
	ops      []string
	existing map[string]bool
	files    map[string]*recFile
	openErr  error
	writeErr error
}

func newRecorder(existing ...string) *recorder {
	r := &recorder{
		existing: make(map[string]bool),
		files:    make(map[string]*recFile),
	}
	for _, name := range existing {
		r.existing[name] = true
	}
	return r
}

func (r *recorder) Begin(storage.ChipSelect) error { return nil }

func (r *recorder) Exists(path string) bool { return r.existing[path] }

func (r *recorder) OpenAppend(path string) (storage.File, error) {
	r.ops = append(r.ops, "open "+path)
	if r.openErr != nil {
		return nil, r.openErr
	}
	f, ok := r.files[path]
	if !ok {
		f = &recFile{name: path, rec: r}
		r.files[path] = f
	}
	f.closed = false
	r.existing[path] = true
	return f, nil
}

func (r *recorder) sleep(d time.Duration) {
	r.ops = append(r.ops, "sleep "+d.String())
}

// opsFor returns the recorded operations on the named file, without the name.
func (r *recorder) opsFor(name string) []string {
	var out []string
	for _, op := range r.ops {
		if rest, ok := strings.CutPrefix(op, name+" "); ok {
			out = append(out, rest)
		}
	}
	return out
}

type recFile struct {
	name    string
	rec     *recorder
	data    strings.Builder
	flushed int
	closed  bool
}

func (f *recFile) Write(p []byte) (int, error) {
	if f.rec.writeErr != nil {
		return 0, f.rec.writeErr
	}
	if f.closed {
		return 0, errors.New("write on closed file")
	}
	f.rec.ops = append(f.rec.ops, f.name+" write "+strconv.Quote(string(p)))
	f.data.Write(p)
	return len(p), nil
}

func (f *recFile) Flush() error {
	f.rec.ops = append(f.rec.ops, f.name+" flush")
	f.flushed = f.data.Len()
	return nil
}

func (f *recFile) Close() error {
	f.rec.ops = append(f.rec.ops, f.name+" close")
	f.closed = true
	return nil
}

// unflushed returns the bytes written after the last flush.
func (f *recFile) unflushed() string {
	return f.data.String()[f.flushed:]
}

// countingBackend reports a fixed existence answer and counts probes.
type countingBackend struct {
	exists func(n int, path string) bool
	probes int
	opens  int
}

func (b *countingBackend) Begin(storage.ChipSelect) error { return nil }

func (b *countingBackend) Exists(path string) bool {
	n := b.probes
	b.probes++
	return b.exists(n, path)
}

func (b *countingBackend) OpenAppend(string) (storage.File, error) {
	b.opens++
	return nil, errors.New("unexpected open")
}
