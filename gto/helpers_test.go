package gto

import (
	"bytes"
	"iter"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gatgui/gto/internal/gtotest"
)

// trackedSource is an in-memory source that counts Close calls.
type trackedSource struct {
	*bytes.Reader
	closed int
}

func (s *trackedSource) Close() error {
	s.closed++
	return nil
}

// readLog is an in-memory source that records every byte range read.
type readLog struct {
	*bytes.Reader
	reads [][2]int64
}

func (l *readLog) ReadAt(p []byte, off int64) (int, error) {
	l.reads = append(l.reads, [2]int64{off, int64(len(p))})
	return l.Reader.ReadAt(p, off)
}

// touched reports whether any read overlapped [off, off+n).
func (l *readLog) touched(off, n int64) bool {
	for _, rd := range l.reads {
		if rd[0] < off+n && off < rd[0]+rd[1] {
			return true
		}
	}
	return false
}

func newSource(data []byte) *trackedSource {
	return &trackedSource{Reader: bytes.NewReader(data)}
}

func openBytes(t *testing.T, data []byte, opts ...Option) *Reader {
	t.Helper()
	r := NewReader(opts...)
	require.NoError(t, r.OpenSource(bytes.NewReader(data), int64(len(data))))
	t.Cleanup(func() { r.Close() })
	return r
}

func openParticles(t *testing.T, opts ...Option) *Reader {
	t.Helper()
	return openBytes(t, gtotest.Bytes(t, gtotest.Particles()), opts...)
}

func keys[E any](seq iter.Seq2[Handle, E]) []Handle {
	var out []Handle
	for h := range seq {
		out = append(out, h)
	}
	return out
}

func objectNames(t *testing.T, r *Reader) []string {
	t.Helper()
	seq, err := r.Objects()
	require.NoError(t, err)
	var out []string
	for _, o := range seq {
		out = append(out, o.Name)
	}
	return out
}

func componentNames(t *testing.T, r *Reader) []string {
	t.Helper()
	seq, err := r.Components()
	require.NoError(t, err)
	var out []string
	for _, c := range seq {
		out = append(out, c.ObjectName+"."+c.Name)
	}
	return out
}

func propertyNames(t *testing.T, r *Reader) []string {
	t.Helper()
	seq, err := r.Properties()
	require.NoError(t, err)
	var out []string
	for _, p := range seq {
		out = append(out, JoinPath(p.ObjectName, p.ComponentName, p.Name))
	}
	return out
}

var allProperties = []string{
	"particles.points.position",
	"particles.points.pressure",
	"particles.points.velocity",
	"particles.points.id",
	"particles.attributes.name",
	"particles.attributes.visible",
	"particles.attributes.weight",
	"camera.transform.matrix",
	"camera.lens.iso",
	"camera.lens.mask",
}
