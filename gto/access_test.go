package gto

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatgui/gto/internal/gtotest"
)

func access(t *testing.T, r *Reader, path string) *Data {
	t.Helper()
	_, h, err := r.Lookup(path)
	require.NoError(t, err)
	require.NotEqual(t, NotFound, h, path)
	d, err := r.AccessProperty(h)
	require.NoError(t, err)
	return d
}

func checkParticleData(t *testing.T, r *Reader) {
	t.Helper()

	pos := access(t, r, "particles.points.position")
	assert.Equal(t, Float, pos.Type())
	assert.Equal(t, 3, pos.Width())
	assert.Equal(t, 2, pos.Len())
	elems, err := Elements[float32](pos)
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{0, 1, 2}, {3, 4, 5}}, elems)

	assert.Equal(t, []float32{1.5, 2.5}, access(t, r, "particles.points.pressure").Floats())
	assert.Equal(t, []float32{-1, 0, 1, 0.5, 0.25, 0.125}, access(t, r, "particles.points.velocity").Floats())
	assert.Equal(t, []int32{7, 11}, access(t, r, "particles.points.id").Ints())
	assert.Equal(t, []string{"alpha", "beta"}, access(t, r, "particles.attributes.name").Strings())
	assert.Equal(t, []bool{true, false}, access(t, r, "particles.attributes.visible").Bools())

	weight := access(t, r, "particles.attributes.weight")
	assert.Equal(t, Half, weight.Type())
	assert.Equal(t, []float32{0.5, 2}, weight.Floats())

	matrix := access(t, r, "camera.transform.matrix")
	assert.Equal(t, 16, matrix.Width())
	assert.Equal(t, 1, matrix.Len())
	rows, err := Elements[float64](matrix)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	for i, v := range rows[0] {
		want := 0.0
		if i%5 == 0 {
			want = 1
		}
		assert.Equal(t, want, v, "matrix[%d]", i)
	}

	assert.Equal(t, []uint16{400}, access(t, r, "camera.lens.iso").Shorts())
	assert.Equal(t, []uint8{1, 2, 3, 4}, access(t, r, "camera.lens.mask").Bytes())
}

func TestAccessProperty(t *testing.T) {
	checkParticleData(t, openParticles(t, WithMode(RandomAccess)))
}

func TestAccessPropertySwapped(t *testing.T) {
	f := gtotest.Particles()
	f.ByteOrder = binary.BigEndian
	r := openBytes(t, gtotest.Bytes(t, f), WithMode(RandomAccess))

	assert.True(t, r.IsSwapped())
	checkParticleData(t, r)
}

func TestAccessPropertyPadded(t *testing.T) {
	f := gtotest.Particles()
	f.Padding = 13
	checkParticleData(t, openBytes(t, gtotest.Bytes(t, f), WithMode(RandomAccess)))
}

func TestAccessPropertyFromFile(t *testing.T) {
	path := gtotest.WriteFile(t, gtotest.Particles())
	for _, mmap := range []bool{false, true} {
		r := NewReader(WithMode(RandomAccess), WithMmap(mmap))
		require.NoError(t, r.Open(path))
		checkParticleData(t, r)
		require.NoError(t, r.Close())
	}
}

func TestAccessPropertyOutOfRange(t *testing.T) {
	r := openParticles(t, WithMode(RandomAccess))

	for _, h := range []Handle{-1, 10, 1 << 20} {
		_, err := r.AccessProperty(h)
		assert.ErrorIs(t, err, ErrOutOfRange, "handle %d", h)
	}
	_, err := r.AccessComponent(4)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = r.AccessObject(3)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestAccessPropertyFresh(t *testing.T) {
	r := openParticles(t, WithMode(RandomAccess))

	a, err := r.AccessProperty(0)
	require.NoError(t, err)
	b, err := r.AccessProperty(0)
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.Equal(t, a.Values(), b.Values())
	a.Floats()[0] = 42
	assert.Equal(t, float32(0), b.Floats()[0], "results must not share storage")
}

func TestAccessComponent(t *testing.T) {
	r := openParticles(t, WithMode(RandomAccess))

	h, err := r.GetComponent("camera", "lens")
	require.NoError(t, err)
	props, err := r.AccessComponent(h)
	require.NoError(t, err)
	require.Len(t, props, 2)
	assert.Equal(t, []uint16{400}, props["iso"].Shorts())
	assert.Equal(t, []uint8{1, 2, 3, 4}, props["mask"].Bytes())
}

func TestAccessObject(t *testing.T) {
	r := openParticles(t, WithMode(RandomAccess))

	h, err := r.FindObject("particles")
	require.NoError(t, err)
	comps, err := r.AccessObject(h)
	require.NoError(t, err)
	require.Len(t, comps, 2)
	assert.Len(t, comps["points"], 4)
	assert.Len(t, comps["attributes"], 3)
	assert.Equal(t, []int32{7, 11}, comps["points"]["id"].Ints())

	h, err = r.FindObject("empty")
	require.NoError(t, err)
	comps, err = r.AccessObject(h)
	require.NoError(t, err)
	assert.Empty(t, comps)
}

func TestAccessDuplicateNames(t *testing.T) {
	f := gtotest.Particles()
	lens := &f.Objects[1].Components[1]
	lens.Properties = append(lens.Properties, gtotest.Property{
		Name: "iso", Type: Short, Values: []uint16{800},
	})
	r := openBytes(t, gtotest.Bytes(t, f), WithMode(RandomAccess))

	h, err := r.GetComponent("camera", "lens")
	require.NoError(t, err)
	props, err := r.AccessComponent(h)
	require.NoError(t, err)
	assert.Len(t, props, 2)
	assert.Equal(t, []uint16{400}, props["iso"].Shorts())
}

func TestAccessAfterClose(t *testing.T) {
	r := openParticles(t, WithMode(RandomAccess))
	require.NoError(t, r.Close())

	_, err := r.AccessProperty(0)
	assert.ErrorIs(t, err, ErrNotOpen)
	_, err = r.AccessComponent(0)
	assert.ErrorIs(t, err, ErrNotOpen)
	_, err = r.AccessObject(0)
	assert.ErrorIs(t, err, ErrNotOpen)
}

func TestAccessTruncatedBlock(t *testing.T) {
	data := gtotest.Bytes(t, gtotest.Particles())
	o, err := gtotest.Locate(data)
	require.NoError(t, err)
	// The mask block is the last one in the file.
	end := o.Uint64(data, o.Property(9, 6)) + o.Uint64(data, o.Property(9, 8))
	require.Equal(t, uint64(len(data)), end)

	err = NewReader(WithMode(RandomAccess)).OpenSource(newSource(data[:len(data)-1]), int64(len(data)-1))
	assert.True(t, IsFormatKind(err, Truncated), "got %v", err)
}

func TestElementsTypeMismatch(t *testing.T) {
	r := openParticles(t, WithMode(RandomAccess))
	d := access(t, r, "particles.points.id")

	_, err := Elements[float32](d)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.Nil(t, d.Floats())
	assert.Equal(t, "int[1] x 2", d.String())
}

func TestCache(t *testing.T) {
	cache, err := NewCache(4)
	require.NoError(t, err)
	r := openParticles(t, WithMode(RandomAccess), WithCache(cache))

	a, err := r.AccessProperty(1)
	require.NoError(t, err)
	b, err := r.AccessProperty(1)
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 1, cache.Len())

	// Entries do not survive a reopen.
	data := gtotest.Bytes(t, gtotest.Particles())
	require.NoError(t, r.OpenSource(newSource(data), int64(len(data))))
	assert.Equal(t, 0, cache.Len())
	c, err := r.AccessProperty(1)
	require.NoError(t, err)
	assert.NotSame(t, a, c)

	require.NoError(t, r.Close())
	assert.Equal(t, 0, cache.Len())

	_, err = NewCache(0)
	assert.Error(t, err)
}

func TestCacheShared(t *testing.T) {
	cache, err := NewCache(16)
	require.NoError(t, err)
	a := openParticles(t, WithMode(RandomAccess), WithCache(cache))
	b := openParticles(t, WithMode(RandomAccess), WithCache(cache))

	da, err := a.AccessProperty(0)
	require.NoError(t, err)
	db, err := b.AccessProperty(0)
	require.NoError(t, err)
	assert.NotSame(t, da, db)
	assert.Equal(t, 2, cache.Len())

	require.NoError(t, a.Close())
	assert.Equal(t, 1, cache.Len())
	cache.Purge()
	assert.Equal(t, 0, cache.Len())
}

func TestOpenRejectsOverflowingBlockSize(t *testing.T) {
	data := gtotest.Bytes(t, gtotest.Particles())
	o, err := gtotest.Locate(data)
	require.NoError(t, err)
	// 2^31 x 2^31 ints of 4 bytes each wrap to a zero-length block.
	o.Put32(data, o.Property(0, 2), uint32(Int))
	o.Put32(data, o.Property(0, 3), 1<<31)
	o.Put32(data, o.Property(0, 4), 1<<31)
	o.Put64(data, o.Property(0, 8), 0)

	for _, mode := range []Mode{Streaming, HeaderOnly, RandomAccess} {
		t.Run(mode.String(), func(t *testing.T) {
			src := newSource(data)
			r := NewReader(WithMode(mode))
			err := r.OpenSource(src, src.Size())

			assert.True(t, IsFormatKind(err, Corrupt), "got %v", err)
			assert.Equal(t, 1, src.closed)
			_, err = r.AccessProperty(0)
			assert.ErrorIs(t, err, ErrNotOpen)
		})
	}
}

func TestAccessorsWithoutSession(t *testing.T) {
	f := gtotest.Particles()
	f.ByteOrder = binary.BigEndian
	r := openBytes(t, gtotest.Bytes(t, f), WithMode(RandomAccess))
	require.True(t, r.IsSwapped())
	require.NoError(t, r.Close())

	assert.False(t, r.IsSwapped())
	assert.Zero(t, r.Version())
	assert.Empty(t, r.Digest())
	assert.Zero(t, r.NumObjects())
	assert.Zero(t, r.NumComponents())
	assert.Zero(t, r.NumProperties())
}
