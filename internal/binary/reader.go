// Package binary provides low-level binary I/O operations for GTO file parsing.
package binary

import (
	"encoding/binary"
	"errors"
	"io"
)

// ErrTruncated is returned when a read extends past the end of the source.
var ErrTruncated = errors.New("unexpected end of data")

// Reader provides bounded, byte-order aware reads over an io.ReaderAt.
type Reader struct {
	r     io.ReaderAt
	order binary.ByteOrder
	size  int64
	pos   int64
}

// Config holds reader configuration, typically derived from the file header.
type Config struct {
	ByteOrder binary.ByteOrder
	// Size is the number of readable bytes. A negative size disables
	// bounds checking and relies on the source to report EOF.
	Size int64
}

// NewReader creates a binary reader with the given configuration.
func NewReader(r io.ReaderAt, cfg Config) *Reader {
	order := cfg.ByteOrder
	if order == nil {
		order = binary.LittleEndian
	}
	return &Reader{
		r:     r,
		order: order,
		size:  cfg.Size,
		pos:   0,
	}
}

// At returns a new reader positioned at the given offset.
// The new reader shares the underlying io.ReaderAt but has independent position.
func (r *Reader) At(offset int64) *Reader {
	return &Reader{
		r:     r.r,
		order: r.order,
		size:  r.size,
		pos:   offset,
	}
}

// WithByteOrder returns a new reader at the same position using order.
// This is used once the header has announced the file's byte order.
func (r *Reader) WithByteOrder(order binary.ByteOrder) *Reader {
	return &Reader{
		r:     r.r,
		order: order,
		size:  r.size,
		pos:   r.pos,
	}
}

// Pos returns the current read position.
func (r *Reader) Pos() int64 {
	return r.pos
}

// Size returns the configured source size, or -1 if unbounded.
func (r *Reader) Size() int64 {
	return r.size
}

// Fits reports whether n bytes starting at off lie inside the source.
// Unbounded readers always report true.
func (r *Reader) Fits(off, n int64) bool {
	if off < 0 || n < 0 {
		return false
	}
	if r.size < 0 {
		return true
	}
	return off <= r.size && n <= r.size-off
}

// ReadBytes reads exactly n bytes from the current position.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	buf, err := r.readAt(r.pos, n)
	if err != nil {
		return nil, err
	}
	r.pos += int64(n)
	return buf, nil
}

func (r *Reader) readAt(off int64, n int) ([]byte, error) {
	if !r.Fits(off, int64(n)) {
		return nil, ErrTruncated
	}
	buf := make([]byte, n)
	got, err := r.r.ReadAt(buf, off)
	if got == n {
		return buf, nil
	}
	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, ErrTruncated
	}
	return nil, err
}

// ReadUint64 reads an unsigned 64-bit integer.
func (r *Reader) ReadUint64() (uint64, error) {
	buf, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return r.order.Uint64(buf), nil
}

// ReadUint32s reads n consecutive unsigned 32-bit integers.
func (r *Reader) ReadUint32s(n int) ([]uint32, error) {
	buf, err := r.ReadBytes(4 * n)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = r.order.Uint32(buf[4*i:])
	}
	return out, nil
}

// Skip advances the position by n bytes.
func (r *Reader) Skip(n int64) {
	r.pos += n
}

// Peek reads n bytes without advancing the position.
func (r *Reader) Peek(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	return r.readAt(r.pos, n)
}
