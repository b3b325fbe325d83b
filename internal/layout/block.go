package layout

import (
	"fmt"
	"math"

	"github.com/gatgui/gto/internal/binary"
)

// Block is the location of a property's data.
type Block struct {
	Offset uint64
	Length uint64
}

// End returns the offset one past the last byte of the block.
// ok is false if the end does not fit in an int64.
func (b Block) End() (end uint64, ok bool) {
	end = b.Offset + b.Length
	if end < b.Offset || end > math.MaxInt64 {
		return 0, false
	}
	return end, true
}

// Check verifies that the block lies within a source of size bytes.
func (b Block) Check(size int64) error {
	end, ok := b.End()
	if !ok || size < 0 || end > uint64(size) {
		return fmt.Errorf("%w: data block [%d, +%d) exceeds input of %d bytes",
			binary.ErrTruncated, b.Offset, b.Length, size)
	}
	return nil
}

// Read reads exactly the block's bytes.
func (b Block) Read(r *binary.Reader) ([]byte, error) {
	if b.Length == 0 {
		return []byte{}, nil
	}
	if _, ok := b.End(); !ok {
		return nil, fmt.Errorf("%w: data block %s out of range", binary.ErrTruncated, b)
	}
	if r.Size() >= 0 {
		if err := b.Check(r.Size()); err != nil {
			return nil, err
		}
	}
	if b.Length > math.MaxInt32 {
		return nil, fmt.Errorf("data block of %d bytes too large", b.Length)
	}

	data, err := r.At(int64(b.Offset)).ReadBytes(int(b.Length))
	if err != nil {
		return nil, fmt.Errorf("reading data block at %d: %w", b.Offset, err)
	}
	return data, nil
}

func (b Block) String() string {
	return fmt.Sprintf("[%d, +%d)", b.Offset, b.Length)
}
