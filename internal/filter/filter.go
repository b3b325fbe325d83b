package filter

import (
	"errors"
	"fmt"
	"io"
)

// Codec identifies a compression format.
type Codec uint8

// Known codecs.
const (
	None Codec = iota
	Gzip
	Zlib
	Zstd
	LZ4
)

func (c Codec) String() string {
	switch c {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zlib:
		return "zlib"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("codec(%d)", uint8(c))
	}
}

// DefaultLimit is the default decompressed size limit (4 GiB).
const DefaultLimit int64 = 4 << 30

// ErrTooLarge is returned when decompressed data exceeds the limit.
var ErrTooLarge = errors.New("decompressed data exceeds limit")

// Filter is the interface implemented by all codecs.
type Filter interface {
	// Codec returns the codec identifier.
	Codec() Codec

	// Match reports whether head starts a stream of this codec.
	Match(head []byte) bool

	// NewReader returns a decompressing reader over r. The caller bounds
	// the decompressed size.
	NewReader(r io.Reader) (io.ReadCloser, error)
}

// Registry lists filters in detection order.
var Registry = []Filter{
	gzipFilter{},
	zlibFilter{},
	zstdFilter{},
	lz4Filter{},
}

// MagicLen is the number of leading bytes needed to detect a codec.
const MagicLen = 4

func lookup(head []byte) Filter {
	for _, f := range Registry {
		if f.Match(head) {
			return f
		}
	}
	return nil
}

// DecodeReaderAt sniffs the first bytes of src and decompresses the whole
// source if it is compressed. For uncompressed sources it returns a nil
// slice and codec None without reading past the magic.
func DecodeReaderAt(src io.ReaderAt, size int64, limit int64) ([]byte, Codec, error) {
	head := make([]byte, MagicLen)
	n, err := src.ReadAt(head, 0)
	if n < len(head) && err != nil && !errors.Is(err, io.EOF) {
		return nil, None, err
	}
	f := lookup(head[:n])
	if f == nil {
		return nil, None, nil
	}
	out, err := decode(f, io.NewSectionReader(src, 0, size), limit)
	if err != nil {
		return nil, f.Codec(), err
	}
	return out, f.Codec(), nil
}

func decode(f Filter, r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rc, err := f.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%s reader: %w", f.Codec(), err)
	}
	defer rc.Close()

	out, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%s decompress: %w", f.Codec(), err)
	}
	if int64(len(out)) > limit {
		return nil, fmt.Errorf("%s decompress: %w (%d bytes)", f.Codec(), ErrTooLarge, limit)
	}
	return out, nil
}
