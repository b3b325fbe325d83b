package filter

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

type gzipFilter struct{}

func (gzipFilter) Codec() Codec { return Gzip }

func (gzipFilter) Match(head []byte) bool { return bytes.HasPrefix(head, gzipMagic) }

func (gzipFilter) NewReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

type zlibFilter struct{}

func (zlibFilter) Codec() Codec { return Zlib }

// Match checks the CMF/FLG pair: deflate method, 32K window and a valid
// header checksum.
func (zlibFilter) Match(head []byte) bool {
	if len(head) < 2 || head[0] != 0x78 {
		return false
	}
	return (uint16(head[0])<<8|uint16(head[1]))%31 == 0
}

func (zlibFilter) NewReader(r io.Reader) (io.ReadCloser, error) {
	return zlib.NewReader(r)
}

type zstdFilter struct{}

func (zstdFilter) Codec() Codec { return Zstd }

func (zstdFilter) Match(head []byte) bool { return bytes.HasPrefix(head, zstdMagic) }

// NewReader leaves the decoder's memory and window limits at their
// defaults; a lower cap rejects valid frames whose window exceeds it.
func (zstdFilter) NewReader(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return dec.IOReadCloser(), nil
}

type lz4Filter struct{}

func (lz4Filter) Codec() Codec { return LZ4 }

func (lz4Filter) Match(head []byte) bool { return bytes.HasPrefix(head, lz4Magic) }

func (lz4Filter) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}
