package header

import (
	"encoding/binary"
	"errors"
	"fmt"

	binpkg "github.com/gatgui/gto/internal/binary"
)

// Magic is the GTO magic number. Files written on a machine of the other
// endianness carry it byte-swapped.
const Magic uint32 = 0x29f

// Supported format versions.
const (
	MinVersion uint32 = 1
	Version    uint32 = 4
)

// Fixed sizes in bytes.
const (
	Size                = 24
	ObjectRecordSize    = 20
	ComponentRecordSize = 20
	PropertyRecordSize  = 40
)

// Errors
var (
	ErrBadMagic           = errors.New("bad magic number")
	ErrUnsupportedVersion = errors.New("unsupported format version")
)

// Header contains the fixed-size preamble of a GTO file.
type Header struct {
	Magic           uint32
	Version         uint32
	NumObjects      uint32
	NumComponents   uint32
	NumProperties   uint32
	StringTableSize uint32

	// ByteOrder is the order of every integer and data element after the magic.
	ByteOrder binary.ByteOrder

	// Swapped is true when the file is big-endian.
	Swapped bool
}

// Read parses the header at the reader's current position.
// The returned header's ByteOrder must be used for everything that follows.
func Read(r *binpkg.Reader) (*Header, error) {
	magic, err := r.Peek(4)
	if err != nil {
		if errors.Is(err, binpkg.ErrTruncated) {
			return nil, ErrBadMagic
		}
		return nil, err
	}

	h := &Header{}
	switch {
	case binary.LittleEndian.Uint32(magic) == Magic:
		h.ByteOrder = binary.LittleEndian
	case binary.BigEndian.Uint32(magic) == Magic:
		h.ByteOrder = binary.BigEndian
		h.Swapped = true
	default:
		return nil, fmt.Errorf("%w: 0x%08x", ErrBadMagic, binary.LittleEndian.Uint32(magic))
	}

	fields, err := r.WithByteOrder(h.ByteOrder).ReadUint32s(6)
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	h.Magic = fields[0]
	h.Version = fields[1]
	h.NumObjects = fields[2]
	h.NumComponents = fields[3]
	h.NumProperties = fields[4]
	h.StringTableSize = fields[5]
	r.Skip(Size)

	if h.Version < MinVersion || h.Version > Version {
		return nil, fmt.Errorf("%w: %d (supported %d..%d)", ErrUnsupportedVersion, h.Version, MinVersion, Version)
	}

	return h, nil
}

// ReaderConfig returns a binary.Config for reading the rest of a source of
// the given size.
func (h *Header) ReaderConfig(size int64) binpkg.Config {
	return binpkg.Config{
		ByteOrder: h.ByteOrder,
		Size:      size,
	}
}

// RecordsSize returns the number of bytes taken by all records.
func (h *Header) RecordsSize() int64 {
	return int64(h.NumObjects)*ObjectRecordSize +
		int64(h.NumComponents)*ComponentRecordSize +
		int64(h.NumProperties)*PropertyRecordSize
}

// StructureSize returns the size of the structural region: header, string
// table and records. Data blocks are not included.
func (h *Header) StructureSize() int64 {
	return Size + int64(h.StringTableSize) + h.RecordsSize()
}

// Write writes h at the writer's position using the writer's byte order.
func Write(w *binpkg.Writer, h *Header) error {
	for _, v := range []uint32{Magic, h.Version, h.NumObjects, h.NumComponents, h.NumProperties, h.StringTableSize} {
		if err := w.WriteUint32(v); err != nil {
			return err
		}
	}
	return nil
}
