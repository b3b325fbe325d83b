package dtype

import (
	"errors"
	"fmt"
	"math/bits"
)

// Kind is a GTO element type as stored in property records.
type Kind uint32

// Element kinds. The values are the on-disk type codes.
const (
	Int Kind = iota
	Float
	Double
	Half
	String
	Boolean
	Short
	Byte
)

// ErrUnknownType is returned for type codes outside the known kinds.
var ErrUnknownType = errors.New("unknown element type")

var kindNames = [...]string{
	Int:     "int",
	Float:   "float",
	Double:  "double",
	Half:    "half",
	String:  "string",
	Boolean: "bool",
	Short:   "short",
	Byte:    "byte",
}

var kindSizes = [...]int{
	Int:     4,
	Float:   4,
	Double:  8,
	Half:    2,
	String:  4,
	Boolean: 1,
	Short:   2,
	Byte:    1,
}

// ParseKind validates an on-disk type code.
func ParseKind(code uint32) (Kind, error) {
	k := Kind(code)
	if !k.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownType, code)
	}
	return k, nil
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return int(k) < len(kindNames)
}

// String returns the GTO name of the kind ("float", "int", ...).
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("unknown(%d)", uint32(k))
	}
	return kindNames[k]
}

// Size returns the encoded size of one value in bytes, or 0 for unknown kinds.
func (k Kind) Size() int {
	if !k.Valid() {
		return 0
	}
	return kindSizes[k]
}

// BlockSize returns the number of bytes a block of count elements of the
// given width occupies. ok is false if the size does not fit in a uint64.
func BlockSize(k Kind, width, count uint32) (size uint64, ok bool) {
	values := uint64(width) * uint64(count)
	hi, lo := bits.Mul64(values, uint64(k.Size()))
	return lo, hi == 0
}
