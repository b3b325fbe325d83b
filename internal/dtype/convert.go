package dtype

// Conversion Strategy
//
// A data block is a flat run of count*width values of a single kind in the
// file's byte order. Convert returns a freshly allocated Go slice holding
// all of them; grouping values into elements of width values is left to
// the caller.
//
//   - Int, Float, Double, Short, Byte: fixed-size values in file order
//   - Half: IEEE 754 binary16, widened to float32
//   - Boolean: one byte per value, non-zero is true
//   - String: u32 string-table ids, resolved through a Strings lookup

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Strings resolves string-table ids for String blocks.
type Strings interface {
	Lookup(id uint32) (string, error)
}

// Convert decodes n values of kind k from data.
//
// The concrete result type is []int32 (Int), []float32 (Float, Half),
// []float64 (Double), []string (String), []bool (Boolean), []uint16 (Short)
// or []uint8 (Byte).
func Convert(k Kind, order binary.ByteOrder, data []byte, n int, strs Strings) (any, error) {
	size := k.Size()
	if size == 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, uint32(k))
	}
	if n < 0 || n > len(data)/size {
		return nil, fmt.Errorf("data block holds %d bytes, too few for %d %s values", len(data), n, k)
	}

	switch k {
	case Int:
		out := make([]int32, n)
		for i := range out {
			out[i] = int32(order.Uint32(data[4*i:]))
		}
		return out, nil
	case Float:
		out := make([]float32, n)
		for i := range out {
			out[i] = math.Float32frombits(order.Uint32(data[4*i:]))
		}
		return out, nil
	case Double:
		out := make([]float64, n)
		for i := range out {
			out[i] = math.Float64frombits(order.Uint64(data[8*i:]))
		}
		return out, nil
	case Half:
		out := make([]float32, n)
		for i := range out {
			out[i] = HalfToFloat32(order.Uint16(data[2*i:]))
		}
		return out, nil
	case String:
		if strs == nil {
			return nil, fmt.Errorf("string block without string table")
		}
		out := make([]string, n)
		for i := range out {
			s, err := strs.Lookup(order.Uint32(data[4*i:]))
			if err != nil {
				return nil, fmt.Errorf("value %d: %w", i, err)
			}
			out[i] = s
		}
		return out, nil
	case Boolean:
		out := make([]bool, n)
		for i := range out {
			out[i] = data[i] != 0
		}
		return out, nil
	case Short:
		out := make([]uint16, n)
		for i := range out {
			out[i] = order.Uint16(data[2*i:])
		}
		return out, nil
	case Byte:
		out := make([]uint8, n)
		copy(out, data)
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, uint32(k))
	}
}

// HalfToFloat32 widens an IEEE 754 binary16 value.
func HalfToFloat32(h uint16) float32 {
	sign := uint32(h>>15) << 31
	exp := uint32(h>>10) & 0x1f
	mant := uint32(h) & 0x3ff

	switch {
	case exp == 0 && mant == 0:
		return math.Float32frombits(sign)
	case exp == 0:
		// Subnormal: renormalize into the float32 range.
		e := uint32(127 - 15 + 1)
		for mant&0x400 == 0 {
			mant <<= 1
			e--
		}
		mant &= 0x3ff
		return math.Float32frombits(sign | e<<23 | mant<<13)
	case exp == 0x1f:
		return math.Float32frombits(sign | 0xff<<23 | mant<<13)
	default:
		return math.Float32frombits(sign | (exp+127-15)<<23 | mant<<13)
	}
}

// Float32ToHalf narrows f to IEEE 754 binary16, rounding half up.
// Values too large for binary16 become infinities.
func Float32ToHalf(f float32) uint16 {
	bits := math.Float32bits(f)
	sign := uint16(bits>>16) & 0x8000
	rawExp := int32(bits>>23) & 0xff
	mant := bits & 0x7fffff

	if rawExp == 0xff {
		if mant != 0 {
			return sign | 0x7e00
		}
		return sign | 0x7c00
	}

	exp := rawExp - 127 + 15
	switch {
	case exp >= 0x1f:
		return sign | 0x7c00
	case exp <= 0:
		if exp < -10 {
			return sign
		}
		mant |= 0x800000
		shift := uint32(14 - exp)
		half := mant >> shift
		if (mant>>(shift-1))&1 != 0 {
			half++
		}
		return sign | uint16(half)
	default:
		half := uint16(exp)<<10 | uint16(mant>>13)
		if mant&0x1000 != 0 {
			half++
		}
		return sign | half
	}
}
