package dtype

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Encode converts a slice of Go values to a raw data block of kind k.
//
// The accepted slice types mirror [Convert]: Half takes []float32 and is
// narrowed with [Float32ToHalf]. String values are turned into ids by
// intern, which must not be nil for String blocks.
func Encode(k Kind, order binary.ByteOrder, src any, intern func(string) uint32) ([]byte, error) {
	switch k {
	case Int:
		vals, ok := src.([]int32)
		if !ok {
			return nil, mismatch(k, src)
		}
		out := make([]byte, 4*len(vals))
		for i, v := range vals {
			order.PutUint32(out[4*i:], uint32(v))
		}
		return out, nil
	case Float:
		vals, ok := src.([]float32)
		if !ok {
			return nil, mismatch(k, src)
		}
		out := make([]byte, 4*len(vals))
		for i, v := range vals {
			order.PutUint32(out[4*i:], math.Float32bits(v))
		}
		return out, nil
	case Double:
		vals, ok := src.([]float64)
		if !ok {
			return nil, mismatch(k, src)
		}
		out := make([]byte, 8*len(vals))
		for i, v := range vals {
			order.PutUint64(out[8*i:], math.Float64bits(v))
		}
		return out, nil
	case Half:
		vals, ok := src.([]float32)
		if !ok {
			return nil, mismatch(k, src)
		}
		out := make([]byte, 2*len(vals))
		for i, v := range vals {
			order.PutUint16(out[2*i:], Float32ToHalf(v))
		}
		return out, nil
	case String:
		vals, ok := src.([]string)
		if !ok {
			return nil, mismatch(k, src)
		}
		if intern == nil {
			return nil, fmt.Errorf("encoding strings requires a string table")
		}
		out := make([]byte, 4*len(vals))
		for i, v := range vals {
			order.PutUint32(out[4*i:], intern(v))
		}
		return out, nil
	case Boolean:
		vals, ok := src.([]bool)
		if !ok {
			return nil, mismatch(k, src)
		}
		out := make([]byte, len(vals))
		for i, v := range vals {
			if v {
				out[i] = 1
			}
		}
		return out, nil
	case Short:
		vals, ok := src.([]uint16)
		if !ok {
			return nil, mismatch(k, src)
		}
		out := make([]byte, 2*len(vals))
		for i, v := range vals {
			order.PutUint16(out[2*i:], v)
		}
		return out, nil
	case Byte:
		vals, ok := src.([]uint8)
		if !ok {
			return nil, mismatch(k, src)
		}
		out := make([]byte, len(vals))
		copy(out, vals)
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, uint32(k))
	}
}

// Len returns the number of values in a slice accepted by [Encode].
func Len(src any) (int, error) {
	switch v := src.(type) {
	case []int32:
		return len(v), nil
	case []float32:
		return len(v), nil
	case []float64:
		return len(v), nil
	case []string:
		return len(v), nil
	case []bool:
		return len(v), nil
	case []uint16:
		return len(v), nil
	case []uint8:
		return len(v), nil
	default:
		return 0, fmt.Errorf("unsupported value type %T", src)
	}
}

func mismatch(k Kind, src any) error {
	return fmt.Errorf("cannot encode %T as %s", src, k)
}
