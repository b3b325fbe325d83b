package gto

import "fmt"

// Data is a decoded property block: Len elements of Width values each,
// stored flat in file order.
type Data struct {
	typ    Type
	width  int
	count  int
	values any
}

// Type returns the element type.
func (d *Data) Type() Type { return d.typ }

// Width returns the number of values per element.
func (d *Data) Width() int { return d.width }

// Len returns the number of elements.
func (d *Data) Len() int { return d.count }

// Values returns the flat value slice: []int32, []float32, []float64,
// []string, []bool, []uint16 or []uint8. Half data is widened to float32.
func (d *Data) Values() any { return d.values }

// Ints returns Int values, or nil for other types.
func (d *Data) Ints() []int32 {
	v, _ := d.values.([]int32)
	return v
}

// Floats returns Float or Half values, or nil for other types.
func (d *Data) Floats() []float32 {
	v, _ := d.values.([]float32)
	return v
}

// Doubles returns Double values, or nil for other types.
func (d *Data) Doubles() []float64 {
	v, _ := d.values.([]float64)
	return v
}

// Strings returns String values, or nil for other types.
func (d *Data) Strings() []string {
	v, _ := d.values.([]string)
	return v
}

// Bools returns Boolean values, or nil for other types.
func (d *Data) Bools() []bool {
	v, _ := d.values.([]bool)
	return v
}

// Shorts returns Short values, or nil for other types.
func (d *Data) Shorts() []uint16 {
	v, _ := d.values.([]uint16)
	return v
}

// Bytes returns Byte values, or nil for other types.
func (d *Data) Bytes() []uint8 {
	v, _ := d.values.([]uint8)
	return v
}

func (d *Data) String() string {
	return fmt.Sprintf("%s[%d] x %d", d.typ, d.width, d.count)
}

// Elements groups the values of d per element. T must match the decoded
// Go type of d's element type.
func Elements[T any](d *Data) ([][]T, error) {
	vals, ok := d.values.([]T)
	if !ok {
		var zero T
		return nil, fmt.Errorf("%w: %s data cannot be read as %T", ErrTypeMismatch, d.typ, zero)
	}
	out := make([][]T, d.count)
	for i := range out {
		lo, hi := i*d.width, (i+1)*d.width
		out[i] = vals[lo:hi:hi]
	}
	return out, nil
}
