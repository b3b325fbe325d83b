package gtotest

import (
	"encoding/binary"
	"fmt"

	"github.com/gatgui/gto/internal/dtype"
	"github.com/gatgui/gto/internal/header"
)

// Particles returns a small file exercising every element type:
//
//	particles (particle v1)
//	  points:     position float[3] x2, pressure float x2, velocity float[3] x2, id int x2
//	  attributes: name string x2, visible bool x2, weight half x2
//	camera (camera v2)
//	  transform (matrix): matrix double[16] x1
//	  lens:       iso short x1, mask byte x4
//	empty (none v1)
func Particles() *File {
	return &File{
		Objects: []Object{
			{
				Name: "particles", Protocol: "particle", ProtocolVersion: 1,
				Components: []Component{
					{
						Name: "points",
						Properties: []Property{
							{Name: "position", Interpretation: "point", Type: dtype.Float, Width: 3,
								Values: []float32{0, 1, 2, 3, 4, 5}},
							{Name: "pressure", Type: dtype.Float, Values: []float32{1.5, 2.5}},
							{Name: "velocity", Interpretation: "vector", Type: dtype.Float, Width: 3,
								Values: []float32{-1, 0, 1, 0.5, 0.25, 0.125}},
							{Name: "id", Type: dtype.Int, Values: []int32{7, 11}},
						},
					},
					{
						Name: "attributes", Interpretation: "user",
						Properties: []Property{
							{Name: "name", Type: dtype.String, Values: []string{"alpha", "beta"}},
							{Name: "visible", Type: dtype.Boolean, Values: []bool{true, false}},
							{Name: "weight", Type: dtype.Half, Values: []float32{0.5, 2}},
						},
					},
				},
			},
			{
				Name: "camera", Protocol: "camera", ProtocolVersion: 2,
				Components: []Component{
					{
						Name: "transform", Flags: 1, // matrix
						Properties: []Property{
							{Name: "matrix", Type: dtype.Double, Width: 16, Values: identity()},
						},
					},
					{
						Name: "lens",
						Properties: []Property{
							{Name: "iso", Type: dtype.Short, Values: []uint16{400}},
							{Name: "mask", Type: dtype.Byte, Values: []uint8{1, 2, 3, 4}},
						},
					},
				},
			},
			{Name: "empty", Protocol: "none", ProtocolVersion: 1},
		},
	}
}

func identity() []float64 {
	m := make([]float64, 16)
	for i := 0; i < 4; i++ {
		m[5*i] = 1
	}
	return m
}

// Offsets locates the record tables of an encoded file so tests can
// corrupt individual fields.
type Offsets struct {
	Order      binary.ByteOrder
	Header     *header.Header
	Objects    int
	Components int
	Properties int
}

// Locate reads the header of data.
func Locate(data []byte) (*Offsets, error) {
	if len(data) < header.Size {
		return nil, fmt.Errorf("short file")
	}
	var order binary.ByteOrder = binary.LittleEndian
	if binary.LittleEndian.Uint32(data) != header.Magic {
		order = binary.BigEndian
	}
	h := &header.Header{
		Magic:           order.Uint32(data[0:]),
		Version:         order.Uint32(data[4:]),
		NumObjects:      order.Uint32(data[8:]),
		NumComponents:   order.Uint32(data[12:]),
		NumProperties:   order.Uint32(data[16:]),
		StringTableSize: order.Uint32(data[20:]),
		ByteOrder:       order,
	}
	o := &Offsets{Order: order, Header: h}
	o.Objects = header.Size + int(h.StringTableSize)
	o.Components = o.Objects + int(h.NumObjects)*header.ObjectRecordSize
	o.Properties = o.Components + int(h.NumComponents)*header.ComponentRecordSize
	return o, nil
}

// Object returns the offset of field (in u32 units) of object record i.
func (o *Offsets) Object(i, field int) int {
	return o.Objects + i*header.ObjectRecordSize + 4*field
}

// Component returns the offset of field (in u32 units) of component record i.
func (o *Offsets) Component(i, field int) int {
	return o.Components + i*header.ComponentRecordSize + 4*field
}

// Property returns the offset of field (in u32 units) of property record i.
// Fields 6 and 8 are the u64 data offset and length.
func (o *Offsets) Property(i, field int) int {
	return o.Properties + i*header.PropertyRecordSize + 4*field
}

// Put32 overwrites a u32 at off.
func (o *Offsets) Put32(data []byte, off int, v uint32) {
	o.Order.PutUint32(data[off:], v)
}

// Put64 overwrites a u64 at off.
func (o *Offsets) Put64(data []byte, off int, v uint64) {
	o.Order.PutUint64(data[off:], v)
}

// Uint64 reads a u64 at off.
func (o *Offsets) Uint64(data []byte, off int) uint64 {
	return o.Order.Uint64(data[off:])
}
