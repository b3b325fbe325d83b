package record

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	binpkg "github.com/gatgui/gto/internal/binary"
	"github.com/gatgui/gto/internal/dtype"
	"github.com/gatgui/gto/internal/gtotest"
	"github.com/gatgui/gto/internal/header"
	"github.com/gatgui/gto/internal/strtab"
)

func parse(data []byte) (*Table, error) {
	r := binpkg.NewReader(bytes.NewReader(data), binpkg.Config{Size: int64(len(data))})
	return Parse(r, int64(len(data)))
}

func TestParseParticles(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		t.Run(order.String(), func(t *testing.T) {
			f := gtotest.Particles()
			f.ByteOrder = order
			tbl, err := parse(gtotest.Bytes(t, f))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			if tbl.Header.Swapped != (order == binary.BigEndian) {
				t.Errorf("unexpected swapped flag %v", tbl.Header.Swapped)
			}
			if len(tbl.Objects) != 3 || len(tbl.Components) != 4 || len(tbl.Properties) != 10 {
				t.Fatalf("unexpected counts %d/%d/%d", len(tbl.Objects), len(tbl.Components), len(tbl.Properties))
			}

			o := tbl.Objects[1]
			if o.Name != "camera" || o.Protocol != "camera" || o.ProtocolVersion != 2 || o.NumComponents != 2 {
				t.Errorf("unexpected object: %+v", o)
			}

			c := tbl.Components[2]
			if c.Name != "transform" || c.Flags != FlagMatrix || c.NumProperties != 1 {
				t.Errorf("unexpected component: %+v", c)
			}

			p := tbl.Properties[0]
			if p.Name != "position" || p.Interpretation != "point" || p.Type != dtype.Float || p.Width != 3 || p.Count != 2 {
				t.Errorf("unexpected property: %+v", p)
			}
			if p.Block.Length != 24 {
				t.Errorf("expected 24 byte block, got %d", p.Block.Length)
			}
			if p.Size() != 6 {
				t.Errorf("expected 6 values, got %d", p.Size())
			}
		})
	}
}

func TestParseEmptyFile(t *testing.T) {
	tbl, err := parse(gtotest.Bytes(t, &gtotest.File{}))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(tbl.Objects) != 0 || tbl.Strings.Len() != 0 {
		t.Errorf("expected empty table, got %d objects", len(tbl.Objects))
	}
}

func TestParseHonorsDataOffsets(t *testing.T) {
	f := gtotest.Particles()
	f.Padding = 7
	data := gtotest.Bytes(t, f)

	tbl, err := parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	first := tbl.Properties[0].Block
	if first.Offset != uint64(tbl.Header.StructureSize())+7 {
		t.Errorf("unexpected first block offset %d", first.Offset)
	}
	if data[first.Offset-1] != 0xEE {
		t.Errorf("expected filler before block")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(o *gtotest.Offsets, data []byte) []byte
		want    error
	}{
		{
			name: "bad magic",
			corrupt: func(o *gtotest.Offsets, data []byte) []byte {
				o.Put32(data, 0, 0xDEADBEEF)
				return data
			},
			want: header.ErrBadMagic,
		},
		{
			name: "future version",
			corrupt: func(o *gtotest.Offsets, data []byte) []byte {
				o.Put32(data, 4, header.Version+1)
				return data
			},
			want: header.ErrUnsupportedVersion,
		},
		{
			name: "counts exceed input",
			corrupt: func(o *gtotest.Offsets, data []byte) []byte {
				o.Put32(data, 16, 1000)
				return data
			},
			want: binpkg.ErrTruncated,
		},
		{
			name: "truncated records",
			corrupt: func(o *gtotest.Offsets, data []byte) []byte {
				return data[:o.Properties+10]
			},
			want: binpkg.ErrTruncated,
		},
		{
			name: "object name out of range",
			corrupt: func(o *gtotest.Offsets, data []byte) []byte {
				o.Put32(data, o.Object(0, 0), 999)
				return data
			},
			want: strtab.ErrBadStringRef,
		},
		{
			name: "component interpretation out of range",
			corrupt: func(o *gtotest.Offsets, data []byte) []byte {
				o.Put32(data, o.Component(1, 1), 999)
				return data
			},
			want: strtab.ErrBadStringRef,
		},
		{
			name: "property name out of range",
			corrupt: func(o *gtotest.Offsets, data []byte) []byte {
				o.Put32(data, o.Property(3, 0), 999)
				return data
			},
			want: strtab.ErrBadStringRef,
		},
		{
			name: "component sum mismatch",
			corrupt: func(o *gtotest.Offsets, data []byte) []byte {
				o.Put32(data, o.Object(0, 3), 3)
				return data
			},
			want: ErrCorrupt,
		},
		{
			name: "property sum mismatch",
			corrupt: func(o *gtotest.Offsets, data []byte) []byte {
				o.Put32(data, o.Component(0, 2), 1)
				return data
			},
			want: ErrCorrupt,
		},
		{
			name: "unknown type",
			corrupt: func(o *gtotest.Offsets, data []byte) []byte {
				o.Put32(data, o.Property(0, 2), 42)
				return data
			},
			want: dtype.ErrUnknownType,
		},
		{
			name: "block past end",
			corrupt: func(o *gtotest.Offsets, data []byte) []byte {
				o.Put64(data, o.Property(9, 6), uint64(len(data)))
				return data
			},
			want: binpkg.ErrTruncated,
		},
		{
			name: "block length mismatch",
			corrupt: func(o *gtotest.Offsets, data []byte) []byte {
				o.Put32(data, o.Property(0, 4), 3)
				return data
			},
			want: ErrCorrupt,
		},
		{
			name: "block size overflow",
			corrupt: func(o *gtotest.Offsets, data []byte) []byte {
				// 4 * 2^31 * 2^31 wraps to a zero length.
				o.Put32(data, o.Property(0, 2), uint32(dtype.Int))
				o.Put32(data, o.Property(0, 3), 1<<31)
				o.Put32(data, o.Property(0, 4), 1<<31)
				o.Put64(data, o.Property(0, 8), 0)
				return data
			},
			want: ErrCorrupt,
		},
		{
			name: "huge block",
			corrupt: func(o *gtotest.Offsets, data []byte) []byte {
				o.Put32(data, o.Property(9, 3), 1<<31)
				o.Put32(data, o.Property(9, 4), 1<<31)
				o.Put64(data, o.Property(9, 8), 1<<62)
				return data
			},
			want: binpkg.ErrTruncated,
		},
		{
			name: "truncated data",
			corrupt: func(o *gtotest.Offsets, data []byte) []byte {
				return data[:len(data)-1]
			},
			want: binpkg.ErrTruncated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := gtotest.Bytes(t, gtotest.Particles())
			o, err := gtotest.Locate(data)
			if err != nil {
				t.Fatalf("Locate failed: %v", err)
			}

			tbl, err := parse(tt.corrupt(o, data))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if tbl != nil {
				t.Error("expected no table on failure")
			}
		})
	}
}
