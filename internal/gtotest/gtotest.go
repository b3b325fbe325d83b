// Package gtotest encodes GTO files in memory for tests.
package gtotest

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	binpkg "github.com/gatgui/gto/internal/binary"
	"github.com/gatgui/gto/internal/dtype"
	"github.com/gatgui/gto/internal/header"
	"github.com/gatgui/gto/internal/strtab"
)

// File describes a GTO file to encode.
type File struct {
	// Version defaults to header.Version.
	Version uint32
	// ByteOrder defaults to little-endian. Big-endian produces a swapped file.
	ByteOrder binary.ByteOrder
	// Padding inserts that many filler bytes before every data block, so
	// readers must honor the recorded offsets.
	Padding int
	Objects []Object
}

// Object describes an object and its components.
type Object struct {
	Name            string
	Protocol        string
	ProtocolVersion uint32
	Components      []Component
}

// Component describes a component and its properties.
type Component struct {
	Name           string
	Interpretation string
	Flags          uint32
	Properties     []Property
}

// Property describes a property. Values must be a slice type accepted by
// dtype.Encode for Type. Width defaults to 1; Count is len(Values)/Width.
type Property struct {
	Name           string
	Interpretation string
	Type           dtype.Kind
	Width          uint32
	Values         any
}

func (p *Property) width() uint32 {
	if p.Width == 0 {
		return 1
	}
	return p.Width
}

// Encode returns the encoded file.
func (f *File) Encode() ([]byte, error) {
	order := f.ByteOrder
	if order == nil {
		order = binary.LittleEndian
	}
	version := f.Version
	if version == 0 {
		version = header.Version
	}

	strs := strtab.NewBuilder()
	h := &header.Header{Version: version}

	// Names first, in record order, so ids are predictable.
	for _, o := range f.Objects {
		strs.Intern(o.Name)
		strs.Intern(o.Protocol)
		h.NumObjects++
		for _, c := range o.Components {
			strs.Intern(c.Name)
			strs.Intern(c.Interpretation)
			h.NumComponents++
			for _, p := range c.Properties {
				strs.Intern(p.Name)
				strs.Intern(p.Interpretation)
				h.NumProperties++
			}
		}
	}

	// Encode blocks before the table is final; String values add ids.
	var blocks [][]byte
	var counts []uint32
	for _, o := range f.Objects {
		for _, c := range o.Components {
			for _, p := range c.Properties {
				block, err := dtype.Encode(p.Type, order, p.Values, strs.Intern)
				if err != nil {
					return nil, fmt.Errorf("property %s.%s.%s: %w", o.Name, c.Name, p.Name, err)
				}
				n, err := dtype.Len(p.Values)
				if err != nil {
					return nil, fmt.Errorf("property %s.%s.%s: %w", o.Name, c.Name, p.Name, err)
				}
				if n%int(p.width()) != 0 {
					return nil, fmt.Errorf("property %s.%s.%s: %d values is not a multiple of width %d",
						o.Name, c.Name, p.Name, n, p.width())
				}
				blocks = append(blocks, block)
				counts = append(counts, uint32(n)/p.width())
			}
		}
	}

	table := strs.Bytes()
	h.StringTableSize = uint32(len(table))

	var buf binpkg.Buffer
	w := binpkg.NewWriter(&buf, binpkg.Config{ByteOrder: order})
	if err := header.Write(w, h); err != nil {
		return nil, err
	}
	if err := w.WriteBytes(table); err != nil {
		return nil, err
	}

	for _, o := range f.Objects {
		if err := writeUint32s(w, strs.Intern(o.Name), strs.Intern(o.Protocol), o.ProtocolVersion, uint32(len(o.Components)), 0); err != nil {
			return nil, err
		}
	}
	for _, o := range f.Objects {
		for _, c := range o.Components {
			if err := writeUint32s(w, strs.Intern(c.Name), strs.Intern(c.Interpretation), uint32(len(c.Properties)), c.Flags, 0); err != nil {
				return nil, err
			}
		}
	}

	offset := uint64(h.StructureSize())
	i := 0
	for _, o := range f.Objects {
		for _, c := range o.Components {
			for _, p := range c.Properties {
				offset += uint64(f.Padding)
				if err := writeUint32s(w, strs.Intern(p.Name), strs.Intern(p.Interpretation), uint32(p.Type), p.width(), counts[i], 0); err != nil {
					return nil, err
				}
				if err := w.WriteUint64(offset); err != nil {
					return nil, err
				}
				if err := w.WriteUint64(uint64(len(blocks[i]))); err != nil {
					return nil, err
				}
				offset += uint64(len(blocks[i]))
				i++
			}
		}
	}

	if w.Pos() != h.StructureSize() {
		return nil, fmt.Errorf("records end at %d, header declares %d", w.Pos(), h.StructureSize())
	}

	filler := make([]byte, f.Padding)
	for j := range filler {
		filler[j] = 0xEE
	}
	for _, block := range blocks {
		if err := w.WriteBytes(filler); err != nil {
			return nil, err
		}
		if err := w.WriteBytes(block); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

func writeUint32s(w *binpkg.Writer, vals ...uint32) error {
	for _, v := range vals {
		if err := w.WriteUint32(v); err != nil {
			return err
		}
	}
	return nil
}

// Bytes encodes f and fails the test on error.
func Bytes(tb testing.TB, f *File) []byte {
	tb.Helper()
	data, err := f.Encode()
	if err != nil {
		tb.Fatalf("encoding fixture: %v", err)
	}
	return data
}

// WriteFile encodes f into a file under tb.TempDir and returns its path.
func WriteFile(tb testing.TB, f *File) string {
	tb.Helper()
	return WriteBytes(tb, "fixture.gto", Bytes(tb, f))
}

// WriteBytes writes data to name under tb.TempDir and returns the path.
func WriteBytes(tb testing.TB, name string, data []byte) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatalf("writing fixture: %v", err)
	}
	return path
}
