package record

import (
	"errors"
	"fmt"

	"github.com/gatgui/gto/internal/binary"
	"github.com/gatgui/gto/internal/dtype"
	"github.com/gatgui/gto/internal/header"
	"github.com/gatgui/gto/internal/layout"
	"github.com/gatgui/gto/internal/strtab"
)

// ErrCorrupt is returned when records are internally inconsistent.
var ErrCorrupt = errors.New("corrupt record table")

// Component flags.
const (
	FlagMatrix     uint32 = 1
	FlagTransposed uint32 = 2
)

// Object is a parsed object record.
type Object struct {
	Name            string
	Protocol        string
	ProtocolVersion uint32
	NumComponents   uint32
}

// Component is a parsed component record.
type Component struct {
	Name           string
	Interpretation string
	NumProperties  uint32
	Flags          uint32
}

// Property is a parsed property record.
type Property struct {
	Name           string
	Interpretation string
	Type           dtype.Kind
	Width          uint32
	Count          uint32
	Block          layout.Block
}

// Table holds every record of a file in file order.
type Table struct {
	Header     *header.Header
	Strings    *strtab.Table
	Objects    []Object
	Components []Component
	Properties []Property
}

// Parse reads the structural region from r, which must be positioned at
// the start of the file. size is the total input size in bytes and bounds
// every data block.
func Parse(r *binary.Reader, size int64) (*Table, error) {
	h, err := header.Read(r)
	if err != nil {
		return nil, err
	}

	// Reject bogus counts before allocating for them.
	if h.StructureSize() > size {
		return nil, fmt.Errorf("%w: header declares %d structural bytes, input has %d",
			binary.ErrTruncated, h.StructureSize(), size)
	}

	br := r.WithByteOrder(h.ByteOrder)

	strs, err := strtab.Read(br, h.StringTableSize)
	if err != nil {
		return nil, err
	}

	t := &Table{
		Header:     h,
		Strings:    strs,
		Objects:    make([]Object, h.NumObjects),
		Components: make([]Component, h.NumComponents),
		Properties: make([]Property, h.NumProperties),
	}

	var numComponents, numProperties uint64
	for i := range t.Objects {
		if err := readObject(br, strs, &t.Objects[i]); err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		numComponents += uint64(t.Objects[i].NumComponents)
	}
	if numComponents != uint64(h.NumComponents) {
		return nil, fmt.Errorf("%w: objects own %d components, header declares %d",
			ErrCorrupt, numComponents, h.NumComponents)
	}

	for i := range t.Components {
		if err := readComponent(br, strs, &t.Components[i]); err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		numProperties += uint64(t.Components[i].NumProperties)
	}
	if numProperties != uint64(h.NumProperties) {
		return nil, fmt.Errorf("%w: components own %d properties, header declares %d",
			ErrCorrupt, numProperties, h.NumProperties)
	}

	for i := range t.Properties {
		p := &t.Properties[i]
		if err := readProperty(br, strs, p); err != nil {
			return nil, fmt.Errorf("property %d: %w", i, err)
		}
		if err := p.Block.Check(size); err != nil {
			return nil, fmt.Errorf("property %d (%s): %w", i, p.Name, err)
		}
		want, ok := dtype.BlockSize(p.Type, p.Width, p.Count)
		if !ok {
			return nil, fmt.Errorf("%w: property %d (%s): %d x %d %s overflows the block size",
				ErrCorrupt, i, p.Name, p.Count, p.Width, p.Type)
		}
		if p.Block.Length != want {
			return nil, fmt.Errorf("%w: property %d (%s) stores %d bytes, %d x %d %s need %d",
				ErrCorrupt, i, p.Name, p.Block.Length, p.Count, p.Width, p.Type, want)
		}
	}

	return t, nil
}

func readObject(r *binary.Reader, strs *strtab.Table, o *Object) error {
	f, err := r.ReadUint32s(header.ObjectRecordSize / 4)
	if err != nil {
		return err
	}
	if o.Name, err = strs.Lookup(f[0]); err != nil {
		return fmt.Errorf("name: %w", err)
	}
	if o.Protocol, err = strs.Lookup(f[1]); err != nil {
		return fmt.Errorf("protocol: %w", err)
	}
	o.ProtocolVersion = f[2]
	o.NumComponents = f[3]
	return nil
}

func readComponent(r *binary.Reader, strs *strtab.Table, c *Component) error {
	f, err := r.ReadUint32s(header.ComponentRecordSize / 4)
	if err != nil {
		return err
	}
	if c.Name, err = strs.Lookup(f[0]); err != nil {
		return fmt.Errorf("name: %w", err)
	}
	if c.Interpretation, err = strs.Lookup(f[1]); err != nil {
		return fmt.Errorf("interpretation: %w", err)
	}
	c.NumProperties = f[2]
	c.Flags = f[3]
	return nil
}

func readProperty(r *binary.Reader, strs *strtab.Table, p *Property) error {
	f, err := r.ReadUint32s(6)
	if err != nil {
		return err
	}
	if p.Name, err = strs.Lookup(f[0]); err != nil {
		return fmt.Errorf("name: %w", err)
	}
	if p.Interpretation, err = strs.Lookup(f[1]); err != nil {
		return fmt.Errorf("interpretation: %w", err)
	}
	if p.Type, err = dtype.ParseKind(f[2]); err != nil {
		return err
	}
	p.Width = f[3]
	p.Count = f[4]

	if p.Block.Offset, err = r.ReadUint64(); err != nil {
		return err
	}
	if p.Block.Length, err = r.ReadUint64(); err != nil {
		return err
	}
	return nil
}

// Size returns the number of values (count * width) in a property's block.
func (p *Property) Size() int {
	return int(uint64(p.Count) * uint64(p.Width))
}
