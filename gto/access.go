package gto

import (
	"fmt"

	"github.com/gatgui/gto/internal/dtype"
	"github.com/gatgui/gto/internal/layout"
)

// decode reads and decodes the data block of p.
func (r *Reader) decode(p *Property) (*Data, error) {
	raw, err := layout.Block{Offset: p.Offset, Length: p.Length}.Read(r.data)
	if err != nil {
		return nil, formatError(fmt.Errorf("property %s: %w", p.Name, err))
	}
	values, err := dtype.Convert(p.Type, r.header.ByteOrder, raw, p.Count*p.Width, r.strings)
	if err != nil {
		return nil, formatError(fmt.Errorf("property %s: %w", p.Name, err))
	}
	return &Data{typ: p.Type, width: p.Width, count: p.Count, values: values}, nil
}

// accessible checks that data can be read on demand.
func (r *Reader) accessible() error {
	if err := r.check(); err != nil {
		return err
	}
	if r.opts.mode != RandomAccess {
		return ErrNotRandomAccess
	}
	return nil
}

// AccessProperty reads and decodes the data of property h. The result has
// Len equal to the property's element count. Every call re-reads the block
// unless the Reader was configured WithCache.
func (r *Reader) AccessProperty(h Handle) (*Data, error) {
	if err := r.accessible(); err != nil {
		return nil, err
	}
	p, err := entityAt(r.idx.properties, h, "property")
	if err != nil {
		return nil, err
	}

	cache := r.opts.cache
	if cache != nil {
		if d, ok := cache.get(r, h); ok {
			return d, nil
		}
	}
	d, err := r.decode(p)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		cache.add(r, h, d)
	}
	return d, nil
}

// AccessComponent decodes every property of component h, keyed by
// property name. With duplicate names the first property wins.
func (r *Reader) AccessComponent(h Handle) (map[string]*Data, error) {
	if err := r.accessible(); err != nil {
		return nil, err
	}
	c, err := entityAt(r.idx.components, h, "component")
	if err != nil {
		return nil, err
	}

	first, end := c.properties.handles()
	out := make(map[string]*Data, c.properties.n)
	for ph := first; ph < end; ph++ {
		name := r.idx.properties[ph].Name
		if _, dup := out[name]; dup {
			continue
		}
		d, err := r.AccessProperty(ph)
		if err != nil {
			return nil, err
		}
		out[name] = d
	}
	return out, nil
}

// AccessObject decodes every property of object h, keyed by component
// name then property name.
func (r *Reader) AccessObject(h Handle) (map[string]map[string]*Data, error) {
	if err := r.accessible(); err != nil {
		return nil, err
	}
	o, err := entityAt(r.idx.objects, h, "object")
	if err != nil {
		return nil, err
	}

	first, end := o.components.handles()
	out := make(map[string]map[string]*Data, o.components.n)
	for ch := first; ch < end; ch++ {
		name := r.idx.components[ch].Name
		if _, dup := out[name]; dup {
			continue
		}
		props, err := r.AccessComponent(ch)
		if err != nil {
			return nil, err
		}
		out[name] = props
	}
	return out, nil
}
