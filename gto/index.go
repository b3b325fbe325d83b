package gto

import (
	"fmt"
	"iter"

	"github.com/gatgui/gto/internal/layout"
	"github.com/gatgui/gto/internal/record"
)

// index holds the entities of a session in file order. Children of one
// parent are always contiguous because entities are appended depth first.
type index struct {
	objects    []Object
	components []Component
	properties []Property
	byName     map[string]Handle
}

func newIndex(t *record.Table) *index {
	return &index{
		objects:    make([]Object, 0, len(t.Objects)),
		components: make([]Component, 0, len(t.Components)),
		properties: make([]Property, 0, len(t.Properties)),
		byName:     make(map[string]Handle, len(t.Objects)),
	}
}

func (x *index) addObject(info ObjectInfo) Handle {
	h := Handle(len(x.objects))
	x.objects = append(x.objects, Object{
		ObjectInfo: info,
		Handle:     h,
		components: span{first: Handle(len(x.components))},
	})
	if _, dup := x.byName[info.Name]; !dup {
		x.byName[info.Name] = h
	}
	return h
}

func (x *index) addComponent(parent Handle, info ComponentInfo) Handle {
	h := Handle(len(x.components))
	x.components = append(x.components, Component{
		ComponentInfo: info,
		Handle:        h,
		Object:        parent,
		properties:    span{first: Handle(len(x.properties))},
	})
	x.objects[parent].components.n++
	return h
}

func (x *index) addProperty(parent Handle, info PropertyInfo, b layout.Block) Handle {
	h := Handle(len(x.properties))
	x.properties = append(x.properties, Property{
		PropertyInfo: info,
		Handle:       h,
		Component:    parent,
		Offset:       b.Offset,
		Length:       b.Length,
	})
	x.components[parent].properties.n++
	return h
}

func entityAt[E any](items []E, h Handle, kind string) (*E, error) {
	if h < 0 || int(h) >= len(items) {
		return nil, fmt.Errorf("%w: %s handle %d (have %d)", ErrOutOfRange, kind, h, len(items))
	}
	return &items[h], nil
}

func sequence[E any](first Handle, items []E) iter.Seq2[Handle, E] {
	return func(yield func(Handle, E) bool) {
		for i, e := range items {
			if !yield(first+Handle(i), e) {
				return
			}
		}
	}
}

// Objects returns all indexed objects in file order.
func (r *Reader) Objects() (iter.Seq2[Handle, Object], error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	return sequence(0, r.idx.objects), nil
}

// Components returns all indexed components in file order.
func (r *Reader) Components() (iter.Seq2[Handle, Component], error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	return sequence(0, r.idx.components), nil
}

// Properties returns all indexed properties in file order.
func (r *Reader) Properties() (iter.Seq2[Handle, Property], error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	return sequence(0, r.idx.properties), nil
}

// ComponentsOf returns the components of an object in file order.
func (r *Reader) ComponentsOf(object Handle) (iter.Seq2[Handle, Component], error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	o, err := entityAt(r.idx.objects, object, "object")
	if err != nil {
		return nil, err
	}
	first, end := o.components.handles()
	return sequence(first, r.idx.components[first:end]), nil
}

// PropertiesOf returns the properties of a component in file order.
func (r *Reader) PropertiesOf(component Handle) (iter.Seq2[Handle, Property], error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	c, err := entityAt(r.idx.components, component, "component")
	if err != nil {
		return nil, err
	}
	first, end := c.properties.handles()
	return sequence(first, r.idx.properties[first:end]), nil
}

// ObjectAt returns the object with handle h.
func (r *Reader) ObjectAt(h Handle) (Object, error) {
	if err := r.check(); err != nil {
		return Object{}, err
	}
	o, err := entityAt(r.idx.objects, h, "object")
	if err != nil {
		return Object{}, err
	}
	return *o, nil
}

// ComponentAt returns the component with handle h.
func (r *Reader) ComponentAt(h Handle) (Component, error) {
	if err := r.check(); err != nil {
		return Component{}, err
	}
	c, err := entityAt(r.idx.components, h, "component")
	if err != nil {
		return Component{}, err
	}
	return *c, nil
}

// PropertyAt returns the property with handle h.
func (r *Reader) PropertyAt(h Handle) (Property, error) {
	if err := r.check(); err != nil {
		return Property{}, err
	}
	p, err := entityAt(r.idx.properties, h, "property")
	if err != nil {
		return Property{}, err
	}
	return *p, nil
}

// NumObjects returns the number of indexed objects, or 0 without a session.
func (r *Reader) NumObjects() int {
	if r.check() != nil {
		return 0
	}
	return len(r.idx.objects)
}

// NumComponents returns the number of indexed components, or 0 without a
// session.
func (r *Reader) NumComponents() int {
	if r.check() != nil {
		return 0
	}
	return len(r.idx.components)
}

// NumProperties returns the number of indexed properties, or 0 without a
// session.
func (r *Reader) NumProperties() int {
	if r.check() != nil {
		return 0
	}
	return len(r.idx.properties)
}

// FindObject returns the handle of the first object named name, or NotFound.
func (r *Reader) FindObject(name string) (Handle, error) {
	if err := r.check(); err != nil {
		return NotFound, err
	}
	if h, ok := r.idx.byName[name]; ok {
		return h, nil
	}
	return NotFound, nil
}

// FindComponent returns the handle of the first component of object
// named name, or NotFound. An invalid object handle is ErrOutOfRange.
func (r *Reader) FindComponent(object Handle, name string) (Handle, error) {
	if err := r.check(); err != nil {
		return NotFound, err
	}
	o, err := entityAt(r.idx.objects, object, "object")
	if err != nil {
		return NotFound, err
	}
	first, end := o.components.handles()
	for h := first; h < end; h++ {
		if r.idx.components[h].Name == name {
			return h, nil
		}
	}
	return NotFound, nil
}

// FindProperty returns the handle of the first property of component
// named name, or NotFound. An invalid component handle is ErrOutOfRange.
func (r *Reader) FindProperty(component Handle, name string) (Handle, error) {
	if err := r.check(); err != nil {
		return NotFound, err
	}
	c, err := entityAt(r.idx.components, component, "component")
	if err != nil {
		return NotFound, err
	}
	first, end := c.properties.handles()
	for h := first; h < end; h++ {
		if r.idx.properties[h].Name == name {
			return h, nil
		}
	}
	return NotFound, nil
}

// GetObject is FindObject.
func (r *Reader) GetObject(name string) (Handle, error) {
	return r.FindObject(name)
}

// GetComponent resolves a component by object and component name.
func (r *Reader) GetComponent(objectName, componentName string) (Handle, error) {
	oh, err := r.FindObject(objectName)
	if err != nil || oh == NotFound {
		return NotFound, err
	}
	return r.FindComponent(oh, componentName)
}

// GetProperty resolves a property by object, component and property name.
func (r *Reader) GetProperty(objectName, componentName, propertyName string) (Handle, error) {
	ch, err := r.GetComponent(objectName, componentName)
	if err != nil || ch == NotFound {
		return NotFound, err
	}
	return r.FindProperty(ch, propertyName)
}
