package gto

// ObjectFilter decides whether an object and its components are read.
type ObjectFilter interface {
	Object(name, protocol string, version uint32, info *ObjectInfo) (bool, error)
}

// ComponentFilter decides whether a component and its properties are read.
type ComponentFilter interface {
	Component(name, interpretation string, info *ComponentInfo) (bool, error)
}

// PropertyFilter decides whether a property's data is read.
type PropertyFilter interface {
	Property(name, interpretation string, info *PropertyInfo) (bool, error)
}

// DataSink receives the decoded data of every accepted property.
type DataSink interface {
	DataRead(name string, data *Data, info *PropertyInfo) error
}

// Funcs implements every callback interface with optional functions.
// A nil filter function accepts everything; a nil DataFunc discards data.
type Funcs struct {
	ObjectFunc    func(name, protocol string, version uint32, info *ObjectInfo) (bool, error)
	ComponentFunc func(name, interpretation string, info *ComponentInfo) (bool, error)
	PropertyFunc  func(name, interpretation string, info *PropertyInfo) (bool, error)
	DataFunc      func(name string, data *Data, info *PropertyInfo) error
}

func (f Funcs) Object(name, protocol string, version uint32, info *ObjectInfo) (bool, error) {
	if f.ObjectFunc == nil {
		return true, nil
	}
	return f.ObjectFunc(name, protocol, version, info)
}

func (f Funcs) Component(name, interpretation string, info *ComponentInfo) (bool, error) {
	if f.ComponentFunc == nil {
		return true, nil
	}
	return f.ComponentFunc(name, interpretation, info)
}

func (f Funcs) Property(name, interpretation string, info *PropertyInfo) (bool, error) {
	if f.PropertyFunc == nil {
		return true, nil
	}
	return f.PropertyFunc(name, interpretation, info)
}

func (f Funcs) DataRead(name string, data *Data, info *PropertyInfo) error {
	if f.DataFunc == nil {
		return nil
	}
	return f.DataFunc(name, data, info)
}

// callbacks holds the capabilities found on a WithCallbacks value.
type callbacks struct {
	object    ObjectFilter
	component ComponentFilter
	property  PropertyFilter
	data      DataSink
}

func newCallbacks(v any) callbacks {
	var cb callbacks
	cb.object, _ = v.(ObjectFilter)
	cb.component, _ = v.(ComponentFilter)
	cb.property, _ = v.(PropertyFilter)
	cb.data, _ = v.(DataSink)
	return cb
}

func (cb *callbacks) acceptObject(info *ObjectInfo) (bool, error) {
	if cb.object == nil {
		return true, nil
	}
	return cb.object.Object(info.Name, info.Protocol, info.ProtocolVersion, info)
}

func (cb *callbacks) acceptComponent(info *ComponentInfo) (bool, error) {
	if cb.component == nil {
		return true, nil
	}
	return cb.component.Component(info.Name, info.Interpretation, info)
}

func (cb *callbacks) acceptProperty(info *PropertyInfo) (bool, error) {
	if cb.property == nil {
		return true, nil
	}
	return cb.property.Property(info.Name, info.Interpretation, info)
}

func (cb *callbacks) dataRead(data *Data, info *PropertyInfo) error {
	if cb.data == nil {
		return nil
	}
	return cb.data.DataRead(info.Name, data, info)
}
