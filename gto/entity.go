package gto

import "github.com/gatgui/gto/internal/dtype"

// Handle identifies an entity within one session. Handles of each kind
// are contiguous from zero in file order.
type Handle int

// NotFound is returned by exact lookups that match nothing.
const NotFound Handle = -1

// Type is a property element type.
type Type = dtype.Kind

// Element types.
const (
	Int     = dtype.Int
	Float   = dtype.Float
	Double  = dtype.Double
	Half    = dtype.Half
	String  = dtype.String
	Boolean = dtype.Boolean
	Short   = dtype.Short
	Byte    = dtype.Byte
)

// Component flags.
const (
	FlagMatrix     uint32 = 1
	FlagTransposed uint32 = 2
)

// ObjectInfo describes an object record.
type ObjectInfo struct {
	Name            string
	Protocol        string
	ProtocolVersion uint32
	// NumComponents is the number of components stored in the file,
	// whether or not they are accepted.
	NumComponents int
}

// ComponentInfo describes a component record.
type ComponentInfo struct {
	Name           string
	Interpretation string
	Flags          uint32
	NumProperties  int
	ObjectName     string
}

// IsMatrix reports whether the component is flagged as a matrix.
func (c *ComponentInfo) IsMatrix() bool { return c.Flags&FlagMatrix != 0 }

// IsTransposed reports whether the component is flagged as transposed.
func (c *ComponentInfo) IsTransposed() bool { return c.Flags&FlagTransposed != 0 }

// PropertyInfo describes a property record.
type PropertyInfo struct {
	Name           string
	Interpretation string
	Type           Type
	Width          int
	// Count is the number of elements; the block holds Count*Width values.
	Count         int
	ObjectName    string
	ComponentName string
}

// span is a contiguous run of child handles.
type span struct {
	first Handle
	n     int
}

func (s span) handles() (Handle, Handle) { return s.first, s.first + Handle(s.n) }

// Object is an indexed object.
type Object struct {
	ObjectInfo
	Handle     Handle
	components span
}

// Component is an indexed component.
type Component struct {
	ComponentInfo
	Handle     Handle
	Object     Handle
	properties span
}

// Property is an indexed property.
type Property struct {
	PropertyInfo
	Handle    Handle
	Component Handle
	// Offset and Length locate the data block in the (decompressed) input.
	Offset uint64
	Length uint64
}
