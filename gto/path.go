package gto

import (
	"fmt"
	"strings"
)

// Level is the depth of an entity in the hierarchy.
type Level int

const (
	LevelObject Level = iota + 1
	LevelComponent
	LevelProperty
)

func (l Level) String() string {
	switch l {
	case LevelObject:
		return "object"
	case LevelComponent:
		return "component"
	case LevelProperty:
		return "property"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// PathSeparator separates names in an entity path.
const PathSeparator = "."

// ParsePath splits a path of the form "object", "object.component" or
// "object.component.property". Object and component names cannot contain
// the separator; anything after the second separator is the property name.
//
// Examples:
//   - "particles" -> ["particles"]
//   - "particles.points.position" -> ["particles", "points", "position"]
//   - "cam.lens.focal.length" -> ["cam", "lens", "focal.length"]
func ParsePath(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	parts := strings.SplitN(path, PathSeparator, int(LevelProperty))
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("%w: empty name in %q", ErrInvalidPath, path)
		}
	}
	return parts, nil
}

// JoinPath joins names into a path.
func JoinPath(names ...string) string {
	return strings.Join(names, PathSeparator)
}

// Lookup resolves a path to the level and handle of the entity it names.
// A path that resolves to nothing returns NotFound and a nil error.
func (r *Reader) Lookup(path string) (Level, Handle, error) {
	parts, err := ParsePath(path)
	if err != nil {
		return 0, NotFound, err
	}
	level := Level(len(parts))

	var h Handle
	switch level {
	case LevelObject:
		h, err = r.FindObject(parts[0])
	case LevelComponent:
		h, err = r.GetComponent(parts[0], parts[1])
	default:
		h, err = r.GetProperty(parts[0], parts[1], parts[2])
	}
	return level, h, err
}
