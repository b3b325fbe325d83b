// Package strtab implements the GTO string table.
//
// Every name, protocol and interpretation in a GTO file, as well as the
// values of String properties, is stored once in a shared table of
// NUL-terminated strings. Records refer to strings by their ordinal id.
package strtab

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/gatgui/gto/internal/binary"
)

// Errors
var (
	ErrBadStringRef = errors.New("string id out of range")
	ErrUnterminated = errors.New("unterminated string in string table")
)

// Table is a parsed string table.
type Table struct {
	strings []string
	size    int
}

// Read reads a string table of size bytes at the reader's position.
func Read(r *binary.Reader, size uint32) (*Table, error) {
	data, err := r.ReadBytes(int(size))
	if err != nil {
		return nil, fmt.Errorf("reading %d-byte string table at %d: %w", size, r.Pos(), err)
	}
	return Parse(data)
}

// Parse splits data into NUL-terminated strings.
func Parse(data []byte) (*Table, error) {
	t := &Table{size: len(data)}
	for len(data) > 0 {
		end := bytes.IndexByte(data, 0)
		if end < 0 {
			return nil, fmt.Errorf("%w at byte %d", ErrUnterminated, t.size-len(data))
		}
		t.strings = append(t.strings, string(data[:end]))
		data = data[end+1:]
	}
	return t, nil
}

// Lookup returns the string with the given id.
func (t *Table) Lookup(id uint32) (string, error) {
	if uint64(id) >= uint64(len(t.strings)) {
		return "", fmt.Errorf("%w: %d (table has %d strings)", ErrBadStringRef, id, len(t.strings))
	}
	return t.strings[id], nil
}

// Len returns the number of strings.
func (t *Table) Len() int {
	return len(t.strings)
}

// Size returns the encoded size in bytes.
func (t *Table) Size() int {
	return t.size
}

// Strings returns a copy of all strings in id order.
func (t *Table) Strings() []string {
	out := make([]string, len(t.strings))
	copy(out, t.strings)
	return out
}

// Builder interns strings and assigns ids in insertion order.
type Builder struct {
	ids     map[string]uint32
	strings []string
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{ids: make(map[string]uint32)}
}

// Intern returns the id of s, adding it if needed.
func (b *Builder) Intern(s string) uint32 {
	if id, ok := b.ids[s]; ok {
		return id
	}
	id := uint32(len(b.strings))
	b.ids[s] = id
	b.strings = append(b.strings, s)
	return id
}

// Bytes returns the encoded table.
func (b *Builder) Bytes() []byte {
	var buf bytes.Buffer
	for _, s := range b.strings {
		buf.WriteString(s)
		buf.WriteByte(0)
	}
	return buf.Bytes()
}
