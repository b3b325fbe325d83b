// Package header handles parsing of the GTO file header.
//
// The header is the entry point for any GTO file. It announces the byte
// order of the file, the format version and the sizes of every structural
// table that follows it.
//
// # Magic Number
//
// A GTO file starts with the 32-bit magic number 0x29f. The magic is
// written in the byte order of the machine that produced the file, so a
// reader that sees it byte-swapped knows the rest of the file is
// big-endian. [Read] detects both forms and records the order in
// [Header.ByteOrder].
//
// # Layout
//
//	magic            u32
//	version          u32   (MinVersion..Version)
//	objectCount      u32
//	componentCount   u32
//	propertyCount    u32
//	stringTableSize  u32   (bytes)
//
// The string table and the object, component and property records follow
// immediately; [Header.StructureSize] returns where that region ends.
//
// # Errors
//
//   - [ErrBadMagic]: the leading bytes are not the GTO magic in either order
//   - [ErrUnsupportedVersion]: the version is outside the supported range
//   - binary.ErrTruncated: the source ends inside the header
package header
