// Package record parses the structural region of a GTO file.
//
// The structural region is everything before the data blocks: the header,
// the string table and three fixed-size record tables. Records appear in
// file order, objects first, then every component of every object, then
// every property of every component. Parent links are implicit: the first
// object owns the first NumComponents components, and so on.
//
// Object record (20 bytes):
//
//	name u32 | protocol u32 | protocolVersion u32 | numComponents u32 | pad u32
//
// Component record (20 bytes):
//
//	name u32 | interpretation u32 | numProperties u32 | flags u32 | pad u32
//
// Property record (40 bytes):
//
//	name u32 | interpretation u32 | type u32 | width u32 | count u32 | pad u32
//	dataOffset u64 | dataLength u64
//
// String fields are string-table ids. Parse validates every id, the child
// count sums, the element types and the extent of every data block, and
// returns no table at all if any check fails.
package record
