// Package layout locates property data blocks.
//
// A GTO data block is a single contiguous run of bytes addressed by an
// absolute offset and a length stored in the property record. Blocks are
// never chunked or compressed individually; whole-file compression is
// handled before the block offsets are interpreted.
package layout
