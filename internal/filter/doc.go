// Package filter decompresses whole GTO files.
//
// GTO files are commonly shipped compressed. A filter recognizes its
// stream by the leading magic bytes and decodes the complete input to
// memory, after which block offsets refer to the decompressed bytes.
//
// # Supported Codecs
//
//   - gzip (1f 8b): [Gzip], via github.com/klauspost/compress/gzip
//   - zlib (78 01/5e/9c/da): [Zlib], via github.com/klauspost/compress/zlib
//   - zstd (28 b5 2f fd): [Zstd], via github.com/klauspost/compress/zstd
//   - lz4 frame (04 22 4d 18): [LZ4], via github.com/pierrec/lz4/v4
//
// Uncompressed GTO files start with the GTO magic number and match none of
// these, so [DecodeReaderAt] reports [None] for them.
//
// Every decoder enforces a limit on the decompressed size and fails with
// [ErrTooLarge] when it is exceeded.
package filter
