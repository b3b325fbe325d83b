package gto

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/opencontainers/go-digest"

	"github.com/gatgui/gto/internal/binary"
	"github.com/gatgui/gto/internal/filter"
	"github.com/gatgui/gto/internal/header"
	"github.com/gatgui/gto/internal/mmap"
	"github.com/gatgui/gto/internal/record"
	"github.com/gatgui/gto/internal/strtab"
)

type state int

const (
	stateClosed state = iota
	stateOpen
	// stateBusy is set while callbacks run; the session rejects queries.
	stateBusy
	// stateFailed follows an aborted streaming pass until Close or Open.
	stateFailed
)

// Reader is a GTO reading session.
type Reader struct {
	opts *options
	log  *slog.Logger

	state state
	err   error
	gen   uint64

	path   string
	src    io.ReaderAt
	closer io.Closer
	size   int64
	codec  filter.Codec
	data   *binary.Reader

	header  *header.Header
	strings *strtab.Table
	digest  digest.Digest

	idx       *index
	delivered *roaring.Bitmap
}

// NewReader returns a Reader with no open session.
func NewReader(opts ...Option) *Reader {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Reader{opts: o, log: o.logger}
}

// Open opens the file at path, closing any session already open.
// In Streaming and HeaderOnly modes the callbacks run before Open returns
// and the file is released once the pass completes; the index remains
// queryable until Close.
func (r *Reader) Open(path string) error {
	if r.state == stateBusy {
		return ErrNotOpen
	}
	r.Close()

	src, closer, size, err := r.openFile(path)
	if err != nil {
		r.err = fmt.Errorf("%w: %w", ErrFileNotFound, err)
		return r.err
	}
	r.path = path
	return r.open(src, size, closer)
}

// OpenSource opens a session over size bytes of src. If src implements
// io.Closer the session owns it and closes it on Close or on failure.
func (r *Reader) OpenSource(src io.ReaderAt, size int64) error {
	if r.state == stateBusy {
		return ErrNotOpen
	}
	r.Close()

	closer, _ := src.(io.Closer)
	return r.open(src, size, closer)
}

func (r *Reader) openFile(path string) (io.ReaderAt, io.Closer, int64, error) {
	if r.opts.mmap {
		m, err := mmap.Open(path)
		if err != nil {
			return nil, nil, 0, err
		}
		pattern := mmap.AccessSequential
		if r.opts.mode == RandomAccess {
			pattern = mmap.AccessRandom
		}
		if err := m.Advise(pattern); err != nil {
			r.log.Debug("madvise failed", "path", path, "error", err)
		}
		return m, m, m.Size(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, 0, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, 0, err
	}
	return f, f, fi.Size(), nil
}

func (r *Reader) open(src io.ReaderAt, size int64, closer io.Closer) (err error) {
	r.gen++
	r.err = nil
	r.src, r.closer, r.size = src, closer, size
	r.log.Debug("opening", "path", r.path, "size", size, "mode", r.opts.mode)

	opened := false
	defer func() {
		if opened {
			return
		}
		// A panicking callback must not leak the source either.
		p := recover()
		if p != nil {
			err = fmt.Errorf("gto: panic while reading: %v", p)
		}
		failed := r.state == stateBusy
		r.log.Debug("open failed", "path", r.path, "error", err)
		r.release()
		r.reset()
		r.err = err
		if failed {
			r.state = stateFailed
		}
		if p != nil {
			panic(p)
		}
	}()

	if err = r.load(); err != nil {
		return err
	}
	opened = true

	r.state = stateOpen
	r.log.Debug("opened", "path", r.path,
		"objects", len(r.idx.objects),
		"components", len(r.idx.components),
		"properties", len(r.idx.properties))
	return nil
}

func (r *Reader) load() error {
	data, codec, err := filter.DecodeReaderAt(r.src, r.size, r.opts.maxDecompressedSize)
	if err != nil {
		if codec == filter.None {
			return err
		}
		return &FormatError{Kind: BadCompression, Err: err}
	}
	if codec != filter.None {
		r.log.Debug("decompressed input", "codec", codec, "compressed", r.size, "size", len(data))
		if err := r.release(); err != nil {
			return err
		}
		r.src, r.size, r.codec = bytes.NewReader(data), int64(len(data)), codec
	}

	tbl, err := record.Parse(binary.NewReader(r.src, binary.Config{Size: r.size}), r.size)
	if err != nil {
		return formatError(err)
	}
	h := tbl.Header
	r.header, r.strings = h, tbl.Strings
	r.data = binary.NewReader(r.src, h.ReaderConfig(r.size))

	r.digest, err = digest.Canonical.FromReader(io.NewSectionReader(r.src, 0, h.StructureSize()))
	if err != nil {
		return fmt.Errorf("hashing structure: %w", err)
	}
	r.log.Debug("parsed structure",
		"version", h.Version, "swapped", h.Swapped,
		"objects", h.NumObjects, "components", h.NumComponents, "properties", h.NumProperties)

	r.idx = newIndex(tbl)
	r.delivered = roaring.New()

	if r.opts.mode == RandomAccess {
		return r.traverse(tbl, &callbacks{}, false)
	}

	r.state = stateBusy
	if err := r.traverse(tbl, &r.opts.callbacks, r.opts.mode == Streaming); err != nil {
		return err
	}
	return r.release()
}

// release closes the byte source if the session owns it.
func (r *Reader) release() error {
	var err error
	if r.closer != nil {
		err = r.closer.Close()
	}
	r.src, r.closer, r.data = nil, nil, nil
	return err
}

func (r *Reader) reset() {
	if r.opts.cache != nil && r.idx != nil {
		r.opts.cache.evict(r)
	}
	r.path = ""
	r.size = 0
	r.codec = filter.None
	r.header, r.strings = nil, nil
	r.digest = ""
	r.idx, r.delivered = nil, nil
	r.state = stateClosed
}

// Close ends the session and releases the byte source. It is idempotent.
// Err keeps reporting the failure of the last Open until the next one.
func (r *Reader) Close() error {
	switch r.state {
	case stateBusy:
		return ErrNotOpen
	case stateClosed:
		return nil
	}
	err := r.release()
	r.log.Debug("closed", "path", r.path)
	r.reset()
	return err
}

// check reports ErrNotOpen unless the session is open and idle.
func (r *Reader) check() error {
	if r.state != stateOpen {
		return ErrNotOpen
	}
	return nil
}

// Err returns the error that made the last Open fail, or nil.
func (r *Reader) Err() error {
	return r.err
}

// Mode returns the configured read mode.
func (r *Reader) Mode() Mode {
	return r.opts.mode
}

// Path returns the path of the open file, or "" for OpenSource sessions.
func (r *Reader) Path() string {
	return r.path
}

// Version returns the file format version, or 0 without a session.
func (r *Reader) Version() uint32 {
	if r.check() != nil {
		return 0
	}
	return r.header.Version
}

// IsSwapped reports whether the file is big-endian. It reports false
// without a session.
func (r *Reader) IsSwapped() bool {
	if r.check() != nil {
		return false
	}
	return r.header.Swapped
}

// Compression returns the name of the codec the input was compressed
// with, or "none".
func (r *Reader) Compression() string {
	return r.codec.String()
}

// Digest returns the digest of the file's structural region: header,
// string table and records. Re-opening an unchanged file yields the same
// digest. It returns "" without a session.
func (r *Reader) Digest() digest.Digest {
	if r.check() != nil {
		return ""
	}
	return r.digest
}

// StringTable returns a copy of the file's string table.
func (r *Reader) StringTable() ([]string, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	return r.strings.Strings(), nil
}

// StringFromID returns the string-table entry id.
func (r *Reader) StringFromID(id uint32) (string, error) {
	if err := r.check(); err != nil {
		return "", err
	}
	s, err := r.strings.Lookup(id)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrOutOfRange, err)
	}
	return s, nil
}

// Delivered returns the handles of the properties whose data was handed
// to the DataSink during the streaming pass.
func (r *Reader) Delivered() (*roaring.Bitmap, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	return r.delivered.Clone(), nil
}
