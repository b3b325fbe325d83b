package gto

import (
	"fmt"
	"log/slog"

	"github.com/gatgui/gto/internal/filter"
)

// Mode selects how a session reads its file.
type Mode int

const (
	// Streaming runs the callbacks during Open and decodes accepted data.
	Streaming Mode = iota
	// HeaderOnly runs the structural callbacks but never reads data.
	HeaderOnly
	// RandomAccess indexes everything and decodes data on demand.
	RandomAccess
)

func (m Mode) String() string {
	switch m {
	case Streaming:
		return "streaming"
	case HeaderOnly:
		return "header-only"
	case RandomAccess:
		return "random-access"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Option configures a Reader.
type Option func(*options)

type options struct {
	mode                Mode
	callbacks           callbacks
	logger              *slog.Logger
	mmap                bool
	maxDecompressedSize int64
	cache               *Cache
}

func defaultOptions() *options {
	return &options{
		mode:                Streaming,
		logger:              slog.New(slog.DiscardHandler),
		maxDecompressedSize: filter.DefaultLimit,
	}
}

// WithMode sets the read mode. The default is Streaming.
func WithMode(m Mode) Option {
	return func(o *options) {
		if m >= Streaming && m <= RandomAccess {
			o.mode = m
		}
	}
}

// WithCallbacks sets the streaming callbacks. v may implement any subset
// of ObjectFilter, ComponentFilter, PropertyFilter and DataSink; missing
// filters accept everything. See Funcs for a function-valued implementation.
func WithCallbacks(v any) Option {
	return func(o *options) {
		o.callbacks = newCallbacks(v)
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMmap memory-maps files opened by path instead of reading them
// through the file descriptor.
func WithMmap(enabled bool) Option {
	return func(o *options) {
		o.mmap = enabled
	}
}

// WithMaxDecompressedSize bounds the size of compressed inputs once
// decompressed. Values <= 0 restore the default of 4 GiB.
func WithMaxDecompressedSize(n int64) Option {
	return func(o *options) {
		if n <= 0 {
			n = filter.DefaultLimit
		}
		o.maxDecompressedSize = n
	}
}

// WithCache serves AccessProperty from c. Cached Data is shared between
// calls and must not be modified.
func WithCache(c *Cache) Option {
	return func(o *options) {
		o.cache = c
	}
}
