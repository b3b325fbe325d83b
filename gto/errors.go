package gto

import (
	"errors"
	"fmt"

	"github.com/gatgui/gto/internal/binary"
	"github.com/gatgui/gto/internal/dtype"
	"github.com/gatgui/gto/internal/header"
	"github.com/gatgui/gto/internal/record"
	"github.com/gatgui/gto/internal/strtab"
)

// Common errors
var (
	ErrFileNotFound    = errors.New("gto: file cannot be opened")
	ErrFormat          = errors.New("gto: format error")
	ErrOutOfRange      = errors.New("gto: handle out of range")
	ErrNotOpen         = errors.New("gto: no open session")
	ErrCallbackAborted = errors.New("gto: callback aborted read")
	ErrNotRandomAccess = errors.New("gto: session not opened for random access")
	ErrInvalidPath     = errors.New("gto: invalid path")
	ErrTypeMismatch    = errors.New("gto: element type mismatch")
)

// FormatKind classifies a FormatError.
type FormatKind int

const (
	BadMagic FormatKind = iota + 1
	UnsupportedVersion
	Truncated
	Corrupt
	BadStringRef
	BadType
	BadPattern
	BadCompression
)

var formatKindNames = map[FormatKind]string{
	BadMagic:           "bad magic",
	UnsupportedVersion: "unsupported version",
	Truncated:          "truncated",
	Corrupt:            "corrupt",
	BadStringRef:       "bad string reference",
	BadType:            "bad element type",
	BadPattern:         "bad pattern",
	BadCompression:     "bad compression",
}

func (k FormatKind) String() string {
	if name, ok := formatKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("FormatKind(%d)", int(k))
}

// FormatError reports malformed input. It matches ErrFormat.
type FormatError struct {
	Kind FormatKind
	Err  error
}

func (e *FormatError) Error() string {
	if e.Err == nil {
		return "gto: " + e.Kind.String()
	}
	return fmt.Sprintf("gto: %s: %v", e.Kind, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// Stage names the callback that failed.
type Stage int

const (
	StageObject Stage = iota
	StageComponent
	StageProperty
	StageData
)

func (s Stage) String() string {
	switch s {
	case StageObject:
		return "object"
	case StageComponent:
		return "component"
	case StageProperty:
		return "property"
	case StageData:
		return "data"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// CallbackError reports a callback that returned an error during a
// streaming pass. It matches ErrCallbackAborted and unwraps to the
// callback's error.
type CallbackError struct {
	Stage Stage
	Name  string
	Err   error
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("gto: %s callback for %q: %v", e.Stage, e.Name, e.Err)
}

func (e *CallbackError) Unwrap() error { return e.Err }

func (e *CallbackError) Is(target error) bool { return target == ErrCallbackAborted }

// formatError classifies errors from the internal parsers. Errors that are
// not format problems (I/O failures) are returned unchanged.
func formatError(err error) error {
	var kind FormatKind
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrFormat):
		return err
	case errors.Is(err, header.ErrBadMagic):
		kind = BadMagic
	case errors.Is(err, header.ErrUnsupportedVersion):
		kind = UnsupportedVersion
	case errors.Is(err, strtab.ErrBadStringRef):
		kind = BadStringRef
	case errors.Is(err, dtype.ErrUnknownType):
		kind = BadType
	case errors.Is(err, binary.ErrTruncated):
		kind = Truncated
	case errors.Is(err, record.ErrCorrupt), errors.Is(err, strtab.ErrUnterminated):
		kind = Corrupt
	default:
		return err
	}
	return &FormatError{Kind: kind, Err: err}
}

// IsFormatKind reports whether err is a FormatError of the given kind.
func IsFormatKind(err error, kind FormatKind) bool {
	var fe *FormatError
	return errors.As(err, &fe) && fe.Kind == kind
}
