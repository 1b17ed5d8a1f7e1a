package pff

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a failure the way §7 of the design taxonomy names it:
// a distinct failure class callers can switch on, not a concrete error type.
type Kind int

const (
	// KindArgument: null where required, size overflow, output pointer
	// already set, unsupported flag bits.
	KindArgument Kind = iota
	// KindState: handle not open, table already built, value already set.
	KindState
	// KindNotFound: entry type absent, name absent, identifier absent.
	// Surfaced as a tri-state return, not normally wrapped in *Error, but
	// kept here so collaborators that must return an error can still tag it.
	KindNotFound
	// KindTypeMismatch: requested typed accessor does not apply to the
	// stored value_type.
	KindTypeMismatch
	// KindDecode: malformed bytes for a declared type.
	KindDecode
	// KindIO: read/seek failure surfaced by an external collaborator.
	KindIO
	// KindMemory: allocation failure during materialisation or resize.
	KindMemory
)

func (k Kind) String() string {
	switch k {
	case KindArgument:
		return "argument"
	case KindState:
		return "state"
	case KindNotFound:
		return "not-found"
	case KindTypeMismatch:
		return "type-mismatch"
	case KindDecode:
		return "decode"
	case KindIO:
		return "io"
	case KindMemory:
		return "memory"
	default:
		return "unknown"
	}
}

// Error is the core's wrapped error type. Op names the operation that
// raised it, mirroring the C source's "static char *function = ..." idiom
// at the top of every libpff routine.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

// Unwrap enables errors.Is/errors.As against the wrapped cause.
func (e *Error) Unwrap() error { return e.Err }

// Cause matches github.com/pkg/errors' Causer interface.
func (e *Error) Cause() error { return e.Err }

// Wrap annotates err with the operation name and kind, preserving the
// original error in the chain via github.com/pkg/errors.
func Wrap(op string, kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: errors.WithStack(err)}
}

// Newf constructs a new *Error without an underlying cause.
func Newf(op string, kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
