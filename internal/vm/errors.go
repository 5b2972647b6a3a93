package vm

import (
	"errors"
	"fmt"
)

// Runtime error taxonomy, spec.md §7.
var (
	// ErrTypeError is a runtime operation applied to a value of the wrong
	// kind (e.g. `+` on non-numbers, Index on non-list, Call on
	// non-function).
	ErrTypeError = errors.New("type error")

	// ErrRangeError is a list index outside 0..len.
	ErrRangeError = errors.New("range error")

	// ErrUnboundParameter is the runtime counterpart of a ResolutionError
	// (spec.md §7's ArityError note): a native function was called with
	// fewer arguments than a later parameter needs, and evaluation of
	// that parameter was attempted.
	ErrUnboundParameter = errors.New("could not find bind")

	// errStackUnderflow indicates a VM bookkeeping bug, not a user-facing
	// error; it should never surface from a correctly compiled chunk.
	errStackUnderflow = errors.New("vm: value stack underflow")
)

func typeError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrTypeError, fmt.Sprintf(format, args...))
}

func rangeError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrRangeError, fmt.Sprintf(format, args...))
}
