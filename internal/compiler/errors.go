package compiler

import (
	"errors"
	"fmt"
)

// ErrUnresolvedIdentifier is spec.md §7's ResolutionError: an identifier
// referenced with no visible binding in lexical scope.
var ErrUnresolvedIdentifier = errors.New("could not find bind")

// unresolved wraps ErrUnresolvedIdentifier with the offending name, per
// spec.md §4.1's exact wording: `could not find bind `name``.
func unresolved(name string) error {
	return fmt.Errorf("%w `%s`", ErrUnresolvedIdentifier, name)
}
