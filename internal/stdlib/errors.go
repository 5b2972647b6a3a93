package stdlib

import (
	"fmt"

	"github.com/rail44/spctr/internal/object"
	"github.com/rail44/spctr/internal/vm"
)

func typeError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", vm.ErrTypeError, fmt.Sprintf(format, args...))
}

func rangeError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", vm.ErrRangeError, fmt.Sprintf(format, args...))
}

func wantArgc(who string, args []object.Value, n int) error {
	if len(args) < n {
		return typeError("%s requires %d argument(s), got %d", who, n, len(args))
	}
	return nil
}
