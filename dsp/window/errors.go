package window

import (
	"errors"
	"fmt"
)

var errMismatchedLength = errors.New("samples and coefficients must have same length")

func unknownTypeError(name string) error {
	return fmt.Errorf("unknown window type %q", name)
}
