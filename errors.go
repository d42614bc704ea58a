package refassert

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotMethodReference is matched (via errors.Is) by IllegalArgumentError.
var ErrNotMethodReference = errors.New("not a method reference")

// IllegalArgumentError is returned by Derive when given something other
// than a reference to an existing function or method.
type IllegalArgumentError struct {
	// Reference names the offending value: its implementation name when
	// one could be recovered, otherwise its type.
	Reference string
	Reason    string
}

func (e IllegalArgumentError) Error() string {
	return fmt.Sprintf("%s %s", e.Reference, e.Reason)
}

func (e IllegalArgumentError) Is(target error) bool {
	return target == ErrNotMethodReference
}
