package lambdas

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/hbomb79/go-refassert/internal/render"
)

// ErrNotAReference is matched (via errors.Is) by every NotAReferenceError.
var ErrNotAReference = errors.New("not a lambda or method reference")

// NotAReferenceError is returned when a value does not expose a
// SerializedReference through any of the shapes this package understands.
type NotAReferenceError struct {
	Value any
}

func (e NotAReferenceError) Error() string {
	return fmt.Sprintf("%s (%T) is not a lambda", render.Value(e.Value), e.Value)
}

func (e NotAReferenceError) Is(target error) bool {
	return target == ErrNotAReference
}

// ClassResolutionError indicates a parameter type named by a signature could
// not be located by the Loader it was resolved against.
type ClassResolutionError struct {
	Name string
}

func (e ClassResolutionError) Error() string {
	return fmt.Sprintf("unable to resolve type %q", e.Name)
}

// SignatureError describes a malformed instantiated method type.
type SignatureError struct {
	Signature string
	Offset    int
	Reason    string
}

func (e SignatureError) Error() string {
	return fmt.Sprintf("invalid signature %q at offset %d: %s", e.Signature, e.Offset, e.Reason)
}
