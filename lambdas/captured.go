package lambdas

import (
	"reflect"

	"github.com/hbomb79/go-refassert/internal/render"
)

type ArgKind int

const (
	ScalarArg ArgKind = iota
	StringArg
	ObjectArg
)

// Arg is a single captured argument. The package never needs more from it
// than a type name and a rendering.
type Arg struct {
	value any
}

func (arg Arg) Kind() ArgKind {
	if arg.value == nil {
		return ObjectArg
	}

	kind := reflect.TypeOf(arg.value).Kind()
	switch {
	case kind == reflect.String:
		return StringArg
	case render.IsScalar(kind):
		return ScalarArg
	default:
		return ObjectArg
	}
}

// Value returns the captured value itself.
func (arg Arg) Value() any {
	return arg.value
}

// TypeName is the simple name of the argument's dynamic type.
func (arg Arg) TypeName() string {
	return SimpleName(reflect.TypeOf(arg.value))
}

func (arg Arg) String() string {
	return render.Value(arg.value)
}

// Captured is a read-only view over the arguments captured by a reference.
// Elements are wrapped as they are read.
type Captured struct {
	form *SerializedReference
}

func (captured Captured) Len() int {
	if captured.form == nil {
		return 0
	}

	return captured.form.CapturedArgCount()
}

// At returns the argument at index, panicking if it is out of range.
func (captured Captured) At(index int) Arg {
	if index < 0 || index >= captured.Len() {
		panic("lambdas: captured argument index out of range")
	}

	return Arg{value: captured.form.CapturedArg(index)}
}
