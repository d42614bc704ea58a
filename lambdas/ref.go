package lambdas

import "reflect"

// Func is a single-argument callable which can describe how it was built.
type Func[T, R any] interface {
	ReferenceHook
	Apply(T) R
}

type funcRef[T, R any] struct {
	fn func(T) R
}

// Of wraps fn so it can be introspected. fn may name a function, a method
// expression such as (*bytes.Buffer).String or error.Error, or be a function
// literal. Method values (x.Method) hide their receiver and are not
// references; capture the receiver with Bind instead.
func Of[T, R any](fn func(T) R) Func[T, R] {
	return funcRef[T, R]{fn: fn}
}

func (ref funcRef[T, R]) Apply(t T) R {
	return ref.fn(t)
}

func (ref funcRef[T, R]) wrapped() any {
	return ref.fn
}

func (ref funcRef[T, R]) SerializedReference() *SerializedReference {
	form, _ := funcForm(ref.fn)
	return form
}

type boundRef[S, T, R any] struct {
	receiver S
	method   func(S, T) R
}

// Bind captures receiver as the first argument of method, which is usually a
// method expression:
//
//	lambdas.Bind(names, Names.Get)
//
// The resulting reference reports receiver as its only captured argument.
func Bind[S, T, R any](receiver S, method func(S, T) R) Func[T, R] {
	return boundRef[S, T, R]{receiver: receiver, method: method}
}

func (ref boundRef[S, T, R]) Apply(t T) R {
	return ref.method(ref.receiver, t)
}

func (ref boundRef[S, T, R]) wrapped() any {
	return ref.method
}

func (ref boundRef[S, T, R]) SerializedReference() *SerializedReference {
	form, _ := funcForm(ref.method)
	if form == nil {
		return nil
	}

	instantiated := reflect.FuncOf(
		[]reflect.Type{reflect.TypeFor[T]()},
		[]reflect.Type{reflect.TypeFor[R]()},
		false,
	)

	form.InstantiatedMethodType = EncodeSignature(instantiated, 0)
	form.FunctionType = instantiated
	form.CapturedArgs = []any{ref.receiver}
	return form
}
