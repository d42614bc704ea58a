package lambdas

import (
	"reflect"
	"runtime"
	"strings"
	"unicode"
)

// SerializedReference is the structured description a callable exposes
// about how it was built.
type SerializedReference struct {
	// ImplClass is the owner of the implementation: the package path,
	// followed by the receiver type for methods ("bytes.(*Buffer)").
	ImplClass string

	// ImplMethodName is the simple method name for references to named
	// functions and methods. Function literals keep their enclosing path,
	// e.g. "TestParse.func1".
	ImplMethodName string

	// InstantiatedMethodType is the signature of the callable as invoked,
	// in the grammar described in signature.go.
	InstantiatedMethodType string

	// CapturedArgs holds values bound into the callable when it was built.
	CapturedArgs []any

	// FunctionType is the function type matching InstantiatedMethodType.
	// When set, it is used as the default context for resolving
	// parameter types.
	FunctionType reflect.Type
}

func (form *SerializedReference) CapturedArgCount() int {
	return len(form.CapturedArgs)
}

func (form *SerializedReference) CapturedArg(index int) any {
	return form.CapturedArgs[index]
}

// ReferenceHook is implemented by callables able to describe themselves.
// Returning nil means the callable is not a lambda or method reference.
type ReferenceHook interface {
	SerializedReference() *SerializedReference
}

// shape extracts a SerializedReference from the values it recognises. A
// shape which claims a value decides the outcome, even when it produces no
// reference.
type shape struct {
	name    string
	extract func(v any) (form *SerializedReference, claimed bool)
}

// shapes are consulted in order.
var shapes = []shape{
	{name: "hook", extract: hookForm},
	{name: "func", extract: funcForm},
}

func hookForm(v any) (*SerializedReference, bool) {
	hook, ok := v.(ReferenceHook)
	if !ok {
		return nil, false
	}

	return hook.SerializedReference(), true
}

func funcForm(v any) (*SerializedReference, bool) {
	fn := reflect.ValueOf(v)
	if fn.Kind() != reflect.Func {
		return nil, false
	}

	if fn.IsNil() {
		return nil, true
	}

	rf := runtime.FuncForPC(fn.Pointer())
	if rf == nil {
		return nil, true
	}

	owner, impl, ok := splitFuncName(rf.Name())
	if !ok {
		logger.Debug().Str("func", rf.Name()).Msg("method values do not expose their receiver, use Bind")
		return nil, true
	}

	return &SerializedReference{
		ImplClass:              owner,
		ImplMethodName:         impl,
		InstantiatedMethodType: EncodeSignature(fn.Type(), 0),
		FunctionType:           fn.Type(),
	}, true
}

// lookup resolves v against each shape in turn.
func lookup(v any) (*SerializedReference, bool) {
	for _, s := range shapes {
		form, claimed := s.extract(v)
		if !claimed {
			continue
		}

		if form == nil {
			logger.Debug().Str("shape", s.name).Type("value", v).Msg("shape produced no reference")
			return nil, false
		}

		logger.Debug().
			Str("shape", s.name).
			Str("class", form.ImplClass).
			Str("method", form.ImplMethodName).
			Str("signature", form.InstantiatedMethodType).
			Msg("resolved reference")
		return form, true
	}

	return nil, false
}

// wrapper is implemented by the references built in this package, giving
// access to the func value they call.
type wrapper interface {
	wrapped() any
}

// methodValueName returns the method name when v is, or wraps, a method value.
func methodValueName(v any) (string, bool) {
	if w, ok := v.(wrapper); ok {
		v = w.wrapped()
	}

	fn := reflect.ValueOf(v)
	if fn.Kind() != reflect.Func || fn.IsNil() {
		return "", false
	}

	rf := runtime.FuncForPC(fn.Pointer())
	if rf == nil {
		return "", false
	}

	full, found := strings.CutSuffix(rf.Name(), methodValueSuffix)
	if !found {
		return "", false
	}

	_, impl, _ := splitFuncName(full)
	return impl, true
}

func lookupOrError(v any) (*SerializedReference, error) {
	form, ok := lookup(v)
	if !ok {
		return nil, NotAReferenceError{Value: v}
	}

	return form, nil
}

const (
	methodValueSuffix = "-fm"
	genericElision    = "[...]"
)

// splitFuncName divides a runtime function name into its owner and
// implementation name. Method values cannot be described and report false.
//
//	"bytes.(*Buffer).String"        -> "bytes.(*Buffer)", "String"
//	"example.com/pkg.TestX.func1.2" -> "example.com/pkg", "TestX.func1.2"
func splitFuncName(full string) (owner string, impl string, ok bool) {
	if strings.HasSuffix(full, methodValueSuffix) {
		return "", "", false
	}

	full = strings.ReplaceAll(full, genericElision, "")
	pathEnd := strings.LastIndexByte(full, '/') + 1
	dot := strings.IndexByte(full[pathEnd:], '.')
	if dot == -1 {
		return "", full, true
	}

	pkg := full[:pathEnd+dot]
	segments := make([]string, 0)
	for _, segment := range strings.Split(full[pathEnd+dot+1:], ".") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}

	if len(segments) == 0 {
		return "", pkg, true
	}

	if isSynthesized(segments) {
		return pkg, strings.Join(segments, "."), true
	}

	last := len(segments) - 1
	if last == 0 {
		return pkg, segments[last], true
	}
	return pkg + "." + strings.Join(segments[:last], "."), segments[last], true
}

// isSynthesized reports whether any segment of an implementation name is
// one the compiler generates for a function literal: "func<N>", a bare
// "<N>" for literals nested inside literals, or "gowrap<N>". Literals are
// always named under an enclosing function or "glob", so the first segment
// is a declared name.
func isSynthesized(segments []string) bool {
	if len(segments) < 2 {
		return false
	}

	for _, segment := range segments[1:] {
		if isDigits(segment) {
			return true
		}

		for _, prefix := range []string{"func", "gowrap"} {
			if rest, found := strings.CutPrefix(segment, prefix); found && isDigits(rest) {
				return true
			}
		}
	}

	return false
}

func isSynthesizedName(impl string) bool {
	return isSynthesized(strings.Split(impl, "."))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}
