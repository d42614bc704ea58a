package refassert

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"

	"github.com/hbomb79/go-refassert/lambdas"
)

// derivedMatcher applies transform to the value under test and hands the
// result to inner.
type derivedMatcher[T, R any] struct {
	expectedType reflect.Type
	name         string
	description  string
	transform    lambdas.Func[T, R]
	inner        Matcher[R]
}

// Derive builds a matcher which applies reference to the value under test
// and matches the result using inner. The matcher's name and description
// are generated from the reference:
//
//	Derive(lambdas.Of(error.Error), MatchStringContains("foo"))
//	    describes itself as `error with Error() a string containing "foo"`
//	Derive(lambdas.Bind(names, Names.Get), MatchEqual("3"))
//	    describes itself as `Names instance<[0 1 2 3]>Get(int) "3"`
//
// reference must refer to an existing function or method, otherwise an
// IllegalArgumentError is returned. Use DeriveNamed for function literals,
// and lambdas.Bind rather than a method value (x.M) to capture a receiver.
func Derive[T, R any](reference lambdas.Func[T, R], inner Matcher[R]) (Matcher[T], error) {
	if !lambdas.IsMethodReference(reference) {
		if method, ok := lambdas.MethodValueName(reference); ok {
			return nil, errors.WithStack(IllegalArgumentError{
				Reference: method,
				Reason:    fmt.Sprintf("is a method value, which hides its receiver; use lambdas.Bind(receiver, Type.%s)", method),
			})
		}

		return nil, errors.WithStack(IllegalArgumentError{
			Reference: referenceName(reference),
			Reason:    "is not a method reference",
		})
	}

	desc, err := lambdas.Describe(reference)
	if err != nil {
		return nil, errors.Wrap(err, "describing method reference")
	}

	if len(desc.ParameterTypes) == 0 {
		return nil, errors.WithStack(IllegalArgumentError{
			Reference: desc.ImplementationName,
			Reason:    "accepts no parameters",
		})
	}

	if captured := desc.CapturedArguments.Len(); captured > 1 {
		panic(fmt.Sprintf("refassert: method reference %s captured %d arguments, expected at most one", desc.ImplementationName, captured))
	}

	name, description := deriveLabels(desc)
	return &derivedMatcher[T, R]{
		expectedType: desc.ParameterTypes[0],
		name:         name,
		description:  description,
		transform:    reference,
		inner:        inner,
	}, nil
}

// DeriveNamed builds a matcher like Derive, but with the name and
// description provided. Any lambda is accepted, including function literals.
func DeriveNamed[T, R any](reference lambdas.Func[T, R], name string, description string, inner Matcher[R]) (Matcher[T], error) {
	params, err := lambdas.GetParameterTypes(reference)
	if err != nil {
		return nil, errors.Wrapf(err, "deriving matcher %q", name)
	}

	if len(params) == 0 {
		return nil, errors.WithStack(IllegalArgumentError{Reference: name, Reason: "accepts no parameters"})
	}

	return &derivedMatcher[T, R]{
		expectedType: params[0],
		name:         name,
		description:  description,
		transform:    reference,
		inner:        inner,
	}, nil
}

// MustDerive is Derive, panicking on error.
func MustDerive[T, R any](reference lambdas.Func[T, R], inner Matcher[R]) Matcher[T] {
	matcher, err := Derive(reference, inner)
	if err != nil {
		panic(err)
	}

	return matcher
}

// MustDeriveNamed is DeriveNamed, panicking on error.
func MustDeriveNamed[T, R any](reference lambdas.Func[T, R], name string, description string, inner Matcher[R]) Matcher[T] {
	matcher, err := DeriveNamed(reference, name, description, inner)
	if err != nil {
		panic(err)
	}

	return matcher
}

func deriveLabels(desc lambdas.Descriptor) (name string, description string) {
	param := lambdas.SimpleName(desc.ParameterTypes[0])
	if desc.CapturedArguments.Len() == 0 {
		name = desc.ImplementationName + "()"
		return name, param + " with " + name
	}

	arg := desc.CapturedArguments.At(0)
	name = fmt.Sprintf("%s instance<%s>%s(%s)", arg.TypeName(), arg, desc.ImplementationName, param)
	return name, name
}

func referenceName(reference any) string {
	if name, err := lambdas.GetMethodName(reference); err == nil {
		return name
	}

	return fmt.Sprintf("%T", reference)
}

func (m *derivedMatcher[T, R]) Matches(actual T) bool {
	if !m.accepts(actual) {
		return false
	}

	return m.inner.Matches(m.transform.Apply(actual))
}

func (m *derivedMatcher[T, R]) DescribeTo(description Description) {
	description.AppendText(m.description).AppendText(" ").AppendDescriptionOf(m.inner)
}

// DescribeMismatch writes the matcher's name followed by the inner
// matcher's mismatch for the transformed value.
func (m *derivedMatcher[T, R]) DescribeMismatch(actual T, description Description) {
	if !m.accepts(actual) {
		m.describeWrongType(actual, description)
		return
	}

	result := m.transform.Apply(actual)
	if m.inner.Matches(result) {
		return
	}

	description.AppendText(m.name).AppendText(" ")
	m.inner.DescribeMismatch(result, description)
}

// accepts reports whether actual is an instance of the reference's first
// parameter type. Nil interfaces and nil pointers are never instances.
func (m *derivedMatcher[T, R]) accepts(actual T) bool {
	v := any(actual)
	if v == nil {
		return false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return false
	}

	return rv.Type().AssignableTo(m.expectedType)
}

func (m *derivedMatcher[T, R]) describeWrongType(actual T, description Description) {
	v := any(actual)
	if v == nil {
		description.AppendText("was nil")
		return
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		description.AppendText("was nil")
		return
	}

	description.
		AppendText("was a ").
		AppendText(lambdas.SimpleName(rv.Type())).
		AppendText(" (").
		AppendValue(v).
		AppendText(")")
}
