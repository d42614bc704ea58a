// Package lambdas recovers how a callable was built: whether it names an existing
// function or method or is a function literal, the parameter types it was
// instantiated with, its implementation name and any arguments bound into it.
//
// A callable is anything implementing ReferenceHook (see Of and Bind), or a
// plain Go func value.
package lambdas

import (
	"reflect"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Descriptor gathers everything known about a callable.
type Descriptor struct {
	ImplementationName string
	ParameterTypes     []reflect.Type
	CapturedArguments  Captured

	// DirectReference is true when the callable refers to an existing
	// function or method rather than a function literal.
	DirectReference bool
}

// Describe introspects callable, resolving its parameter types in the
// reference's own context. Repeated calls on the same callable yield equal
// descriptors.
func Describe(callable any) (Descriptor, error) {
	form, err := lookupOrError(callable)
	if err != nil {
		return Descriptor{}, err
	}

	params, err := resolveParameters(form, loaderFor(form))
	if err != nil {
		return Descriptor{}, err
	}

	return Descriptor{
		ImplementationName: form.ImplMethodName,
		ParameterTypes:     params,
		CapturedArguments:  Captured{form: form},
		DirectReference:    !isSynthesizedName(form.ImplMethodName),
	}, nil
}

// IsLambda reports whether callable exposes a SerializedReference at all.
func IsLambda(callable any) bool {
	_, ok := lookup(callable)
	return ok
}

// IsMethodReference reports whether callable is a reference to an existing
// named function or method, as opposed to a function literal (including a
// literal which only forwards to another call).
func IsMethodReference(callable any) bool {
	form, ok := lookup(callable)
	if !ok {
		return false
	}

	return !isSynthesizedName(form.ImplMethodName)
}

// MethodValueName reports whether callable is a method value (x.M), directly
// or wrapped by Of, and if so returns the method name. Method values hide
// their receiver, so they are neither lambdas nor method references; Bind
// captures the receiver instead.
func MethodValueName(callable any) (string, bool) {
	return methodValueName(callable)
}

// GetParameterRefs parses the parameter types of callable without resolving
// them.
func GetParameterRefs(callable any) ([]TypeRef, error) {
	form, err := lookupOrError(callable)
	if err != nil {
		return nil, err
	}

	refs, err := ParseSignature(form.InstantiatedMethodType)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing signature of %s", form.ImplMethodName)
	}

	return refs, nil
}

// GetParameterTypes returns the parameter types of callable, resolved
// against the types reachable from the callable itself and the predeclared
// types.
func GetParameterTypes(callable any) ([]reflect.Type, error) {
	form, err := lookupOrError(callable)
	if err != nil {
		return nil, err
	}

	return resolveParameters(form, loaderFor(form))
}

// GetParameterTypesIn is GetParameterTypes using loader as the only context.
func GetParameterTypesIn(callable any, loader Loader) ([]reflect.Type, error) {
	form, err := lookupOrError(callable)
	if err != nil {
		return nil, err
	}

	return resolveParameters(form, loader)
}

// GetMethodName returns the implementation name of callable.
func GetMethodName(callable any) (string, error) {
	form, err := lookupOrError(callable)
	if err != nil {
		return "", err
	}

	return form.ImplMethodName, nil
}

// GetCapturedArguments returns a view over the arguments bound into callable.
func GetCapturedArguments(callable any) (Captured, error) {
	form, err := lookupOrError(callable)
	if err != nil {
		return Captured{}, err
	}

	return Captured{form: form}, nil
}

// resolveParameters resolves every parameter, reporting all that fail
// rather than only the first.
func resolveParameters(form *SerializedReference, loader Loader) ([]reflect.Type, error) {
	refs, err := ParseSignature(form.InstantiatedMethodType)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing signature of %s", form.ImplMethodName)
	}

	var resolveErr *multierror.Error
	types := make([]reflect.Type, len(refs))
	for i, ref := range refs {
		t, err := ref.Resolve(loader)
		if err != nil {
			resolveErr = multierror.Append(resolveErr, err)
			continue
		}

		types[i] = t
	}

	if err := resolveErr.ErrorOrNil(); err != nil {
		return nil, errors.Wrapf(err, "resolving parameters of %s", form.ImplMethodName)
	}

	return types, nil
}
