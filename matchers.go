package refassert

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/hbomb79/go-refassert/internal/render"
	"github.com/hbomb79/go-refassert/lambdas"
)

type equalMatcher[T comparable] struct {
	target T
}

func (eqMatch *equalMatcher[T]) Matches(t T) bool {
	return t == eqMatch.target
}

func (eqMatch *equalMatcher[T]) DescribeTo(description Description) {
	description.AppendValue(eqMatch.target)
}

func (eqMatch *equalMatcher[T]) DescribeMismatch(t T, description Description) {
	describeWas(t, description)
}

// MatchEqual returns a matcher which will check if the
// value provided is equal to the values provided.
func MatchEqual[T comparable](val T) Matcher[T] {
	return &equalMatcher[T]{target: val}
}

type stringContainsMatcher struct{ target string }

func (contains *stringContainsMatcher) Matches(value string) bool {
	return strings.Contains(value, contains.target)
}

func (contains *stringContainsMatcher) DescribeTo(description Description) {
	description.AppendText("a string containing ").AppendValue(contains.target)
}

func (contains *stringContainsMatcher) DescribeMismatch(value string, description Description) {
	describeWas(value, description)
}

// MatchStringContains returns a matcher which tests if strings
// contain the provided substring.
func MatchStringContains(target string) Matcher[string] {
	return &stringContainsMatcher{target: target}
}

// exportAll lets cmp look inside unexported fields, which test-local
// structs are usually full of.
var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

type structEqualMatcher[T any] struct{ target T }

func (eqMatch *structEqualMatcher[T]) Matches(t T) bool {
	return cmp.Equal(eqMatch.target, t, exportAll)
}

func (eqMatch *structEqualMatcher[T]) DescribeTo(description Description) {
	description.AppendText("deeply equal to ").AppendValue(eqMatch.target)
}

func (eqMatch *structEqualMatcher[T]) DescribeMismatch(t T, description Description) {
	description.AppendText("differs (-want +got):\n").AppendText(cmp.Diff(eqMatch.target, t, exportAll))
}

// MatchStruct returns a matcher which performs a deep-equality
// check, including unexported fields.
func MatchStruct[T any](target T) Matcher[T] {
	return &structEqualMatcher[T]{target: target}
}

// MatchStructPartial returns a matcher which tests that
// all non-zero values inside of the provided struct
// match the same fields inside of the values tested. That is
// to say, a target with a zero-value for a field will NOT check
// if that value is also a zero-value in the value.
func MatchStructPartial[T any](target any) Matcher[T] {
	fieldValues := make(map[string]any)
	rt := reflect.TypeOf(target)
	rv := reflect.ValueOf(target)

	// Check if t is a struct
	if rt == nil || rt.Kind() != reflect.Struct {
		panic(fmt.Sprintf("MatchStructPartial expects a struct as it's argument, not %T", target))
	}

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		fieldValue := rv.Field(i)

		// Skip unexported fields
		if !field.IsExported() {
			continue
		}

		// Check for non-zero value (excluding interfaces)
		if fieldValue.Kind() != reflect.Interface && !fieldValue.IsZero() {
			fieldValues[field.Name] = fieldValue.Interface()
		}
	}

	return &structFieldMatcher[T]{fieldsAndValues: fieldValues}
}

type structFieldMatcher[T any] struct {
	fieldsAndValues map[string]any
}

func (fieldEqMatch *structFieldMatcher[T]) Matches(t T) bool {
	ok, _ := fieldEqMatch.check(t)
	return ok
}

func (fieldEqMatch *structFieldMatcher[T]) DescribeTo(description Description) {
	description.AppendText("a struct with fields ").AppendValue(fieldEqMatch.fieldsAndValues)
}

func (fieldEqMatch *structFieldMatcher[T]) DescribeMismatch(t T, description Description) {
	if _, reason := fieldEqMatch.check(t); reason != "" {
		description.AppendText(reason)
	}
}

// check returns whether t is accepted and, if not, why.
func (fieldEqMatch *structFieldMatcher[T]) check(t T) (bool, string) {
	rt := reflect.TypeOf(t)
	rv := reflect.ValueOf(t)

	if rt == nil || rt.Kind() != reflect.Struct {
		return false, fmt.Sprintf("was a %s, not a struct", lambdas.SimpleName(rt))
	}

	for field, expectedValue := range fieldEqMatch.fieldsAndValues {
		structField, ok := rt.FieldByName(field)
		if !ok {
			return false, fmt.Sprintf("field %s is missing", field)
		}

		if !structField.IsExported() {
			return false, fmt.Sprintf("field %s is unexported", field)
		}

		fieldValue := rv.FieldByIndex(structField.Index)
		if ok, reason := matchField(field, fieldValue, expectedValue); !ok {
			return false, reason
		}
	}

	return true, ""
}

// matchField compares a single field against its expectation. Expectations
// may be plain values, or predicates of the form func(V) bool where the
// field is assignable to V.
func matchField(name string, fieldValue reflect.Value, expectedValue any) (bool, string) {
	actual := fieldValue.Interface()
	if expectedValue == nil {
		switch fieldValue.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			if fieldValue.IsNil() {
				return true, ""
			}
		}

		return false, fmt.Sprintf("field %s was %s, expected nil", name, render.Quoted(actual))
	}

	expected := reflect.ValueOf(expectedValue)
	if isPredicate(expected.Type()) {
		if !fieldValue.Type().AssignableTo(expected.Type().In(0)) {
			return false, fmt.Sprintf("field %s has type %s, predicate accepts %s", name, fieldValue.Type(), expected.Type().In(0))
		}

		if !expected.Call([]reflect.Value{fieldValue})[0].Bool() {
			return false, fmt.Sprintf("field %s was %s, which does not satisfy the predicate", name, render.Quoted(actual))
		}

		return true, ""
	}

	if !fieldValue.Type().AssignableTo(expected.Type()) {
		return false, fmt.Sprintf("field %s has type %s, expected %s", name, fieldValue.Type(), expected.Type())
	}

	if !reflect.DeepEqual(actual, expectedValue) {
		return false, fmt.Sprintf("field %s was %s, expected %s", name, render.Quoted(actual), render.Quoted(expectedValue))
	}

	return true, ""
}

func isPredicate(t reflect.Type) bool {
	return t.Kind() == reflect.Func &&
		t.NumIn() == 1 &&
		t.NumOut() == 1 &&
		t.Out(0).Kind() == reflect.Bool
}

// MatchStructFields returns a matcher which will match values which
// contain the field values specified. This is achieved via reflection, and
// extra fields in the value are ignored (however a missing field will cause
// a negative match). A field value may also be a predicate (func(V) bool),
// which is called with the field's value.
func MatchStructFields[T any](fieldsAndValues map[string]any) Matcher[T] {
	return &structFieldMatcher[T]{fieldsAndValues: fieldsAndValues}
}

type predicateMatcher[T any] struct {
	predicate func(T) bool
	name      string
}

func (pred *predicateMatcher[T]) Matches(t T) bool {
	return pred.predicate(t)
}

func (pred *predicateMatcher[T]) DescribeTo(description Description) {
	description.AppendText("a value satisfying ").AppendText(pred.name)
}

func (pred *predicateMatcher[T]) DescribeMismatch(t T, description Description) {
	describeWas(t, description)
}

// MatchPredicate returns a matcher which accepts any value the predicate
// returns true for. Named predicates are described by their name.
func MatchPredicate[T any](predicate func(T) bool) Matcher[T] {
	name := "predicate"
	if lambdas.IsMethodReference(predicate) {
		if method, err := lambdas.GetMethodName(predicate); err == nil {
			name = method
		}
	}

	return &predicateMatcher[T]{predicate: predicate, name: name}
}
