package refassert_test

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbomb79/go-refassert"
	"github.com/hbomb79/go-refassert/lambdas"
)

type Names []string

func (names Names) Get(index int) string { return names[index] }

type Failure struct {
	message string
}

func (f *Failure) Message() string { return f.message }

type point = struct{ A, B int }

type Pair[T any] struct {
	Left, Right T
}

func firstOf(p Pair[point]) point { return p.Left }

// fakeFunc is a Func whose reference is supplied directly, allowing shapes
// which Of and Bind never produce.
type fakeFunc[T, R any] struct {
	form  *lambdas.SerializedReference
	apply func(T) R
}

func (fn fakeFunc[T, R]) SerializedReference() *lambdas.SerializedReference { return fn.form }

func (fn fakeFunc[T, R]) Apply(t T) R { return fn.apply(t) }

func messageReference(captured ...any) *lambdas.SerializedReference {
	fnType := reflect.TypeOf((*Failure).Message)
	return &lambdas.SerializedReference{
		ImplClass:              "github.com/hbomb79/go-refassert_test.(*Failure)",
		ImplMethodName:         "Message",
		InstantiatedMethodType: lambdas.EncodeSignature(fnType, 0),
		CapturedArgs:           captured,
		FunctionType:           fnType,
	}
}

func Test_ErrorMessageContains(t *testing.T) {
	matcher := refassert.ErrorMessageContains("foo")

	assert.True(t, matcher.Matches(errors.New("foobar")))
	assert.True(t, matcher.Matches(fmt.Errorf("wrapped: %w", errors.New("foo"))))
	assert.False(t, matcher.Matches(errors.New("bar")))
	assert.False(t, matcher.Matches(nil))

	assert.Equal(t, `error with Error() a string containing "foo"`, refassert.Describe(matcher))
	assert.Equal(t, `Error() was "bar"`, refassert.DescribeMismatch(matcher, errors.New("bar")))
	assert.Equal(t, "was nil", refassert.DescribeMismatch(matcher, nil))
	assert.Empty(t, refassert.DescribeMismatch(matcher, errors.New("food")))
}

func Test_ErrorMessage(t *testing.T) {
	matcher := refassert.ErrorMessage(refassert.MatchEqual("abcd"))

	assert.True(t, matcher.Matches(errors.New("abcd")))
	assert.False(t, matcher.Matches(errors.New("foobar")))

	description := refassert.Describe(matcher)
	assert.Contains(t, description, "error")
	assert.Contains(t, description, "Error")
	assert.Contains(t, description, "abcd")
	assert.Contains(t, refassert.DescribeMismatch(matcher, errors.New("foobar")), `was "foobar"`)
}

func Test_Derive(t *testing.T) {
	t.Run("Bound method reference", func(t *testing.T) {
		names := Names{"0", "1", "2", "3"}
		matcher, err := refassert.Derive(lambdas.Bind(names, Names.Get), refassert.MatchEqual("3"))
		require.NoError(t, err)

		assert.True(t, matcher.Matches(3))
		assert.False(t, matcher.Matches(2))
		assert.Equal(t, `Names instance<[0 1 2 3]>Get(int) "3"`, refassert.Describe(matcher))
		assert.Equal(t, `Names instance<[0 1 2 3]>Get(int) was "2"`, refassert.DescribeMismatch(matcher, 2))
	})

	t.Run("Pointer receiver method expression", func(t *testing.T) {
		matcher, err := refassert.Derive(lambdas.Of((*Failure).Message), refassert.MatchStringContains("disk"))
		require.NoError(t, err)

		assert.True(t, matcher.Matches(&Failure{message: "disk full"}))
		assert.False(t, matcher.Matches(&Failure{message: "out of memory"}))
		assert.False(t, matcher.Matches(nil))
		assert.Equal(t, `*Failure with Message() a string containing "disk"`, refassert.Describe(matcher))
		assert.Equal(t, "was nil", refassert.DescribeMismatch(matcher, nil))
		assert.Equal(t, `Message() was "out of memory"`, refassert.DescribeMismatch(matcher, &Failure{message: "out of memory"}))
	})

	t.Run("Function reference", func(t *testing.T) {
		matcher, err := refassert.Derive(lambdas.Of(strconv.Itoa), refassert.MatchEqual("42"))
		require.NoError(t, err)

		assert.True(t, matcher.Matches(42))
		assert.Equal(t, `int with Itoa() "42"`, refassert.Describe(matcher))
	})

	t.Run("Function literal is rejected", func(t *testing.T) {
		_, err := refassert.Derive(lambdas.Of(func(err error) string { return err.Error() }), refassert.MatchEqual(""))
		require.Error(t, err)
		assert.ErrorIs(t, err, refassert.ErrNotMethodReference)

		var illegal refassert.IllegalArgumentError
		require.ErrorAs(t, err, &illegal)
		assert.Equal(t, "is not a method reference", illegal.Reason)
		assert.Contains(t, illegal.Reference, "func")
	})

	t.Run("Method value is rejected with a hint", func(t *testing.T) {
		names := Names{"0", "1"}

		_, err := refassert.Derive(lambdas.Of(names.Get), refassert.MatchEqual("1"))
		assert.ErrorIs(t, err, refassert.ErrNotMethodReference)

		var illegal refassert.IllegalArgumentError
		require.ErrorAs(t, err, &illegal)
		assert.Equal(t, "Get", illegal.Reference)
		assert.Contains(t, illegal.Reason, "lambdas.Bind(receiver, Type.Get)")
	})

	t.Run("Generic parameter type", func(t *testing.T) {
		matcher, err := refassert.Derive(lambdas.Of(firstOf), refassert.MatchStruct(point{A: 1}))
		require.NoError(t, err)

		assert.True(t, matcher.Matches(Pair[point]{Left: point{A: 1}}))
		assert.False(t, matcher.Matches(Pair[point]{Left: point{B: 1}}))
		assert.Contains(t, refassert.Describe(matcher), "Pair[struct { A int; B int }] with firstOf() deeply equal to")
	})

	t.Run("Bound function literal is rejected", func(t *testing.T) {
		_, err := refassert.Derive(lambdas.Bind(1, func(a, b int) int { return a + b }), refassert.MatchEqual(2))
		assert.ErrorIs(t, err, refassert.ErrNotMethodReference)
	})

	t.Run("Not a lambda is rejected", func(t *testing.T) {
		_, err := refassert.Derive[any, string](fakeFunc[any, string]{}, refassert.MatchEqual(""))
		require.Error(t, err)
		assert.ErrorIs(t, err, refassert.ErrNotMethodReference)
		assert.Contains(t, err.Error(), "fakeFunc")
	})

	t.Run("No parameters", func(t *testing.T) {
		reference := fakeFunc[any, string]{form: &lambdas.SerializedReference{
			ImplClass:              "example.com/clock",
			ImplMethodName:         "Now",
			InstantiatedMethodType: "()Lstring;",
		}}

		_, err := refassert.Derive[any, string](reference, refassert.MatchEqual(""))
		var illegal refassert.IllegalArgumentError
		require.ErrorAs(t, err, &illegal)
		assert.Equal(t, "Now accepts no parameters", illegal.Error())
	})

	t.Run("Unresolvable parameter", func(t *testing.T) {
		reference := fakeFunc[any, string]{form: &lambdas.SerializedReference{
			ImplClass:              "example.com/ghost",
			ImplMethodName:         "Haunt",
			InstantiatedMethodType: "(Lexample.com/ghost.Ghost;)Lstring;",
		}}

		_, err := refassert.Derive[any, string](reference, refassert.MatchEqual(""))
		require.Error(t, err)
		assert.ErrorAs(t, err, &lambdas.ClassResolutionError{})
		assert.Contains(t, err.Error(), "example.com.ghost.Ghost")
	})

	t.Run("Too many captured arguments", func(t *testing.T) {
		reference := fakeFunc[any, string]{form: messageReference("first", "second")}

		assert.Panics(t, func() {
			_, _ = refassert.Derive[any, string](reference, refassert.MatchEqual(""))
		})
	})

	t.Run("Wrong type", func(t *testing.T) {
		reference := fakeFunc[any, string]{
			form: messageReference(),
			apply: func(v any) string {
				return v.(*Failure).Message()
			},
		}

		matcher, err := refassert.Derive[any, string](reference, refassert.MatchEqual("boom"))
		require.NoError(t, err)

		assert.True(t, matcher.Matches(&Failure{message: "boom"}))
		assert.False(t, matcher.Matches(5))
		assert.Equal(t, "was a int (<5>)", refassert.DescribeMismatch[any](matcher, 5))
		assert.Equal(t, `was a string ("boom")`, refassert.DescribeMismatch[any](matcher, "boom"))
		assert.Equal(t, "was nil", refassert.DescribeMismatch[any](matcher, nil))
	})

	t.Run("Captured string argument", func(t *testing.T) {
		reference := fakeFunc[any, string]{form: messageReference("prefix")}

		matcher, err := refassert.Derive[any, string](reference, refassert.MatchEqual("x"))
		require.NoError(t, err)
		assert.Equal(t, `string instance<prefix>Message(*Failure) "x"`, refassert.Describe(matcher))
	})
}

func Test_DeriveNamed(t *testing.T) {
	length := lambdas.Of(func(s string) int { return len(s) })

	matcher, err := refassert.DeriveNamed(length, "len()", "a string with length", refassert.MatchEqual(5))
	require.NoError(t, err)

	assert.True(t, matcher.Matches("hello"))
	assert.False(t, matcher.Matches("hi"))
	assert.Equal(t, "a string with length <5>", refassert.Describe(matcher))
	assert.Equal(t, "len() was <2>", refassert.DescribeMismatch(matcher, "hi"))

	_, err = refassert.DeriveNamed[any, string](fakeFunc[any, string]{}, "nothing", "nothing", refassert.MatchEqual(""))
	assert.ErrorIs(t, err, lambdas.ErrNotAReference)
}

func Test_MustDerive(t *testing.T) {
	assert.NotPanics(t, func() {
		refassert.MustDerive(lambdas.Of(error.Error), refassert.MatchEqual(""))
	})
	assert.Panics(t, func() {
		refassert.MustDerive(lambdas.Of(func(s string) int { return len(s) }), refassert.MatchEqual(1))
	})
	assert.Panics(t, func() {
		refassert.MustDeriveNamed[any, string](fakeFunc[any, string]{}, "n", "d", refassert.MatchEqual(""))
	})
}
