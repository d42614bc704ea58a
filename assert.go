package refassert

import "github.com/stretchr/testify/assert"

// TestingT is a minimal interface which mimics the standard
// [testing.T] struct. This is used in places that refassert accepts
// a testing.T in order to allow unit testing of it's behaviour.
type TestingT interface {
	Errorf(format string, args ...any)
	Logf(format string, args ...any)
	Error(args ...any)
	Log(args ...any)
}

// AssertThat checks actual against the matcher, reporting an error on t
// if it is rejected. The report contains the matcher's description and
// mismatch description:
//
//	Expected: error with Error() a string containing "abcd"
//	     but: Error() was "foobar"
func AssertThat[T any](t TestingT, actual T, matcher Matcher[T]) bool {
	if matcher.Matches(actual) {
		return true
	}

	description := NewStringDescription()
	description.
		AppendText("\nExpected: ").
		AppendDescriptionOf(matcher).
		AppendText("\n     but: ")
	matcher.DescribeMismatch(actual, description)

	t.Error(description.String())
	return false
}

// Condition adapts a matcher for use with testify's assert.Condition.
func Condition[T any](actual T, matcher Matcher[T]) assert.Comparison {
	return func() bool {
		return matcher.Matches(actual)
	}
}
