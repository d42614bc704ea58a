package refassert

import "github.com/hbomb79/go-refassert/lambdas"

// ErrorMessage returns a matcher which checks the message of an error.
func ErrorMessage(matcher Matcher[string]) Matcher[error] {
	return MustDerive(lambdas.Of(error.Error), matcher)
}

// ErrorMessageContains returns a matcher which accepts errors whose message
// contains substring.
func ErrorMessageContains(substring string) Matcher[error] {
	return ErrorMessage(MatchStringContains(substring))
}
