package refassert

type allOfMatcher[T any] struct {
	matchers []Matcher[T]
}

// AllOf accepts a list of matchers. The returned matcher accepts
// a value only once every one of the matchers accepts it. The
// mismatch description reports the first matcher which rejected the value.
func AllOf[T any](matchers ...Matcher[T]) Matcher[T] {
	return &allOfMatcher[T]{matchers: matchers}
}

func (allOf *allOfMatcher[T]) Matches(t T) bool {
	for _, m := range allOf.matchers {
		if !m.Matches(t) {
			return false
		}
	}

	return true
}

func (allOf *allOfMatcher[T]) DescribeTo(description Description) {
	description.AppendList("(", " and ", ")", selfDescribing(allOf.matchers))
}

func (allOf *allOfMatcher[T]) DescribeMismatch(t T, description Description) {
	for _, m := range allOf.matchers {
		if !m.Matches(t) {
			description.AppendDescriptionOf(m).AppendText(" ")
			m.DescribeMismatch(t, description)
			return
		}
	}
}

type anyOfMatcher[T any] struct {
	matchers []Matcher[T]
}

// AnyOf accepts a list of matchers. The returned matcher accepts
// a value once any of the matchers accepts it.
func AnyOf[T any](matchers ...Matcher[T]) Matcher[T] {
	return &anyOfMatcher[T]{matchers: matchers}
}

func (anyOf *anyOfMatcher[T]) Matches(t T) bool {
	for _, m := range anyOf.matchers {
		if m.Matches(t) {
			return true
		}
	}

	return false
}

func (anyOf *anyOfMatcher[T]) DescribeTo(description Description) {
	description.AppendList("(", " or ", ")", selfDescribing(anyOf.matchers))
}

func (anyOf *anyOfMatcher[T]) DescribeMismatch(t T, description Description) {
	describeWas(t, description)
}

type notMatcher[T any] struct {
	matcher Matcher[T]
}

// Not inverts the provided matcher.
func Not[T any](matcher Matcher[T]) Matcher[T] {
	return &notMatcher[T]{matcher: matcher}
}

func (not *notMatcher[T]) Matches(t T) bool {
	return !not.matcher.Matches(t)
}

func (not *notMatcher[T]) DescribeTo(description Description) {
	description.AppendText("not ").AppendDescriptionOf(not.matcher)
}

func (not *notMatcher[T]) DescribeMismatch(t T, description Description) {
	describeWas(t, description)
}

func selfDescribing[T any](matchers []Matcher[T]) []SelfDescribing {
	out := make([]SelfDescribing, len(matchers))
	for i, m := range matchers {
		out[i] = m
	}

	return out
}
