// Package refassert builds assertion matchers out of function references. A matcher
// derived from a method expression such as error.Error names and describes
// itself, so failure messages need no hand-written text:
//
//	refassert.AssertThat(t, err, refassert.ErrorMessageContains("timeout"))
package refassert

import (
	"strings"

	"github.com/hbomb79/go-refassert/internal/render"
)

// SelfDescribing is implemented by anything able to render a description
// of itself, most notably matchers.
type SelfDescribing interface {
	DescribeTo(description Description)
}

// Matcher decides whether a value is acceptable, and explains itself when
// it is not.
type Matcher[T any] interface {
	SelfDescribing

	// Matches returns true if the value is accepted by this matcher.
	Matches(actual T) bool

	// DescribeMismatch writes why actual was rejected. It is only
	// meaningful after Matches has returned false for the same value.
	DescribeMismatch(actual T, description Description)
}

// Description accumulates the text produced by DescribeTo and
// DescribeMismatch. Each method returns the description to allow chaining.
type Description interface {
	AppendText(text string) Description
	AppendValue(value any) Description
	AppendDescriptionOf(value SelfDescribing) Description
	AppendList(start string, separator string, end string, values []SelfDescribing) Description
}

// StringDescription is a Description which collects into a string.
type StringDescription struct {
	builder strings.Builder
}

func NewStringDescription() *StringDescription {
	return &StringDescription{}
}

func (d *StringDescription) AppendText(text string) Description {
	d.builder.WriteString(text)
	return d
}

// AppendValue writes a rendering of value: strings are quoted, anything
// else is wrapped in angle brackets.
func (d *StringDescription) AppendValue(value any) Description {
	if s, ok := value.(string); ok {
		d.builder.WriteString(render.Quoted(s))
		return d
	}

	d.builder.WriteString("<")
	d.builder.WriteString(render.Value(value))
	d.builder.WriteString(">")
	return d
}

func (d *StringDescription) AppendDescriptionOf(value SelfDescribing) Description {
	value.DescribeTo(d)
	return d
}

func (d *StringDescription) AppendList(start string, separator string, end string, values []SelfDescribing) Description {
	d.builder.WriteString(start)
	for i, value := range values {
		if i > 0 {
			d.builder.WriteString(separator)
		}
		value.DescribeTo(d)
	}
	d.builder.WriteString(end)

	return d
}

func (d *StringDescription) String() string {
	return d.builder.String()
}

// Describe renders the description of value.
func Describe(value SelfDescribing) string {
	d := NewStringDescription()
	value.DescribeTo(d)
	return d.String()
}

// DescribeMismatch renders the mismatch description matcher gives for actual.
func DescribeMismatch[T any](matcher Matcher[T], actual T) string {
	d := NewStringDescription()
	matcher.DescribeMismatch(actual, d)
	return d.String()
}

func describeWas(actual any, description Description) {
	description.AppendText("was ").AppendValue(actual)
}
