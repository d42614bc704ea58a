// Package render turns arbitrary values into the short text used inside
// matcher descriptions and derived matcher names.
package render

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/davecgh/go-spew/spew"
)

var config = spew.ConfigState{
	Indent:                  " ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// IsScalar reports whether values of the kind print the same way under every
// formatter we use.
func IsScalar(kind reflect.Kind) bool {
	switch kind {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}

	return false
}

// Value renders v as plain text. Stringers and errors render themselves,
// scalars and strings go through fmt, and anything else is handed to spew so
// that pointers are followed instead of printed as addresses.
func Value(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case string:
		return val
	case fmt.Stringer, error:
		return fmt.Sprint(val)
	}

	if IsScalar(reflect.TypeOf(v).Kind()) {
		return fmt.Sprint(v)
	}

	return config.Sprintf("%v", v)
}

// Quoted is Value, except strings are quoted so that empty or whitespace
// values remain visible in a description.
func Quoted(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}

	return Value(v)
}
