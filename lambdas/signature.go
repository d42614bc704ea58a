package lambdas

import (
	"fmt"
	"reflect"
	"strings"

	multierror "github.com/hashicorp/go-multierror"
)

// ============================================================================
// Instantiated method types
//
//	signature  = "(" { type } ")" result
//	result     = "V" | type { type }
//	type       = { "[" | "*" } ( primitive | class )
//	primitive  = "Z" | "B" | "C" | "S" | "I" | "J" | "F" | "D"
//	class      = "L" name ";"
//
// '[' marks a slice dimension and '*' a pointer. Every type without a
// primitive letter is written as a class: named types by import path and
// name ("Lnet/url.URL;"), predeclared types by name ("Lstring;") and unnamed
// composite types by their reflect rendering. A ';' inside a name, from a
// struct or interface type or a generic type argument, is written as ','.
// ============================================================================

var primitives = map[byte]reflect.Type{
	'Z': reflect.TypeFor[bool](),
	'B': reflect.TypeFor[int8](),
	'C': reflect.TypeFor[int32](),
	'S': reflect.TypeFor[int16](),
	'I': reflect.TypeFor[int](),
	'J': reflect.TypeFor[int64](),
	'F': reflect.TypeFor[float32](),
	'D': reflect.TypeFor[float64](),
}

var primitiveLetters = func() map[reflect.Type]byte {
	letters := make(map[reflect.Type]byte, len(primitives))
	for letter, t := range primitives {
		letters[t] = letter
	}

	return letters
}()

// EncodeSignature renders the function type fn in the signature grammar,
// omitting the first skip parameters (used for receivers captured by Bind).
func EncodeSignature(fn reflect.Type, skip int) string {
	if fn.Kind() != reflect.Func {
		panic(fmt.Sprintf("EncodeSignature expects a function type, not %s", fn))
	}

	sig := &strings.Builder{}
	sig.WriteByte('(')
	for i := skip; i < fn.NumIn(); i++ {
		sig.WriteString(encodeType(fn.In(i)))
	}
	sig.WriteByte(')')

	if fn.NumOut() == 0 {
		sig.WriteByte('V')
	}
	for i := 0; i < fn.NumOut(); i++ {
		sig.WriteString(encodeType(fn.Out(i)))
	}

	return sig.String()
}

func encodeType(t reflect.Type) string {
	if letter, ok := primitiveLetters[t]; ok {
		return string(letter)
	}

	if t.Name() == "" {
		switch t.Kind() {
		case reflect.Slice:
			return "[" + encodeType(t.Elem())
		case reflect.Pointer:
			return "*" + encodeType(t.Elem())
		}
	}

	return "L" + qualifiedName(t) + ";"
}

// qualifiedName is the name a type is written with inside a class token,
// before '/' is rewritten to '.'. It never contains ';'.
func qualifiedName(t reflect.Type) string {
	name := t.String()
	if t.Name() != "" {
		name = t.Name()
		if t.PkgPath() != "" {
			name = t.PkgPath() + "." + name
		}
	}

	return strings.ReplaceAll(name, ";", ",")
}

// TypeName returns the key a Loader is asked for when resolving t from a
// class token, e.g. "net.url.URL" for url.URL.
func TypeName(t reflect.Type) string {
	return strings.ReplaceAll(qualifiedName(t), "/", ".")
}

// ParseSignature extracts the parameter types from an instantiated method
// type. The returned refs are unresolved; see TypeRef.Resolve.
func ParseSignature(signature string) ([]TypeRef, error) {
	open := strings.IndexByte(signature, '(')
	if open == -1 {
		return nil, SignatureError{Signature: signature, Offset: 0, Reason: "missing parameter list"}
	}

	s := &scanner{source: signature, nextByte: open + 1}
	s.scanParameters()

	logger.Debug().
		Str("signature", signature).
		Int("parameters", len(s.refs)).
		Int("errors", len(s.errors)).
		Msg("parsed signature")

	if len(s.errors) > 0 {
		return nil, multierror.Append(nil, s.errors...)
	}

	return s.refs, nil
}

type scanner struct {
	source string
	refs   []TypeRef
	errors []error

	lexemeStartByte int
	nextByte        int
}

func (s *scanner) scanParameters() {
	for {
		if s.atEnd() {
			s.errorAt(s.nextByte, "unterminated parameter list")
			return
		}

		if s.peek() == ')' {
			return
		}

		s.lexemeStartByte = s.nextByte
		if ref, ok := s.scanType(s.lexemeStartByte); ok {
			s.refs = append(s.refs, ref)
		}
	}
}

// scanType consumes a single type token starting at start. On failure the
// error is recorded and at least one byte has been consumed, so scanning can
// carry on and report further problems.
func (s *scanner) scanType(start int) (TypeRef, bool) {
	switch c := s.advance(); c {
	case '[', '*':
		if s.atEnd() {
			s.errorAt(start, "dangling %q", c)
			return TypeRef{}, false
		}

		elem, ok := s.scanType(s.nextByte)
		if !ok {
			return TypeRef{}, false
		}

		kind := Array
		if c == '*' {
			kind = Pointer
		}
		return TypeRef{Kind: kind, Descriptor: s.lexeme(start), Elem: &elem}, true
	case 'L':
		for !s.atEnd() && s.peek() != ';' {
			s.advance()
		}

		if s.atEnd() {
			s.errorAt(start, "unterminated class name")
			return TypeRef{}, false
		}

		s.advance()
		if s.nextByte-start == 2 {
			s.errorAt(start, "empty class name")
			return TypeRef{}, false
		}

		return TypeRef{Kind: Class, Descriptor: s.lexeme(start)}, true
	default:
		if _, ok := primitives[c]; ok {
			return TypeRef{Kind: Primitive, Descriptor: string(c)}, true
		}

		s.errorAt(start, "unexpected %q", c)
		return TypeRef{}, false
	}
}

func (s *scanner) lexeme(start int) string {
	return strings.ReplaceAll(s.source[start:s.nextByte], "/", ".")
}

func (s *scanner) errorAt(offset int, format string, args ...any) {
	s.errors = append(s.errors, SignatureError{
		Signature: s.source,
		Offset:    offset,
		Reason:    fmt.Sprintf(format, args...),
	})
}

func (s *scanner) atEnd() bool {
	return s.nextByte >= len(s.source)
}

func (s *scanner) peek() byte {
	return s.source[s.nextByte]
}

func (s *scanner) advance() byte {
	c := s.source[s.nextByte]
	s.nextByte++
	return c
}
