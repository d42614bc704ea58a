package lambdas

import (
	"fmt"
	"reflect"
	"strings"
)

type TypeKind int

const (
	Primitive TypeKind = iota
	Class
	Array
	Pointer
)

func (k TypeKind) String() string {
	//exhaustive:enforce
	switch k {
	case Primitive:
		return "primitive"
	case Class:
		return "class"
	case Array:
		return "array"
	case Pointer:
		return "pointer"
	}

	return fmt.Sprintf("TypeKind(%d)", int(k))
}

// TypeRef is a single parameter type as written in a signature. Nothing is
// looked up until Resolve is called.
type TypeRef struct {
	Kind TypeKind

	// Descriptor is the matched token with '/' rewritten to '.', such as
	// "I", "Lnet.url.URL;" or "[*Lbytes.Buffer;".
	Descriptor string

	// Elem is the wrapped type for Array and Pointer refs.
	Elem *TypeRef
}

// Name returns the Go-style qualified name of the type, e.g. "[]net.url.URL".
func (ref TypeRef) Name() string {
	//exhaustive:enforce
	switch ref.Kind {
	case Primitive:
		return primitives[ref.Descriptor[0]].Name()
	case Class:
		return ref.className()
	case Array:
		return "[]" + ref.Elem.Name()
	case Pointer:
		return "*" + ref.Elem.Name()
	}

	panic("unreachable")
}

// SimpleName drops the package qualifier from Name, keeping any slice or
// pointer markers and generic arguments.
func (ref TypeRef) SimpleName() string {
	//exhaustive:enforce
	switch ref.Kind {
	case Primitive:
		return ref.Name()
	case Class:
		return simpleClassName(ref.className())
	case Array:
		return "[]" + ref.Elem.SimpleName()
	case Pointer:
		return "*" + ref.Elem.SimpleName()
	}

	panic("unreachable")
}

func (ref TypeRef) String() string {
	return ref.Descriptor
}

func (ref TypeRef) className() string {
	return ref.Descriptor[1 : len(ref.Descriptor)-1]
}

// Resolve locates the type using loader. Primitives never consult the
// loader; slices and pointers resolve their element type. A failure is
// reported as a ClassResolutionError naming this ref's descriptor.
func (ref TypeRef) Resolve(loader Loader) (reflect.Type, error) {
	//exhaustive:enforce
	switch ref.Kind {
	case Primitive:
		t, ok := primitives[ref.Descriptor[0]]
		if !ok {
			panic(fmt.Sprintf("unknown primitive %q", ref.Descriptor))
		}
		return t, nil
	case Class:
		t, err := loader.Load(ref.className())
		if err != nil || t == nil {
			return nil, ClassResolutionError{Name: ref.className()}
		}
		return t, nil
	case Array, Pointer:
		elem, err := ref.Elem.Resolve(loader)
		if err != nil {
			return nil, ClassResolutionError{Name: ref.Descriptor}
		}

		if ref.Kind == Array {
			return reflect.SliceOf(elem), nil
		}
		return reflect.PointerTo(elem), nil
	}

	panic("unreachable")
}

// SimpleName returns the unqualified name of t in the same form as
// TypeRef.SimpleName, e.g. "Buffer" for bytes.Buffer and "[]*Regexp" for
// []*regexp.Regexp.
func SimpleName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}

	if t.Name() != "" {
		return t.Name()
	}

	switch t.Kind() {
	case reflect.Slice:
		return "[]" + SimpleName(t.Elem())
	case reflect.Pointer:
		return "*" + SimpleName(t.Elem())
	}

	return t.String()
}

func simpleClassName(name string) string {
	base, args := name, ""
	if idx := strings.IndexByte(name, '['); idx > 0 {
		base, args = name[:idx], name[idx:]
	}

	return base[strings.LastIndexByte(base, '.')+1:] + args
}
