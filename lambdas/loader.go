package lambdas

import (
	"reflect"

	"github.com/patrickmn/go-cache"
)

// Loader resolves the qualified type names found in class tokens (see
// TypeName for the naming scheme).
type Loader interface {
	Load(name string) (reflect.Type, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(name string) (reflect.Type, error)

func (fn LoaderFunc) Load(name string) (reflect.Type, error) {
	return fn(name)
}

// Builtins resolves the predeclared Go types which have no primitive letter.
var Builtins Loader = newMapLoader(
	reflect.TypeFor[string](),
	reflect.TypeFor[error](),
	reflect.TypeFor[any](),
	reflect.TypeFor[uint](),
	reflect.TypeFor[uint8](),
	reflect.TypeFor[uint16](),
	reflect.TypeFor[uint32](),
	reflect.TypeFor[uint64](),
	reflect.TypeFor[uintptr](),
	reflect.TypeFor[complex64](),
	reflect.TypeFor[complex128](),
)

type mapLoader map[string]reflect.Type

func newMapLoader(types ...reflect.Type) mapLoader {
	loader := make(mapLoader, len(types))
	for _, t := range types {
		loader.add(t)
	}

	return loader
}

// add registers t along with every element type reachable through unnamed
// slices and pointers.
func (loader mapLoader) add(t reflect.Type) {
	for {
		loader[TypeName(t)] = t
		if t.Name() != "" || (t.Kind() != reflect.Slice && t.Kind() != reflect.Pointer) {
			return
		}

		t = t.Elem()
	}
}

func (loader mapLoader) Load(name string) (reflect.Type, error) {
	if t, ok := loader[name]; ok {
		return t, nil
	}

	return nil, ClassResolutionError{Name: name}
}

// Registry is a Loader which types can be added to at any time. It is safe
// for concurrent use.
type Registry struct {
	types *cache.Cache
}

func NewRegistry(types ...reflect.Type) *Registry {
	registry := &Registry{types: cache.New(cache.NoExpiration, 0)}
	registry.Register(types...)

	return registry
}

// Register makes each type loadable by its TypeName.
func (registry *Registry) Register(types ...reflect.Type) {
	for _, t := range types {
		registry.types.Set(TypeName(t), t, cache.NoExpiration)
	}
}

func (registry *Registry) Load(name string) (reflect.Type, error) {
	if t, ok := registry.types.Get(name); ok {
		return t.(reflect.Type), nil
	}

	return nil, ClassResolutionError{Name: name}
}

// Chain returns a Loader which tries each loader in turn, returning the
// first successful resolution.
func Chain(loaders ...Loader) Loader {
	return LoaderFunc(func(name string) (reflect.Type, error) {
		for _, loader := range loaders {
			if t, err := loader.Load(name); err == nil && t != nil {
				return t, nil
			}
		}

		return nil, ClassResolutionError{Name: name}
	})
}

// loaderFor is the default context for a reference: every type reachable
// from its function type, falling back to Builtins.
func loaderFor(form *SerializedReference) Loader {
	if form.FunctionType == nil {
		return Builtins
	}

	scoped := newMapLoader()
	for i := 0; i < form.FunctionType.NumIn(); i++ {
		scoped.add(form.FunctionType.In(i))
	}
	for i := 0; i < form.FunctionType.NumOut(); i++ {
		scoped.add(form.FunctionType.Out(i))
	}

	return Chain(scoped, Builtins)
}
