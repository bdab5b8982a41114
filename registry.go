package wire

import (
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// registry holds one Type per Go type, so a schema is built once and shared.
var registry = xsync.NewMap[reflect.Type, any]()

// Register records t as the Type of T and returns the registered Type.
// If T already has one, the existing Type is kept and returned.
func Register[T any](t Type[T]) Type[T] {
	actual, _ := registry.LoadOrStore(reflect.TypeFor[T](), t)
	return actual.(Type[T])
}

// Lookup returns the Type registered for T.
func Lookup[T any]() (Type[T], bool) {
	v, ok := registry.Load(reflect.TypeFor[T]())
	if !ok {
		return nil, false
	}
	t, ok := v.(Type[T])
	return t, ok
}
