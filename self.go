package wire

import "reflect"

type terminator interface{ Terminal() bool }

type self[T any, PT interface {
	*T
	Codec
}] struct{}

// Self returns the Type of a value whose pointer implements Codec.
// If the pointer also has a Terminal() bool method it is used, otherwise the
// type is treated as not terminal.
//
//	type Header struct{ ... }
//	func (h *Header) Size() int { ... }
//	...
//	var headerType = wire.Self[Header]()
func Self[T any, PT interface {
	*T
	Codec
}]() Type[T] {
	return self[T, PT]{}
}

func (self[T, PT]) Name() string { return reflect.TypeFor[T]().String() }

func (self[T, PT]) Terminal() bool {
	if t, ok := any(PT(new(T))).(terminator); ok {
		return t.Terminal()
	}
	return false
}

func (self[T, PT]) Size(v *T) int                { return PT(v).Size() }
func (self[T, PT]) Encode(w *Writer, v *T) error { return PT(v).EncodeTo(w) }

func (self[T, PT]) Decode(r *Reader, b Budget, v *T) (Budget, error) {
	x := *v
	rest, err := PT(&x).DecodeFrom(r, b)
	if err == nil {
		rest, err = b.Settle(rest)
	}
	if err != nil {
		return b, err
	}
	*v = x
	return rest, nil
}
