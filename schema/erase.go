package schema

import (
	"fmt"

	"github.com/oy3o/wire"
)

type erased[T any] struct{ t wire.Type[T] }

// Erase turns a wire.Type[T] into a Type over interface values holding a T.
// Encoding a value that does not hold a T fails with ErrValueType.
func Erase[T any](t wire.Type[T]) wire.Type[any] { return erased[T]{t} }

func (e erased[T]) Name() string   { return e.t.Name() }
func (e erased[T]) Terminal() bool { return e.t.Terminal() }

func (e erased[T]) Size(v *any) int {
	x, ok := (*v).(T)
	if !ok {
		return 0
	}
	return e.t.Size(&x)
}

func (e erased[T]) Encode(w *wire.Writer, v *any) error {
	x, ok := (*v).(T)
	if !ok {
		return fmt.Errorf("%w: %s field holds %T", ErrValueType, e.t.Name(), *v)
	}
	return e.t.Encode(w, &x)
}

func (e erased[T]) Decode(r *wire.Reader, b wire.Budget, v *any) (wire.Budget, error) {
	var x T
	rest, err := e.t.Decode(r, b, &x)
	if err != nil {
		return rest, err
	}
	*v = x
	return rest, nil
}
