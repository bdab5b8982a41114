package wire

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// sizeCache avoids the high performance cost of reflection in `binary.Size`
// on every call. Using a concurrent map makes it safe to share between goroutines.
var sizeCache = xsync.NewMap[reflect.Type, int]()

type packed[T any] struct{ size int }

// Packed returns the Type of a struct made only of fixed-size fields
// (integers, floats, bools, arrays of those, nested such structs). Fields are
// encoded one by one in declaration order and big-endian, with no padding,
// so the layout is the same on every platform.
//
// Packed panics if T contains variable-size fields like slices, maps, or strings.
//
// Unlike Bool, bool fields of a packed struct decode any non-zero byte as true.
func Packed[T any]() Type[T] {
	typ := reflect.TypeFor[T]()

	// Attempt to load from the concurrent-safe cache first for performance.
	if size, ok := sizeCache.Load(typ); ok {
		return packed[T]{size}
	}

	var zero T
	size := binary.Size(&zero)
	if size < 0 {
		panic(fmt.Sprintf("wire: Packed of %s, which has variable-size fields", typ))
	}

	// Store the result for subsequent calls.
	sizeCache.Store(typ, size)
	return packed[T]{size}
}

func (p packed[T]) Name() string   { return reflect.TypeFor[T]().String() }
func (p packed[T]) Terminal() bool { return false }
func (p packed[T]) Size(_ *T) int  { return p.size }
func (p packed[T]) FixedSize() int { return p.size }

func (p packed[T]) Encode(w *Writer, v *T) error {
	buf := make([]byte, p.size)
	if _, err := binary.Encode(buf, Order, v); err != nil {
		return err
	}
	w.WriteBytes(buf)
	return w.Err()
}

func (p packed[T]) Decode(r *Reader, b Budget, v *T) (Budget, error) {
	b = r.Take(b, p.size)
	buf := r.ReadBytes(p.size)
	if err := r.Err(); err != nil {
		return b, err
	}
	var x T
	if _, err := binary.Decode(buf, Order, &x); err != nil {
		return b, err
	}
	*v = x
	return b, nil
}
