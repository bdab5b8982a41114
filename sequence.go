package wire

import "fmt"

type sequence[T any] struct{ elem Type[T] }

// Sequence returns the Type of a growable sequence. Elements are written back
// to back with no count and no separators. Decoding reads elements until the
// budget is exactly zero, so a sequence is budget-terminal.
//
// The element type must not be terminal; Sequence panics otherwise.
func Sequence[T any](t Type[T]) Type[[]T] {
	if t.Terminal() {
		panic(fmt.Sprintf("wire: Sequence of budget-terminal type %s", t.Name()))
	}
	return sequence[T]{t}
}

func (s sequence[T]) Name() string   { return "seq<" + s.elem.Name() + ">" }
func (s sequence[T]) Terminal() bool { return true }

// Size sums the element sizes, elements may be variably sized.
func (s sequence[T]) Size(v *[]T) int {
	total := 0
	for i := range *v {
		total += s.elem.Size(&(*v)[i])
	}
	return total
}

func (s sequence[T]) Encode(w *Writer, v *[]T) error {
	for i := range *v {
		if err := s.elem.Encode(w, &(*v)[i]); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return w.Err()
}

// Decode fails up front when the elements have a fixed size that does not
// divide the budget.
func (s sequence[T]) Decode(r *Reader, b Budget, v *[]T) (Budget, error) {
	if err := b.check(); err != nil {
		return b, err
	}
	if n, ok := FixedSize(s.elem); ok && n > 0 && int(b)%n != 0 {
		return b, fmt.Errorf("%w: budget %d is not a whole number of %s", ErrBudgetExhausted, int(b), s.elem.Name())
	}

	var items []T
	for b > 0 {
		var item T
		rest, err := s.elem.Decode(r, b, &item)
		if err == nil {
			rest, err = b.Settle(rest)
		}
		if err != nil {
			return b, fmt.Errorf("element %d: %w", len(items), err)
		}
		if rest == b {
			return b, fmt.Errorf("%w: element %d (%s)", ErrNoProgress, len(items), s.elem.Name())
		}
		b = rest
		items = append(items, item)
	}
	*v = items
	return 0, nil
}
