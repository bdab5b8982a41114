package wire

type option[T any] struct{ inner Type[T] }

// Option returns the Type of an optional value, represented as a pointer.
// It writes one presence byte (1 present, 0 absent) followed by the value if
// present. On decode any non-zero presence byte means present.
// Option of a terminal type is terminal.
func Option[T any](t Type[T]) Type[*T] { return option[T]{t} }

func (o option[T]) Name() string   { return "option<" + o.inner.Name() + ">" }
func (o option[T]) Terminal() bool { return o.inner.Terminal() }

func (o option[T]) Size(v **T) int {
	if *v == nil {
		return 1
	}
	return 1 + o.inner.Size(*v)
}

func (o option[T]) Encode(w *Writer, v **T) error {
	w.WriteBool(*v != nil)
	if *v == nil {
		return w.Err()
	}
	return o.inner.Encode(w, *v)
}

func (o option[T]) Decode(r *Reader, b Budget, v **T) (Budget, error) {
	b = r.Take(b, 1)
	flag, err := r.ReadByte()
	if err != nil {
		return b, err
	}
	if flag == 0 {
		*v = nil
		return b, nil
	}
	var x T
	rest, err := o.inner.Decode(r, b, &x)
	if err == nil {
		rest, err = b.Settle(rest)
	}
	if err != nil {
		return b, err
	}
	*v = &x
	return rest, nil
}
