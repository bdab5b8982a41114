package wire

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Encode writes v to w and flushes. It returns the number of bytes written.
func Encode[T any](w io.Writer, t Type[T], v *T) (int64, error) {
	bw, err := NewWriter(w)
	if err != nil {
		return 0, err
	}
	if err := t.Encode(bw, v); err != nil {
		return bw.Count(), err
	}
	return bw.Result()
}

// Decode reads a T from r with the given budget and returns it together with
// the budget left over. A non-zero remainder is not an error here; callers that
// need exact consumption use Unmarshal or check the remainder themselves.
//
// Unless r is already an in-memory or buffered reader, it is wrapped in a
// LimitReader first, so no byte after the budget is taken from r.
func Decode[T any](r io.Reader, t Type[T], budget int) (T, Budget, error) {
	var v T
	if budget < 0 {
		return v, 0, fmt.Errorf("%w: negative budget %d", ErrBudgetExhausted, budget)
	}

	var src io.Reader
	switch r.(type) {
	case *Reader, *BytesReader, *bytes.Reader, *bytes.Buffer, *bufio.Reader:
		src = r
	default:
		src = LimitReader(r, int64(budget))
	}
	br, err := NewReader(src)
	if err != nil {
		return v, Budget(budget), err
	}

	rest, err := t.Decode(br, Budget(budget), &v)
	if err != nil {
		var zero T
		return zero, rest, err
	}
	return v, rest, nil
}

// Marshal encodes v into a new slice of exactly Length(t, v) bytes.
func Marshal[T any](t Type[T], v *T) ([]byte, error) {
	buf := make([]byte, t.Size(v))
	n, err := MarshalTo(t, v, buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// MarshalTo encodes v into p, which must hold at least Length(t, v) bytes.
// It also verifies that the value wrote exactly as many bytes as it reported.
func MarshalTo[T any](t Type[T], v *T, p []byte) (int, error) {
	size := t.Size(v)
	if len(p) < size {
		return 0, io.ErrShortBuffer
	}
	bw := NewBytesWriter(p[:size:size])
	w, _ := NewWriter(bw)
	err := t.Encode(w, v)
	if err == nil {
		_, err = w.Result()
	}
	if errors.Is(err, io.ErrShortWrite) {
		return bw.Len(), fmt.Errorf("%w: %s reported %d bytes: %w", ErrInvalidLength, t.Name(), size, err)
	}
	if err != nil {
		return bw.Len(), err
	}
	if bw.Len() != size {
		return bw.Len(), fmt.Errorf("%w: %s reported %d bytes, wrote %d", ErrInvalidLength, t.Name(), size, bw.Len())
	}
	return size, nil
}

// Unmarshal decodes data into v using len(data) as the budget. Every byte must
// be consumed; leftover budget fails with ErrTrailingData. On error v is unchanged.
func Unmarshal[T any](t Type[T], data []byte, v *T) error {
	r, _ := NewReader(NewBytesReader(data))
	x := *v
	rest, err := t.Decode(r, Budget(len(data)), &x)
	if err != nil {
		return err
	}
	if rest != 0 {
		return fmt.Errorf("%w: %d of %d bytes not consumed by %s", ErrTrailingData, rest, len(data), t.Name())
	}
	*v = x
	return nil
}

// Binary adapts a Type and a value to the standard library interfaces
// encoding.BinaryMarshaler, encoding.BinaryUnmarshaler, io.WriterTo and io.ReaderFrom.
type Binary[T any] struct {
	Type  Type[T]
	Value *T
}

// Size returns the encoded length of the value.
func (b Binary[T]) Size() int { return b.Type.Size(b.Value) }

// MarshalBinary implements the standard `encoding.BinaryMarshaler` interface.
func (b Binary[T]) MarshalBinary() ([]byte, error) {
	return Marshal(b.Type, b.Value)
}

// UnmarshalBinary implements the standard `encoding.BinaryUnmarshaler` interface.
// The whole slice is the budget.
func (b Binary[T]) UnmarshalBinary(data []byte) error {
	return Unmarshal(b.Type, data, b.Value)
}

// WriteTo implements `io.WriterTo`.
func (b Binary[T]) WriteTo(w io.Writer) (int64, error) {
	return Encode(w, b.Type, b.Value)
}

// ReadFrom implements `io.ReaderFrom`.
// WARNING: This is NOT a streaming implementation. It reads r to EOF into a pooled
// buffer and uses everything it read as the budget. Use Decode for streams that
// carry more than one value.
func (b Binary[T]) ReadFrom(r io.Reader) (int64, error) {
	buf := bytesBufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bytesBufPool.Put(buf)

	n, err := buf.ReadFrom(r)
	if err != nil {
		return n, err
	}
	return n, b.UnmarshalBinary(buf.Bytes())
}
