package wire

import "fmt"

// ByteArray lists the fixed-size byte arrays Array accepts.
// FixedBytes covers any other length.
type ByteArray interface {
	~[1]byte | ~[2]byte | ~[3]byte | ~[4]byte | ~[5]byte | ~[6]byte | ~[7]byte | ~[8]byte |
		~[10]byte | ~[12]byte | ~[16]byte | ~[20]byte | ~[24]byte | ~[32]byte | ~[48]byte | ~[64]byte
}

type array[A ByteArray] struct{}

// Array returns the Type of a fixed-size byte array. The bytes are written as is.
func Array[A ByteArray]() Type[A] { return array[A]{} }

func (array[A]) Name() string {
	var a A
	return fmt.Sprintf("[%d]byte", len(a))
}

func (array[A]) Terminal() bool { return false }
func (array[A]) Size(v *A) int  { return len(*v) }

func (array[A]) FixedSize() int {
	var a A
	return len(a)
}

func (array[A]) Encode(w *Writer, v *A) error {
	buf := make([]byte, len(*v))
	for i := range buf {
		buf[i] = (*v)[i]
	}
	w.WriteBytes(buf)
	return w.Err()
}

func (array[A]) Decode(r *Reader, b Budget, v *A) (Budget, error) {
	var a A
	b = r.Take(b, len(a))
	buf := r.ReadBytes(len(a))
	if err := r.Err(); err != nil {
		return b, err
	}
	for i := range buf {
		a[i] = buf[i]
	}
	*v = a
	return b, nil
}

type fixedBytes struct{ n int }

// FixedBytes returns the Type of a byte slice that is always exactly n bytes long.
// Encoding a slice of any other length fails with ErrInvalidLength.
func FixedBytes(n int) Type[[]byte] {
	if n <= 0 {
		panic(fmt.Sprintf("wire: FixedBytes called with non-positive length %d", n))
	}
	return fixedBytes{n}
}

func (t fixedBytes) Name() string       { return fmt.Sprintf("bytes[%d]", t.n) }
func (t fixedBytes) Terminal() bool     { return false }
func (t fixedBytes) Size(_ *[]byte) int { return t.n }
func (t fixedBytes) FixedSize() int     { return t.n }

func (t fixedBytes) Encode(w *Writer, v *[]byte) error {
	if len(*v) != t.n {
		return fmt.Errorf("%w: %s holds %d bytes", ErrInvalidLength, t.Name(), len(*v))
	}
	w.WriteBytes(*v)
	return w.Err()
}

func (t fixedBytes) Decode(r *Reader, b Budget, v *[]byte) (Budget, error) {
	b = r.Take(b, t.n)
	buf := r.ReadBytes(t.n)
	if err := r.Err(); err != nil {
		return b, err
	}
	*v = buf
	return b, nil
}
