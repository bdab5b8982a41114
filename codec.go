// Package wire implements a length-budgeted binary codec.
//
// Values are written without any length prefix of their own. The reader side
// is driven by a Budget: the number of bytes still available in the enclosing
// frame, supplied by the caller (usually from a frame header) and threaded
// through every decode call. Fixed-size values take exactly their size from the
// budget; budget-terminal values (sequences, raw bytes, text, bit sets) consume
// whatever remains.
//
// The mapping from wire types to Go types is:
//
//	        wire | Go               | Type
//	-------------+------------------+---------------------------
//	 u8 ... u64  | uint8 ... uint64 | Uint8 ... Uint64
//	 i8 ... i64  | int8 ... int64   | Int8 ... Int64
//	 f32, f64    | float32, float64 | Float32, Float64
//	 bool        | bool             | Bool
//	 [N]byte     | [N]byte          | Array[[N]byte]() or FixedBytes(N)
//	 bits        | BitSet           | Bits
//	 option<T>   | *T               | Option(t)
//	 seq<T>      | []T              | Sequence(t)
//	 bytes       | []byte           | Bytes
//	 text        | string           | Text
//	 endpoint    | netip.AddrPort   | Endpoint
//	 struct      | any struct       | NewStruct / Packed
//
// Multi-byte values are big-endian.
package wire

import "fmt"

// Budget is the number of bytes a decode operation may still consume.
// It never goes below zero: Take reports ErrBudgetExhausted instead.
type Budget int

// Take subtracts n bytes from the budget.
func (b Budget) Take(n int) (Budget, error) {
	if n < 0 {
		return b, fmt.Errorf("%w: cannot take %d bytes", ErrBudgetExhausted, n)
	}
	if int(b) < n {
		return b, fmt.Errorf("%w: need %d bytes, %d left", ErrBudgetExhausted, n, int(b))
	}
	return b - Budget(n), nil
}

// Settle checks the budget rest an inner decode returned out of b. It may
// not grow and may not go negative.
func (b Budget) Settle(rest Budget) (Budget, error) {
	if rest < 0 || rest > b {
		return b, fmt.Errorf("%w: decode returned budget %d out of %d", ErrBudgetExhausted, int(rest), int(b))
	}
	return rest, nil
}

// check rejects a negative budget handed to a decoder.
func (b Budget) check() error {
	if b < 0 {
		return fmt.Errorf("%w: negative budget %d", ErrBudgetExhausted, int(b))
	}
	return nil
}

// Sizer reports the exact encoded length of a value.
type Sizer[T any] interface {
	// Size returns the number of bytes Encode will write for v.
	Size(v *T) int
}

// Encoder writes a value to a Writer. It never writes a length prefix.
type Encoder[T any] interface {
	Encode(w *Writer, v *T) error
}

// Decoder reads a value from a Reader within a byte budget.
type Decoder[T any] interface {
	// Decode fills v and returns the budget left after the bytes it consumed.
	// On error v is left untouched.
	Decode(r *Reader, budget Budget, v *T) (Budget, error)
}

// Type describes how values of T travel on the wire.
// Type values are immutable and safe for concurrent use.
type Type[T any] interface {
	Sizer[T]
	Encoder[T]
	Decoder[T]

	// Name is a short human-readable name, e.g. "u32" or "option<text>".
	Name() string

	// Terminal reports whether Decode consumes the whole remaining budget.
	// A terminal type may only appear as the last field of a struct.
	Terminal() bool
}

// Fixed is implemented by Types whose encoded size does not depend on the value.
type Fixed interface {
	FixedSize() int
}

// FixedSize returns the value-independent size of t, if it has one.
func FixedSize[T any](t Type[T]) (int, bool) {
	if f, ok := t.(Fixed); ok {
		return f.FixedSize(), true
	}
	return 0, false
}

// Codec is implemented by types that carry their own wire format.
// Use Self to turn such a type into a Type.
type Codec interface {
	Size() int
	EncodeTo(w *Writer) error
	DecodeFrom(r *Reader, budget Budget) (Budget, error)
}
