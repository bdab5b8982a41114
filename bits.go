package wire

import "fmt"

// BitSet is a sequence of boolean flags packed MSB-first: bit 0 is the
// highest bit of the first byte.
type BitSet struct {
	b []byte
	n int
}

// NewBitSet returns n cleared bits.
func NewBitSet(n int) BitSet {
	if n < 0 {
		n = 0
	}
	return BitSet{b: make([]byte, Roundup(n, 8)/8), n: n}
}

// BitsFromBools packs flags into a BitSet.
func BitsFromBools(flags []bool) BitSet {
	s := NewBitSet(len(flags))
	for i, f := range flags {
		s.Set(i, f)
	}
	return s
}

// BitsFromBytes unpacks every bit of p. The result has len(p)*8 bits.
func BitsFromBytes(p []byte) BitSet {
	return BitSet{b: append([]byte(nil), p...), n: len(p) * 8}
}

// Len returns the number of bits.
func (s BitSet) Len() int { return s.n }

// Test reports whether bit i is set. Out of range bits are false.
func (s BitSet) Test(i int) bool {
	if i < 0 || i >= s.n {
		return false
	}
	return s.b[i/8]&(0x80>>(i%8)) != 0
}

// Set assigns bit i. It panics if i is out of range.
func (s BitSet) Set(i int, v bool) {
	if i < 0 || i >= s.n {
		panic(fmt.Sprintf("wire: bit index %d out of range [0,%d)", i, s.n))
	}
	if v {
		s.b[i/8] |= 0x80 >> (i % 8)
	} else {
		s.b[i/8] &^= 0x80 >> (i % 8)
	}
}

// Bytes returns the packed form. Padding bits in the last byte are zero.
func (s BitSet) Bytes() []byte { return s.b }

// Bools unpacks the set.
func (s BitSet) Bools() []bool {
	out := make([]bool, s.n)
	for i := range out {
		out[i] = s.Test(i)
	}
	return out
}

// String renders the set as a run of 0 and 1 characters.
func (s BitSet) String() string {
	out := make([]byte, s.n)
	for i := range out {
		out[i] = '0'
		if s.Test(i) {
			out[i] = '1'
		}
	}
	return string(out)
}

func (s BitSet) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

type bits struct{}

// Bits is the Type of a BitSet. It is budget-terminal: decoding consumes the
// whole remaining budget and yields budget*8 bits.
var Bits Type[BitSet] = bits{}

func (bits) Name() string       { return "bits" }
func (bits) Terminal() bool     { return true }
func (bits) Size(v *BitSet) int { return Roundup(v.n, 8) / 8 }

func (bits) Encode(w *Writer, v *BitSet) error {
	w.WriteBytes(v.b[:Roundup(v.n, 8)/8])
	return w.Err()
}

func (bits) Decode(r *Reader, b Budget, v *BitSet) (Budget, error) {
	if err := b.check(); err != nil {
		return b, err
	}
	n := int(b)
	buf := r.ReadBytes(n)
	if err := r.Err(); err != nil {
		return b, err
	}
	*v = BitSet{b: buf, n: n * 8}
	return 0, nil
}
