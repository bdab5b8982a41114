package wire

import (
	"fmt"
	"math"
)

// Length returns the exact number of bytes Encode writes for v.
func Length[T any](t Type[T], v *T) int {
	return t.Size(v)
}

// LengthBE returns Length as a 4-byte big-endian value for a frame header.
func LengthBE[T any](t Type[T], v *T) ([4]byte, error) {
	var out [4]byte
	n := t.Size(v)
	if uint64(n) > math.MaxUint32 {
		return out, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, n)
	}
	Order.PutUint32(out[:], uint32(n))
	return out, nil
}
