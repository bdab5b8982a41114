package wire

import (
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/exp/constraints"
)

var (
	BE = binary.BigEndian
	// Order is the byte order of every multi-byte value on the wire.
	Order = BE
)

const BUFFER_SIZE = 4096

func Ptr[T any](v T) *T { return &v } // Ptr is a helper function to create a pointer to a value, handy for Option fields.

// Discard skips exactly n bytes of r.
func Discard(r io.Reader, n int64) (int64, error) {
	if n == 0 {
		return 0, nil
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: cannot discard %d bytes", ErrInvalidLength, n)
	}
	skipped, err := io.CopyN(io.Discard, r, n)
	if err != nil {
		return skipped, truncated(err, int(n), int(skipped))
	}
	return skipped, nil
}

// Roundup rounds n up to the nearest multiple of align. align must be a power of two.
func Roundup[T constraints.Integer](n, align T) T { return (n + (align - 1)) &^ (align - 1) }
