// Package frame carries wire values in length-prefixed frames.
//
// A frame is a 4-byte big-endian payload length followed by the payload:
//
//	[len 0..3][payload ...]
//
// The length is the decode budget of the payload, which is how budget-terminal
// values know where to stop.
package frame

import (
	"errors"
	"fmt"
	"io"

	"github.com/oy3o/wire"
)

const HeaderLen = 4

var (
	ErrShortHeader     = errors.New("frame: short length header")
	ErrPayloadTooLarge = errors.New("frame: payload too large")
)

// Limits constrains frame decode/encode memory use.
type Limits struct {
	MaxPayloadBytes uint32
}

func DefaultLimits() Limits {
	return Limits{
		MaxPayloadBytes: 8 * 1024 * 1024,
	}
}

// WriteFrame writes the length header of v followed by its encoding.
func WriteFrame[T any](w io.Writer, t wire.Type[T], v *T, limits Limits) error {
	header, err := wire.LengthBE(t, v)
	if err != nil {
		return err
	}
	if n := wire.Order.Uint32(header[:]); n > limits.MaxPayloadBytes {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrPayloadTooLarge, n, limits.MaxPayloadBytes)
	}

	bw, err := wire.NewWriter(w)
	if err != nil {
		return err
	}
	bw.WriteBytes(header[:])
	if err := t.Encode(bw, v); err != nil {
		return err
	}
	_, err = bw.Result()
	return err
}

// ReadHeader reads the 4-byte payload length. A clean end of stream before the
// first header byte is reported as io.EOF.
func ReadHeader(r io.Reader) (uint32, error) {
	var header [HeaderLen]byte
	n, err := io.ReadFull(r, header[:])
	if err != nil {
		if errors.Is(err, io.EOF) && n == 0 {
			return 0, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, ErrShortHeader
		}
		return 0, err
	}
	return wire.Order.Uint32(header[:]), nil
}

// ReadFrame reads one frame and decodes its payload as a T with the payload
// length as budget. The whole payload is read before decoding, so the stream
// stays aligned on the next frame even when decoding fails. A payload over the
// limit is skipped and reported with ErrPayloadTooLarge. Budget left over after
// decoding is wire.ErrTrailingData.
func ReadFrame[T any](r io.Reader, t wire.Type[T], limits Limits) (T, error) {
	var v T
	n, err := ReadHeader(r)
	if err != nil {
		return v, err
	}
	if n > limits.MaxPayloadBytes {
		if _, err := wire.Discard(r, int64(n)); err != nil {
			return v, err
		}
		return v, fmt.Errorf("%w: %d bytes, limit %d", ErrPayloadTooLarge, n, limits.MaxPayloadBytes)
	}

	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return v, fmt.Errorf("%w: payload of %d bytes", wire.ErrTruncatedInput, n)
		}
		return v, err
	}
	if err := wire.Unmarshal(t, payload, &v); err != nil {
		return v, err
	}
	return v, nil
}
