package wire

import (
	"fmt"
	"unicode/utf8"
)

type rawBytes struct{}

// Bytes is the Type of a raw byte buffer. It is budget-terminal: decoding takes
// every remaining byte of the budget verbatim.
var Bytes Type[[]byte] = rawBytes{}

func (rawBytes) Name() string       { return "bytes" }
func (rawBytes) Terminal() bool     { return true }
func (rawBytes) Size(v *[]byte) int { return len(*v) }

func (rawBytes) Encode(w *Writer, v *[]byte) error {
	w.WriteBytes(*v)
	return w.Err()
}

func (rawBytes) Decode(r *Reader, b Budget, v *[]byte) (Budget, error) {
	if err := b.check(); err != nil {
		return b, err
	}
	buf := r.ReadBytes(int(b))
	if err := r.Err(); err != nil {
		return b, err
	}
	*v = buf
	return 0, nil
}

type text struct{}

// Text is the Type of UTF-8 text. Like Bytes it consumes the whole budget;
// invalid UTF-8 fails with ErrInvalidEncoding after the bytes were read.
var Text Type[string] = text{}

func (text) Name() string       { return "text" }
func (text) Terminal() bool     { return true }
func (text) Size(v *string) int { return len(*v) }

func (text) Encode(w *Writer, v *string) error {
	_, _ = w.WriteString(*v)
	return w.Err()
}

func (text) Decode(r *Reader, b Budget, v *string) (Budget, error) {
	if err := b.check(); err != nil {
		return b, err
	}
	buf := r.ReadBytes(int(b))
	if err := r.Err(); err != nil {
		return b, err
	}
	if !utf8.Valid(buf) {
		return 0, fmt.Errorf("%w: text of %d bytes is not valid UTF-8", ErrInvalidEncoding, len(buf))
	}
	*v = string(buf)
	return 0, nil
}
