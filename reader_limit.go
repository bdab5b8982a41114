package wire

import "io"

// LimitedReader reads at most N bytes from R. Wrapping a stream with it before
// buffering keeps read-ahead inside the current frame.
type LimitedReader struct {
	*io.LimitedReader
}

// LimitReader returns a reader that stops with io.EOF after n bytes.
func LimitReader(r io.Reader, n int64) *LimitedReader {
	return &LimitedReader{&io.LimitedReader{R: r, N: n}}
}

// Remaining returns the number of bytes that may still be read.
func (r *LimitedReader) Remaining() int64 {
	if r.N < 0 {
		return 0
	}
	return r.N
}

// Close closes the underlying reader if it implements io.Closer.
func (r *LimitedReader) Close() error {
	if c, ok := r.R.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
