package wire

import (
	"bytes"
)

type (
	bytesReaderAdapter       struct{ *bytes.Reader }
	bytesBufferReaderAdapter struct{ *bytes.Buffer }
	bytesBufferWriterAdapter struct{ *bytes.Buffer }
)

func (r *bytesReaderAdapter) Size() int          { return int(r.Reader.Size()) }
func (r *bytesBufferReaderAdapter) Size() int    { return r.Len() }
func (w *bytesBufferWriterAdapter) Flush() error { return nil }
func (w *bytesBufferWriterAdapter) Size() int    { return w.Available() }
