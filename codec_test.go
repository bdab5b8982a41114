package wire

import (
	"bufio"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// mockFlushingWriter is a sink NewWriter does not recognise, so it gets a bufio layer.
type mockFlushingWriter struct {
	bytes.Buffer
	flushed bool
}

func (m *mockFlushingWriter) Flush() error {
	m.flushed = true
	return nil
}

// opaqueReader hides the concrete type of a reader from the constructors.
type opaqueReader struct{ io.Reader }

// --- Writer Test Suite ---

type WriterTestSuite struct {
	suite.Suite
	buf    *bytes.Buffer
	writer *Writer
}

func (s *WriterTestSuite) SetupTest() {
	s.buf = &bytes.Buffer{}
	s.writer, _ = NewWriter(s.buf)
}

func (s *WriterTestSuite) TestConstructors() {
	s.T().Run("NilWriter", func(t *testing.T) {
		_, err := NewWriter(nil)
		assert.ErrorIs(t, err, ErrNilIO)
	})

	s.T().Run("SmallBufioWriter", func(t *testing.T) {
		bw := bufio.NewWriterSize(&bytes.Buffer{}, 16)
		_, err := NewWriterSize(bw, BUFFER_SIZE)
		assert.ErrorIs(t, err, ErrAlreadyBuffered)

		w, err := NewWriterSize(bw, 0)
		require.NoError(t, err)
		assert.Same(t, bw, w.w)
	})
}

func (s *WriterTestSuite) TestBasicWrites() {
	s.writer.WriteUint8(0xAA)
	s.writer.WriteUint16(0xBBCC)
	s.writer.WriteUint32(0xDDEEFF00)
	s.writer.WriteUint64(0x0102030405060708)
	s.writer.WriteBytes([]byte{5, 6, 7})
	s.writer.WriteBool(true)
	s.writer.WriteInt16(-2)
	s.writer.WriteFloat32(1)

	n, err := s.writer.Result()
	s.Require().NoError(err)
	s.Assert().EqualValues(1+2+4+8+3+1+2+4, n)
	s.Assert().EqualValues(s.buf.Len(), s.writer.Count())

	expected := []byte{
		0xAA,       // WriteUint8
		0xBB, 0xCC, // WriteUint16
		0xDD, 0xEE, 0xFF, 0x00, // WriteUint32
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, // WriteUint64
		5, 6, 7, // WriteBytes
		0x01,       // WriteBool
		0xFF, 0xFE, // WriteInt16
		0x3F, 0x80, 0x00, 0x00, // WriteFloat32
	}
	s.Assert().Equal(expected, s.buf.Bytes())
}

func (s *WriterTestSuite) TestErrorHandling() {
	s.T().Run("ShortBufferError", func(t *testing.T) {
		fixedBuf := make([]byte, 5)
		writer, _ := NewWriter(NewBytesWriter(fixedBuf))

		writer.WriteUint32(0x11223344)
		require.NoError(t, writer.Err())
		writer.WriteUint32(0xAABBCCDD)

		n, err := writer.Result()
		require.Error(t, err)
		assert.ErrorIs(t, err, io.ErrShortWrite)
		assert.EqualValues(t, 5, n)
	})

	s.T().Run("WriteAfterErrorIsNoOp", func(t *testing.T) {
		fixedBuf := make([]byte, 5)
		writer, _ := NewWriter(NewBytesWriter(fixedBuf))

		writer.WriteUint32(0x11223344)
		writer.WriteUint32(0xAABBCCDD)
		firstErr := writer.Err()
		require.ErrorIs(t, firstErr, io.ErrShortWrite)

		writer.WriteUint8(0xFF)
		writer.Flush()

		assert.Equal(t, firstErr, writer.Err(), "The latched error should not change")
		assert.Equal(t, []byte{0x11, 0x22, 0x33, 0x44, 0xAA}, fixedBuf)
	})
}

func (s *WriterTestSuite) TestFlush() {
	mock := &mockFlushingWriter{}
	writer, _ := NewWriterSize(mock, 128)
	writer.WriteUint8(0xAA)

	// Before flush, data is in the buffer, but not in the underlying writer.
	s.Assert().Positive(writer.w.(*bufio.Writer).Buffered())
	s.Assert().Zero(mock.Len())

	s.Require().NoError(writer.Flush())

	s.Assert().False(mock.flushed, "bufio does not forward Flush to the underlying writer")
	s.Assert().Zero(writer.w.(*bufio.Writer).Buffered())
	s.Assert().Equal(1, mock.Buffer.Len())
}

func (s *WriterTestSuite) TestNestedWriterDoesNotFlush() {
	mock := &mockFlushingWriter{}
	outer, _ := NewWriter(mock)
	inner, err := NewWriter(outer)
	s.Require().NoError(err)

	inner.WriteUint16(0x0102)
	s.Require().NoError(inner.Flush())
	s.Assert().Zero(mock.Len(), "only the outermost writer flushes")

	s.Require().NoError(outer.Flush())
	s.Assert().Equal([]byte{1, 2}, mock.Bytes())
}

func TestWriter(t *testing.T) {
	suite.Run(t, new(WriterTestSuite))
}

// --- Reader Test Suite ---

type ReaderTestSuite struct {
	suite.Suite
}

func (s *ReaderTestSuite) TestConstructors() {
	s.T().Run("NilReader", func(t *testing.T) {
		_, err := NewReader(nil)
		assert.ErrorIs(t, err, ErrNilIO)
	})

	s.T().Run("SizeTooSmall", func(t *testing.T) {
		_, err := NewReaderSize(opaqueReader{bytes.NewReader(nil)}, 8)
		assert.ErrorIs(t, err, ErrSizeTooSmall)
	})

	s.T().Run("DefaultSize", func(t *testing.T) {
		r, err := NewReader(opaqueReader{bytes.NewReader([]byte{7})})
		require.NoError(t, err)
		assert.Equal(t, BUFFER_SIZE, r.r.Size())
	})

	s.T().Run("SmallBufioReader", func(t *testing.T) {
		br := bufio.NewReaderSize(bytes.NewReader(nil), 16)
		_, err := NewReaderSize(br, BUFFER_SIZE)
		assert.ErrorIs(t, err, ErrAlreadyBuffered)
	})
}

func (s *ReaderTestSuite) TestSuccessfulReads() {
	data := []byte{
		0xAA,       // uint8
		0xBB, 0xCC, // uint16
		0xDD, 0xEE, 0xFF, 0x00, // uint32
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, // uint64
		0xFF, 0xFE, // int16
		0x01,             // bool
		0x11, 0x22, 0x33, // raw bytes
	}
	r, _ := NewReader(bytes.NewReader(data))

	var v8 uint8
	var v16 uint16
	var v32 uint32
	var v64 uint64
	var i16 int16
	var ok bool
	r.ReadUint8(&v8)
	r.ReadUint16(&v16)
	r.ReadUint32(&v32)
	r.ReadUint64(&v64)
	r.ReadInt16(&i16)
	r.ReadBool(&ok)
	read := r.ReadBytes(3)

	s.Require().NoError(r.Err())
	s.Assert().Equal(uint8(0xAA), v8)
	s.Assert().Equal(uint16(0xBBCC), v16)
	s.Assert().Equal(uint32(0xDDEEFF00), v32)
	s.Assert().Equal(uint64(0x0102030405060708), v64)
	s.Assert().Equal(int16(-2), i16)
	s.Assert().True(ok)
	s.Assert().Equal([]byte{0x11, 0x22, 0x33}, read)
	s.Assert().EqualValues(len(data), r.Count())

	// Reading past the end is a truncation, not a bare EOF.
	r.ReadUint8(&v8)
	s.Assert().ErrorIs(r.Err(), ErrTruncatedInput)
}

func (s *ReaderTestSuite) TestErrorHandling() {
	s.T().Run("ReadPastEnd", func(t *testing.T) {
		r, _ := NewReader(bytes.NewReader([]byte{0x01, 0x02, 0x03}))
		v32 := uint32(42)
		r.ReadUint32(&v32)

		require.Error(t, r.Err())
		assert.ErrorIs(t, r.Err(), ErrTruncatedInput)
		assert.Equal(t, uint32(42), v32, "Destination should be unchanged after an error")
	})

	s.T().Run("ReadAfterErrorIsNoOp", func(t *testing.T) {
		r, _ := NewReader(bytes.NewReader([]byte{0x01, 0x02, 0x03}))
		var v32 uint32
		var v8 uint8

		r.ReadUint32(&v32)
		firstErr := r.Err()
		require.Error(t, firstErr)

		r.ReadUint8(&v8)
		assert.Equal(t, firstErr, r.Err(), "The latched error should not change")
		assert.Equal(t, uint8(0), v8)
	})

	s.T().Run("InvalidBool", func(t *testing.T) {
		r, _ := NewReader(bytes.NewReader([]byte{0x02}))
		ok := true
		r.ReadBool(&ok)
		assert.ErrorIs(t, r.Err(), ErrInvalidEncoding)
		assert.True(t, ok)
	})
}

func (s *ReaderTestSuite) TestTake() {
	r, _ := NewReader(bytes.NewReader([]byte{1, 2, 3, 4}))

	b := r.Take(Budget(6), 4)
	s.Require().NoError(r.Err())
	s.Assert().Equal(Budget(2), b)

	b = r.Take(b, 3)
	s.Assert().Equal(Budget(2), b, "a failed take leaves the budget as is")
	s.Assert().ErrorIs(r.Err(), ErrBudgetExhausted)

	// Nothing is read once the budget error is latched.
	var v uint32
	r.ReadUint32(&v)
	s.Assert().Zero(v)
	s.Assert().Zero(r.Count())
}

func (s *ReaderTestSuite) TestInterfaceMethods() {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	r, _ := NewReader(bytes.NewBuffer(data))

	got, err := io.ReadAll(r)
	s.Require().NoError(err)
	s.Assert().Equal(data, got)
	s.Assert().EqualValues(len(data), r.Count())
	s.Assert().ErrorIs(r.Err(), io.EOF)
}

func TestReader(t *testing.T) {
	suite.Run(t, new(ReaderTestSuite))
}

// --- Standalone Helper Tests ---

func TestBudgetTake(t *testing.T) {
	b, err := Budget(5).Take(5)
	require.NoError(t, err)
	assert.Zero(t, b)

	b, err = Budget(5).Take(6)
	assert.ErrorIs(t, err, ErrBudgetExhausted)
	assert.Equal(t, Budget(5), b)

	_, err = Budget(5).Take(-1)
	assert.ErrorIs(t, err, ErrBudgetExhausted)
}

func TestDiscard(t *testing.T) {
	t.Run("Exact", func(t *testing.T) {
		src := bytes.NewReader([]byte{1, 2, 3, 4, 5})
		n, err := Discard(src, 3)
		require.NoError(t, err)
		assert.EqualValues(t, 3, n)
		assert.Equal(t, 2, src.Len())
	})

	t.Run("Truncated", func(t *testing.T) {
		n, err := Discard(bytes.NewReader([]byte{1, 2}), 10)
		assert.ErrorIs(t, err, ErrTruncatedInput)
		assert.EqualValues(t, 2, n)
	})

	t.Run("Negative", func(t *testing.T) {
		_, err := Discard(bytes.NewReader(nil), -1)
		assert.ErrorIs(t, err, ErrInvalidLength)
	})
}

func TestRoundup(t *testing.T) {
	assert.Equal(t, 0, Roundup(0, 8))
	assert.Equal(t, 8, Roundup(1, 8))
	assert.Equal(t, 8, Roundup(8, 8))
	assert.Equal(t, uint16(16), Roundup[uint16](9, 8))
}

func TestBytesReaderWriter(t *testing.T) {
	w := NewBytesWriter(make([]byte, 4))
	require.NoError(t, w.WriteByte(1))
	_, err := w.WriteString("ab")
	require.NoError(t, err)
	assert.Equal(t, 1, w.Available())
	_, err = w.Write([]byte{3, 4})
	assert.ErrorIs(t, err, io.ErrShortWrite)
	assert.Equal(t, []byte{1, 'a', 'b', 3}, w.Bytes())

	r := NewBytesReader(w.Bytes())
	c, err := r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(1), c)
	assert.Equal(t, 3, r.Available())
	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte{'a', 'b', 3}, rest)

	r.Reset()
	assert.Zero(t, r.Len())
	w.Reset()
	assert.Zero(t, w.Len())
}

func TestLimitReader(t *testing.T) {
	src := bytes.NewReader([]byte{1, 2, 3, 4, 5})
	lr := LimitReader(src, 3)

	got, err := io.ReadAll(lr)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
	assert.Zero(t, lr.Remaining())
	assert.Equal(t, 2, src.Len(), "bytes past the limit stay in the source")
	assert.NoError(t, lr.Close())
}
