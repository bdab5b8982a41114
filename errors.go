package wire

import "errors"

var (
	// ErrNilIO indicates that NewReader/NewWriter was called with an nil interface
	ErrNilIO = errors.New("wire: NewReader/NewWriter called with a nil io.Reader/io.Writer")

	// ErrSizeTooSmall indicates a size conflict with bufio
	ErrSizeTooSmall = errors.New("wire: NewReaderSize with a size smaller than 16 conflict with bufio")

	// ErrAlreadyBuffered indicates that NewReader/NewWriter was called with an already-buffered
	// reader/writer, which would lead to unpredictable behavior and performance issues.
	ErrAlreadyBuffered = errors.New("wire: reader or writer is already buffered")

	// ErrTruncatedInput indicates that the source ended before a read could complete.
	ErrTruncatedInput = errors.New("wire: truncated input")

	// ErrInvalidEncoding indicates bytes that are not a valid encoding of the target type,
	// such as non UTF-8 text or a bool byte other than 0 and 1.
	ErrInvalidEncoding = errors.New("wire: invalid encoding")

	// ErrBudgetExhausted indicates a decode that would consume more bytes than the budget allows.
	ErrBudgetExhausted = errors.New("wire: budget exhausted")

	// ErrTrailingData indicates budget left over after a decode that had to consume all of it.
	ErrTrailingData = errors.New("wire: trailing data after decoding")

	// ErrNoProgress indicates a sequence element that decoded without consuming any bytes.
	ErrNoProgress = errors.New("wire: sequence element consumed no bytes")

	// ErrInvalidLength indicates a value whose length does not match its declared size.
	ErrInvalidLength = errors.New("wire: invalid length")

	// ErrInvalidEndpoint indicates an endpoint that has no wire form (zero address or zoned IPv6).
	ErrInvalidEndpoint = errors.New("wire: invalid endpoint")

	// ErrFrameTooLarge indicates a length that does not fit the 32-bit length header.
	ErrFrameTooLarge = errors.New("wire: length exceeds 32-bit header")

	// ErrOverflow indicates an integer that does not fit the field it is assigned to.
	ErrOverflow = errors.New("wire: integer overflow")

	// ErrNoFields indicates a struct schema without fields.
	ErrNoFields = errors.New("wire: struct has no fields")

	// ErrDuplicateField indicates two fields with the same name, or an empty name.
	ErrDuplicateField = errors.New("wire: duplicate or empty field name")

	// ErrTerminalField indicates a budget-terminal field that is not the last field.
	ErrTerminalField = errors.New("wire: budget-terminal field must be the last field")

	// ErrUnknownField indicates a lookup of a field name the schema does not have.
	ErrUnknownField = errors.New("wire: unknown field")

	// ErrNotInteger indicates a normalized accessor used on a non-integer field.
	ErrNotInteger = errors.New("wire: field is not an integer")
)
