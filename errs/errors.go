// Package errs defines the sentinel errors returned by zmh packages.
//
// Callers should compare errors with errors.Is, since most call sites wrap
// these values with additional context such as bit positions or sizes.
package errs

import "errors"

// Bitstream and Huffman core errors.
var (
	// ErrEmptyInput is returned when a Huffman tree is requested for an empty frequency table.
	ErrEmptyInput = errors.New("empty input: no symbols to build a Huffman tree")
	// ErrCodeLengthOverflow is returned when a code is longer than the 255 bits the container can describe.
	ErrCodeLengthOverflow = errors.New("code length exceeds 255 bits")
	// ErrInvalidCodeTable is returned when a code table is not a valid prefix code.
	ErrInvalidCodeTable = errors.New("invalid code table")
	// ErrUnknownSymbol is returned when the encoder meets a byte that has no code.
	ErrUnknownSymbol = errors.New("symbol has no code in table")
	// ErrUnknownCode is returned when no known code matches at the decoder cursor.
	ErrUnknownCode = errors.New("corrupted data: no code matches bit sequence")
	// ErrUnexpectedEOS is returned when a bit stream ends in the middle of a field or symbol.
	ErrUnexpectedEOS = errors.New("unexpected end of bit stream")
	// ErrBitWidth is returned when a bit field width is outside 0..64.
	ErrBitWidth = errors.New("bit width out of range")
)

// Container errors.
var (
	// ErrTruncatedContainer is returned when a blob is too short to hold the fixed header fields.
	ErrTruncatedContainer = errors.New("truncated container")
	// ErrMalformedContainer is returned when header fields are inconsistent with the blob contents.
	ErrMalformedContainer = errors.New("malformed container")
	// ErrSymbolCountMismatch is returned when fewer entries than symbol_count are present.
	ErrSymbolCountMismatch = errors.New("symbol count inconsistent with entries present")
)

// Frame errors.
var (
	ErrInvalidFrameSize   = errors.New("invalid frame size")
	ErrInvalidMagicNumber = errors.New("invalid magic number")
	ErrInvalidFrameFlags  = errors.New("invalid frame flags")
	ErrUnsupportedVersion = errors.New("unsupported frame version")
	ErrUnsupportedCodec   = errors.New("unsupported codec")
	ErrChecksumMismatch   = errors.New("checksum mismatch")
	ErrSizeMismatch       = errors.New("decoded size mismatch")
	ErrInputTooLarge      = errors.New("input exceeds configured maximum size")
)

// ErrRoundTripMismatch is returned when decompressed output differs from the original input.
var ErrRoundTripMismatch = errors.New("round-trip output differs from input")
