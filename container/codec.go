package container

import (
	"github.com/arloliu/zmh/bitstream"
	"github.com/arloliu/zmh/huffman"
)

// Encode compresses data into a container blob.
//
// An empty input produces an empty blob: the format cannot describe a table
// with zero entries, and Decode maps the empty blob back to empty output.
//
// Parameters:
//   - data: Input bytes; not modified
//
// Returns:
//   - []byte: Container blob owned by the caller
//   - error: Tree or code construction error
func Encode(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	table, freq, err := huffman.BuildCodeTable(data)
	if err != nil {
		return nil, err
	}

	payload := bitstream.NewPooled()
	defer payload.Release()
	payload.Grow(int(table.EncodedBits(freq))) //nolint: gosec // bounded by 255 bits per input byte

	if err := huffman.Encode(data, table, payload); err != nil {
		return nil, err
	}

	return Serialize(table, payload)
}

// Decode restores the original bytes from a blob produced by Encode.
//
// Parameters:
//   - blob: Container blob
//
// Returns:
//   - []byte: Original bytes (empty for an empty blob)
//   - error: Container parse errors, or ErrUnknownCode / ErrUnexpectedEOS from decoding
func Decode(blob []byte) ([]byte, error) {
	if len(blob) == 0 {
		return []byte{}, nil
	}

	table, payload, err := Deserialize(blob)
	if err != nil {
		return nil, err
	}

	return huffman.Decode(payload, table)
}
