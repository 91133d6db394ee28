package compress

import (
	"github.com/arloliu/zmh/container"
	"github.com/arloliu/zmh/format"
)

// HuffmanCodec compresses data with a static Huffman code stored in a
// self-describing container.
//
// It works best on data with a skewed byte distribution such as text, and
// never needs a shared dictionary: the code table travels in the header.
// Random data expands slightly because of the header.
type HuffmanCodec struct{}

var _ Codec = HuffmanCodec{}

// NewHuffmanCodec creates a Huffman codec.
func NewHuffmanCodec() HuffmanCodec {
	return HuffmanCodec{}
}

// Type returns format.CompressionHuffman.
func (HuffmanCodec) Type() format.CompressionType {
	return format.CompressionHuffman
}

// Compress encodes data into a container blob.
//
// Parameters:
//   - data: Input data to compress
//
// Returns:
//   - []byte: Container blob (empty if input is empty)
//   - error: Compression error if any
func (HuffmanCodec) Compress(data []byte) ([]byte, error) {
	return container.Encode(data)
}

// Decompress decodes a container blob. An empty blob yields empty output.
func (HuffmanCodec) Decompress(data []byte) ([]byte, error) {
	return container.Decode(data)
}
