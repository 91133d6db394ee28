// Package zmh is a lossless compressor built on static Huffman coding.
//
// Compress counts byte frequencies, builds a Huffman tree, assigns a prefix
// code to every byte that occurs and writes a self-describing container: the
// code table travels in the header, so no dictionary is needed to
// decompress.
//
// # Basic Usage
//
//	blob, err := zmh.Compress(data)
//	if err != nil {
//	    return err
//	}
//	restored, err := zmh.Decompress(blob)
//
// # Frames
//
// Compress output carries no length or checksum. Pack wraps the compressed
// body in a 24-byte frame header that records the codec, the original size
// and an xxHash64 of the input; Unpack verifies all of them:
//
//	packed, err := zmh.Pack(data, frame.WithCodec(format.CompressionZstd))
//	restored, err := zmh.Unpack(packed)
//
// # Package Structure
//
// This package wraps the lower-level packages for the common cases:
//
//   - bitstream: MSB-first bit sequences
//   - huffman: frequency counting, tree construction, code tables, encoder and decoder
//   - container: the self-describing blob layout
//   - compress: Huffman and general-purpose codecs behind one interface
//   - frame: the checksummed envelope used by Pack and Unpack
//
// All functions are safe for concurrent use on distinct buffers.
package zmh

import (
	"github.com/arloliu/zmh/compress"
	"github.com/arloliu/zmh/container"
	"github.com/arloliu/zmh/frame"
)

// Compress encodes data into a Huffman container blob.
//
// Empty input yields an empty blob.
func Compress(data []byte) ([]byte, error) {
	return container.Encode(data)
}

// Decompress restores the bytes encoded in blob.
//
// An empty blob yields empty output. Malformed blobs return an error wrapping
// one of the container or decoding sentinels in package errs.
func Decompress(blob []byte) ([]byte, error) {
	return container.Decode(blob)
}

// Pack compresses data into a verified frame. Without options the body is a
// Huffman container and the header carries a checksum.
func Pack(data []byte, opts ...frame.EncoderOption) ([]byte, error) {
	enc, err := frame.NewEncoder(opts...)
	if err != nil {
		return nil, err
	}

	return enc.Encode(data)
}

// Unpack decodes a frame produced by Pack, whatever codec it uses, and
// verifies its size and checksum.
func Unpack(data []byte) ([]byte, error) {
	return frame.Decode(data)
}

// Verify compresses and decompresses data and checks the result matches
// byte for byte. It returns errs.ErrRoundTripMismatch on a mismatch.
func Verify(data []byte) error {
	_, err := compress.Measure(compress.NewHuffmanCodec(), data)
	return err
}
