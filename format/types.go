package format

import (
	"fmt"
	"strings"
)

// CompressionType identifies the codec used for a frame body.
type CompressionType uint8

const (
	CompressionNone    CompressionType = 0x1 // CompressionNone stores data as-is.
	CompressionZstd    CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2      CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4     CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.
	CompressionHuffman CompressionType = 0x5 // CompressionHuffman represents the static Huffman container.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionHuffman:
		return "Huffman"
	default:
		return "Unknown"
	}
}

// IsValid reports whether c is a known compression type.
func (c CompressionType) IsValid() bool {
	return c >= CompressionNone && c <= CompressionHuffman
}

// ParseCompressionType converts a case-insensitive name such as "huffman" or
// "zstd" to a CompressionType.
func ParseCompressionType(name string) (CompressionType, error) {
	for c := CompressionNone; c <= CompressionHuffman; c++ {
		if strings.EqualFold(name, c.String()) {
			return c, nil
		}
	}

	return 0, fmt.Errorf("unknown compression type %q", name)
}
