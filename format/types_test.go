package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressionType_String(t *testing.T) {
	tests := map[CompressionType]string{
		CompressionNone:    "None",
		CompressionZstd:    "Zstd",
		CompressionS2:      "S2",
		CompressionLZ4:     "LZ4",
		CompressionHuffman: "Huffman",
		0:                  "Unknown",
		0x7F:               "Unknown",
	}

	for c, want := range tests {
		require.Equal(t, want, c.String())
		require.Equal(t, want != "Unknown", c.IsValid(), "type 0x%02x", uint8(c))
	}
}

func TestParseCompressionType(t *testing.T) {
	c, err := ParseCompressionType("huffman")
	require.NoError(t, err)
	require.Equal(t, CompressionHuffman, c)

	c, err = ParseCompressionType("ZSTD")
	require.NoError(t, err)
	require.Equal(t, CompressionZstd, c)

	_, err = ParseCompressionType("brotli")
	require.Error(t, err)
}
