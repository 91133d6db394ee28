package compress

import (
	"bytes"
	"fmt"
	"time"

	"github.com/arloliu/zmh/errs"
	"github.com/arloliu/zmh/format"
)

// Compressor compresses a whole in-memory buffer.
type Compressor interface {
	// Compress compresses data and returns the result.
	//
	// Memory management:
	//   - Returned slice is owned by the caller unless documented otherwise
	//   - Input slice is not modified
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
//
// Decompress validates its input and returns an error for corrupted data or
// data produced by a different algorithm. Implementations in this package are
// safe for concurrent use.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// SizedDecompressor is implemented by codecs whose format does not record the
// decompressed size. Callers that know the size, such as frame decoding,
// should prefer DecompressSize over Decompress.
type SizedDecompressor interface {
	// DecompressSize decompresses data into exactly size bytes and fails if
	// the data holds a different amount.
	DecompressSize(data []byte, size int) ([]byte, error)
}

// Codec combines both directions and reports the algorithm it implements.
type Codec interface {
	Compressor
	Decompressor

	// Type returns the compression type recorded in frame headers.
	Type() format.CompressionType
}

// CreateCodec creates a new Codec for the given compression type.
//
// Parameters:
//   - compressionType: Codec to create
//
// Returns:
//   - Codec: New codec instance
//   - error: errs.ErrUnsupportedCodec for unknown types
func CreateCodec(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCodec(), nil
	case format.CompressionZstd:
		return NewZstdCodec(), nil
	case format.CompressionS2:
		return NewS2Codec(), nil
	case format.CompressionLZ4:
		return NewLZ4Codec(), nil
	case format.CompressionHuffman:
		return NewHuffmanCodec(), nil
	default:
		return nil, fmt.Errorf("%w: %s (0x%02x)", errs.ErrUnsupportedCodec, compressionType, uint8(compressionType))
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone:    NewNoOpCodec(),
	format.CompressionZstd:    NewZstdCodec(),
	format.CompressionS2:      NewS2Codec(),
	format.CompressionLZ4:     NewLZ4Codec(),
	format.CompressionHuffman: NewHuffmanCodec(),
}

// GetCodec returns the shared built-in Codec for compressionType.
//
// Parameters:
//   - compressionType: Codec to look up
//
// Returns:
//   - Codec: Shared instance, safe for concurrent use
//   - error: errs.ErrUnsupportedCodec for unknown types
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s (0x%02x)", errs.ErrUnsupportedCodec, compressionType, uint8(compressionType))
}

// Stats describes one compress/decompress round trip.
type Stats struct {
	// Algorithm identifies the codec that was measured.
	Algorithm format.CompressionType
	// OriginalSize is the input size in bytes.
	OriginalSize int
	// CompressedSize is the compressed size in bytes.
	CompressedSize int
	// CompressDuration is the wall time spent in Compress.
	CompressDuration time.Duration
	// DecompressDuration is the wall time spent in Decompress.
	DecompressDuration time.Duration
}

// CompressionRatio returns compressed size / original size, or 0 for empty input.
// Values below 1.0 mean the data shrank.
func (s Stats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the saved space as a percentage. It is negative when
// the codec expanded the data.
func (s Stats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return (1.0 - s.CompressionRatio()) * 100.0
}

// Measure compresses and decompresses data with codec, checks that the output
// matches the input byte for byte, and reports sizes and timings.
//
// Parameters:
//   - codec: Codec under test
//   - data: Input to round-trip
//
// Returns:
//   - Stats: Sizes and durations, filled as far as the round trip got
//   - error: Codec error, or errs.ErrRoundTripMismatch if the output differs
func Measure(codec Codec, data []byte) (Stats, error) {
	stats := Stats{Algorithm: codec.Type(), OriginalSize: len(data)}

	start := time.Now()
	compressed, err := codec.Compress(data)
	stats.CompressDuration = time.Since(start)
	if err != nil {
		return stats, fmt.Errorf("%s compress: %w", codec.Type(), err)
	}
	stats.CompressedSize = len(compressed)

	start = time.Now()
	restored, err := codec.Decompress(compressed)
	stats.DecompressDuration = time.Since(start)
	if err != nil {
		return stats, fmt.Errorf("%s decompress: %w", codec.Type(), err)
	}

	if !bytes.Equal(data, restored) {
		return stats, fmt.Errorf("%w: %s: %d bytes in, %d bytes out", errs.ErrRoundTripMismatch, codec.Type(), len(data), len(restored))
	}

	return stats, nil
}
