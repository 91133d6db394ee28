package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/zmh/errs"
	"github.com/arloliu/zmh/format"
)

const (
	// lz4MaxDecompressedSize bounds the output buffer when the original size is unknown.
	lz4MaxDecompressedSize = 128 * 1024 * 1024
	// lz4MaxExpansion bounds decompressed size per block byte; a match token
	// plus length bytes can describe at most 255 output bytes per input byte.
	lz4MaxExpansion = 255
)

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Codec uses the LZ4 block format: very fast decompression, modest ratio.
type LZ4Codec struct{}

var (
	_ Codec             = LZ4Codec{}
	_ SizedDecompressor = LZ4Codec{}
)

// NewLZ4Codec creates an LZ4 codec.
func NewLZ4Codec() LZ4Codec {
	return LZ4Codec{}
}

// Type returns format.CompressionLZ4.
func (LZ4Codec) Type() format.CompressionType {
	return format.CompressionLZ4
}

// Compress compresses data into a single LZ4 block.
//
// Incompressible input makes CompressBlock report zero bytes written; the
// block is then stored with the uncompressed-literal encoding instead.
func (LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}
	if n == 0 {
		return literalBlock(data), nil
	}

	return dst[:n], nil
}

// Decompress decompresses an LZ4 block.
//
// The block does not record its decompressed size, so the output buffer
// starts at 4x the input and doubles on ErrInvalidSourceShortBuffer up to
// lz4MaxDecompressedSize. Callers that know the original size should use
// DecompressSize, which has no such limit.
//
// Parameters:
//   - data: LZ4 block to decompress
//
// Returns:
//   - []byte: Decompressed data (nil if input is empty)
//   - error: ErrInvalidSourceShortBuffer if the output exceeds 128MB, or other decompression errors
func (LZ4Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bufSize := min(len(data)*4, lz4MaxDecompressedSize)
	for {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			return nil, fmt.Errorf("lz4 decompression failed: %w", err)
		}
		if bufSize >= lz4MaxDecompressedSize {
			return nil, fmt.Errorf("lz4 decompression failed: %w", err)
		}
		bufSize = min(bufSize*2, lz4MaxDecompressedSize)
	}
}

// DecompressSize decompresses an LZ4 block whose decompressed size is known,
// allocating exactly size bytes.
//
// Parameters:
//   - data: LZ4 block to decompress
//   - size: Expected decompressed size in bytes
//
// Returns:
//   - []byte: Decompressed data of exactly size bytes
//   - error: errs.ErrSizeMismatch if size is impossible for data or the block
//     decodes to a different length, or other decompression errors
func (LZ4Codec) DecompressSize(data []byte, size int) ([]byte, error) {
	if len(data) == 0 && size == 0 {
		return nil, nil
	}
	if size < 0 || size > lz4MaxExpansion*len(data) {
		return nil, fmt.Errorf("%w: %d bytes cannot come from a %d-byte lz4 block", errs.ErrSizeMismatch, size, len(data))
	}

	buf := make([]byte, size)
	n, err := lz4.UncompressBlock(data, buf)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if n != size {
		return nil, fmt.Errorf("%w: lz4 block holds %d bytes, want %d", errs.ErrSizeMismatch, n, size)
	}

	return buf, nil
}

// literalBlock encodes data as one LZ4 sequence made only of literals, which
// every LZ4 block decoder accepts.
func literalBlock(data []byte) []byte {
	n := len(data)
	out := make([]byte, 0, n+n/255+16)

	if n < 15 {
		return append(append(out, byte(n<<4)), data...)
	}

	out = append(out, 0xF0)
	rest := n - 15
	for rest >= 255 {
		out = append(out, 255)
		rest -= 255
	}
	out = append(out, byte(rest))

	return append(out, data...)
}
