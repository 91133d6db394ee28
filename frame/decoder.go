package frame

import (
	"fmt"
	"math"

	"github.com/arloliu/zmh/compress"
	"github.com/arloliu/zmh/errs"
	"github.com/arloliu/zmh/internal/hash"
)

// Decode verifies a frame and returns the original data.
//
// Codecs implementing compress.SizedDecompressor are given the original size
// from the header, so their output is allocated once at the right length.
//
// The header flag, the body size and, after decompression, the original size
// and checksum are all checked; any disagreement is reported as an error and
// no data is returned. For CompressionNone frames the result aliases data.
//
// Parameters:
//   - data: Complete frame, header and body
//
// Returns:
//   - []byte: Original data
//   - error: Header, size, codec or checksum error from package errs
func Decode(data []byte) ([]byte, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	body := data[HeaderSize:]
	if uint64(len(body)) != uint64(h.BodySize) {
		return nil, fmt.Errorf("%w: body is %d bytes, header says %d", errs.ErrInvalidFrameSize, len(body), h.BodySize)
	}
	if !h.Flag.HasChecksum() && h.Checksum != 0 {
		return nil, fmt.Errorf("%w: checksum present but flag unset", errs.ErrInvalidFrameFlags)
	}

	codec, err := compress.GetCodec(h.Flag.Compression())
	if err != nil {
		return nil, err
	}

	if h.OriginalSize > math.MaxInt {
		return nil, fmt.Errorf("%w: original size %d does not fit in memory", errs.ErrSizeMismatch, h.OriginalSize)
	}

	var out []byte
	if sized, ok := codec.(compress.SizedDecompressor); ok {
		out, err = sized.DecompressSize(body, int(h.OriginalSize)) //nolint: gosec // checked above
	} else {
		out, err = codec.Decompress(body)
	}
	if err != nil {
		return nil, fmt.Errorf("%s decompress: %w", h.Flag.Compression(), err)
	}

	if uint64(len(out)) != h.OriginalSize {
		return nil, fmt.Errorf("%w: got %d bytes, header says %d", errs.ErrSizeMismatch, len(out), h.OriginalSize)
	}
	if h.Flag.HasChecksum() {
		if sum := hash.Checksum(out); sum != h.Checksum {
			return nil, fmt.Errorf("%w: got 0x%016x, header says 0x%016x", errs.ErrChecksumMismatch, sum, h.Checksum)
		}
	}

	return out, nil
}
