package frame

import (
	"fmt"
	"math"

	"github.com/arloliu/zmh/compress"
	"github.com/arloliu/zmh/endian"
	"github.com/arloliu/zmh/errs"
	"github.com/arloliu/zmh/format"
	"github.com/arloliu/zmh/internal/hash"
	"github.com/arloliu/zmh/internal/options"
)

// Encoder builds frames. It is immutable after NewEncoder and safe for
// concurrent use.
type Encoder struct {
	codec        compress.Codec
	flag         Flag
	maxInputSize int
}

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*Encoder]

// WithCodec selects the codec for the frame body. The default is Huffman.
func WithCodec(c format.CompressionType) EncoderOption {
	return options.New(func(e *Encoder) error {
		codec, err := compress.GetCodec(c)
		if err != nil {
			return err
		}
		e.codec = codec
		e.flag.SetCompression(c)

		return nil
	})
}

// WithChecksum enables or disables the xxHash64 checksum. Enabled by default.
func WithChecksum(enabled bool) EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.flag.SetChecksum(enabled)
	})
}

// WithLittleEndian writes header integers little-endian. This is the default.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.flag.WithLittleEndian()
	})
}

// WithBigEndian writes header integers big-endian.
func WithBigEndian() EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.flag.WithBigEndian()
	})
}

// WithNativeEndian writes header integers in the host byte order.
func WithNativeEndian() EncoderOption {
	return options.NoError(func(e *Encoder) {
		if endian.IsNative(endian.GetBigEndianEngine()) {
			e.flag.WithBigEndian()
		} else {
			e.flag.WithLittleEndian()
		}
	})
}

// WithMaxInputSize rejects inputs longer than n bytes.
func WithMaxInputSize(n int) EncoderOption {
	return options.New(func(e *Encoder) error {
		if n <= 0 {
			return fmt.Errorf("max input size must be positive, got %d", n)
		}
		e.maxInputSize = n

		return nil
	})
}

// NewEncoder creates an Encoder with the given options applied over the defaults.
//
// Defaults: Huffman codec, checksum enabled, little-endian header fields and
// a DefaultMaxInputSize input limit.
//
// Parameters:
//   - opts: Encoder options, applied in order
//
// Returns:
//   - *Encoder: Configured encoder
//   - error: First error returned by an option
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	e := &Encoder{
		codec:        compress.NewHuffmanCodec(),
		flag:         NewFlag(),
		maxInputSize: DefaultMaxInputSize,
	}

	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}

	return e, nil
}

// Codec returns the compression type written into frame headers.
func (e *Encoder) Codec() format.CompressionType {
	return e.flag.Compression()
}

// Encode compresses data and returns a complete frame.
//
// Parameters:
//   - data: Input to compress; not modified
//
// Returns:
//   - []byte: Header followed by the codec body, owned by the caller
//   - error: errs.ErrInputTooLarge if data exceeds the configured maximum or the
//     body does not fit the 32-bit body size field, or a codec error
func (e *Encoder) Encode(data []byte) ([]byte, error) {
	if len(data) > e.maxInputSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", errs.ErrInputTooLarge, len(data), e.maxInputSize)
	}

	body, err := e.codec.Compress(data)
	if err != nil {
		return nil, fmt.Errorf("%s compress: %w", e.flag.Compression(), err)
	}
	if uint64(len(body)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: body is %d bytes", errs.ErrInputTooLarge, len(body))
	}

	h := Header{
		Flag:         e.flag,
		OriginalSize: uint64(len(data)),
		BodySize:     uint32(len(body)), //nolint: gosec // checked above
	}
	if h.Flag.HasChecksum() {
		h.Checksum = hash.Checksum(data)
	}

	out := make([]byte, 0, HeaderSize+len(body))
	out = h.AppendTo(out)

	return append(out, body...), nil
}
