package frame

import "github.com/arloliu/zmh/format"

const (
	// Bit masks for Flag.Options
	ChecksumMask     = 0x0001 // bit 0: body checksum present
	EndiannessMask   = 0x0002 // bit 1: 0=little-endian, 1=big-endian
	ReservedBitsMask = 0x000C // bits 2-3: must be zero
	MagicNumberMask  = 0xFFF0 // bits 4-15: magic number

	// MagicV1Opt identifies a zmh frame in bits 4-15 of the options field.
	MagicV1Opt = 0x5A10

	// Version is the only frame version this package writes and reads.
	Version = 1

	// DefaultCompression is the codec used when no WithCodec option is given.
	DefaultCompression = format.CompressionHuffman

	// DefaultMaxInputSize bounds Encode input when no WithMaxInputSize option is given.
	DefaultMaxInputSize = 1 << 30
)

// Header layout
const (
	HeaderSize = 24 // fixed header size in bytes

	optionsOffset      = 0  // uint16, always little-endian
	codecOffset        = 2  // uint8
	versionOffset      = 3  // uint8
	originalSizeOffset = 4  // uint64
	checksumOffset     = 12 // uint64
	bodySizeOffset     = 20 // uint32
)
