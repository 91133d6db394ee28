// Package frame wraps a compressed body in a small self-verifying envelope.
//
// A frame is a fixed 24-byte header followed by the codec output:
//
//	bytes 0-1    options: checksum bit, endianness bit, magic 0x5A1
//	byte  2      codec (format.CompressionType)
//	byte  3      version
//	bytes 4-11   original size (uint64)
//	bytes 12-19  xxHash64 of the original data, 0 when disabled
//	bytes 20-23  body size (uint32)
//
// The options field is always little-endian so a reader can learn the byte
// order of the remaining fields from it.
package frame

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/zmh/errs"
)

// Header is the fixed-size header at the start of a frame.
type Header struct {
	// OriginalSize is the length of the uncompressed data.
	OriginalSize uint64 // byte offset 4-11
	// Checksum is the xxHash64 of the uncompressed data, or 0 if Flag.HasChecksum is false.
	Checksum uint64 // byte offset 12-19
	// BodySize is the length of the codec output following the header.
	BodySize uint32 // byte offset 20-23

	Flag Flag // byte offset 0-3
}

// Parse parses the header from exactly HeaderSize bytes and validates its flag.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 24 bytes)
//
// Returns:
//   - error: ErrInvalidFrameSize if data is not 24 bytes, or flag validation errors
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: header is %d bytes, want %d", errs.ErrInvalidFrameSize, len(data), HeaderSize)
	}

	h.Flag.Options = binary.LittleEndian.Uint16(data[optionsOffset:])
	h.Flag.Codec = data[codecOffset]
	h.Flag.Version = data[versionOffset]

	engine := h.Flag.GetEndianEngine()
	h.OriginalSize = engine.Uint64(data[originalSizeOffset:])
	h.Checksum = engine.Uint64(data[checksumOffset:])
	h.BodySize = engine.Uint32(data[bodySizeOffset:])

	return h.Flag.Validate()
}

// AppendTo appends the serialized header to dst.
func (h *Header) AppendTo(dst []byte) []byte {
	engine := h.Flag.GetEndianEngine()

	dst = binary.LittleEndian.AppendUint16(dst, h.Flag.Options)
	dst = append(dst, h.Flag.Codec, h.Flag.Version)
	dst = engine.AppendUint64(dst, h.OriginalSize)
	dst = engine.AppendUint64(dst, h.Checksum)

	return engine.AppendUint32(dst, h.BodySize)
}

// Bytes serializes the header into a new HeaderSize-byte slice.
func (h *Header) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// ParseHeader parses the header at the start of data, which may include the body.
//
// Parameters:
//   - data: Byte slice starting with a header (must be at least 24 bytes)
//
// Returns:
//   - Header: Parsed header struct
//   - error: ErrInvalidFrameSize or flag validation errors
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes, header needs %d", errs.ErrInvalidFrameSize, len(data), HeaderSize)
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
