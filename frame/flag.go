package frame

import (
	"fmt"

	"github.com/arloliu/zmh/endian"
	"github.com/arloliu/zmh/errs"
	"github.com/arloliu/zmh/format"
)

// Flag holds the first four bytes of a frame header.
type Flag struct {
	// Options is a packed field.
	// Bit 0 is the checksum flag, 1 means the header carries an xxHash64 of the original data.
	// Bit 1 is the endianness flag, 0 means little-endian, 1 means big-endian.
	// Bits 2-3 are reserved and must be 0.
	// Bits 4-15 hold the magic number 0x5A1.
	Options uint16
	// Codec is the format.CompressionType of the frame body.
	Codec uint8
	// Version is the frame format version.
	Version uint8
}

// NewFlag creates a little-endian flag with checksums enabled and the default codec.
func NewFlag() Flag {
	flag := Flag{
		Options: MagicV1Opt,
		Codec:   uint8(DefaultCompression),
		Version: Version,
	}
	flag.SetChecksum(true)
	flag.WithLittleEndian()

	return flag
}

// HasChecksum returns whether the header carries a checksum.
func (f Flag) HasChecksum() bool {
	return (f.Options & ChecksumMask) != 0
}

// SetChecksum enables or disables the checksum.
func (f *Flag) SetChecksum(enabled bool) {
	if enabled {
		f.Options |= ChecksumMask
	} else {
		f.Options &^= ChecksumMask
	}
}

// IsLittleEndian returns whether header integers are little-endian.
func (f Flag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether header integers are big-endian.
func (f Flag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// WithBigEndian sets big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// MagicNumber returns the magic number bits of Options.
func (f Flag) MagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// Compression returns the codec of the frame body.
func (f Flag) Compression() format.CompressionType {
	return format.CompressionType(f.Codec)
}

// SetCompression sets the codec of the frame body.
func (f *Flag) SetCompression(c format.CompressionType) {
	f.Codec = uint8(c)
}

// Validate checks magic number, reserved bits, version and codec, in that order.
func (f Flag) Validate() error {
	if f.MagicNumber() != MagicV1Opt {
		return fmt.Errorf("%w: 0x%04x", errs.ErrInvalidMagicNumber, f.MagicNumber())
	}
	if f.Options&ReservedBitsMask != 0 {
		return fmt.Errorf("%w: reserved bits set in 0x%04x", errs.ErrInvalidFrameFlags, f.Options)
	}
	if f.Version != Version {
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, f.Version)
	}
	if !f.Compression().IsValid() {
		return fmt.Errorf("%w: 0x%02x", errs.ErrUnsupportedCodec, f.Codec)
	}

	return nil
}

// GetEndianEngine returns the engine for the header's integer fields.
func (f Flag) GetEndianEngine() endian.EndianEngine {
	if f.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}
