// Package bitstream provides a growable, MSB-first sequence of bits.
//
// A BitStream packs bits into bytes with the most significant bit of each byte
// holding the earliest bit, the same order used by the zmh container format.
// Bits past Len() in the last byte are always zero, so Bytes() can be written
// out directly once the stream has been padded to a byte boundary.
//
// BitStream is not safe for concurrent mutation.
package bitstream

import (
	"fmt"
	"strings"

	"github.com/arloliu/zmh/errs"
	"github.com/arloliu/zmh/internal/pool"
)

// BitStream is an ordered, growable sequence of bits.
//
// The zero value is an empty stream ready to use.
type BitStream struct {
	buf    *pool.ByteBuffer
	n      int  // number of valid bits
	pooled bool // buf was taken from the stream pool
}

// New creates an empty stream with room for capacityBits bits.
func New(capacityBits int) *BitStream {
	if capacityBits < 0 {
		capacityBits = 0
	}

	return &BitStream{buf: pool.NewByteBuffer((capacityBits + 7) / 8)}
}

// NewPooled creates an empty stream backed by a pooled buffer.
//
// The caller must call Release once the stream and any slice obtained from
// Bytes are no longer in use.
func NewPooled() *BitStream {
	return &BitStream{buf: pool.GetStreamBuffer(), pooled: true}
}

// FromBytes wraps data as a stream of len(data)*8 bits without copying.
//
// Appending to the returned stream never writes into data's backing array,
// but SetBits and Truncate modify data in place.
func FromBytes(data []byte) *BitStream {
	return &BitStream{
		buf: &pool.ByteBuffer{B: data[:len(data):len(data)]},
		n:   len(data) * 8,
	}
}

// FromString parses a string of '0' and '1' characters into a stream.
func FromString(s string) (*BitStream, error) {
	bs := New(len(s))
	for i := range len(s) {
		switch s[i] {
		case '0':
			bs.AppendBit(0)
		case '1':
			bs.AppendBit(1)
		default:
			return nil, fmt.Errorf("invalid bit character %q at index %d", s[i], i)
		}
	}

	return bs, nil
}

// MustFromString is like FromString but panics on malformed input.
func MustFromString(s string) *BitStream {
	bs, err := FromString(s)
	if err != nil {
		panic(err)
	}

	return bs
}

// Grow ensures room for n more bits without reallocating.
func (s *BitStream) Grow(n int) {
	if n <= 0 {
		return
	}
	s.ensure()
	s.buf.Grow((s.n+n+7)/8 - len(s.buf.B))
}

// Release returns a pooled buffer to the pool and empties the stream.
// It is a no-op for streams that were not created by NewPooled.
func (s *BitStream) Release() {
	if s.pooled && s.buf != nil {
		pool.PutStreamBuffer(s.buf)
	}
	s.buf = nil
	s.n = 0
	s.pooled = false
}

// Reset empties the stream while keeping its storage.
func (s *BitStream) Reset() {
	if s.buf != nil {
		s.buf.Reset()
	}
	s.n = 0
}

// Len returns the number of bits in the stream.
func (s *BitStream) Len() int {
	return s.n
}

// ByteLen returns the number of bytes needed to hold the stream.
func (s *BitStream) ByteLen() int {
	return (s.n + 7) / 8
}

// Bit returns the bit at index i as 0 or 1. It panics if i is out of range.
func (s *BitStream) Bit(i int) uint8 {
	if i < 0 || i >= s.n {
		panic(fmt.Sprintf("bitstream: index %d out of range [0, %d)", i, s.n))
	}

	return (s.buf.B[i>>3] >> (7 - uint(i&7))) & 1
}

// AppendBit appends a single bit. Any non-zero value is treated as 1.
func (s *BitStream) AppendBit(bit uint8) {
	s.ensure()

	off := s.n & 7
	if off == 0 {
		s.buf.AppendByte(0)
	}
	if bit != 0 {
		s.buf.B[len(s.buf.B)-1] |= 0x80 >> uint(off)
	}
	s.n++
}

// AppendBits appends the low width bits of value, most significant first.
// It panics if width is outside 0..64.
func (s *BitStream) AppendBits(value uint64, width int) {
	if width < 0 || width > 64 {
		panic(fmt.Sprintf("bitstream: %v: %d", errs.ErrBitWidth, width))
	}
	s.ensure()

	for width > 0 {
		off := s.n & 7
		if off == 0 {
			s.buf.AppendByte(0)
		}

		free := 8 - off
		take := min(free, width)
		chunk := (value >> uint(width-take)) & lowMask(take)
		s.buf.B[len(s.buf.B)-1] |= byte(chunk << uint(free-take))

		s.n += take
		width -= take
	}
}

// AppendStream appends every bit of other.
func (s *BitStream) AppendStream(other *BitStream) {
	if other == nil || other.n == 0 {
		return
	}
	s.ensure()

	// Byte-aligned fast path: other's unused tail bits are zero.
	if s.n&7 == 0 {
		_, _ = s.buf.Write(other.buf.B[:other.ByteLen()])
		s.n += other.n

		return
	}

	pos := 0
	for pos < other.n {
		width := min(64, other.n-pos)
		s.AppendBits(other.uintAt(pos, width), width)
		pos += width
	}
}

// Uint reads width bits (0..64) starting at bit position pos.
func (s *BitStream) Uint(pos, width int) (uint64, error) {
	if width < 0 || width > 64 {
		return 0, fmt.Errorf("%w: %d", errs.ErrBitWidth, width)
	}
	if pos < 0 || pos+width > s.n {
		return 0, fmt.Errorf("%w: need %d bits at position %d, have %d", errs.ErrUnexpectedEOS, width, pos, s.n)
	}

	return s.uintAt(pos, width), nil
}

// uintAt is Uint without bounds checks.
func (s *BitStream) uintAt(pos, width int) uint64 {
	var v uint64
	for width > 0 {
		off := pos & 7
		avail := 8 - off
		take := min(avail, width)
		b := uint64(s.buf.B[pos>>3]>>uint(avail-take)) & lowMask(take)
		v = v<<uint(take) | b

		pos += take
		width -= take
	}

	return v
}

// SetBits overwrites width bits starting at pos with the low width bits of value.
// The range must lie within the stream.
func (s *BitStream) SetBits(pos int, value uint64, width int) error {
	if width < 0 || width > 64 {
		return fmt.Errorf("%w: %d", errs.ErrBitWidth, width)
	}
	if pos < 0 || pos+width > s.n {
		return fmt.Errorf("%w: cannot set %d bits at position %d, have %d", errs.ErrUnexpectedEOS, width, pos, s.n)
	}

	for width > 0 {
		off := pos & 7
		avail := 8 - off
		take := min(avail, width)
		shift := uint(avail - take)
		mask := byte(lowMask(take) << shift)
		chunk := byte(((value >> uint(width-take)) & lowMask(take)) << shift)

		idx := pos >> 3
		s.buf.B[idx] = (s.buf.B[idx] &^ mask) | chunk

		pos += take
		width -= take
	}

	return nil
}

// Slice returns a copy of the bits in [from, to).
func (s *BitStream) Slice(from, to int) (*BitStream, error) {
	if from < 0 || to < from || to > s.n {
		return nil, fmt.Errorf("%w: slice [%d, %d) of %d bits", errs.ErrUnexpectedEOS, from, to, s.n)
	}

	out := New(to - from)
	if from == to {
		return out, nil
	}
	if from&7 == 0 {
		_, _ = out.buf.Write(s.buf.B[from>>3 : (to+7)>>3])
		out.n = to - from
		out.clearTail()

		return out, nil
	}

	for pos := from; pos < to; {
		width := min(64, to-pos)
		out.AppendBits(s.uintAt(pos, width), width)
		pos += width
	}

	return out, nil
}

// Truncate shortens the stream to n bits. It panics if n is out of range.
func (s *BitStream) Truncate(n int) {
	if n < 0 || n > s.n {
		panic(fmt.Sprintf("bitstream: truncate to %d bits of %d", n, s.n))
	}
	if s.buf == nil {
		return
	}

	s.n = n
	s.buf.B = s.buf.B[:s.ByteLen()]
	s.clearTail()
}

// PadToByte appends zero bits up to the next byte boundary and returns how
// many were added (0..7).
func (s *BitStream) PadToByte() int {
	pad := (8 - s.n&7) & 7
	s.n += pad // tail bits are already zero

	return pad
}

// Bytes returns the packed bytes of the stream. Bits beyond Len() in the last
// byte are zero. The slice aliases internal storage and is valid until the
// next mutation or Release.
func (s *BitStream) Bytes() []byte {
	if s.buf == nil {
		return nil
	}

	return s.buf.B[:s.ByteLen()]
}

// Clone returns an independent copy of the stream.
func (s *BitStream) Clone() *BitStream {
	out := New(s.n)
	if s.n > 0 {
		_, _ = out.buf.Write(s.Bytes())
		out.n = s.n
	}

	return out
}

// Equal reports whether both streams hold the same bit sequence.
func (s *BitStream) Equal(other *BitStream) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.n != other.n {
		return false
	}

	a, b := s.Bytes(), other.Bytes()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// HasPrefix reports whether the stream starts with prefix.
func (s *BitStream) HasPrefix(prefix *BitStream) bool {
	if prefix.n > s.n {
		return false
	}

	for pos := 0; pos < prefix.n; pos += 64 {
		width := min(64, prefix.n-pos)
		if s.uintAt(pos, width) != prefix.uintAt(pos, width) {
			return false
		}
	}

	return true
}

// Key returns a string usable as a map key. Two streams have the same key
// exactly when they are Equal.
func (s *BitStream) Key() string {
	var sb strings.Builder
	sb.Grow(s.ByteLen() + 3)
	n := s.n
	for n >= 0x80 {
		sb.WriteByte(byte(n) | 0x80)
		n >>= 7
	}
	sb.WriteByte(byte(n))
	sb.Write(s.Bytes())

	return sb.String()
}

// String renders the stream as a sequence of '0' and '1' characters.
func (s *BitStream) String() string {
	var sb strings.Builder
	sb.Grow(s.n)
	for i := range s.n {
		sb.WriteByte('0' + s.Bit(i))
	}

	return sb.String()
}

var _ fmt.Stringer = (*BitStream)(nil)

func (s *BitStream) ensure() {
	if s.buf == nil {
		s.buf = pool.NewByteBuffer(0)
	}
}

// clearTail zeroes the unused bits of the last byte.
func (s *BitStream) clearTail() {
	if off := s.n & 7; off != 0 {
		s.buf.B[len(s.buf.B)-1] &= ^byte(0xFF >> uint(off))
	}
}

func lowMask(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}

	return (uint64(1) << uint(width)) - 1
}
