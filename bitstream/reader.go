package bitstream

import (
	"fmt"

	"github.com/arloliu/zmh/errs"
)

// Reader is a sequential cursor over a BitStream.
//
// The reader never modifies the underlying stream. A limit can be set to stop
// reading before the physical end of the stream, which is how trailing padding
// is excluded without copying.
type Reader struct {
	s     *BitStream
	pos   int
	limit int
}

// NewReader creates a reader positioned at the first bit of s.
func NewReader(s *BitStream) *Reader {
	return &Reader{s: s, limit: s.Len()}
}

// Pos returns the index of the next bit to be read.
func (r *Reader) Pos() int {
	return r.pos
}

// Remaining returns the number of bits left before the limit.
func (r *Reader) Remaining() int {
	return r.limit - r.pos
}

// Limit restricts the reader to the first n bits of the stream.
func (r *Reader) Limit(n int) error {
	if n < r.pos || n > r.s.Len() {
		return fmt.Errorf("%w: limit %d outside [%d, %d]", errs.ErrUnexpectedEOS, n, r.pos, r.s.Len())
	}
	r.limit = n

	return nil
}

// ReadBit reads one bit.
func (r *Reader) ReadBit() (uint8, error) {
	if r.pos >= r.limit {
		return 0, fmt.Errorf("%w: at bit %d", errs.ErrUnexpectedEOS, r.pos)
	}

	bit := r.s.Bit(r.pos)
	r.pos++

	return bit, nil
}

// ReadBits reads width bits (0..64) as an unsigned integer, most significant first.
func (r *Reader) ReadBits(width int) (uint64, error) {
	if width < 0 || width > 64 {
		return 0, fmt.Errorf("%w: %d", errs.ErrBitWidth, width)
	}
	if width > r.Remaining() {
		return 0, fmt.Errorf("%w: need %d bits at bit %d, %d remaining", errs.ErrUnexpectedEOS, width, r.pos, r.Remaining())
	}

	v := r.s.uintAt(r.pos, width)
	r.pos += width

	return v, nil
}

// ReadStream reads the next n bits into a new stream.
func (r *Reader) ReadStream(n int) (*BitStream, error) {
	if n < 0 || n > r.Remaining() {
		return nil, fmt.Errorf("%w: need %d bits at bit %d, %d remaining", errs.ErrUnexpectedEOS, n, r.pos, r.Remaining())
	}

	out, err := r.s.Slice(r.pos, r.pos+n)
	if err != nil {
		return nil, err
	}
	r.pos += n

	return out, nil
}

// Rest returns the remaining bits up to the limit as a new stream and moves
// the cursor to the limit.
func (r *Reader) Rest() (*BitStream, error) {
	return r.ReadStream(r.Remaining())
}

// Skip advances the cursor by n bits.
func (r *Reader) Skip(n int) error {
	if n < 0 || n > r.Remaining() {
		return fmt.Errorf("%w: cannot skip %d bits at bit %d", errs.ErrUnexpectedEOS, n, r.pos)
	}
	r.pos += n

	return nil
}
