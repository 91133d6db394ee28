package huffman

import (
	"fmt"
	"slices"

	"github.com/arloliu/zmh/bitstream"
	"github.com/arloliu/zmh/errs"
)

// Decoder turns a bit stream back into bytes using the inverse of a CodeTable.
//
// At each position the decoder tries every code length used by the table,
// shortest first, and emits the symbol of the first length whose bits form a
// known code. Because the table is prefix-free at most one length can match.
//
// A Decoder is immutable after creation and safe for concurrent use.
type Decoder struct {
	narrow  map[narrowKey]byte // codes of at most 64 bits
	wide    map[string]byte    // longer codes, keyed by BitStream.Key
	lengths []int              // distinct code lengths, ascending
}

type narrowKey struct {
	bits  uint64
	width int
}

// NewDecoder builds the inverse mapping of table.
//
// The table must be prefix-free; use CodeTable.Validate on untrusted tables.
func NewDecoder(table *CodeTable) *Decoder {
	d := &Decoder{
		narrow: make(map[narrowKey]byte, table.Len()),
	}

	seen := [MaxCodeLength + 1]bool{}
	for sym, code := range table.All() {
		width := code.Len()
		if !seen[width] {
			seen[width] = true
			d.lengths = append(d.lengths, width)
		}

		if width > 64 {
			if d.wide == nil {
				d.wide = make(map[string]byte)
			}
			d.wide[code.Key()] = sym

			continue
		}
		bits, _ := code.Uint(0, width)
		d.narrow[narrowKey{bits: bits, width: width}] = sym
	}
	slices.Sort(d.lengths)

	return d
}

// Lengths returns the distinct code lengths known to the decoder in ascending order.
func (d *Decoder) Lengths() []int {
	return slices.Clone(d.lengths)
}

// Decode decodes every bit of bits.
//
// It fails with errs.ErrUnknownCode when the bits at the cursor match no
// code, and with errs.ErrUnexpectedEOS when the stream ends inside a symbol.
func (d *Decoder) Decode(bits *bitstream.BitStream) ([]byte, error) {
	n := bits.Len()
	if n == 0 {
		return []byte{}, nil
	}
	if len(d.lengths) == 0 {
		return nil, fmt.Errorf("%w: empty code table", errs.ErrUnknownCode)
	}

	out := make([]byte, 0, n/d.lengths[len(d.lengths)-1]+1)
	pos := 0
	for pos < n {
		sym, width, err := d.match(bits, pos, n)
		if err != nil {
			return nil, err
		}
		out = append(out, sym)
		pos += width
	}

	return out, nil
}

// match finds the code starting at pos.
func (d *Decoder) match(bits *bitstream.BitStream, pos, n int) (byte, int, error) {
	for _, width := range d.lengths {
		if pos+width > n {
			// Lengths are ascending; no longer code can fit either.
			return 0, 0, fmt.Errorf("%w: %d trailing bits at bit %d match no code", errs.ErrUnexpectedEOS, n-pos, pos)
		}

		if width <= 64 {
			v, err := bits.Uint(pos, width)
			if err != nil {
				return 0, 0, err
			}
			if sym, ok := d.narrow[narrowKey{bits: v, width: width}]; ok {
				return sym, width, nil
			}

			continue
		}

		code, err := bits.Slice(pos, pos+width)
		if err != nil {
			return 0, 0, err
		}
		if sym, ok := d.wide[code.Key()]; ok {
			return sym, width, nil
		}
	}

	return 0, 0, fmt.Errorf("%w: at bit %d", errs.ErrUnknownCode, pos)
}

// Decode decodes bits using table.
func Decode(bits *bitstream.BitStream, table *CodeTable) ([]byte, error) {
	return NewDecoder(table).Decode(bits)
}
