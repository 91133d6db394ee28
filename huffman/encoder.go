package huffman

import (
	"fmt"

	"github.com/arloliu/zmh/bitstream"
	"github.com/arloliu/zmh/errs"
)

// Encoder writes byte streams as concatenated Huffman codes.
//
// Codes of up to 64 bits are cached as integers so the hot loop appends each
// symbol with a single AppendBits call. An Encoder is immutable after
// creation and safe for concurrent use.
type Encoder struct {
	entries [256]encoderEntry
}

type encoderEntry struct {
	wide  *bitstream.BitStream // set only for codes longer than 64 bits
	bits  uint64
	width int // 0 means the symbol has no code
}

// NewEncoder prepares an encoder for table.
func NewEncoder(table *CodeTable) *Encoder {
	e := &Encoder{}
	for sym, code := range table.All() {
		entry := &e.entries[sym]
		entry.width = code.Len()
		if entry.width > 64 {
			entry.wide = code

			continue
		}
		// Codes of at most 64 bits always fit in one read.
		entry.bits, _ = code.Uint(0, entry.width)
	}

	return e
}

// Encode appends the code of every byte of data to dst in input order.
//
// It returns errs.ErrUnknownSymbol if a byte has no code; dst then holds the
// codes of the bytes before it.
func (e *Encoder) Encode(data []byte, dst *bitstream.BitStream) error {
	for i, b := range data {
		entry := &e.entries[b]
		switch {
		case entry.width == 0:
			return fmt.Errorf("%w: byte 0x%02x at offset %d", errs.ErrUnknownSymbol, b, i)
		case entry.wide != nil:
			dst.AppendStream(entry.wide)
		default:
			dst.AppendBits(entry.bits, entry.width)
		}
	}

	return nil
}

// Encode appends the Huffman encoding of data under table to dst.
func Encode(data []byte, table *CodeTable, dst *bitstream.BitStream) error {
	return NewEncoder(table).Encode(data, dst)
}
