// Package container serializes a Huffman code table and its encoded payload
// into a single self-describing blob.
//
// Layout (all fields MSB-first, no byte alignment between fields):
//
//	pad_len       3 bits   zero bits appended at the very end
//	symbol_count  8 bits   number of entries; 0 means 256
//	entry × n              symbol (8) | code length (8) | code bits
//	payload                Huffman-coded bits
//	pad           pad_len  zero filler up to a byte boundary
//
// Entries are written in ascending symbol order, so the same table always
// produces the same header.
package container

import (
	"fmt"

	"github.com/arloliu/zmh/bitstream"
	"github.com/arloliu/zmh/errs"
	"github.com/arloliu/zmh/huffman"
)

const (
	PadLenBits      = 3  // width of the pad_len field
	SymbolCountBits = 8  // width of the symbol_count field
	SymbolBits      = 8  // width of an entry's symbol field
	CodeLenBits     = 8  // width of an entry's code length field
	FixedHeaderBits = PadLenBits + SymbolCountBits

	// MaxSymbols is the largest symbol count; it is stored as 0.
	MaxSymbols = 256
)

// Header describes the layout of a parsed container.
type Header struct {
	// PadBits is the number of zero bits appended to reach a byte boundary.
	PadBits int
	// SymbolCount is the number of code table entries.
	SymbolCount int
	// HeaderBits is the total size of pad_len, symbol_count and all entries.
	HeaderBits int
	// PayloadBits is the size of the Huffman-coded payload.
	PayloadBits int
}

// TotalBits returns the blob size in bits, padding included.
func (h Header) TotalBits() int {
	return h.HeaderBits + h.PayloadBits + h.PadBits
}

// Serialize packs table and payload into a byte-aligned blob.
//
// Parameters:
//   - table: Code table with 1..256 entries
//   - payload: Huffman-coded bits
//
// Returns:
//   - []byte: Newly allocated blob owned by the caller
//   - error: ErrInvalidCodeTable or ErrCodeLengthOverflow for unusable tables
func Serialize(table *huffman.CodeTable, payload *bitstream.BitStream) ([]byte, error) {
	out := bitstream.NewPooled()
	defer out.Release()
	out.Grow(FixedHeaderBits + table.Len()*(SymbolBits+CodeLenBits) + table.MaxLen()*table.Len() + payload.Len())

	if err := writeTo(out, table, payload); err != nil {
		return nil, err
	}

	blob := make([]byte, out.ByteLen())
	copy(blob, out.Bytes())

	return blob, nil
}

// writeTo appends the complete container to out, which must be empty.
func writeTo(out *bitstream.BitStream, table *huffman.CodeTable, payload *bitstream.BitStream) error {
	count := table.Len()
	if count == 0 || count > MaxSymbols {
		return fmt.Errorf("%w: %d symbols", errs.ErrInvalidCodeTable, count)
	}

	out.AppendBits(0, PadLenBits) // back-filled once the pad is known
	out.AppendBits(uint64(count%MaxSymbols), SymbolCountBits)

	for sym, code := range table.All() {
		if code.Len() > huffman.MaxCodeLength {
			return fmt.Errorf("%w: symbol 0x%02x has %d bits", errs.ErrCodeLengthOverflow, sym, code.Len())
		}
		out.AppendBits(uint64(sym), SymbolBits)
		out.AppendBits(uint64(code.Len()), CodeLenBits) //nolint: gosec // bounded by MaxCodeLength
		out.AppendStream(code)
	}

	out.AppendStream(payload)

	pad := out.PadToByte()

	return out.SetBits(0, uint64(pad), PadLenBits) //nolint: gosec // pad is 0..7
}

// Deserialize parses a blob produced by Serialize and returns the code table
// and the payload bits with the trailing padding removed.
//
// The table is validated as a prefix code before it is returned, so it can be
// handed to huffman.Decode directly. blob is never modified.
//
// Parameters:
//   - blob: Container bytes
//
// Returns:
//   - *huffman.CodeTable: Validated code table
//   - *bitstream.BitStream: Payload bits without padding
//   - error: ErrTruncatedContainer, ErrMalformedContainer or ErrSymbolCountMismatch
func Deserialize(blob []byte) (*huffman.CodeTable, *bitstream.BitStream, error) {
	table, r, _, err := parse(blob)
	if err != nil {
		return nil, nil, err
	}

	payload, err := r.Rest()
	if err != nil {
		return nil, nil, err
	}

	return table, payload, nil
}

// Inspect parses the header of blob without copying the payload.
func Inspect(blob []byte) (Header, error) {
	_, _, hdr, err := parse(blob)
	return hdr, err
}

// parse reads the header and code table, leaving r positioned at the payload
// and limited to exclude the padding.
func parse(blob []byte) (*huffman.CodeTable, *bitstream.Reader, Header, error) {
	var hdr Header

	if len(blob)*8 < FixedHeaderBits {
		return nil, nil, hdr, fmt.Errorf("%w: %d bytes", errs.ErrTruncatedContainer, len(blob))
	}

	bits := bitstream.FromBytes(blob)
	r := bitstream.NewReader(bits)

	padLen, err := r.ReadBits(PadLenBits)
	if err != nil {
		return nil, nil, hdr, err
	}
	hdr.PadBits = int(padLen) //nolint: gosec // 3-bit field

	if err := checkPadding(bits, hdr.PadBits); err != nil {
		return nil, nil, hdr, err
	}
	// The reader stays behind the fixed header, so this limit is always valid.
	if err := r.Limit(bits.Len() - hdr.PadBits); err != nil {
		return nil, nil, hdr, fmt.Errorf("%w: %w", errs.ErrMalformedContainer, err)
	}

	count, err := r.ReadBits(SymbolCountBits)
	if err != nil {
		return nil, nil, hdr, fmt.Errorf("%w: %w", errs.ErrTruncatedContainer, err)
	}
	hdr.SymbolCount = int(count) //nolint: gosec // 8-bit field
	if hdr.SymbolCount == 0 {
		hdr.SymbolCount = MaxSymbols
	}

	table := huffman.NewCodeTable()
	for i := range hdr.SymbolCount {
		sym, codeLen, err := readEntryHeader(r)
		if err != nil {
			return nil, nil, hdr, fmt.Errorf("%w: %w: entry %d of %d: %w", errs.ErrMalformedContainer, errs.ErrSymbolCountMismatch, i+1, hdr.SymbolCount, err)
		}
		if codeLen == 0 {
			return nil, nil, hdr, fmt.Errorf("%w: symbol 0x%02x has zero-length code", errs.ErrMalformedContainer, sym)
		}
		if _, dup := table.Code(sym); dup {
			return nil, nil, hdr, fmt.Errorf("%w: duplicate symbol 0x%02x", errs.ErrMalformedContainer, sym)
		}

		code, err := r.ReadStream(codeLen)
		if err != nil {
			return nil, nil, hdr, fmt.Errorf("%w: %w: code of symbol 0x%02x: %w", errs.ErrMalformedContainer, errs.ErrSymbolCountMismatch, sym, err)
		}
		if err := table.Set(sym, code); err != nil {
			return nil, nil, hdr, fmt.Errorf("%w: %w", errs.ErrMalformedContainer, err)
		}
	}

	if err := table.Validate(); err != nil {
		return nil, nil, hdr, fmt.Errorf("%w: %w", errs.ErrMalformedContainer, err)
	}

	hdr.HeaderBits = r.Pos()
	hdr.PayloadBits = r.Remaining()

	return table, r, hdr, nil
}

func readEntryHeader(r *bitstream.Reader) (byte, int, error) {
	sym, err := r.ReadBits(SymbolBits)
	if err != nil {
		return 0, 0, err
	}
	codeLen, err := r.ReadBits(CodeLenBits)
	if err != nil {
		return 0, 0, err
	}

	return byte(sym), int(codeLen), nil //nolint: gosec // 8-bit fields
}

// checkPadding verifies that the last padBits bits exist beyond the fixed
// header and are zero.
func checkPadding(bits *bitstream.BitStream, padBits int) error {
	if bits.Len()-padBits < FixedHeaderBits {
		return fmt.Errorf("%w: %d pad bits leave no room for the header", errs.ErrMalformedContainer, padBits)
	}

	tail, err := bits.Uint(bits.Len()-padBits, padBits)
	if err != nil {
		return err
	}
	if tail != 0 {
		return fmt.Errorf("%w: non-zero padding", errs.ErrMalformedContainer)
	}

	return nil
}
