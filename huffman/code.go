package huffman

import (
	"fmt"
	"iter"
	"strings"

	"github.com/arloliu/zmh/bitstream"
	"github.com/arloliu/zmh/errs"
)

// MaxCodeLength is the longest code the container header can describe.
const MaxCodeLength = 255

// CodeTable maps byte symbols to their prefix codes.
type CodeTable struct {
	codes [256]*bitstream.BitStream
	n     int
}

// NewCodeTable creates an empty code table.
func NewCodeTable() *CodeTable {
	return &CodeTable{}
}

// AssignCodes derives the code of every leaf under root.
//
// Descending left appends a 0 bit and descending right appends a 1 bit. Each
// branch works on its own copy of the path, so sibling subtrees never observe
// each other's bits. A root that is itself a leaf gets the 1-bit code "0".
func AssignCodes(root *Node) (*CodeTable, error) {
	if root == nil {
		return nil, errs.ErrEmptyInput
	}

	t := NewCodeTable()
	if root.IsLeaf() {
		code := bitstream.New(1)
		code.AppendBit(0)
		t.put(root.Symbol, code)

		return t, nil
	}

	if err := t.assign(root, bitstream.New(0)); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *CodeTable) assign(n *Node, path *bitstream.BitStream) error {
	if n.IsLeaf() {
		if path.Len() > MaxCodeLength {
			return fmt.Errorf("%w: symbol 0x%02x needs %d bits", errs.ErrCodeLengthOverflow, n.Symbol, path.Len())
		}
		t.put(n.Symbol, path)

		return nil
	}

	left := path.Clone()
	left.AppendBit(0)
	if err := t.assign(n.Left, left); err != nil {
		return err
	}

	right := path.Clone()
	right.AppendBit(1)

	return t.assign(n.Right, right)
}

// BuildCodeTable counts frequencies in data, builds the Huffman tree and
// assigns codes. The frequency table is returned alongside for callers that
// need encoded-size estimates.
func BuildCodeTable(data []byte) (*CodeTable, FrequencyTable, error) {
	freq := CountFrequencies(data)

	root, err := BuildTree(freq)
	if err != nil {
		return nil, freq, err
	}

	table, err := AssignCodes(root)
	if err != nil {
		return nil, freq, err
	}

	return table, freq, nil
}

// Set assigns code to sym, replacing any previous code.
// The code must be 1..MaxCodeLength bits long.
func (t *CodeTable) Set(sym byte, code *bitstream.BitStream) error {
	if code == nil || code.Len() == 0 {
		return fmt.Errorf("%w: empty code for symbol 0x%02x", errs.ErrInvalidCodeTable, sym)
	}
	if code.Len() > MaxCodeLength {
		return fmt.Errorf("%w: symbol 0x%02x has %d bits", errs.ErrCodeLengthOverflow, sym, code.Len())
	}
	t.put(sym, code)

	return nil
}

func (t *CodeTable) put(sym byte, code *bitstream.BitStream) {
	if t.codes[sym] == nil {
		t.n++
	}
	t.codes[sym] = code
}

// Code returns the code of sym.
func (t *CodeTable) Code(sym byte) (*bitstream.BitStream, bool) {
	code := t.codes[sym]
	return code, code != nil
}

// Len returns the number of symbols with a code.
func (t *CodeTable) Len() int {
	return t.n
}

// Symbols returns the symbols with a code in ascending order.
func (t *CodeTable) Symbols() []byte {
	syms := make([]byte, 0, t.n)
	for sym := range t.All() {
		syms = append(syms, sym)
	}

	return syms
}

// All iterates over (symbol, code) pairs in ascending symbol order.
func (t *CodeTable) All() iter.Seq2[byte, *bitstream.BitStream] {
	return func(yield func(byte, *bitstream.BitStream) bool) {
		for i, code := range t.codes {
			if code == nil {
				continue
			}
			if !yield(byte(i), code) {
				return
			}
		}
	}
}

// MaxLen returns the length of the longest code, or 0 for an empty table.
func (t *CodeTable) MaxLen() int {
	maxLen := 0
	for _, code := range t.All() {
		maxLen = max(maxLen, code.Len())
	}

	return maxLen
}

// EncodedBits returns the payload size in bits for an input with the given
// frequencies: the sum of count times code length over all symbols.
// Symbols of freq that have no code are skipped.
func (t *CodeTable) EncodedBits(freq FrequencyTable) uint64 {
	var total uint64
	for sym, count := range freq.All() {
		if code := t.codes[sym]; code != nil {
			total += count * uint64(code.Len()) //nolint: gosec // code length is at most MaxCodeLength
		}
	}

	return total
}

// Validate checks that the table is non-empty, every code is 1..MaxCodeLength
// bits, and no code is a prefix of another.
func (t *CodeTable) Validate() error {
	if t.n == 0 {
		return fmt.Errorf("%w: no codes", errs.ErrInvalidCodeTable)
	}

	trie := []trieNode{{}}
	for sym, code := range t.All() {
		if code.Len() == 0 || code.Len() > MaxCodeLength {
			return fmt.Errorf("%w: symbol 0x%02x has %d-bit code", errs.ErrInvalidCodeTable, sym, code.Len())
		}

		cur := 0
		for i := range code.Len() {
			if trie[cur].terminal {
				return fmt.Errorf("%w: code of symbol 0x%02x has another code as prefix", errs.ErrInvalidCodeTable, sym)
			}
			bit := code.Bit(i)
			next := trie[cur].next[bit]
			if next == 0 {
				trie = append(trie, trieNode{})
				next = int32(len(trie) - 1) //nolint: gosec // at most 256*255 nodes
				trie[cur].next[bit] = next
			}
			cur = int(next)
		}

		if trie[cur].terminal || trie[cur].next != [2]int32{} {
			return fmt.Errorf("%w: code of symbol 0x%02x is a prefix of another code", errs.ErrInvalidCodeTable, sym)
		}
		trie[cur].terminal = true
	}

	return nil
}

type trieNode struct {
	next     [2]int32
	terminal bool
}

// Equal reports whether both tables assign identical codes to identical symbols.
func (t *CodeTable) Equal(other *CodeTable) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.n != other.n {
		return false
	}

	for i := range t.codes {
		a, b := t.codes[i], other.codes[i]
		if (a == nil) != (b == nil) {
			return false
		}
		if a != nil && !a.Equal(b) {
			return false
		}
	}

	return true
}

// String renders the table as {sym:code ...} with symbols in hex.
func (t *CodeTable) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for sym, code := range t.All() {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&sb, "%02x:%s", sym, code)
	}
	sb.WriteByte('}')

	return sb.String()
}
