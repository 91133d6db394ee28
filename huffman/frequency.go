package huffman

import "iter"

// FrequencyTable maps each byte value present in an input to its occurrence count.
type FrequencyTable struct {
	counts   [256]uint64
	distinct int
	total    uint64
}

// CountFrequencies counts byte occurrences in data.
func CountFrequencies(data []byte) FrequencyTable {
	var ft FrequencyTable
	for _, b := range data {
		ft.counts[b]++
	}

	for _, c := range ft.counts {
		if c > 0 {
			ft.distinct++
			ft.total += c
		}
	}

	return ft
}

// NewFrequencyTable builds a table from explicit counts. Zero counts are ignored.
func NewFrequencyTable(counts map[byte]uint64) FrequencyTable {
	var ft FrequencyTable
	for sym, c := range counts {
		ft.Add(sym, c)
	}

	return ft
}

// Add increases the count of sym by n.
func (ft *FrequencyTable) Add(sym byte, n uint64) {
	if n == 0 {
		return
	}
	if ft.counts[sym] == 0 {
		ft.distinct++
	}
	ft.counts[sym] += n
	ft.total += n
}

// Count returns the number of occurrences of sym.
func (ft *FrequencyTable) Count(sym byte) uint64 {
	return ft.counts[sym]
}

// Len returns the number of distinct symbols.
func (ft *FrequencyTable) Len() int {
	return ft.distinct
}

// Total returns the sum of all counts, which equals the input length.
func (ft *FrequencyTable) Total() uint64 {
	return ft.total
}

// Symbols returns the present symbols in ascending order.
func (ft *FrequencyTable) Symbols() []byte {
	syms := make([]byte, 0, ft.distinct)
	for sym := range ft.All() {
		syms = append(syms, sym)
	}

	return syms
}

// All iterates over (symbol, count) pairs in ascending symbol order.
func (ft *FrequencyTable) All() iter.Seq2[byte, uint64] {
	return func(yield func(byte, uint64) bool) {
		for i, c := range ft.counts {
			if c == 0 {
				continue
			}
			if !yield(byte(i), c) {
				return
			}
		}
	}
}
