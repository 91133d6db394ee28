package huffman

import (
	"math/rand/v2"
	"testing"

	"github.com/arloliu/zmh/bitstream"
	"github.com/arloliu/zmh/errs"
	"github.com/stretchr/testify/require"
)

// caterpillar builds a maximally unbalanced tree with the given number of
// leaves; the deepest leaves sit at depth leaves-1.
func caterpillar(leaves int) *Node {
	root := &Node{Symbol: byte(leaves - 1), Freq: 1}
	for i := leaves - 2; i >= 0; i-- {
		root = &Node{
			Left:  &Node{Symbol: byte(i), Freq: 1},
			Right: root,
			Freq:  root.Freq + 1,
		}
	}

	return root
}

func requirePrefixFree(t *testing.T, table *CodeTable) {
	t.Helper()

	syms := table.Symbols()
	for _, a := range syms {
		for _, b := range syms {
			if a == b {
				continue
			}
			ca, _ := table.Code(a)
			cb, _ := table.Code(b)
			require.False(t, cb.HasPrefix(ca), "code of %02x (%s) is a prefix of %02x (%s)", a, ca, b, cb)
		}
	}
}

func TestAssignCodes_AAAB(t *testing.T) {
	table, _, err := BuildCodeTable([]byte("aaab"))
	require.NoError(t, err)

	a, ok := table.Code('a')
	require.True(t, ok)
	b, ok := table.Code('b')
	require.True(t, ok)

	require.Equal(t, "1", a.String())
	require.Equal(t, "0", b.String())
	require.Equal(t, 2, table.Len())
	require.Equal(t, "{61:1 62:0}", table.String())
}

func TestAssignCodes_SingleLeaf(t *testing.T) {
	table, _, err := BuildCodeTable(bytesRepeat(0x41, 500))
	require.NoError(t, err)

	code, ok := table.Code(0x41)
	require.True(t, ok)
	require.Equal(t, "0", code.String(), "a lone symbol still needs a 1-bit code")
	require.Equal(t, 1, table.Len())
	require.NoError(t, table.Validate())
}

func TestAssignCodes_NilRoot(t *testing.T) {
	_, err := AssignCodes(nil)
	require.ErrorIs(t, err, errs.ErrEmptyInput)
}

func TestBuildCodeTable_Empty(t *testing.T) {
	_, freq, err := BuildCodeTable(nil)
	require.ErrorIs(t, err, errs.ErrEmptyInput)
	require.Equal(t, 0, freq.Len())
}

func TestAssignCodes_CodeLengthOverflow(t *testing.T) {
	// 257 leaves give a deepest path of 256 bits. Symbols wrap, which is
	// fine: the overflow is detected before the duplicate matters.
	_, err := AssignCodes(caterpillar(257))
	require.ErrorIs(t, err, errs.ErrCodeLengthOverflow)

	table, err := AssignCodes(caterpillar(256))
	require.NoError(t, err)
	require.Equal(t, MaxCodeLength, table.MaxLen())
}

func TestAssignCodes_PrefixFree(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for trial := range 50 {
		size := 1 + rng.IntN(4096)
		alphabet := 1 + rng.IntN(256)
		data := make([]byte, size)
		for i := range data {
			// Squaring skews the distribution so code lengths vary.
			r := rng.Float64()
			data[i] = byte(int(r*r*float64(alphabet)) % 256)
		}

		table, freq, err := BuildCodeTable(data)
		require.NoError(t, err, "trial %d", trial)
		require.Equal(t, freq.Len(), table.Len())
		require.NoError(t, table.Validate())
		requirePrefixFree(t, table)
	}
}

func TestAssignCodes_SkewedOptimality(t *testing.T) {
	data := append(bytesRepeat('x', 1000), 'y')
	table, _, err := BuildCodeTable(data)
	require.NoError(t, err)

	x, _ := table.Code('x')
	y, _ := table.Code('y')
	require.LessOrEqual(t, x.Len(), y.Len())

	data = append(data, []byte("zzzzzwwq")...)
	table, _, err = BuildCodeTable(data)
	require.NoError(t, err)
	x, _ = table.Code('x')
	q, _ := table.Code('q')
	require.Equal(t, 1, x.Len())
	require.Greater(t, q.Len(), x.Len())
}

func TestAssignCodes_OptimalLength(t *testing.T) {
	// Classic example: counts 45,13,12,16,9,5 have an optimal cost of 224 bits.
	freq := NewFrequencyTable(map[byte]uint64{'a': 45, 'b': 13, 'c': 12, 'd': 16, 'e': 9, 'f': 5})
	root, err := BuildTree(freq)
	require.NoError(t, err)
	table, err := AssignCodes(root)
	require.NoError(t, err)

	require.Equal(t, uint64(224), table.EncodedBits(freq))
	a, _ := table.Code('a')
	require.Equal(t, 1, a.Len())
}

func TestCodeTable_Set(t *testing.T) {
	table := NewCodeTable()

	require.ErrorIs(t, table.Set('a', nil), errs.ErrInvalidCodeTable)
	require.ErrorIs(t, table.Set('a', bitstream.New(0)), errs.ErrInvalidCodeTable)

	long := bitstream.New(256)
	long.AppendBits(0, 64)
	long.AppendBits(0, 64)
	long.AppendBits(0, 64)
	long.AppendBits(0, 64)
	require.ErrorIs(t, table.Set('a', long), errs.ErrCodeLengthOverflow)

	require.NoError(t, table.Set('a', bitstream.MustFromString("0")))
	require.NoError(t, table.Set('a', bitstream.MustFromString("1")))
	require.Equal(t, 1, table.Len(), "replacing a code keeps the count")
}

func TestCodeTable_Validate(t *testing.T) {
	tests := []struct {
		name  string
		codes map[byte]string
		valid bool
	}{
		{"complete", map[byte]string{'a': "0", 'b': "10", 'c': "11"}, true},
		{"incomplete but prefix-free", map[byte]string{'a': "00", 'b': "01"}, true},
		{"earlier code is prefix", map[byte]string{'a': "0", 'b': "01"}, false},
		{"later code is prefix", map[byte]string{'a': "011", 'b': "01"}, false},
		{"duplicate code", map[byte]string{'a': "10", 'b': "10"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewCodeTable()
			for sym, code := range tt.codes {
				require.NoError(t, table.Set(sym, bitstream.MustFromString(code)))
			}

			err := table.Validate()
			if tt.valid {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, errs.ErrInvalidCodeTable)
			}
		})
	}

	require.ErrorIs(t, NewCodeTable().Validate(), errs.ErrInvalidCodeTable)
}

func TestCodeTable_Equal(t *testing.T) {
	a, _, err := BuildCodeTable([]byte("hello world"))
	require.NoError(t, err)
	b, _, err := BuildCodeTable([]byte("hello world"))
	require.NoError(t, err)
	c, _, err := BuildCodeTable([]byte("hello there"))
	require.NoError(t, err)

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
	require.False(t, a.Equal(nil))

	var nilTable *CodeTable
	require.True(t, nilTable.Equal(nil))
}

func TestCodeTable_EncodedBitsSkipsMissing(t *testing.T) {
	table := NewCodeTable()
	require.NoError(t, table.Set('a', bitstream.MustFromString("01")))

	freq := NewFrequencyTable(map[byte]uint64{'a': 3, 'b': 100})
	require.Equal(t, uint64(6), table.EncodedBits(freq))
}

func bytesRepeat(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}

	return out
}
