package huffman

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/arloliu/zmh/bitstream"
	"github.com/arloliu/zmh/errs"
	"github.com/stretchr/testify/require"
)

func tableFrom(t *testing.T, codes map[byte]string) *CodeTable {
	t.Helper()

	table := NewCodeTable()
	for sym, code := range codes {
		require.NoError(t, table.Set(sym, bitstream.MustFromString(code)))
	}

	return table
}

func TestEncode_AAAB(t *testing.T) {
	table, freq, err := BuildCodeTable([]byte("aaab"))
	require.NoError(t, err)

	bits := bitstream.New(0)
	require.NoError(t, Encode([]byte("aaab"), table, bits))

	require.Equal(t, "1110", bits.String())
	require.Equal(t, int(table.EncodedBits(freq)), bits.Len())

	out, err := Decode(bits, table)
	require.NoError(t, err)
	require.Equal(t, []byte("aaab"), out)
}

func TestEncode_UnknownSymbol(t *testing.T) {
	table := tableFrom(t, map[byte]string{'a': "0", 'b': "1"})

	bits := bitstream.New(0)
	err := Encode([]byte("abc"), table, bits)

	require.ErrorIs(t, err, errs.ErrUnknownSymbol)
	require.Equal(t, "01", bits.String(), "bytes before the failure stay encoded")
}

func TestEncode_AppendsToExistingStream(t *testing.T) {
	table := tableFrom(t, map[byte]string{'a': "0", 'b': "10", 'c': "11"})

	bits := bitstream.MustFromString("111")
	require.NoError(t, Encode([]byte("cab"), table, bits))

	require.Equal(t, "11111010", bits.String())
}

func TestDecode_UnknownCode(t *testing.T) {
	table := tableFrom(t, map[byte]string{'a': "00", 'b': "01"})

	_, err := Decode(bitstream.MustFromString("0010"), table)

	require.ErrorIs(t, err, errs.ErrUnknownCode)
	require.Contains(t, err.Error(), "at bit 2")
}

func TestDecode_EndsMidSymbol(t *testing.T) {
	table := tableFrom(t, map[byte]string{'a': "0", 'b': "10", 'c': "11"})

	_, err := Decode(bitstream.MustFromString("01"), table)

	require.ErrorIs(t, err, errs.ErrUnexpectedEOS)
}

func TestDecode_EmptyStream(t *testing.T) {
	table := tableFrom(t, map[byte]string{'a': "0"})

	out, err := Decode(bitstream.New(0), table)

	require.NoError(t, err)
	require.Empty(t, out)
}

func TestDecode_EmptyTable(t *testing.T) {
	_, err := Decode(bitstream.MustFromString("0"), NewCodeTable())
	require.ErrorIs(t, err, errs.ErrUnknownCode)
}

func TestDecoder_Lengths(t *testing.T) {
	table := tableFrom(t, map[byte]string{'a': "0", 'b': "100", 'c': "101", 'd': "11"})
	d := NewDecoder(table)

	require.Equal(t, []int{1, 2, 3}, d.Lengths())

	lengths := d.Lengths()
	lengths[0] = 99
	require.Equal(t, []int{1, 2, 3}, d.Lengths(), "Lengths returns a copy")
}

func TestCodec_WideCodes(t *testing.T) {
	// A caterpillar tree of 100 leaves has codes up to 99 bits, which
	// exercises the non-integer paths of both encoder and decoder.
	table, err := AssignCodes(caterpillar(100))
	require.NoError(t, err)
	require.Equal(t, 99, table.MaxLen())

	data := make([]byte, 0, 400)
	for i := range 400 {
		data = append(data, byte(i%100))
	}

	bits := bitstream.New(0)
	require.NoError(t, Encode(data, table, bits))

	out, err := Decode(bits, table)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestCodec_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	random := make([]byte, 10_000)
	for i := range random {
		random[i] = byte(rng.UintN(256))
	}

	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}

	tests := map[string][]byte{
		"single byte":     {0x7F},
		"single symbol":   bytes.Repeat([]byte{0x41}, 500),
		"two symbols":     []byte("aaab"),
		"text":            []byte("It was the best of times, it was the worst of times."),
		"all 256 symbols": all,
		"random":          random,
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			table, freq, err := BuildCodeTable(data)
			require.NoError(t, err)

			bits := bitstream.New(0)
			require.NoError(t, Encode(data, table, bits))
			require.Equal(t, int(table.EncodedBits(freq)), bits.Len())

			out, err := Decode(bits, table)
			require.NoError(t, err)
			require.Equal(t, data, out)
		})
	}
}

func BenchmarkEncode(b *testing.B) {
	data := bytes.Repeat([]byte("static huffman coding over a repetitive text sample. "), 512)
	table, _, err := BuildCodeTable(data)
	require.NoError(b, err)
	enc := NewEncoder(table)

	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	for b.Loop() {
		bits := bitstream.NewPooled()
		if err := enc.Encode(data, bits); err != nil {
			b.Fatal(err)
		}
		bits.Release()
	}
}

func BenchmarkDecode(b *testing.B) {
	data := bytes.Repeat([]byte("static huffman coding over a repetitive text sample. "), 512)
	table, _, err := BuildCodeTable(data)
	require.NoError(b, err)
	bits := bitstream.New(0)
	require.NoError(b, Encode(data, table, bits))
	dec := NewDecoder(table)

	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	for b.Loop() {
		if _, err := dec.Decode(bits); err != nil {
			b.Fatal(err)
		}
	}
}
