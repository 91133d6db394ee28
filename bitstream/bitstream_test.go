package bitstream

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/zmh/errs"
)

func TestBitStream_ZeroValue(t *testing.T) {
	var s BitStream

	require.Equal(t, 0, s.Len())
	require.Nil(t, s.Bytes())
	require.Equal(t, "", s.String())

	s.AppendBit(1)
	require.Equal(t, "1", s.String())
	require.Equal(t, []byte{0x80}, s.Bytes())
}

func TestBitStream_Grow(t *testing.T) {
	var s BitStream
	s.Grow(100)
	require.GreaterOrEqual(t, s.buf.Cap(), 13)
	require.Equal(t, 0, s.Len())

	s.AppendBits(0b101, 3)
	before := &s.buf.B[0]
	s.Grow(97)
	require.Same(t, before, &s.buf.B[0], "room already reserved")
	require.Equal(t, "101", s.String())

	s.Grow(0)
	s.Grow(-5)
	require.Equal(t, 3, s.Len())
}

func TestBitStream_AppendBits(t *testing.T) {
	tests := []struct {
		name   string
		fields []struct {
			value uint64
			width int
		}
		want string
	}{
		{
			name: "single byte",
			fields: []struct {
				value uint64
				width int
			}{{0xA5, 8}},
			want: "10100101",
		},
		{
			name: "unaligned fields",
			fields: []struct {
				value uint64
				width int
			}{{0b101, 3}, {0xFF, 8}, {0, 2}},
			want: "1011111111100",
		},
		{
			name: "value wider than width is masked",
			fields: []struct {
				value uint64
				width int
			}{{0xFF, 4}},
			want: "1111",
		},
		{
			name: "zero width is a no-op",
			fields: []struct {
				value uint64
				width int
			}{{1, 1}, {0xFFFF, 0}},
			want: "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(0)
			for _, f := range tt.fields {
				s.AppendBits(f.value, f.width)
			}
			require.Equal(t, tt.want, s.String())
			require.Equal(t, len(tt.want), s.Len())
		})
	}
}

func TestBitStream_AppendBits_Full64(t *testing.T) {
	s := New(0)
	s.AppendBit(1)
	s.AppendBits(0x8000_0000_0000_0001, 64)

	require.Equal(t, 65, s.Len())
	v, err := s.Uint(1, 64)
	require.NoError(t, err)
	require.Equal(t, uint64(0x8000_0000_0000_0001), v)
}

func TestBitStream_AppendBits_InvalidWidthPanics(t *testing.T) {
	s := New(0)
	require.Panics(t, func() { s.AppendBits(0, 65) })
	require.Panics(t, func() { s.AppendBits(0, -1) })
}

func TestBitStream_AppendStream(t *testing.T) {
	t.Run("aligned", func(t *testing.T) {
		s := MustFromString("10101010")
		s.AppendStream(MustFromString("111"))
		require.Equal(t, "10101010111", s.String())
	})

	t.Run("unaligned", func(t *testing.T) {
		s := MustFromString("1")
		s.AppendStream(MustFromString("0110011001100110011"))
		require.Equal(t, "10110011001100110011", s.String())
	})

	t.Run("nil and empty", func(t *testing.T) {
		s := MustFromString("01")
		s.AppendStream(nil)
		s.AppendStream(New(0))
		require.Equal(t, "01", s.String())
	})
}

func TestBitStream_Uint(t *testing.T) {
	s := FromBytes([]byte{0b1100_1111, 0b0101_0101})

	tests := []struct {
		pos, width int
		want       uint64
	}{
		{0, 4, 0b1100},
		{4, 3, 0b111},
		{7, 3, 0b101},
		{10, 6, 0b010101},
		{0, 16, 0xCF55},
		{3, 0, 0},
	}
	for _, tt := range tests {
		got, err := s.Uint(tt.pos, tt.width)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "pos=%d width=%d", tt.pos, tt.width)
	}

	_, err := s.Uint(10, 7)
	require.ErrorIs(t, err, errs.ErrUnexpectedEOS)

	_, err = s.Uint(0, 65)
	require.ErrorIs(t, err, errs.ErrBitWidth)
}

func TestBitStream_SetBits(t *testing.T) {
	s := MustFromString("0000000000000")

	require.NoError(t, s.SetBits(0, 0b101, 3))
	require.Equal(t, "1010000000000", s.String())

	require.NoError(t, s.SetBits(6, 0b1111, 4))
	require.Equal(t, "1010001111000", s.String())

	require.NoError(t, s.SetBits(6, 0, 4))
	require.Equal(t, "1010000000000", s.String())

	err := s.SetBits(11, 0b111, 3)
	require.ErrorIs(t, err, errs.ErrUnexpectedEOS)
}

func TestBitStream_Slice(t *testing.T) {
	s := MustFromString("1100101011110000101")

	tests := []struct {
		from, to int
	}{
		{0, 0}, {0, 3}, {0, 8}, {8, 19}, {3, 17}, {1, 19}, {19, 19},
	}
	for _, tt := range tests {
		sub, err := s.Slice(tt.from, tt.to)
		require.NoError(t, err)
		require.Equal(t, s.String()[tt.from:tt.to], sub.String(), "slice [%d,%d)", tt.from, tt.to)
		// Aligned and unaligned copies must both keep the tail bits clear.
		require.True(t, sub.Equal(MustFromString(s.String()[tt.from:tt.to])))
	}

	_, err := s.Slice(5, 20)
	require.ErrorIs(t, err, errs.ErrUnexpectedEOS)
	_, err = s.Slice(5, 4)
	require.ErrorIs(t, err, errs.ErrUnexpectedEOS)
}

func TestBitStream_SliceDoesNotAlias(t *testing.T) {
	s := MustFromString("11110000")
	sub, err := s.Slice(0, 8)
	require.NoError(t, err)

	require.NoError(t, sub.SetBits(0, 0, 4))
	require.Equal(t, "11110000", s.String())
}

func TestBitStream_PadToByte(t *testing.T) {
	for n := range 17 {
		s := New(n)
		for i := range n {
			s.AppendBit(uint8(i & 1))
		}

		pad := s.PadToByte()

		require.Equal(t, (8-n%8)%8, pad, "n=%d", n)
		require.Zero(t, s.Len()%8)
		require.Len(t, s.Bytes(), s.Len()/8)
	}
}

func TestBitStream_Truncate(t *testing.T) {
	s := MustFromString("1111111111")
	s.Truncate(3)

	require.Equal(t, "111", s.String())
	require.Equal(t, []byte{0xE0}, s.Bytes())
	require.Panics(t, func() { s.Truncate(4) })
}

func TestBitStream_FromBytesDoesNotGrowIntoCaller(t *testing.T) {
	backing := []byte{0xFF, 0x00, 0x00}
	s := FromBytes(backing[:1])

	s.AppendBits(0xFF, 8)

	require.Equal(t, []byte{0xFF, 0x00, 0x00}, backing)
	require.Equal(t, "1111111111111111", s.String())
}

func TestBitStream_EqualAndKey(t *testing.T) {
	a := MustFromString("0101")
	b := MustFromString("0101")
	c := MustFromString("01010")
	d := MustFromString("0100")

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
	require.False(t, a.Equal(d))

	require.Equal(t, a.Key(), b.Key())
	require.NotEqual(t, a.Key(), c.Key(), "trailing zero must change the key")
	require.NotEqual(t, a.Key(), d.Key())
}

func TestBitStream_HasPrefix(t *testing.T) {
	s := MustFromString("110100111")

	require.True(t, s.HasPrefix(New(0)))
	require.True(t, s.HasPrefix(MustFromString("1101")))
	require.True(t, s.HasPrefix(s))
	require.False(t, s.HasPrefix(MustFromString("111")))
	require.False(t, s.HasPrefix(MustFromString("1101001110")))
}

func TestBitStream_Clone(t *testing.T) {
	s := MustFromString("101")
	c := s.Clone()
	c.AppendBit(1)

	require.Equal(t, "101", s.String())
	require.Equal(t, "1011", c.String())
}

func TestFromString_Invalid(t *testing.T) {
	_, err := FromString("01x")
	require.Error(t, err)
	require.Panics(t, func() { MustFromString("2") })
}

func TestBitStream_Pooled(t *testing.T) {
	s := NewPooled()
	s.AppendBits(0xABCD, 16)
	require.Equal(t, []byte{0xAB, 0xCD}, s.Bytes())

	s.Release()
	require.Equal(t, 0, s.Len())

	// Released streams are reusable as zero-value streams.
	s.AppendBit(1)
	require.Equal(t, "1", s.String())
}

func TestBitStream_RandomRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	type field struct {
		value uint64
		width int
	}
	fields := make([]field, 500)
	s := New(0)
	for i := range fields {
		w := rng.IntN(65)
		v := rng.Uint64() & lowMask(w)
		fields[i] = field{v, w}
		s.AppendBits(v, w)
	}

	r := NewReader(s)
	for i, f := range fields {
		got, err := r.ReadBits(f.width)
		require.NoError(t, err)
		require.Equal(t, f.value, got, "field %d", i)
	}
	require.Zero(t, r.Remaining())
}

func BenchmarkBitStream_AppendBits(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		s := NewPooled()
		for i := range 4096 {
			s.AppendBits(uint64(i), 1+i%13)
		}
		s.Release()
	}
}
