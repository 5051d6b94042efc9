package bits_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tlbcodec/tlb/bits"
)

func TestFromBytesAndAt(t *testing.T) {
	s := bits.FromBytes([]byte{0xFD, 0xFE})
	require.Equal(t, 16, s.Len())
	require.True(t, s.IsByteAligned())
	// 0xFD = 1111 1101
	require.True(t, s.At(0))
	require.True(t, s.At(1))
	require.True(t, s.At(2))
	require.True(t, s.At(3))
	require.True(t, s.At(4))
	require.True(t, s.At(5))
	require.False(t, s.At(6))
	require.True(t, s.At(7))
}

func TestSliceByteAlignedFastPath(t *testing.T) {
	b := []byte{0x11, 0x22, 0x33}
	s := bits.FromBytes(b)
	sub := s.Slice(8, 24)
	require.Equal(t, 16, sub.Len())
	require.True(t, sub.IsByteAligned())
	require.Equal(t, []byte{0x22, 0x33}, sub.Bytes())
}

func TestSliceUnalignedMaterializes(t *testing.T) {
	// 0x7E = 0111 1110
	s := bits.NewBitSlice([]byte{0x7E}, 7)
	require.Equal(t, 7, s.Len())
	require.False(t, s.IsByteAligned())
	require.Equal(t, "0111111", s.String())

	sub := s.Slice(1, 7)
	require.Equal(t, 6, sub.Len())
	require.Equal(t, "111111", sub.String())
}

// TestSliceFastPathMatchesSlowPath proves the byte-aligned fast path in
// Slice (a view into the backing array) and the unaligned slow path
// (materializeShifted, bit-by-bit) agree bit-for-bit whenever both are
// reachable for the same logical window, by reading every sub-slice of a
// fixed buffer once at a byte-aligned start and once shifted by a few
// bits via an explicit unaligned parent.
func TestSliceFastPathMatchesSlowPath(t *testing.T) {
	raw := []byte{0xA5, 0x3C, 0xF0, 0x0F, 0x99}
	aligned := bits.FromBytes(raw)

	// shiftedParent holds the exact same 40 bits as aligned, but offset by
	// one leading padding bit, so every window into it starts off a
	// non-multiple-of-8 bit position and is forced through the unaligned
	// (materializeShifted) path instead of the byte-aligned view path.
	w := bits.NewBitVectorWriter(0)
	require.NoError(t, w.WriteBit(false))
	require.NoError(t, w.WriteBitSlice(aligned))
	shiftedParent := w.Bits()

	for start := 0; start < 32; start += 8 {
		for n := 0; n <= 40-start; n += 8 {
			fast := aligned.Slice(start, start+n)
			require.True(t, fast.IsByteAligned())

			slow := shiftedParent.Slice(start+1, start+1+n)
			require.True(t, fast.Equal(slow), "start=%d n=%d", start, n)
		}
	}
}

func TestEqual(t *testing.T) {
	a := bits.NewBitSlice([]byte{0x7E}, 7)
	b := bits.NewBitSlice([]byte{0x7F}, 7) // differs only in the padding bit beyond Len()
	require.True(t, a.Equal(b))

	c := bits.NewBitSlice([]byte{0x7C}, 7)
	require.False(t, a.Equal(c))

	d := bits.NewBitSlice([]byte{0x7E}, 6)
	require.False(t, a.Equal(d))
}

func TestToBytesPaddedAligned(t *testing.T) {
	s := bits.FromBytes([]byte{0xFD, 0xFE})
	require.Equal(t, []byte{0xFD, 0xFE}, s.ToBytesPadded())
}

func TestToBytesPaddedStopBit(t *testing.T) {
	// 7 data bits "0111111" followed by the stop-bit convention: a 1 bit
	// then zeros to the byte boundary -> "0111111" + "1" = 0x7F.
	s := bits.NewBitSlice([]byte{0x7E}, 7)
	require.Equal(t, []byte{0x7F}, s.ToBytesPadded())
}

func TestStringRoundTrip(t *testing.T) {
	s := bits.FromBytes([]byte{0xA5})
	require.Equal(t, "10100101", s.String())
}

func TestNewBitSlicePanicsOnOutOfRange(t *testing.T) {
	require.Panics(t, func() {
		bits.NewBitSlice([]byte{0x00}, 9)
	})
}
