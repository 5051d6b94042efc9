package bits_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tlbcodec/tlb/bits"
	"github.com/tlbcodec/tlb/tlberr"
)

func TestBitVectorWriterBitByBit(t *testing.T) {
	w := bits.NewBitVectorWriter(0)
	for _, v := range []bool{true, false, true, true} {
		require.NoError(t, w.WriteBit(v))
	}
	require.Equal(t, "1011", w.Bits().String())
}

func TestBitVectorWriterByteAlignedFastPath(t *testing.T) {
	w := bits.NewBitVectorWriter(16)
	require.NoError(t, w.WriteBitSlice(bits.FromBytes([]byte{0xAB, 0xCD})))
	got := w.Bits()
	require.Equal(t, 16, got.Len())
	require.Equal(t, []byte{0xAB, 0xCD}, got.Bytes())
}

func TestBitVectorWriterUnalignedSlice(t *testing.T) {
	w := bits.NewBitVectorWriter(0)
	require.NoError(t, w.WriteBit(true))
	require.NoError(t, w.WriteBitSlice(bits.NewBitSlice([]byte{0x7E}, 7)))
	require.Equal(t, "10111111", w.Bits().String())
}

func TestBitVectorWriterRepeatBit(t *testing.T) {
	w := bits.NewBitVectorWriter(0)
	require.NoError(t, w.RepeatBit(5, true))
	require.Equal(t, "11111", w.Bits().String())
}

func TestBitVectorWriterReset(t *testing.T) {
	w := bits.NewBitVectorWriter(0)
	require.NoError(t, w.WriteBit(true))
	w.Reset()
	require.Equal(t, 0, w.Bits().Len())
}

func TestLimitWriterRejectsOverflow(t *testing.T) {
	inner := bits.NewBitVectorWriter(0)
	lw := bits.NewLimitWriter(inner, 4)
	require.NoError(t, lw.RepeatBit(4, true))
	err := lw.WriteBit(false)
	require.ErrorIs(t, err, tlberr.ErrCapacity)
}

func TestLimitWriterCapacityLeft(t *testing.T) {
	inner := bits.NewBitVectorWriter(0)
	lw := bits.NewLimitWriter(inner, 10)
	require.Equal(t, 10, lw.CapacityLeft())
	require.NoError(t, lw.RepeatBit(3, false))
	require.Equal(t, 7, lw.CapacityLeft())
}

func TestCountingWriter(t *testing.T) {
	inner := bits.NewBitVectorWriter(0)
	cw := bits.NewCountingWriter(inner)
	require.NoError(t, cw.WriteBitSlice(bits.FromBytes([]byte{0x01})))
	require.NoError(t, cw.WriteBit(true))
	require.Equal(t, 9, cw.Count())
}

func TestTeeWriterMirrors(t *testing.T) {
	a := bits.NewBitVectorWriter(0)
	b := bits.NewBitVectorWriter(0)
	tw := bits.NewTeeWriter(a, b)
	require.NoError(t, tw.WriteBitSlice(bits.FromBytes([]byte{0x5A})))
	require.True(t, a.Bits().Equal(b.Bits()))
}

func TestMapErrWriterRewritesError(t *testing.T) {
	inner := bits.NewLimitWriter(bits.NewBitVectorWriter(0), 0)
	mapped := bits.NewMapErrWriter(inner, func(err error) error {
		return tlberr.WithContext(err, "amount")
	})
	err := mapped.WriteBit(true)
	require.ErrorIs(t, err, tlberr.ErrCapacity)
	require.Contains(t, err.Error(), "amount")
}

func TestDiscardWriterAcceptsEverything(t *testing.T) {
	var w bits.DiscardWriter
	require.NoError(t, w.WriteBit(true))
	require.NoError(t, w.WriteBitSlice(bits.FromBytes([]byte{1, 2, 3})))
	require.NoError(t, w.RepeatBit(1000, false))
}
