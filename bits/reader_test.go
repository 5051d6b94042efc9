package bits_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tlbcodec/tlb/bits"
	"github.com/tlbcodec/tlb/tlberr"
)

func TestSliceReaderReadBit(t *testing.T) {
	r := bits.NewSliceReader(bits.FromBytes([]byte{0xA5}))
	require.Equal(t, 8, r.BitsLeft())
	for _, want := range []bool{true, false, true, false, false, true, false, true} {
		got, err := r.ReadBit()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := r.ReadBit()
	require.ErrorIs(t, err, tlberr.ErrEOF)
}

func TestSliceReaderReadBitSliceAligned(t *testing.T) {
	r := bits.NewSliceReader(bits.FromBytes([]byte{0x11, 0x22, 0x33}))
	s, err := r.ReadBitSlice(16)
	require.NoError(t, err)
	require.Equal(t, []byte{0x11, 0x22}, s.Bytes())
	require.Equal(t, 8, r.BitsLeft())
}

func TestSliceReaderEOFOnOverrun(t *testing.T) {
	r := bits.NewSliceReader(bits.FromBytes([]byte{0x00}))
	_, err := r.ReadBitSlice(9)
	require.ErrorIs(t, err, tlberr.ErrEOF)
}

func TestSliceReaderCheckpointRestore(t *testing.T) {
	r := bits.NewSliceReader(bits.FromBytes([]byte{0xFF}))
	cp := r.Checkpoint()
	_, err := r.ReadBitSlice(8)
	require.NoError(t, err)
	require.Equal(t, 0, r.BitsLeft())
	r.Restore(cp)
	require.Equal(t, 8, r.BitsLeft())
}

func TestOwnedReaderCopiesBacking(t *testing.T) {
	b := []byte{0xDE, 0xAD}
	r := bits.NewOwnedReader(b, 16)
	b[0] = 0x00
	s, err := r.ReadBitSlice(8)
	require.NoError(t, err)
	require.Equal(t, byte(0xDE), s.Bytes()[0])
}

func TestLimitReaderEOF(t *testing.T) {
	inner := bits.NewSliceReader(bits.FromBytes([]byte{0xFF, 0xFF}))
	lr := bits.NewLimitReader(inner, 4)
	_, err := lr.ReadBitSlice(4)
	require.NoError(t, err)
	_, err = lr.ReadBit()
	require.ErrorIs(t, err, tlberr.ErrEOF)
}

func TestCountingReader(t *testing.T) {
	inner := bits.NewSliceReader(bits.FromBytes([]byte{0xFF}))
	cr := bits.NewCountingReader(inner)
	_, err := cr.ReadBitSlice(5)
	require.NoError(t, err)
	_, err = cr.ReadBit()
	require.NoError(t, err)
	require.Equal(t, 6, cr.Count())
}

func TestTeeReaderMirrorsToWriter(t *testing.T) {
	inner := bits.NewSliceReader(bits.FromBytes([]byte{0x5A}))
	w := bits.NewBitVectorWriter(0)
	tr := bits.NewTeeReader(inner, w)
	_, err := tr.ReadBitSlice(8)
	require.NoError(t, err)
	require.Equal(t, byte(0x5A), w.Bits().Bytes()[0])
}

func TestJoinReaderSpansBoundary(t *testing.T) {
	a := bits.NewSliceReader(bits.NewBitSlice([]byte{0xF0}, 4))
	b := bits.NewSliceReader(bits.NewBitSlice([]byte{0xF0}, 4))
	jr := bits.NewJoinReader(a, b)
	require.Equal(t, 8, jr.BitsLeft())
	s, err := jr.ReadBitSlice(8)
	require.NoError(t, err)
	require.Equal(t, "11111111", s.String())
}

func TestMapErrReaderRewritesError(t *testing.T) {
	inner := bits.NewLimitReader(bits.NewSliceReader(bits.FromBytes([]byte{0x00})), 0)
	mapped := bits.NewMapErrReader(inner, func(err error) error {
		return tlberr.WithContext(err, "header")
	})
	_, err := mapped.ReadBit()
	require.ErrorIs(t, err, tlberr.ErrEOF)
	require.Contains(t, err.Error(), "header")
}
