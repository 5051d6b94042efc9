package tlberr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tlbcodec/tlb/tlberr"
)

func TestWithContextChain(t *testing.T) {
	err := tlberr.WithContext(tlberr.ErrEOF, "amount.VarInt")
	err = tlberr.WithContext(err, "[3]")

	require.True(t, tlberr.Is(err, tlberr.ErrEOF))
	require.Equal(t, tlberr.ErrEOF, tlberr.Cause(err))
	require.Contains(t, err.Error(), "amount.VarInt")
	require.Contains(t, err.Error(), "[3]")
}

func TestWithContextNilIsNil(t *testing.T) {
	require.NoError(t, tlberr.WithContext(nil, "whatever"))
	require.NoError(t, tlberr.WithContextf(nil, "whatever %d", 1))
}

func TestCustom(t *testing.T) {
	err := tlberr.Customf("bad value %d", 42)
	require.EqualError(t, err, "bad value 42")
}

func TestSentinelsDistinct(t *testing.T) {
	sentinels := []error{
		tlberr.ErrEOF, tlberr.ErrCapacity, tlberr.ErrTruncation, tlberr.ErrInvariant,
		tlberr.ErrTagMismatch, tlberr.ErrCRCMismatch, tlberr.ErrCycle,
		tlberr.ErrAlignment, tlberr.ErrConversion, tlberr.ErrTrailing,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			require.False(t, tlberr.Is(a, b), "%v should not match %v", a, b)
		}
	}
}
