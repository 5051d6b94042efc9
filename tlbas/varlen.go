package tlbas

import (
	"math/big"

	"github.com/tlbcodec/tlb/bits"
	"github.com/tlbcodec/tlb/codec"
	"github.com/tlbcodec/tlb/tlberr"
)

// VarUint packs a non-negative *big.Int as TL-B's VarUInteger: an L-bit
// byte-length prefix followed by that many bytes of big-endian magnitude
// (grounded on the VarInteger 16 encoding used by real TON wallets —
// length, then length*8 data bits).
type VarUint struct {
	LenBits int
}

func (a VarUint) PackAs(w bits.Writer, v *big.Int) error {
	if v.Sign() < 0 {
		return tlberr.Customf("tlbas.VarUint: negative value")
	}
	nBytes := (v.BitLen() + 7) / 8
	if nBytes >= 1<<uint(a.LenBits) {
		return tlberr.WithContextf(tlberr.ErrTruncation, "value needs %d bytes, length field has %d bits", nBytes, a.LenBits)
	}
	if err := codec.WriteUint(w, uint64(nBytes), a.LenBits); err != nil {
		return err
	}
	return codec.PackBigUint(w, v, nBytes*8)
}

func (a VarUint) UnpackAs(r bits.Reader) (*big.Int, error) {
	nBytes, err := codec.ReadUint(r, a.LenBits)
	if err != nil {
		return nil, err
	}
	return codec.UnpackBigUint(r, int(nBytes)*8)
}

// VarInt is VarUint's signed counterpart: the byte-length prefix is
// followed by a two's-complement value of that width.
type VarInt struct {
	LenBits int
}

func (a VarInt) PackAs(w bits.Writer, v *big.Int) error {
	bitLen := v.BitLen() + 1 // reserve the sign bit
	nBytes := (bitLen + 7) / 8
	if nBytes >= 1<<uint(a.LenBits) {
		return tlberr.WithContextf(tlberr.ErrTruncation, "value needs %d bytes, length field has %d bits", nBytes, a.LenBits)
	}
	if err := codec.WriteUint(w, uint64(nBytes), a.LenBits); err != nil {
		return err
	}
	return codec.PackBigInt(w, v, nBytes*8)
}

func (a VarInt) UnpackAs(r bits.Reader) (*big.Int, error) {
	nBytes, err := codec.ReadUint(r, a.LenBits)
	if err != nil {
		return nil, err
	}
	return codec.UnpackBigInt(r, int(nBytes)*8)
}

// VarBytes packs a length-prefixed raw byte string: an L-bit byte-count
// followed by that many bytes, byte-aligned.
type VarBytes struct {
	LenBits int
}

func (a VarBytes) PackAs(w bits.Writer, v []byte) error {
	if len(v) >= 1<<uint(a.LenBits) {
		return tlberr.WithContextf(tlberr.ErrTruncation, "%d bytes, length field has %d bits", len(v), a.LenBits)
	}
	if err := codec.WriteUint(w, uint64(len(v)), a.LenBits); err != nil {
		return err
	}
	return w.WriteBitSlice(bits.FromBytes(v))
}

func (a VarBytes) UnpackAs(r bits.Reader) ([]byte, error) {
	n, err := codec.ReadUint(r, a.LenBits)
	if err != nil {
		return nil, err
	}
	s, err := r.ReadBitSlice(int(n) * 8)
	if err != nil {
		return nil, err
	}
	return s.ToBytesPadded(), nil
}

// VarBits packs a length-prefixed raw bit string: an L-bit bit-count
// followed by that many bits, with no byte-alignment requirement.
type VarBits struct {
	LenBits int
}

func (a VarBits) PackAs(w bits.Writer, v bits.BitSlice) error {
	if v.Len() >= 1<<uint(a.LenBits) {
		return tlberr.WithContextf(tlberr.ErrTruncation, "%d bits, length field has %d bits", v.Len(), a.LenBits)
	}
	if err := codec.WriteUint(w, uint64(v.Len()), a.LenBits); err != nil {
		return err
	}
	return w.WriteBitSlice(v)
}

func (a VarBits) UnpackAs(r bits.Reader) (bits.BitSlice, error) {
	n, err := codec.ReadUint(r, a.LenBits)
	if err != nil {
		return bits.BitSlice{}, err
	}
	return r.ReadBitSlice(int(n))
}

// VarLen packs a length-prefixed homogeneous slice: an L-bit element-count
// followed by that many elements, each packed through Inner.
type VarLen[T any] struct {
	LenBits int
	Inner   Adapter[T]
}

func (a VarLen[T]) PackAs(w bits.Writer, v []T) error {
	if len(v) >= 1<<uint(a.LenBits) {
		return tlberr.WithContextf(tlberr.ErrTruncation, "%d elements, length field has %d bits", len(v), a.LenBits)
	}
	if err := codec.WriteUint(w, uint64(len(v)), a.LenBits); err != nil {
		return err
	}
	for i, elem := range v {
		if err := a.Inner.PackAs(w, elem); err != nil {
			return tlberr.WithContextf(err, "[%d]", i)
		}
	}
	return nil
}

func (a VarLen[T]) UnpackAs(r bits.Reader) ([]T, error) {
	n, err := codec.ReadUint(r, a.LenBits)
	if err != nil {
		return nil, err
	}
	out := make([]T, n)
	for i := range out {
		v, err := a.Inner.UnpackAs(r)
		if err != nil {
			var zero []T
			return zero, tlberr.WithContextf(err, "[%d]", i)
		}
		out[i] = v
	}
	return out, nil
}

// Unary packs a non-negative integer as n ones followed by a terminating
// zero bit (TL-B's `Unary` type: `unary_zero$0 = Unary ~0;
// unary_succ$1 {n:#} x:(Unary ~n) = Unary ~(n + 1);`).
type Unary struct{}

func (Unary) PackAs(w bits.Writer, v uint) error {
	if err := w.RepeatBit(int(v), true); err != nil {
		return err
	}
	return w.WriteBit(false)
}

func (Unary) UnpackAs(r bits.Reader) (uint, error) {
	var n uint
	for {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if !bit {
			return n, nil
		}
		n++
	}
}

var (
	_ Adapter[*big.Int]      = VarUint{}
	_ Adapter[*big.Int]      = VarInt{}
	_ Adapter[[]byte]        = VarBytes{}
	_ Adapter[bits.BitSlice] = VarBits{}
	_ Adapter[uint]          = Unary{}
)
