package codec

import (
	"math/big"

	"github.com/tlbcodec/tlb/bits"
	"github.com/tlbcodec/tlb/tlberr"
	"github.com/tlbcodec/tlb/tlbmetrics"
)

// Uint is the set of unsigned fixed-width integer types with a direct
// Pack/Unpack encoding.
type Uint interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Int is the set of signed fixed-width integer types with a direct
// Pack/Unpack encoding (two's complement, full width).
type Int interface {
	~int8 | ~int16 | ~int32 | ~int64
}

func bitWidth[T Uint | Int]() int {
	var v T
	switch any(v).(type) {
	case uint8, int8:
		return 8
	case uint16, int16:
		return 16
	case uint32, int32:
		return 32
	case uint64, int64:
		return 64
	default:
		panic("codec: unreachable integer width")
	}
}

// WriteUint writes v as an n-bit big-endian unsigned field, n <= 64.
func WriteUint(w bits.Writer, v uint64, n int) error {
	if n < 0 || n > 64 {
		return tlberr.Customf("codec: invalid uint width %d", n)
	}
	for i := n - 1; i >= 0; i-- {
		if err := w.WriteBit(v&(1<<uint(i)) != 0); err != nil {
			return err
		}
	}
	tlbmetrics.BitsPacked.Add(float64(n))
	return nil
}

// ReadUint reads an n-bit big-endian unsigned field, n <= 64.
func ReadUint(r bits.Reader, n int) (uint64, error) {
	if n < 0 || n > 64 {
		return 0, tlberr.Customf("codec: invalid uint width %d", n)
	}
	var v uint64
	for i := 0; i < n; i++ {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		v <<= 1
		if bit {
			v |= 1
		}
	}
	tlbmetrics.BitsUnpacked.Add(float64(n))
	return v, nil
}

// PackUint packs a full-width unsigned integer of any supported Go type.
func PackUint[T Uint](w bits.Writer, v T) error {
	return WriteUint(w, uint64(v), bitWidth[T]())
}

// UnpackUint unpacks a full-width unsigned integer of any supported Go
// type.
func UnpackUint[T Uint](r bits.Reader) (T, error) {
	v, err := ReadUint(r, bitWidth[T]())
	return T(v), err
}

// PackInt packs a full-width two's-complement signed integer.
func PackInt[T Int](w bits.Writer, v T) error {
	n := bitWidth[T]()
	return WriteUint(w, uint64(v)&mask(n), n)
}

// UnpackInt unpacks a full-width two's-complement signed integer, sign
// extending from bit width n back to the Go type's native width.
func UnpackInt[T Int](r bits.Reader) (T, error) {
	n := bitWidth[T]()
	v, err := ReadUint(r, n)
	if err != nil {
		return 0, err
	}
	return T(signExtend(v, n)), nil
}

func mask(n int) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(n)) - 1
}

func signExtend(v uint64, n int) int64 {
	if n >= 64 {
		return int64(v)
	}
	signBit := uint64(1) << uint(n-1)
	if v&signBit != 0 {
		return int64(v | (^uint64(0) << uint(n)))
	}
	return int64(v)
}

// PackBool packs v as one bit.
func PackBool(w bits.Writer, v bool) error { return w.WriteBit(v) }

// UnpackBool unpacks one bit as a bool.
func UnpackBool(r bits.Reader) (bool, error) { return r.ReadBit() }

// PackBigUint writes v as an n-bit big-endian unsigned field of arbitrary
// width, the Go substitute for Rust's native 128+-bit integers
// (SPEC_FULL.md §4.B).
func PackBigUint(w bits.Writer, v *big.Int, n int) error {
	if v.Sign() < 0 {
		return tlberr.Customf("codec: PackBigUint: negative value")
	}
	if v.BitLen() > n {
		return tlberr.WithContextf(tlberr.ErrTruncation, "value needs %d bits, have %d", v.BitLen(), n)
	}
	for i := n - 1; i >= 0; i-- {
		if err := w.WriteBit(v.Bit(i) == 1); err != nil {
			return err
		}
	}
	return nil
}

// UnpackBigUint reads an n-bit big-endian unsigned field into a *big.Int.
func UnpackBigUint(r bits.Reader, n int) (*big.Int, error) {
	out := new(big.Int)
	for i := 0; i < n; i++ {
		bit, err := r.ReadBit()
		if err != nil {
			return nil, err
		}
		out.Lsh(out, 1)
		if bit {
			out.SetBit(out, 0, 1)
		}
	}
	return out, nil
}

// PackBigInt writes v as an n-bit big-endian two's-complement field.
func PackBigInt(w bits.Writer, v *big.Int, n int) error {
	if v.Sign() >= 0 {
		if v.BitLen() > n-1 {
			return tlberr.WithContextf(tlberr.ErrTruncation, "value needs %d bits, have %d", v.BitLen()+1, n)
		}
		return PackBigUint(w, v, n)
	}
	// two's complement: (1<<n) + v, v negative
	mod := new(big.Int).Lsh(big.NewInt(1), uint(n))
	twos := new(big.Int).Add(mod, v)
	if twos.Sign() < 0 || twos.BitLen() != n {
		return tlberr.WithContextf(tlberr.ErrTruncation, "value does not fit in %d bits", n)
	}
	return PackBigUint(w, twos, n)
}

// UnpackBigInt reads an n-bit big-endian two's-complement field.
func UnpackBigInt(r bits.Reader, n int) (*big.Int, error) {
	raw, err := UnpackBigUint(r, n)
	if err != nil {
		return nil, err
	}
	if n == 0 || raw.Bit(n-1) == 0 {
		return raw, nil
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(n))
	return raw.Sub(raw, mod), nil
}
