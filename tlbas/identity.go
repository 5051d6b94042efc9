// Package tlbas is the As-adapter layer (component C of SPEC_FULL.md):
// the composable codec nodes (Same, NBits, VarInt, Ref, ...) that let a
// schema field be encoded differently than its natural Go representation.
//
// Go generics cannot parametrize by integer constant or by a generic type
// applied to another type, so each adapter here is realized as a concrete
// generic struct *value* carrying whatever runtime parameters it needs
// (N, LenBits, an inner adapter), interpreted once per call site rather
// than monomorphized at compile time (SPEC_FULL.md §4.C).
package tlbas

import (
	"math/big"

	"github.com/tlbcodec/tlb/bits"
	"github.com/tlbcodec/tlb/cell"
	"github.com/tlbcodec/tlb/codec"
	"github.com/tlbcodec/tlb/tlberr"
)

// Adapter is cell.Adapter re-exported under this package for call sites
// that only import tlbas.
type Adapter[T any] = cell.Adapter[T]

// AdapterWithArgs is cell.AdapterWithArgs re-exported under this package.
type AdapterWithArgs[T any, A any] = cell.AdapterWithArgs[T, A]

// ptrUnpack constrains T so a fresh *T can be constructed and Unpacked,
// mirroring codec's own internal constraint.
type ptrUnpack[T any] interface {
	*T
	codec.Unpack
}

// Same returns the identity adapter for T: it packs/unpacks T using T's
// own natural Pack/Unpack methods, unchanged. It is the identity element
// of the adapter algebra — composing Ref[T]{Inner: Same[T, *T]()} means
// "store T in a referenced cell using its own encoding". T must implement codec.Pack by
// value and codec.Unpack by pointer.
func Same[T any, PT ptrUnpack[T]]() Adapter[T] {
	return sameImpl[T, PT]{}
}

type sameImpl[T any, PT ptrUnpack[T]] struct{}

func (sameImpl[T, PT]) PackAs(w bits.Writer, v T) error {
	p, ok := any(v).(codec.Pack)
	if !ok {
		return tlberr.Customf("tlbas: %T does not implement Pack", v)
	}
	return p.Pack(w)
}

func (sameImpl[T, PT]) UnpackAs(r bits.Reader) (T, error) {
	var v T
	if err := PT(&v).Unpack(r); err != nil {
		return v, err
	}
	return v, nil
}

// NBits packs a fixed-width unsigned integer using N bits, where N may
// differ from T's native Go width (e.g. a 9-bit value stored in a
// uint16). N is carried as a runtime struct field since Go has no
// const-generic integer parameters (SPEC_FULL.md §4.C).
type NBits[T codec.Uint] struct {
	N int
}

func (a NBits[T]) PackAs(w bits.Writer, v T) error {
	if a.N < 0 || a.N > 64 {
		return tlberr.Customf("tlbas.NBits: invalid width %d", a.N)
	}
	if a.N < 64 && uint64(v) >= uint64(1)<<uint(a.N) {
		return tlberr.WithContextf(tlberr.ErrTruncation, "value does not fit in %d bits", a.N)
	}
	return codec.WriteUint(w, uint64(v), a.N)
}

func (a NBits[T]) UnpackAs(r bits.Reader) (T, error) {
	v, err := codec.ReadUint(r, a.N)
	return T(v), err
}

// NBitsSigned is NBits's signed-integer counterpart.
type NBitsSigned[T codec.Int] struct {
	N int
}

func (a NBitsSigned[T]) PackAs(w bits.Writer, v T) error {
	if a.N < 0 {
		return tlberr.Customf("tlbas.NBitsSigned: invalid width %d", a.N)
	}
	return codec.PackBigInt(w, big.NewInt(int64(v)), a.N)
}

func (a NBitsSigned[T]) UnpackAs(r bits.Reader) (T, error) {
	if a.N < 0 {
		return 0, tlberr.Customf("tlbas.NBitsSigned: invalid width %d", a.N)
	}
	v, err := codec.UnpackBigInt(r, a.N)
	if err != nil {
		return 0, err
	}
	return T(v.Int64()), nil
}

// VarNBits packs an unsigned integer using a bit width supplied per call
// (the Go realization of spec.md's "runtime N" variant — since the width
// isn't fixed by the adapter, it arrives as an argument rather than a
// struct field).
type VarNBits[T codec.Uint] struct{}

func (VarNBits[T]) PackAsWith(w bits.Writer, v T, n int) error {
	return NBits[T]{N: n}.PackAs(w, v)
}

func (VarNBits[T]) UnpackAsWith(r bits.Reader, n int) (T, error) {
	return NBits[T]{N: n}.UnpackAs(r)
}

var _ AdapterWithArgs[uint32, int] = VarNBits[uint32]{}
