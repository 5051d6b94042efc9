// Package codec is the Pack/Unpack trait framework (component B of
// SPEC_FULL.md): the interfaces every TL-B-describable type implements,
// the free functions that drive them against a bits.Writer/bits.Reader,
// and the small-arity tuple and struct-field helpers that stand in for
// Go's lack of variadic heterogeneous generics.
package codec

import (
	"github.com/tlbcodec/tlb/bits"
	"github.com/tlbcodec/tlb/tlberr"
)

// Pack is implemented by types with one canonical, argument-free wire
// encoding.
type Pack interface {
	Pack(w bits.Writer) error
}

// Unpack is the argument-free decode counterpart of Pack. Implemented on
// a pointer receiver so the decode fills an existing value, and so
// generic helpers can construct a new *T via new(T).
type Unpack interface {
	Unpack(r bits.Reader) error
}

// PackWithArgs is implemented by types whose encoding depends on a
// side-channel parameter not recoverable from the value itself (e.g. a
// bit width carried by an enclosing schema field).
type PackWithArgs[A any] interface {
	PackWithArgs(w bits.Writer, args A) error
}

// UnpackWithArgs is the decode counterpart of PackWithArgs.
type UnpackWithArgs[A any] interface {
	UnpackWithArgs(r bits.Reader, args A) error
}

// ptrUnpack constrains a type parameter T such that *T implements Unpack,
// letting generic functions construct a fresh *T with new(T) and call
// Unpack on it without the caller supplying a value first.
type ptrUnpack[T any] interface {
	*T
	Unpack
}

type ptrUnpackWithArgs[T any, A any] interface {
	*T
	UnpackWithArgs[A]
}

// PackToSlice packs v into a fresh, growable BitSlice.
func PackToSlice[T Pack](v T) (bits.BitSlice, error) {
	w := bits.NewBitVectorWriter(0)
	if err := v.Pack(w); err != nil {
		return bits.BitSlice{}, err
	}
	return w.Bits(), nil
}

// UnpackFromSlice decodes a T (via pointer receiver PT) from the full
// contents of s.
func UnpackFromSlice[T any, PT ptrUnpack[T]](s bits.BitSlice) (T, error) {
	var v T
	r := bits.NewSliceReader(s)
	if err := PT(&v).Unpack(r); err != nil {
		return v, err
	}
	return v, nil
}

// UnpackFullyFromSlice is UnpackFromSlice plus a trailing-data check: every
// bit of s must be consumed.
func UnpackFullyFromSlice[T any, PT ptrUnpack[T]](s bits.BitSlice) (T, error) {
	var v T
	r := bits.NewSliceReader(s)
	if err := PT(&v).Unpack(r); err != nil {
		return v, err
	}
	if r.BitsLeft() != 0 {
		return v, tlberr.WithContextf(tlberr.ErrTrailing, "%d bits left", r.BitsLeft())
	}
	return v, nil
}

// PackToBytes packs v and pads the result to a byte boundary with TL-B's
// stop-bit convention, for callers that need a plain []byte.
func PackToBytes[T Pack](v T) ([]byte, error) {
	s, err := PackToSlice(v)
	if err != nil {
		return nil, err
	}
	return s.ToBytesPadded(), nil
}

// UnpackFromBytes requires b to be exactly byte-aligned data with no
// trailing padding semantics applied (the caller is responsible for
// knowing how many bits b's last byte actually carries if it used
// ToBytesPadded on the way out — most callers instead keep the BitSlice
// end to end and only convert to bytes at the outermost boundary).
func UnpackFromBytes[T any, PT ptrUnpack[T]](b []byte) (T, error) {
	return UnpackFromSlice[T, PT](bits.FromBytes(b))
}

// PackWithArgsToSlice is the args-carrying counterpart of PackToSlice.
func PackWithArgsToSlice[T any, A any](v PackWithArgs[A], args A) (bits.BitSlice, error) {
	w := bits.NewBitVectorWriter(0)
	if err := v.PackWithArgs(w, args); err != nil {
		return bits.BitSlice{}, err
	}
	return w.Bits(), nil
}

// UnpackWithArgsFromSlice is the args-carrying counterpart of
// UnpackFromSlice.
func UnpackWithArgsFromSlice[T any, A any, PT ptrUnpackWithArgs[T, A]](s bits.BitSlice, args A) (T, error) {
	var v T
	r := bits.NewSliceReader(s)
	if err := PT(&v).UnpackWithArgs(r, args); err != nil {
		return v, err
	}
	return v, nil
}

// Fields packs an ordered list of already-bound field closures, attaching
// positional context ("[0]", "[1]", ...) to any failure — the idiomatic
// replacement for a generated struct Pack method that would otherwise
// repeat this boilerplate per type.
func Fields(w bits.Writer, fns ...func(bits.Writer) error) error {
	for i, fn := range fns {
		if err := fn(w); err != nil {
			return tlberr.WithContextf(err, "[%d]", i)
		}
	}
	return nil
}

// ParseFields is the unpack counterpart of Fields.
func ParseFields(r bits.Reader, fns ...func(bits.Reader) error) error {
	for i, fn := range fns {
		if err := fn(r); err != nil {
			return tlberr.WithContextf(err, "[%d]", i)
		}
	}
	return nil
}

// Seq packs a homogeneous sequence of Pack values, each getting "[i]"
// context. This is the "unlimited named/positional fields beyond arity 4"
// escape hatch referenced in SPEC_FULL.md §4.B.
func Seq[T Pack](w bits.Writer, vs []T) error {
	for i, v := range vs {
		if err := v.Pack(w); err != nil {
			return tlberr.WithContextf(err, "[%d]", i)
		}
	}
	return nil
}
