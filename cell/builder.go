package cell

import (
	"github.com/tlbcodec/tlb/bits"
	"github.com/tlbcodec/tlb/codec"
	"github.com/tlbcodec/tlb/tlberr"
)

// Builder accumulates data bits and child references up to the TL-B
// ceilings (MaxDataBits, MaxReferences) before being frozen into an
// immutable *Cell via IntoCell. It implements bits.Writer, so any Pack
// implementation or tlbas adapter written against bits.Writer works
// unmodified against a *Builder.
type Builder struct {
	w    *bits.BitVectorWriter
	refs []*Cell
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{w: bits.NewBitVectorWriter(MaxDataBits)}
}

// CapacityLeft returns the number of data bits still available, satisfying
// bits.Writer.
func (b *Builder) CapacityLeft() int {
	left := MaxDataBits - b.w.Bits().Len()
	if left < 0 {
		return 0
	}
	return left
}

func (b *Builder) checkBits(n int) error {
	if b.w.Bits().Len()+n > MaxDataBits {
		return tlberr.WithContextf(tlberr.ErrCapacity, "cell data: %d/%d bits", b.w.Bits().Len()+n, MaxDataBits)
	}
	return nil
}

// WriteBit satisfies bits.Writer.
func (b *Builder) WriteBit(v bool) error {
	if err := b.checkBits(1); err != nil {
		return err
	}
	return b.w.WriteBit(v)
}

// WriteBitSlice satisfies bits.Writer.
func (b *Builder) WriteBitSlice(s bits.BitSlice) error {
	if err := b.checkBits(s.Len()); err != nil {
		return err
	}
	return b.w.WriteBitSlice(s)
}

// RepeatBit satisfies bits.Writer.
func (b *Builder) RepeatBit(n int, v bool) error {
	if err := b.checkBits(n); err != nil {
		return err
	}
	return b.w.RepeatBit(n, v)
}

// Store packs v with its natural argument-free encoding directly into the
// builder's data bits.
func Store[T codec.Pack](b *Builder, v T) error {
	return v.Pack(b)
}

// StoreWith packs v using its args-carrying encoding.
func StoreWith[T any, A any](b *Builder, v codec.PackWithArgs[A], args A) error {
	return v.PackWithArgs(b, args)
}

// Adapter is the bit-level half of the tlbas adapter contract: pack a
// value of type T through the adapter's own encoding. tlbas adapters
// implement this directly; the cell-level adapters Ref and
// EitherInlineOrRef also implement it, and type-assert the Writer/Reader
// they receive to *Builder/*Parser at run time.
type Adapter[T any] interface {
	PackAs(w bits.Writer, v T) error
	UnpackAs(r bits.Reader) (T, error)
}

// StoreAs packs v through adapter a into b's data bits.
func StoreAs[T any](b *Builder, a Adapter[T], v T) error {
	return a.PackAs(b, v)
}

// AdapterWithArgs is the args-carrying counterpart of Adapter.
type AdapterWithArgs[T any, A any] interface {
	PackAsWith(w bits.Writer, v T, args A) error
	UnpackAsWith(r bits.Reader, args A) (T, error)
}

// StoreAsWith packs v through adapter a, supplying args, into b's data
// bits.
func StoreAsWith[T any, A any](b *Builder, a AdapterWithArgs[T, A], v T, args A) error {
	return a.PackAsWith(b, v, args)
}

// StoreReference appends ref as a child reference, failing with
// tlberr.ErrCapacity once MaxReferences is reached.
func (b *Builder) StoreReference(ref *Cell) error {
	if len(b.refs) >= MaxReferences {
		return tlberr.WithContextf(tlberr.ErrCapacity, "cell refs: %d/%d", len(b.refs)+1, MaxReferences)
	}
	b.refs = append(b.refs, ref)
	return nil
}

// ReferencesLeft reports how many more references can be stored.
func (b *Builder) ReferencesLeft() int { return MaxReferences - len(b.refs) }

// IntoCell freezes the builder into an immutable *Cell. The builder must
// not be used afterward.
func (b *Builder) IntoCell() *Cell {
	return newLeaf(b.w.Bits(), append([]*Cell(nil), b.refs...))
}

var _ bits.Writer = (*Builder)(nil)
