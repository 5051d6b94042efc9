package tlbas

import (
	"github.com/tlbcodec/tlb/bits"
)

// FromInto packs/unpacks T by converting it to/from U and delegating to
// Inner's encoding of U. This is the general "encode as a different
// representation" escape hatch (spec.md's FromInto/Into bound).
type FromInto[T, U any] struct {
	Inner Adapter[U]
	Into  func(T) U
	From  func(U) T
}

func (a FromInto[T, U]) PackAs(w bits.Writer, v T) error {
	return a.Inner.PackAs(w, a.Into(v))
}

func (a FromInto[T, U]) UnpackAs(r bits.Reader) (T, error) {
	u, err := a.Inner.UnpackAs(r)
	if err != nil {
		var zero T
		return zero, err
	}
	return a.From(u), nil
}

// FromIntoRef is FromInto's by-reference variant, for conversions cheaper
// to express against *T than T (Go has no borrow checker, so this differs
// from FromInto only in the shape of the conversion functions, not in any
// ownership guarantee — SPEC_FULL.md §4.C).
type FromIntoRef[T, U any] struct {
	Inner  Adapter[U]
	IntoFn func(*T) U
	FromFn func(U, *T)
}

func (a FromIntoRef[T, U]) PackAs(w bits.Writer, v T) error {
	return a.Inner.PackAs(w, a.IntoFn(&v))
}

func (a FromIntoRef[T, U]) UnpackAs(r bits.Reader) (T, error) {
	u, err := a.Inner.UnpackAs(r)
	if err != nil {
		var zero T
		return zero, err
	}
	var out T
	a.FromFn(u, &out)
	return out, nil
}

// TryFromInto is FromInto with a fallible reverse conversion, reporting
// tlberr.ErrConversion-family errors from TryFrom without losing them.
type TryFromInto[T, U any] struct {
	Inner   Adapter[U]
	Into    func(T) U
	TryFrom func(U) (T, error)
}

func (a TryFromInto[T, U]) PackAs(w bits.Writer, v T) error {
	return a.Inner.PackAs(w, a.Into(v))
}

func (a TryFromInto[T, U]) UnpackAs(r bits.Reader) (T, error) {
	u, err := a.Inner.UnpackAs(r)
	if err != nil {
		var zero T
		return zero, err
	}
	return a.TryFrom(u)
}

// Cow is the Go realization of spec.md's BorrowCow<'de>: since Go has no
// borrow checker, "borrowed" just means "points at memory the caller
// still owns" rather than a distinct lifetime-checked type. Unpack always
// produces the Owned variant (there is nothing in a decoded BitSlice left
// to borrow from once copied out).
type Cow[T any] struct {
	owned    T
	borrowed *T
}

func Owned[T any](v T) Cow[T]     { return Cow[T]{owned: v} }
func Borrowed[T any](v *T) Cow[T] { return Cow[T]{borrowed: v} }

// Value returns the referenced value regardless of ownership.
func (c Cow[T]) Value() T {
	if c.borrowed != nil {
		return *c.borrowed
	}
	return c.owned
}

func (c Cow[T]) IsBorrowed() bool { return c.borrowed != nil }

// BorrowCow packs/unpacks a Cow[T] by delegating to Inner on its Value().
type BorrowCow[T any] struct {
	Inner Adapter[T]
}

func (a BorrowCow[T]) PackAs(w bits.Writer, v Cow[T]) error {
	return a.Inner.PackAs(w, v.Value())
}

func (a BorrowCow[T]) UnpackAs(r bits.Reader) (Cow[T], error) {
	v, err := a.Inner.UnpackAs(r)
	if err != nil {
		return Cow[T]{}, err
	}
	return Owned(v), nil
}

// NoArgs adapts an AdapterWithArgs[T, A] into a plain Adapter[T] by
// supplying a fixed Args value at every call — used where a no-args
// schema field is described in terms of a with-args primitive (e.g. a
// fixed-width NBits field reused from a shared "width" constant).
type NoArgs[T, A any] struct {
	Inner AdapterWithArgs[T, A]
	Args  A
}

func (a NoArgs[T, A]) PackAs(w bits.Writer, v T) error {
	return a.Inner.PackAsWith(w, v, a.Args)
}

func (a NoArgs[T, A]) UnpackAs(r bits.Reader) (T, error) {
	return a.Inner.UnpackAsWith(r, a.Args)
}
