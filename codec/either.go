package codec

import "github.com/tlbcodec/tlb/bits"

// Either holds exactly one of a Left or Right value, tagged by one bit on
// the wire (0 = Left, 1 = Right per TL-B's `Either X Y` convention).
type Either[L, R any] struct {
	isRight bool
	left    L
	right   R
}

func Left[L, R any](v L) Either[L, R]  { return Either[L, R]{left: v} }
func Right[L, R any](v R) Either[L, R] { return Either[L, R]{isRight: true, right: v} }

func (e Either[L, R]) IsLeft() bool  { return !e.isRight }
func (e Either[L, R]) IsRight() bool { return e.isRight }

// Left_ returns the left value and true, or the zero value and false.
func (e Either[L, R]) Left_() (L, bool) { return e.left, !e.isRight }

// Right_ returns the right value and true, or the zero value and false.
func (e Either[L, R]) Right_() (R, bool) { return e.right, e.isRight }

// PackEither packs an Either tagged by one bit, dispatching to packL/packR.
func PackEither[L, R any](w bits.Writer, e Either[L, R], packL func(bits.Writer, L) error, packR func(bits.Writer, R) error) error {
	if err := w.WriteBit(e.isRight); err != nil {
		return err
	}
	if e.isRight {
		return packR(w, e.right)
	}
	return packL(w, e.left)
}

// UnpackEither is the decode counterpart of PackEither.
func UnpackEither[L, R any](r bits.Reader, unpackL func(bits.Reader) (L, error), unpackR func(bits.Reader) (R, error)) (Either[L, R], error) {
	tag, err := r.ReadBit()
	if err != nil {
		return Either[L, R]{}, err
	}
	if tag {
		v, err := unpackR(r)
		if err != nil {
			return Either[L, R]{}, err
		}
		return Right[L, R](v), nil
	}
	v, err := unpackL(r)
	if err != nil {
		return Either[L, R]{}, err
	}
	return Left[L, R](v), nil
}

// Unit is the zero-size left arm of Option's Either[Unit, T] definition.
type Unit struct{}

// Option represents spec.md's Option[T] as defined in terms of Either:
// Either[Unit, T] where Left means "absent" and Right means "present" —
// kept as its own named type for ergonomics (Some/None/Get) rather than
// making every call site spell out Either[Unit, T].
type Option[T any] struct {
	inner Either[Unit, T]
}

func Some[T any](v T) Option[T] { return Option[T]{inner: Right[Unit, T](v)} }
func None[T any]() Option[T]    { return Option[T]{inner: Left[Unit, T](Unit{})} }

func (o Option[T]) IsSome() bool { return o.inner.IsRight() }
func (o Option[T]) IsNone() bool { return o.inner.IsLeft() }

func (o Option[T]) Get() (T, bool) { return o.inner.Right_() }

// PackOption packs an Option the same way Either[Unit, T] would.
func PackOption[T any](w bits.Writer, o Option[T], packT func(bits.Writer, T) error) error {
	return PackEither(w, o.inner,
		func(bits.Writer, Unit) error { return nil },
		packT,
	)
}

// UnpackOption is the decode counterpart of PackOption.
func UnpackOption[T any](r bits.Reader, unpackT func(bits.Reader) (T, error)) (Option[T], error) {
	e, err := UnpackEither(r,
		func(bits.Reader) (Unit, error) { return Unit{}, nil },
		unpackT,
	)
	if err != nil {
		return Option[T]{}, err
	}
	return Option[T]{inner: e}, nil
}
