package codec

import "github.com/tlbcodec/tlb/bits"

// Pack2 packs two values in order via Fields, so a failure carries the
// positional context "[0]"/"[1]"; no ".0"/".1"-style label is attached.
// It is the Go stand-in for spec.md's arity-N tuple Pack impls
// (SPEC_FULL.md §4.B narrows "arity 10" to "arity 4 positional fields",
// since wider records are idiomatically plain Go structs using Fields).
func Pack2[A, B any](w bits.Writer, a A, b B, packA func(bits.Writer, A) error, packB func(bits.Writer, B) error) error {
	return Fields(w,
		func(w bits.Writer) error { return packA(w, a) },
		func(w bits.Writer) error { return packB(w, b) },
	)
}

// Unpack2 is the decode counterpart of Pack2.
func Unpack2[A, B any](r bits.Reader, unpackA func(bits.Reader) (A, error), unpackB func(bits.Reader) (B, error)) (A, B, error) {
	var a A
	var b B
	err := ParseFields(r,
		func(r bits.Reader) (err error) { a, err = unpackA(r); return },
		func(r bits.Reader) (err error) { b, err = unpackB(r); return },
	)
	return a, b, err
}

// Pack3 packs three values in order.
func Pack3[A, B, C any](
	w bits.Writer, a A, b B, c C,
	packA func(bits.Writer, A) error, packB func(bits.Writer, B) error, packC func(bits.Writer, C) error,
) error {
	return Fields(w,
		func(w bits.Writer) error { return packA(w, a) },
		func(w bits.Writer) error { return packB(w, b) },
		func(w bits.Writer) error { return packC(w, c) },
	)
}

// Unpack3 is the decode counterpart of Pack3.
func Unpack3[A, B, C any](
	r bits.Reader,
	unpackA func(bits.Reader) (A, error), unpackB func(bits.Reader) (B, error), unpackC func(bits.Reader) (C, error),
) (A, B, C, error) {
	var a A
	var b B
	var c C
	err := ParseFields(r,
		func(r bits.Reader) (err error) { a, err = unpackA(r); return },
		func(r bits.Reader) (err error) { b, err = unpackB(r); return },
		func(r bits.Reader) (err error) { c, err = unpackC(r); return },
	)
	return a, b, c, err
}

// Pack4 packs four values in order.
func Pack4[A, B, C, D any](
	w bits.Writer, a A, b B, c C, d D,
	packA func(bits.Writer, A) error, packB func(bits.Writer, B) error,
	packC func(bits.Writer, C) error, packD func(bits.Writer, D) error,
) error {
	return Fields(w,
		func(w bits.Writer) error { return packA(w, a) },
		func(w bits.Writer) error { return packB(w, b) },
		func(w bits.Writer) error { return packC(w, c) },
		func(w bits.Writer) error { return packD(w, d) },
	)
}

// Unpack4 is the decode counterpart of Pack4.
func Unpack4[A, B, C, D any](
	r bits.Reader,
	unpackA func(bits.Reader) (A, error), unpackB func(bits.Reader) (B, error),
	unpackC func(bits.Reader) (C, error), unpackD func(bits.Reader) (D, error),
) (A, B, C, D, error) {
	var a A
	var b B
	var c C
	var d D
	err := ParseFields(r,
		func(r bits.Reader) (err error) { a, err = unpackA(r); return },
		func(r bits.Reader) (err error) { b, err = unpackB(r); return },
		func(r bits.Reader) (err error) { c, err = unpackC(r); return },
		func(r bits.Reader) (err error) { d, err = unpackD(r); return },
	)
	return a, b, c, d, err
}

// Array packs the elements of arr in order through packT, each with "[i]"
// context, the Go stand-in for spec.md's [T; N] Pack impl (a fixed-size
// Go array is passed as a slice of itself).
func Array[T any](w bits.Writer, arr []T, packT func(bits.Writer, T) error) error {
	fns := make([]func(bits.Writer) error, len(arr))
	for i, v := range arr {
		v := v
		fns[i] = func(w bits.Writer) error { return packT(w, v) }
	}
	return Fields(w, fns...)
}

// UnpackArray unpacks n homogeneous values into a freshly allocated slice
// of length n.
func UnpackArray[T any](r bits.Reader, n int, unpackT func(bits.Reader) (T, error)) ([]T, error) {
	out := make([]T, n)
	fns := make([]func(bits.Reader) error, n)
	for i := range out {
		i := i
		fns[i] = func(r bits.Reader) (err error) { out[i], err = unpackT(r); return }
	}
	if err := ParseFields(r, fns...); err != nil {
		return nil, err
	}
	return out, nil
}
