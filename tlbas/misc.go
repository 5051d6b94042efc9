package tlbas

import (
	"unicode/utf8"

	"github.com/tlbcodec/tlb/bits"
	"github.com/tlbcodec/tlb/tlberr"
)

// ParseFully wraps Inner and additionally requires, on unpack, that the
// reader have no bits left afterward — for fields whose reader is already
// scoped to exactly Inner's content (a referenced cell's Parser, a
// VarBits sub-slice reinterpreted as a nested message) and which must
// consume every bit of it.
type ParseFully[T any] struct {
	Inner Adapter[T]
}

func (a ParseFully[T]) PackAs(w bits.Writer, v T) error {
	return a.Inner.PackAs(w, v)
}

func (a ParseFully[T]) UnpackAs(r bits.Reader) (T, error) {
	v, err := a.Inner.UnpackAs(r)
	if err != nil {
		var zero T
		return zero, err
	}
	if r.BitsLeft() != 0 {
		var zero T
		return zero, tlberr.WithContextf(tlberr.ErrTrailing, "%d bits left", r.BitsLeft())
	}
	return v, nil
}

// DefaultOnNone wraps Inner in TL-B's Maybe convention (one presence bit,
// independent of v's value, as in Either[Unit, T]) and substitutes
// Default for an absent value on decode. It is primarily a decode-side
// construct: T itself carries no "absent" value distinct from Default,
// so packing always marks the field present and writes v through Inner.
type DefaultOnNone[T any] struct {
	Inner   Adapter[T]
	Default T
}

func (a DefaultOnNone[T]) PackAs(w bits.Writer, v T) error {
	if err := w.WriteBit(true); err != nil {
		return err
	}
	return a.Inner.PackAs(w, v)
}

func (a DefaultOnNone[T]) UnpackAs(r bits.Reader) (T, error) {
	present, err := r.ReadBit()
	if err != nil {
		var zero T
		return zero, err
	}
	if !present {
		return a.Default, nil
	}
	return a.Inner.UnpackAs(r)
}

// Remainder packs/unpacks the rest of the current reader as a raw
// bits.BitSlice, with no length prefix — used for trailing payload
// fields that consume "everything left" (TL-B's common `rest:Any`
// convention).
type Remainder struct{}

func (Remainder) PackAs(w bits.Writer, v bits.BitSlice) error {
	return w.WriteBitSlice(v)
}

func (Remainder) UnpackAs(r bits.Reader) (bits.BitSlice, error) {
	return r.ReadBitSlice(r.BitsLeft())
}

// RemainderBytes is Remainder, converted to a byte-aligned []byte via
// TL-B's stop-bit padding convention.
type RemainderBytes struct{}

func (RemainderBytes) PackAs(w bits.Writer, v []byte) error {
	return w.WriteBitSlice(bits.FromBytes(v))
}

func (RemainderBytes) UnpackAs(r bits.Reader) ([]byte, error) {
	s, err := r.ReadBitSlice(r.BitsLeft())
	if err != nil {
		return nil, err
	}
	return s.ToBytesPadded(), nil
}

// RemainderString is RemainderBytes, validated and converted to a Go
// string, failing with tlberr.ErrConversion on invalid UTF-8.
type RemainderString struct{}

func (RemainderString) PackAs(w bits.Writer, v string) error {
	return w.WriteBitSlice(bits.FromBytes([]byte(v)))
}

func (RemainderString) UnpackAs(r bits.Reader) (string, error) {
	b, err := (RemainderBytes{}).UnpackAs(r)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", tlberr.WithContext(tlberr.ErrConversion, "invalid UTF-8")
	}
	return string(b), nil
}

var (
	_ Adapter[bits.BitSlice] = Remainder{}
	_ Adapter[[]byte]        = RemainderBytes{}
	_ Adapter[string]        = RemainderString{}
)
