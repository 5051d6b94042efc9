package tlbas

import (
	"github.com/tlbcodec/tlb/bits"
	"github.com/tlbcodec/tlb/cell"
	"github.com/tlbcodec/tlb/tlberr"
)

// Data wraps Inner unchanged: it exists so a schema can say explicitly
// "this field's bits live in the current cell's data" in symmetry with
// Ref's "this field lives in a referenced cell" (SPEC_FULL.md §4.C).
// Because Inner already operates over the general bits.Writer/bits.Reader
// interfaces, Data needs no cell-specific machinery — the distinction is
// purely documentation at the call site.
type Data[T any] struct {
	Inner Adapter[T]
}

func (a Data[T]) PackAs(w bits.Writer, v T) error   { return a.Inner.PackAs(w, v) }
func (a Data[T]) UnpackAs(r bits.Reader) (T, error) { return a.Inner.UnpackAs(r) }

// Ref packs v into a brand new cell (via Inner) and stores that cell as a
// reference of the enclosing builder; on parse it consumes the next
// reference and decodes it with Inner. Pushing/consuming a reference
// needs a concrete *cell.Builder/*cell.Parser (bits.Writer and bits.Reader
// alone have no notion of "references"), so Ref type-asserts the Writer/
// Reader it's given down to those concrete types — which still compose
// naturally through the general interfaces, since *cell.Builder and
// *cell.Parser satisfy bits.Writer/bits.Reader and Ref is itself only
// ever reached while packing/parsing an actual cell.
type Ref[T any] struct {
	Inner Adapter[T]
}

func (a Ref[T]) PackAs(w bits.Writer, v T) error {
	b, ok := w.(*cell.Builder)
	if !ok {
		return tlberr.Customf("tlbas.Ref: requires a *cell.Builder, got %T", w)
	}
	inner := cell.NewBuilder()
	if err := a.Inner.PackAs(inner, v); err != nil {
		return tlberr.WithContext(err, "ref")
	}
	return b.StoreReference(inner.IntoCell())
}

func (a Ref[T]) UnpackAs(r bits.Reader) (T, error) {
	var zero T
	p, ok := r.(*cell.Parser)
	if !ok {
		return zero, tlberr.Customf("tlbas.Ref: requires a *cell.Parser, got %T", r)
	}
	v, err := cell.ParseReferenceAs(p, a.Inner)
	if err != nil {
		return zero, tlberr.WithContext(err, "ref")
	}
	return v, nil
}

// EitherInlineOrRef packs v either inline in the current cell's data
// (tag bit 0) or in a referenced cell (tag bit 1), matching TL-B's common
// `Either X (^X)` convention for payloads that may or may not fit. Like
// Ref, it needs the concrete *cell.Builder/*cell.Parser the general
// Writer/Reader it receives turns out to be.
type EitherInlineOrRef[T any] struct {
	Inner Adapter[T]
}

func (a EitherInlineOrRef[T]) PackAs(w bits.Writer, v T) error {
	b, ok := w.(*cell.Builder)
	if !ok {
		return tlberr.Customf("tlbas.EitherInlineOrRef: requires a *cell.Builder, got %T", w)
	}
	// Measure the inline encoding first so capacity decides the tag,
	// exactly as a real encoder picks the smallest valid form.
	probe := cell.NewBuilder()
	if err := a.Inner.PackAs(probe, v); err != nil {
		return err
	}
	probeCell := probe.IntoCell()
	fitsInline := len(probeCell.References()) == 0 && probeCell.Data().Len() <= b.CapacityLeft()-1
	if fitsInline {
		if err := b.WriteBit(false); err != nil {
			return err
		}
		return b.WriteBitSlice(probeCell.Data())
	}
	if err := b.WriteBit(true); err != nil {
		return err
	}
	return b.StoreReference(probeCell)
}

func (a EitherInlineOrRef[T]) UnpackAs(r bits.Reader) (T, error) {
	var zero T
	p, ok := r.(*cell.Parser)
	if !ok {
		return zero, tlberr.Customf("tlbas.EitherInlineOrRef: requires a *cell.Parser, got %T", r)
	}
	tag, err := p.ReadBit()
	if err != nil {
		return zero, err
	}
	if !tag {
		return a.Inner.UnpackAs(p)
	}
	return cell.ParseReferenceAs(p, a.Inner)
}

var (
	_ Adapter[int] = Data[int]{}
	_ Adapter[int] = Ref[int]{}
	_ Adapter[int] = EitherInlineOrRef[int]{}
)
