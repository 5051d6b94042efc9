package cell

import (
	"github.com/tlbcodec/tlb/bits"
	"github.com/tlbcodec/tlb/codec"
	"github.com/tlbcodec/tlb/tlberr"
)

// Parser is a cursor over a *Cell's data bits and references. It
// implements bits.Reader, so any Unpack implementation or tlbas adapter
// written against bits.Reader works unmodified against a *Parser.
type Parser struct {
	r      *bits.SliceReader
	refs   []*Cell
	refIdx int
}

func newParser(c *Cell) *Parser {
	return &Parser{r: bits.NewSliceReader(c.data), refs: c.refs}
}

// BitsLeft satisfies bits.Reader.
func (p *Parser) BitsLeft() int { return p.r.BitsLeft() }

// ReadBit satisfies bits.Reader.
func (p *Parser) ReadBit() (bool, error) { return p.r.ReadBit() }

// ReadBitSlice satisfies bits.Reader.
func (p *Parser) ReadBitSlice(n int) (bits.BitSlice, error) { return p.r.ReadBitSlice(n) }

// SkipBits satisfies bits.Reader.
func (p *Parser) SkipBits(n int) error { return p.r.SkipBits(n) }

// ReferencesLeft reports how many child references have not yet been
// consumed.
func (p *Parser) ReferencesLeft() int { return len(p.refs) - p.refIdx }

// IsEmpty reports whether both the data bits and the references are fully
// consumed.
func (p *Parser) IsEmpty() bool { return p.BitsLeft() == 0 && p.ReferencesLeft() == 0 }

// EnsureEmpty returns tlberr.ErrTrailing if either data bits or
// references remain unconsumed.
func (p *Parser) EnsureEmpty() error {
	if !p.IsEmpty() {
		return tlberr.WithContextf(tlberr.ErrTrailing, "%d bits, %d refs left", p.BitsLeft(), p.ReferencesLeft())
	}
	return nil
}

// nextReference consumes and returns the next child reference.
func (p *Parser) nextReference() (*Cell, error) {
	if p.refIdx >= len(p.refs) {
		return nil, tlberr.WithContext(tlberr.ErrEOF, "reference")
	}
	c := p.refs[p.refIdx]
	p.refIdx++
	return c, nil
}

// Parse decodes a T with its natural argument-free decoding from p's data
// bits.
func Parse[T any, PT interface {
	*T
	codec.Unpack
}](p *Parser) (T, error) {
	var v T
	if err := PT(&v).Unpack(p); err != nil {
		return v, err
	}
	return v, nil
}

// ParseWith decodes a T using its args-carrying decoding.
func ParseWith[T any, A any, PT interface {
	*T
	codec.UnpackWithArgs[A]
}](p *Parser, args A) (T, error) {
	var v T
	if err := PT(&v).UnpackWithArgs(p, args); err != nil {
		return v, err
	}
	return v, nil
}

// ParseAs decodes a T through adapter a from p's data bits.
func ParseAs[T any](p *Parser, a Adapter[T]) (T, error) {
	return a.UnpackAs(p)
}

// ParseAsWith decodes a T through adapter a, supplying args, from p's
// data bits.
func ParseAsWith[T any, A any](p *Parser, a AdapterWithArgs[T, A], args A) (T, error) {
	return a.UnpackAsWith(p, args)
}

// ParseReferenceAs consumes the next child reference and decodes a T from
// its data through adapter a, then checks the referenced cell's parser for
// trailing bits/refs, matching the "parse fully" contract every referenced
// cell is held to.
func ParseReferenceAs[T any](p *Parser, a Adapter[T]) (T, error) {
	ref, err := p.nextReference()
	if err != nil {
		var zero T
		return zero, err
	}
	refParser := ref.Parser()
	v, err := a.UnpackAs(refParser)
	if err != nil {
		return v, err
	}
	if err := refParser.EnsureEmpty(); err != nil {
		return v, err
	}
	return v, nil
}

var _ bits.Reader = (*Parser)(nil)
