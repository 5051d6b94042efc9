// Package cell implements the TL-B Cell tree-of-cells model (component D
// of SPEC_FULL.md): the immutable Cell value, the capacity-bounded
// Builder that constructs one, and the Parser that reads one back.
package cell

import (
	"github.com/tlbcodec/tlb/bits"
	"github.com/tlbcodec/tlb/tlberr"
)

const (
	// MaxDataBits is the hard TL-B ceiling on a single cell's data bits.
	MaxDataBits = 1023
	// MaxReferences is the hard TL-B ceiling on a single cell's child
	// references.
	MaxReferences = 4
)

// Cell is an immutable node in a TL-B cell tree: up to MaxDataBits bits of
// data plus up to MaxReferences child cells. Two cells with structurally
// equal data and references are interchangeable — Hash() is the canonical
// identity, computed once at construction and cached.
type Cell struct {
	data     bits.BitSlice
	refs     []*Cell
	level    uint8
	maxDepth uint16
	hash     Hash
}

// Data returns the cell's own data bits (not including referenced cells).
func (c *Cell) Data() bits.BitSlice { return c.data }

// References returns the cell's child references, in order. The returned
// slice must not be mutated.
func (c *Cell) References() []*Cell { return c.refs }

// Level is the exotic-cell level mask placeholder (SPEC_FULL.md §3): 0 for
// every cell this package can construct, since exotic cells are out of
// scope.
func (c *Cell) Level() uint8 { return c.level }

// MaxDepth is the cached maximum reference depth, computed once at
// construction (SPEC_FULL.md §3 "Depth accounting").
func (c *Cell) MaxDepth() uint16 { return c.maxDepth }

// Parser returns a fresh cursor over c's data bits and references.
func (c *Cell) Parser() *Parser { return newParser(c) }

// Equal reports structural equality: same data bits and pairwise-equal
// references, recursively. Two structurally equal cells always have the
// same Hash().
func (c *Cell) Equal(o *Cell) bool {
	if c == o {
		return true
	}
	if c == nil || o == nil {
		return false
	}
	if !c.data.Equal(o.data) || len(c.refs) != len(o.refs) {
		return false
	}
	for i := range c.refs {
		if !c.refs[i].Equal(o.refs[i]) {
			return false
		}
	}
	return true
}

func computeMaxDepth(refs []*Cell) uint16 {
	var depth uint16
	for _, r := range refs {
		d := r.maxDepth + 1
		if d > depth {
			depth = d
		}
	}
	return depth
}

func computeLevel(refs []*Cell) uint8 {
	var level uint8
	for _, r := range refs {
		if r.level > level {
			level = r.level
		}
	}
	return level
}

// newLeaf builds a Cell directly from already-validated data/refs; used
// only by Builder.IntoCell, which has already enforced the capacity
// ceilings.
func newLeaf(data bits.BitSlice, refs []*Cell) *Cell {
	c := &Cell{
		data:     data,
		refs:     refs,
		level:    computeLevel(refs),
		maxDepth: computeMaxDepth(refs),
	}
	c.hash = computeHash(c)
	return c
}

// checkCapacity returns tlberr.ErrCapacity-wrapped errors when adding
// extraBits/extraRefs would exceed the cell ceilings.
func checkCapacity(curBits, extraBits, curRefs, extraRefs int) error {
	if curBits+extraBits > MaxDataBits {
		return tlberr.WithContextf(tlberr.ErrCapacity, "cell data: %d/%d bits", curBits+extraBits, MaxDataBits)
	}
	if curRefs+extraRefs > MaxReferences {
		return tlberr.WithContextf(tlberr.ErrCapacity, "cell refs: %d/%d", curRefs+extraRefs, MaxReferences)
	}
	return nil
}
