package boc

import (
	"encoding/binary"
	"hash/crc32"
	stdbits "math/bits"

	"go.uber.org/zap"

	"github.com/tlbcodec/tlb/cell"
	"github.com/tlbcodec/tlb/tlberr"
	"github.com/tlbcodec/tlb/tlblog"
	"github.com/tlbcodec/tlb/tlbmetrics"
)

var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// BagOfCells is a named, ordered set of root cells together with every
// cell reachable from them — the unit BagOfCells serialization actually
// transmits (SPEC_FULL.md §4.F). A single-root BagOfCells is the common
// case; multiple roots let one container carry an unrelated batch of
// trees in one framing.
type BagOfCells struct {
	roots []*cell.Cell
}

// FromRoot returns a BagOfCells containing a single root cell.
func FromRoot(c *cell.Cell) *BagOfCells {
	return &BagOfCells{roots: []*cell.Cell{c}}
}

// AddRoot appends another root cell.
func (b *BagOfCells) AddRoot(c *cell.Cell) {
	b.roots = append(b.roots, c)
}

// Roots returns every root cell, in the order added.
func (b *BagOfCells) Roots() []*cell.Cell {
	return append([]*cell.Cell(nil), b.roots...)
}

// SingleRoot returns the sole root cell, failing with tlberr.ErrInvariant
// if the bag holds zero or more than one root.
func (b *BagOfCells) SingleRoot() (*cell.Cell, error) {
	if len(b.roots) != 1 {
		return nil, tlberr.WithContextf(tlberr.ErrInvariant, "expected exactly 1 root, got %d", len(b.roots))
	}
	return b.roots[0], nil
}

// Serialize encodes the bag to its wire form. It always writes the
// generic magic (0xB5EE9C72): its flags byte already expresses every
// combination opts can request, so the two lean magics exist in this
// codec only as accepted input forms (Deserialize reads all three).
func (b *BagOfCells) Serialize(opts SerializeOptions) ([]byte, error) {
	if len(b.roots) == 0 {
		return nil, tlberr.WithContext(tlberr.ErrInvariant, "no root cells")
	}

	order, indexOf, err := topoSort(b.roots)
	if err != nil {
		return nil, err
	}
	cellsNum := len(order)

	sizeBytes := maxInt(ceilDiv8(stdbits.Len(uint(cellsNum))), 1)

	reprs := make([][]byte, cellsNum)
	offsets := make([]int, cellsNum)
	fullSize := 0
	for i, c := range order {
		reprs[i] = cellRepr(c, indexOf, sizeBytes)
		offsets[i] = fullSize
		fullSize += len(reprs[i])
	}

	offsetBytes := maxInt(ceilDiv8(stdbits.Len(uint(fullSize))), 1)

	out := make([]byte, 0, fullSize+64)
	out = appendUintN(out, uint64(magicGeneric), 4)

	var flagsByte byte
	if opts.WithIndex {
		flagsByte |= 0x80
	}
	if opts.WithCRC32C {
		flagsByte |= 0x40
	}
	flagsByte |= byte(sizeBytes) & 0x07
	out = append(out, flagsByte)
	out = append(out, byte(offsetBytes))

	out = appendUintN(out, uint64(cellsNum), sizeBytes)
	out = appendUintN(out, uint64(len(b.roots)), sizeBytes)
	out = appendUintN(out, 0, sizeBytes) // absentNum: always 0, this codec has no "absent cell" concept
	out = appendUintN(out, uint64(fullSize), offsetBytes)

	for _, root := range b.roots {
		out = appendUintN(out, uint64(indexOf[root.Hash()]), sizeBytes)
	}

	if opts.WithIndex {
		for _, off := range offsets {
			out = appendUintN(out, uint64(off), offsetBytes)
		}
	}

	for _, r := range reprs {
		out = append(out, r...)
	}

	if opts.WithCRC32C {
		var sumBuf [4]byte
		binary.LittleEndian.PutUint32(sumBuf[:], crc32.Checksum(out, crc32cTable))
		out = append(out, sumBuf[:]...)
	}

	tlbmetrics.CellsSerialized.Add(float64(cellsNum))
	tlblog.L().Debug("boc: serialized bag of cells",
		zap.Int("roots", len(b.roots)), zap.Int("cells", cellsNum), zap.Int("bytes", len(out)))

	return out, nil
}

// Deserialize parses a wire-form BagOfCells, reconstructing every cell
// bottom-up (the topological ordering guarantees a cell's references
// always describe already-decoded cells).
func Deserialize(buf []byte) (*BagOfCells, error) {
	magic, ok := readMagic(buf)
	if !ok {
		return nil, tlberr.WithContext(tlberr.ErrEOF, "magic")
	}
	h, rest, err := parseHeader(magic, buf[4:])
	if err != nil {
		return nil, err
	}

	if h.hasCRC32C {
		if len(rest) < 4 {
			return nil, tlberr.WithContext(tlberr.ErrEOF, "CRC32C")
		}
		body := buf[:len(buf)-len(rest)]
		want := crc32.Checksum(body, crc32cTable)
		got := binary.LittleEndian.Uint32(rest[:4])
		if want != got {
			return nil, tlberr.ErrCRCMismatch
		}
		rest = rest[4:]
	}
	if len(rest) > 0 {
		return nil, tlberr.WithContextf(tlberr.ErrTrailing, "%d extra bytes", len(rest))
	}

	decoded := make([]decodedCell, h.cellsNum)
	cellBuf := h.cellsData
	for i := range decoded {
		d, remaining, err := decodeCellRepr(cellBuf, h.sizeBytes)
		if err != nil {
			return nil, tlberr.WithContextf(err, "cell[%d]", i)
		}
		if d.isExotic {
			return nil, tlberr.WithContextf(tlberr.ErrInvariant, "cell[%d]: exotic cells are not supported", i)
		}
		decoded[i] = d
		cellBuf = remaining
	}
	if len(cellBuf) != 0 {
		return nil, tlberr.WithContext(tlberr.ErrTrailing, "cell data")
	}

	built := make([]*cell.Cell, len(decoded))
	for i := len(decoded) - 1; i >= 0; i-- {
		refs := make([]*cell.Cell, len(decoded[i].refIdx))
		for ri, target := range decoded[i].refIdx {
			if target < i {
				return nil, tlberr.WithContextf(tlberr.ErrCycle, "cell[%d] references earlier cell[%d]", i, target)
			}
			if target >= len(built) || built[target] == nil {
				return nil, tlberr.WithContextf(tlberr.ErrInvariant, "cell[%d] references unresolved cell[%d]", i, target)
			}
			refs[ri] = built[target]
		}
		b := cell.NewBuilder()
		if err := b.WriteBitSlice(decoded[i].data); err != nil {
			return nil, err
		}
		for _, r := range refs {
			if err := b.StoreReference(r); err != nil {
				return nil, err
			}
		}
		built[i] = b.IntoCell()
	}

	bag := &BagOfCells{}
	for _, rootIdx := range h.rootList {
		if rootIdx >= uint64(len(built)) {
			return nil, tlberr.WithContextf(tlberr.ErrInvariant, "root index %d out of range", rootIdx)
		}
		bag.AddRoot(built[rootIdx])
	}

	tlbmetrics.CellsDeserialized.Add(float64(len(decoded)))
	tlblog.L().Debug("boc: deserialized bag of cells",
		zap.Int("roots", len(bag.roots)), zap.Int("cells", len(decoded)))

	return bag, nil
}

func ceilDiv8(n int) int { return (n + 7) / 8 }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
