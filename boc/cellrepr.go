package boc

import (
	"github.com/tlbcodec/tlb/bits"
	"github.com/tlbcodec/tlb/cell"
	"github.com/tlbcodec/tlb/internal/bitutil"
	"github.com/tlbcodec/tlb/tlberr"
)

// reprWithoutRefs returns a cell's descriptor bytes (d1, d2) followed by
// its stop-bit-padded data bytes, matching the first part of its
// representation hash preimage (cell.computeHash mirrors this layout
// internally; this copy additionally serves the wire encoding, which
// needs the raw bytes rather than a hash).
func reprWithoutRefs(c *cell.Cell) []byte {
	d1 := byte(len(c.References())) + 32*c.Level() // exotic flag always 0 in this codec
	d2 := bitutil.BitsDescriptor(c.Data().Len())

	padded := c.Data().ToBytesPadded()
	out := make([]byte, 0, 2+len(padded))
	out = append(out, d1, d2)
	out = append(out, padded...)
	return out
}

// appendRefIndexes appends one referenceIndexSize-byte index per
// reference, looked up in indexOf (the cell's position in the
// topological order).
func appendRefIndexes(dst []byte, c *cell.Cell, indexOf map[cell.Hash]int, refIndexSize int) []byte {
	for _, ref := range c.References() {
		dst = appendUintN(dst, uint64(indexOf[ref.Hash()]), refIndexSize)
	}
	return dst
}

// cellRepr is a cell's full wire repr: descriptor bytes, data, then one
// referenceIndexSize-byte index per child reference.
func cellRepr(c *cell.Cell, indexOf map[cell.Hash]int, refIndexSize int) []byte {
	out := reprWithoutRefs(c)
	return appendRefIndexes(out, c, indexOf, refIndexSize)
}

// decodedCell is an intermediate cell read off the wire before its
// references are resolved to the final, index-ordered cell array: the
// data and level/exoticity are known, but References() is filled in by a
// second pass once every cell in the array has been decoded.
type decodedCell struct {
	data     bits.BitSlice
	isExotic bool
	refIdx   []int
}

// decodeCellRepr consumes one cell's descriptor+data+ref-indexes off buf,
// returning the decoded cell and the remaining bytes.
func decodeCellRepr(buf []byte, refIndexSize int) (decodedCell, []byte, error) {
	if len(buf) < 2 {
		return decodedCell{}, nil, tlberr.WithContext(tlberr.ErrEOF, "cell descriptor")
	}
	d1, d2 := buf[0], buf[1]
	buf = buf[2:]

	isExotic := d1&0x08 != 0
	refNum := int(d1 & 0x07)
	dataBytes := int(d2)/2 + int(d2)%2
	fullyFilled := d2%2 == 0

	if len(buf) < dataBytes+refIndexSize*refNum {
		return decodedCell{}, nil, tlberr.WithContext(tlberr.ErrEOF, "cell data")
	}
	dataBuf := buf[:dataBytes]
	buf = buf[dataBytes:]

	bitLen := dataBytes * 8
	if !fullyFilled {
		bitLen, dataBuf = trimStopBit(dataBuf)
	}
	if bitLen > cell.MaxDataBits {
		return decodedCell{}, nil, tlberr.WithContextf(tlberr.ErrCapacity, "cell data: %d/%d bits", bitLen, cell.MaxDataBits)
	}

	refIdx := make([]int, refNum)
	for i := range refIdx {
		refIdx[i] = int(readUintN(buf, refIndexSize))
		buf = buf[refIndexSize:]
	}

	return decodedCell{data: bits.NewBitSlice(dataBuf, bitLen), isExotic: isExotic, refIdx: refIdx}, buf, nil
}

// trimStopBit locates TL-B's stop bit (the last set bit of the last byte)
// and returns the bit length up to, but not including, it.
func trimStopBit(b []byte) (int, []byte) {
	if len(b) == 0 {
		return 0, b
	}
	last := b[len(b)-1]
	for i := 0; i < 8; i++ {
		if last&(1<<uint(i)) != 0 {
			return (len(b)-1)*8 + (8 - i - 1), b
		}
	}
	return (len(b) - 1) * 8, b
}
