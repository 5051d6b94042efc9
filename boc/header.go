package boc

import (
	"github.com/tlbcodec/tlb/tlberr"
)

// header is the parsed form of a BagOfCells envelope shared by all three
// magic variants: a flags byte (generic magic only; the lean variants
// imply fixed flags), the variable-width size fields the flags select,
// the root-cell index list, an optional per-cell offset index, and the
// raw concatenated cell reprs.
type header struct {
	hasIndex  bool
	hasCRC32C bool
	sizeBytes int // bytes per cell-count/index field
	offBytes  int // bytes per byte-offset field

	cellsNum     uint64
	rootsNum     uint64
	absentNum    uint64
	totCellsSize uint64

	rootList  []uint64
	index     []uint64
	cellsData []byte
}

func readUintN(b []byte, n int) uint64 {
	var v uint64
	for i := 0; i < n; i++ {
		v = v<<8 | uint64(b[i])
	}
	return v
}

func appendUintN(dst []byte, v uint64, n int) []byte {
	start := len(dst)
	dst = append(dst, make([]byte, n)...)
	for i := n - 1; i >= 0; i-- {
		dst[start+i] = byte(v)
		v >>= 8
	}
	return dst
}

// parseHeader parses buf (the bytes following the 4-byte magic) per the
// magic variant identified by magic.
func parseHeader(magic uint32, buf []byte) (*header, []byte, error) {
	h := &header{}
	switch magic {
	case magicGeneric:
		if len(buf) < 1 {
			return nil, nil, tlberr.WithContext(tlberr.ErrEOF, "flags byte")
		}
		flagsByte := buf[0]
		h.hasIndex = flagsByte&0x80 != 0
		h.hasCRC32C = flagsByte&0x40 != 0
		// bit 0x20 (hasCacheBits) and bits 0x18 (flags) are accepted but
		// unused: this codec never emits caching hints.
		h.sizeBytes = int(flagsByte & 0x07)
		buf = buf[1:]
	case magicIndexed:
		h.hasIndex = true
		if len(buf) < 1 {
			return nil, nil, tlberr.WithContext(tlberr.ErrEOF, "size byte")
		}
		h.sizeBytes = int(buf[0])
		buf = buf[1:]
	case magicIndexedCRC32:
		h.hasIndex = true
		h.hasCRC32C = true
		if len(buf) < 1 {
			return nil, nil, tlberr.WithContext(tlberr.ErrEOF, "size byte")
		}
		h.sizeBytes = int(buf[0])
		buf = buf[1:]
	default:
		return nil, nil, tlberr.WithContext(tlberr.ErrTagMismatch, "unknown BagOfCells magic")
	}

	if h.sizeBytes <= 0 || h.sizeBytes > 4 {
		return nil, nil, tlberr.WithContextf(tlberr.ErrInvariant, "sizeBytes=%d", h.sizeBytes)
	}
	if len(buf) < 1+3*h.sizeBytes {
		return nil, nil, tlberr.WithContext(tlberr.ErrEOF, "cell counters")
	}

	offBytes := int(buf[0])
	if offBytes <= 0 || offBytes > 8 {
		return nil, nil, tlberr.WithContextf(tlberr.ErrInvariant, "offsetBytes=%d", offBytes)
	}
	h.offBytes = offBytes
	buf = buf[1:]

	h.cellsNum = readUintN(buf, h.sizeBytes)
	buf = buf[h.sizeBytes:]
	h.rootsNum = readUintN(buf, h.sizeBytes)
	buf = buf[h.sizeBytes:]
	h.absentNum = readUintN(buf, h.sizeBytes)
	buf = buf[h.sizeBytes:]

	if h.rootsNum+h.absentNum > h.cellsNum {
		return nil, nil, tlberr.WithContextf(tlberr.ErrInvariant, "roots=%d absent=%d cells=%d", h.rootsNum, h.absentNum, h.cellsNum)
	}

	if len(buf) < h.offBytes {
		return nil, nil, tlberr.WithContext(tlberr.ErrEOF, "total cells size")
	}
	h.totCellsSize = readUintN(buf, h.offBytes)
	buf = buf[h.offBytes:]

	if uint64(len(buf)) < h.rootsNum*uint64(h.sizeBytes) {
		return nil, nil, tlberr.WithContext(tlberr.ErrEOF, "root list")
	}
	h.rootList = make([]uint64, h.rootsNum)
	for i := range h.rootList {
		h.rootList[i] = readUintN(buf, h.sizeBytes)
		buf = buf[h.sizeBytes:]
	}

	if h.hasIndex {
		if uint64(len(buf)) < h.cellsNum*uint64(h.offBytes) {
			return nil, nil, tlberr.WithContext(tlberr.ErrEOF, "index")
		}
		h.index = make([]uint64, h.cellsNum)
		for i := range h.index {
			h.index[i] = readUintN(buf, h.offBytes)
			buf = buf[h.offBytes:]
		}
	}

	if uint64(len(buf)) < h.totCellsSize {
		return nil, nil, tlberr.WithContext(tlberr.ErrEOF, "cells data")
	}
	h.cellsData = buf[:h.totCellsSize]
	buf = buf[h.totCellsSize:]

	return h, buf, nil
}
