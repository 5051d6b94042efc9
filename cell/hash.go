package cell

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/tlbcodec/tlb/internal/bitutil"
)

// Hash is a cell's representation hash: SHA-256 over refs_descriptor,
// bits_descriptor, the stop-bit-padded data bytes, each child's max depth
// (big-endian uint16), and each child's own Hash, recursively
// (SPEC_FULL.md §4.E). It is a fixed-size array so it can be used directly
// as a map key.
type Hash [32]byte

// Hash returns c's cached representation hash, computed once when c was
// constructed.
func (c *Cell) Hash() Hash { return c.hash }

func refsDescriptor(refs []*Cell, level uint8) byte {
	return byte(len(refs)) + 8*0 /* exotic flag, always 0 */ + 32*level
}

func bitsDescriptor(nbits int) byte {
	return bitutil.BitsDescriptor(nbits)
}

func computeHash(c *Cell) Hash {
	h := sha256.New()
	h.Write([]byte{refsDescriptor(c.refs, c.level)})
	h.Write([]byte{bitsDescriptor(c.data.Len())})
	h.Write(c.data.ToBytesPadded())

	var depthBuf [2]byte
	for _, r := range c.refs {
		binary.BigEndian.PutUint16(depthBuf[:], r.maxDepth)
		h.Write(depthBuf[:])
	}
	for _, r := range c.refs {
		rh := r.Hash()
		h.Write(rh[:])
	}

	var out Hash
	h.Sum(out[:0])
	return out
}

// dedupKey is a fast, non-cryptographic structural fingerprint used to
// bucket candidate-equal cells before falling back to a full Cell.Equal
// comparison (SPEC_FULL.md §4.E). It is never used as a substitute for
// Hash(); collisions only cost an extra Equal call.
func dedupKey(c *Cell) uint64 {
	digest := xxhash.Sum64(c.data.Bytes()[:bitutil.BytesForBits(c.data.Len())])
	var refsFingerprint uint64
	for i, r := range c.refs {
		rh := r.Hash()
		refsFingerprint ^= binary.BigEndian.Uint64(rh[:8]) + uint64(i)*0x9E3779B97F4A7C15
	}
	return digest ^ refsFingerprint
}

// Dedup returns cells with structural duplicates removed, keeping the
// first occurrence of each distinct shape. Candidates are bucketed by
// dedupKey before paying for a full Equal comparison, so callers that
// intern a large, mostly-duplicate batch of cells (e.g. rehydrating many
// copies of a shared subtree) don't pay O(n^2) Equal calls in the common
// case.
func Dedup(cells []*Cell) []*Cell {
	buckets := make(map[uint64][]*Cell, len(cells))
	out := make([]*Cell, 0, len(cells))
	for _, c := range cells {
		key := dedupKey(c)
		dup := false
		for _, b := range buckets[key] {
			if b.Equal(c) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		buckets[key] = append(buckets[key], c)
		out = append(out, c)
	}
	return out
}
