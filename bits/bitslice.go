// Package bits is the bit-granular stream layer (component A of
// SPEC_FULL.md): the Writer/Reader contracts, the concrete Msb0-ordered
// BitSlice value type, and the primitive I/O adapters (growable/limited/
// counting/tee/checkpoint wrappers) every higher layer builds on.
//
// Bit order is big-endian, first-bit-most-significant ("Msb0") over a
// []byte backing store, matching TL-B's own bit order: bit 0 of a BitSlice
// is the most significant bit of byte 0.
package bits

import (
	"fmt"
	"strings"

	"github.com/tlbcodec/tlb/internal/bitutil"
)

// BitSlice is an immutable-in-spirit (but not enforced-immutable, for
// efficiency) sequence of bits stored Msb0-first in a []byte backing
// array. Builders below (BitVectorWriter) mutate their own BitSlice in
// place; once handed out via Bits() the caller should treat it as a
// read-only view unless it owns the only reference.
type BitSlice struct {
	b      []byte
	bitLen int
}

// NewBitSlice wraps an existing byte slice as a BitSlice of the given bit
// length. It does not copy b; bitLen must satisfy bitLen <= len(b)*8.
func NewBitSlice(b []byte, bitLen int) BitSlice {
	if bitLen < 0 || bitLen > len(b)*8 {
		panic(fmt.Sprintf("bits: bitLen %d out of range for %d bytes", bitLen, len(b)))
	}
	return BitSlice{b: b, bitLen: bitLen}
}

// FromBytes returns a BitSlice covering every bit of b.
func FromBytes(b []byte) BitSlice {
	return BitSlice{b: b, bitLen: len(b) * 8}
}

// Len returns the number of bits in the slice.
func (s BitSlice) Len() int { return s.bitLen }

// Bytes returns the backing byte slice. If bitLen is not byte-aligned the
// last byte's low bits are whatever was written there (callers needing a
// canonical padded form should use ToBytesPadded).
func (s BitSlice) Bytes() []byte { return s.b }

// IsByteAligned reports whether Len() is a multiple of 8.
func (s BitSlice) IsByteAligned() bool { return bitutil.IsByteAligned(s.bitLen) }

// At returns the bit at index i (0 = most significant bit of byte 0).
func (s BitSlice) At(i int) bool {
	if i < 0 || i >= s.bitLen {
		panic("bits: index out of range")
	}
	return s.b[i/8]&(1<<(7-uint(i)%8)) != 0
}

// Slice returns the sub-range [start:end) as a BitSlice. When start is
// byte-aligned the result borrows s's backing array (zero-copy); otherwise
// it is materialized into a fresh, left-shifted byte slice.
func (s BitSlice) Slice(start, end int) BitSlice {
	if start < 0 || end > s.bitLen || start > end {
		panic("bits: slice out of range")
	}
	n := end - start
	if start%8 == 0 {
		byteStart := start / 8
		byteEnd := byteStart + bitutil.BytesForBits(n)
		return BitSlice{b: s.b[byteStart:byteEnd], bitLen: n}
	}
	return s.materializeShifted(start, n)
}

// materializeShifted copies n bits starting at an arbitrary bit offset
// into a new, byte-aligned buffer (the non-fast-path described in
// SPEC_FULL.md §4.A).
func (s BitSlice) materializeShifted(start, n int) BitSlice {
	out := make([]byte, bitutil.BytesForBits(n))
	for i := 0; i < n; i++ {
		if s.At(start + i) {
			out[i/8] |= 1 << (7 - uint(i)%8)
		}
	}
	return BitSlice{b: out, bitLen: n}
}

// Equal reports bit-for-bit equality, ignoring any padding bits beyond
// Len() in the backing arrays.
func (s BitSlice) Equal(o BitSlice) bool {
	if s.bitLen != o.bitLen {
		return false
	}
	full := s.bitLen / 8
	if !bytesEqual(s.b[:full], o.b[:full]) {
		return false
	}
	for i := full * 8; i < s.bitLen; i++ {
		if s.At(i) != o.At(i) {
			return false
		}
	}
	return true
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ToBytesPadded returns a byte-aligned copy of the bits, padding a
// non-aligned tail with TL-B's "stop bit" convention: a single 1 bit
// followed by zeros up to the next byte boundary. Already-aligned slices
// are returned unpadded, exactly as written (SPEC_FULL §4.E point 3).
func (s BitSlice) ToBytesPadded() []byte {
	if s.IsByteAligned() {
		out := make([]byte, len(s.b[:s.bitLen/8]))
		copy(out, s.b[:s.bitLen/8])
		return out
	}
	out := make([]byte, bitutil.BytesForBits(s.bitLen))
	full := s.bitLen / 8
	copy(out, s.b[:full])
	rem := s.bitLen % 8
	lastByte := s.b[full] & (^byte(0) << uint(8-rem)) // keep only the valid high bits
	lastByte |= 1 << uint(8-rem-1)                    // stop bit
	out[full] = lastByte
	return out
}

// String renders the bits as a string of '0'/'1' characters, most
// significant bit first — useful in test failure messages and debug logs.
func (s BitSlice) String() string {
	var sb strings.Builder
	sb.Grow(s.bitLen)
	for i := 0; i < s.bitLen; i++ {
		if s.At(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
