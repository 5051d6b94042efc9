package bits

import (
	"github.com/tlbcodec/tlb/tlberr"
)

// Reader is the bit-granular source contract every Unpack implementation
// reads through (SPEC_FULL.md §4.A). It never panics; running past the end
// returns tlberr.ErrEOF.
type Reader interface {
	// BitsLeft returns how many bits remain, or math.MaxInt for a source
	// with no known bound.
	BitsLeft() int
	ReadBit() (bool, error)
	// ReadBitSlice consumes and returns the next n bits.
	ReadBitSlice(n int) (BitSlice, error)
	// SkipBits advances the cursor by n bits without materializing them.
	SkipBits(n int) error
}

// SliceReader is a cursor over a borrowed BitSlice — the default source
// unpack()/unpack_as() read from. ReadBitSlice borrows the backing array
// directly when the cursor and the requested length land on a byte
// boundary.
type SliceReader struct {
	s      BitSlice
	cursor int
}

func NewSliceReader(s BitSlice) *SliceReader { return &SliceReader{s: s} }

func (r *SliceReader) BitsLeft() int { return r.s.Len() - r.cursor }

func (r *SliceReader) ReadBit() (bool, error) {
	if r.cursor >= r.s.Len() {
		return false, tlberr.ErrEOF
	}
	v := r.s.At(r.cursor)
	r.cursor++
	return v, nil
}

func (r *SliceReader) ReadBitSlice(n int) (BitSlice, error) {
	if n < 0 || n > r.BitsLeft() {
		return BitSlice{}, tlberr.ErrEOF
	}
	out := r.s.Slice(r.cursor, r.cursor+n)
	r.cursor += n
	return out, nil
}

func (r *SliceReader) SkipBits(n int) error {
	if n < 0 || n > r.BitsLeft() {
		return tlberr.ErrEOF
	}
	r.cursor += n
	return nil
}

// Checkpoint returns an opaque cursor position that Restore can roll back
// to, so a caller can try a parse path and back out on failure without a
// side-buffer copy.
func (r *SliceReader) Checkpoint() int { return r.cursor }

func (r *SliceReader) Restore(checkpoint int) { r.cursor = checkpoint }

// OwnedReader is a SliceReader that owns a private copy of its backing
// bytes rather than borrowing a caller-supplied slice — for the Open
// Question in SPEC_FULL.md §9 of "owned cursor vs. raw pointer window": an
// owned []byte plus an integer cursor, never a raw pointer, so the zero
// value is safe and the reader can outlive whatever produced the bytes.
type OwnedReader struct {
	SliceReader
}

func NewOwnedReader(b []byte, bitLen int) *OwnedReader {
	owned := make([]byte, len(b))
	copy(owned, b)
	return &OwnedReader{SliceReader{s: NewBitSlice(owned, bitLen)}}
}

// LimitReader wraps an inner Reader and reports EOF once maxBits have been
// read through it, even if inner has more.
type LimitReader struct {
	inner   Reader
	maxBits int
	read    int
}

func NewLimitReader(inner Reader, maxBits int) *LimitReader {
	return &LimitReader{inner: inner, maxBits: maxBits}
}

func (r *LimitReader) BitsLeft() int {
	left := r.maxBits - r.read
	if inner := r.inner.BitsLeft(); inner < left {
		return inner
	}
	return left
}

func (r *LimitReader) checkRoom(n int) error {
	if r.read+n > r.maxBits {
		return tlberr.ErrEOF
	}
	return nil
}

func (r *LimitReader) ReadBit() (bool, error) {
	if err := r.checkRoom(1); err != nil {
		return false, err
	}
	v, err := r.inner.ReadBit()
	if err != nil {
		return false, err
	}
	r.read++
	return v, nil
}

func (r *LimitReader) ReadBitSlice(n int) (BitSlice, error) {
	if err := r.checkRoom(n); err != nil {
		return BitSlice{}, err
	}
	s, err := r.inner.ReadBitSlice(n)
	if err != nil {
		return BitSlice{}, err
	}
	r.read += n
	return s, nil
}

func (r *LimitReader) SkipBits(n int) error {
	if err := r.checkRoom(n); err != nil {
		return err
	}
	if err := r.inner.SkipBits(n); err != nil {
		return err
	}
	r.read += n
	return nil
}

// CountingReader transparently counts bits read without altering inner's
// behavior.
type CountingReader struct {
	inner Reader
	count int
}

func NewCountingReader(inner Reader) *CountingReader { return &CountingReader{inner: inner} }

func (r *CountingReader) Count() int { return r.count }

func (r *CountingReader) BitsLeft() int { return r.inner.BitsLeft() }

func (r *CountingReader) ReadBit() (bool, error) {
	v, err := r.inner.ReadBit()
	if err != nil {
		return false, err
	}
	r.count++
	return v, nil
}

func (r *CountingReader) ReadBitSlice(n int) (BitSlice, error) {
	s, err := r.inner.ReadBitSlice(n)
	if err != nil {
		return BitSlice{}, err
	}
	r.count += n
	return s, nil
}

func (r *CountingReader) SkipBits(n int) error {
	if err := r.inner.SkipBits(n); err != nil {
		return err
	}
	r.count += n
	return nil
}

// TeeReader reads from inner and mirrors every bit consumed into w, the
// way io.TeeReader mirrors bytes — used to capture the exact bits a nested
// Unpack consumed, e.g. for recomputing a checksum over what was read.
type TeeReader struct {
	inner Reader
	w     Writer
}

func NewTeeReader(inner Reader, w Writer) *TeeReader { return &TeeReader{inner: inner, w: w} }

func (r *TeeReader) BitsLeft() int { return r.inner.BitsLeft() }

func (r *TeeReader) ReadBit() (bool, error) {
	v, err := r.inner.ReadBit()
	if err != nil {
		return false, err
	}
	if werr := r.w.WriteBit(v); werr != nil {
		return false, werr
	}
	return v, nil
}

func (r *TeeReader) ReadBitSlice(n int) (BitSlice, error) {
	s, err := r.inner.ReadBitSlice(n)
	if err != nil {
		return BitSlice{}, err
	}
	if werr := r.w.WriteBitSlice(s); werr != nil {
		return BitSlice{}, werr
	}
	return s, nil
}

func (r *TeeReader) SkipBits(n int) error {
	s, err := r.inner.ReadBitSlice(n)
	if err != nil {
		return err
	}
	return r.w.WriteBitSlice(s)
}

// JoinReader reads a then b as if they were a single contiguous source,
// used to present a cell's data bits followed by a referenced cell's data
// bits as one stream (ParseFully-style continuations).
type JoinReader struct {
	a, b Reader
	inA  bool
}

func NewJoinReader(a, b Reader) *JoinReader { return &JoinReader{a: a, b: b, inA: true} }

func (r *JoinReader) BitsLeft() int { return r.a.BitsLeft() + r.b.BitsLeft() }

func (r *JoinReader) current() Reader {
	if r.inA && r.a.BitsLeft() == 0 {
		r.inA = false
	}
	if r.inA {
		return r.a
	}
	return r.b
}

func (r *JoinReader) ReadBit() (bool, error) { return r.current().ReadBit() }

func (r *JoinReader) ReadBitSlice(n int) (BitSlice, error) {
	first := r.current()
	if n <= first.BitsLeft() {
		return first.ReadBitSlice(n)
	}
	w := NewBitVectorWriter(n)
	for i := 0; i < n; i++ {
		v, err := r.ReadBit()
		if err != nil {
			return BitSlice{}, err
		}
		if err := w.WriteBit(v); err != nil {
			return BitSlice{}, err
		}
	}
	return w.Bits(), nil
}

func (r *JoinReader) SkipBits(n int) error {
	_, err := r.ReadBitSlice(n)
	return err
}

// MapErrReader rewrites every error returned by inner through mapFn.
type MapErrReader struct {
	inner Reader
	mapFn func(error) error
}

func NewMapErrReader(inner Reader, mapFn func(error) error) *MapErrReader {
	return &MapErrReader{inner: inner, mapFn: mapFn}
}

func (r *MapErrReader) BitsLeft() int { return r.inner.BitsLeft() }

func (r *MapErrReader) ReadBit() (bool, error) {
	v, err := r.inner.ReadBit()
	if err != nil {
		return false, r.mapFn(err)
	}
	return v, nil
}

func (r *MapErrReader) ReadBitSlice(n int) (BitSlice, error) {
	s, err := r.inner.ReadBitSlice(n)
	if err != nil {
		return BitSlice{}, r.mapFn(err)
	}
	return s, nil
}

func (r *MapErrReader) SkipBits(n int) error {
	if err := r.inner.SkipBits(n); err != nil {
		return r.mapFn(err)
	}
	return nil
}
