package boc_test

import (
	"testing"

	"github.com/tlbcodec/tlb/bits"
	"github.com/tlbcodec/tlb/boc"
	"github.com/tlbcodec/tlb/cell"
)

// FuzzBagOfCellsRoundtrip exercises the BagOfCells wire-format roundtrip
// law from spec.md §8: deserialize(serialize(bag)) reproduces the same
// cell tree, for arbitrary leaf-cell payloads up to a cell's data limit.
func FuzzBagOfCellsRoundtrip(f *testing.F) {
	f.Add([]byte{}, false, false)
	f.Add([]byte{0xFF}, true, false)
	f.Add([]byte("the quick brown fox"), false, true)
	f.Add([]byte("the quick brown fox"), true, true)

	f.Fuzz(func(t *testing.T, data []byte, withIndex, withCRC bool) {
		if len(data) > cell.MaxDataBits/8 {
			data = data[:cell.MaxDataBits/8]
		}

		b := cell.NewBuilder()
		if err := b.WriteBitSlice(bits.FromBytes(data)); err != nil {
			t.Fatalf("WriteBitSlice: %v", err)
		}
		root := b.IntoCell()

		opts := boc.DefaultOptions()
		if withIndex {
			opts = opts.WithIndexEnabled()
		}
		if withCRC {
			opts = opts.WithCRC32CEnabled()
		}

		raw, err := boc.FromRoot(root).Serialize(opts)
		if err != nil {
			t.Fatalf("Serialize: %v", err)
		}

		bag, err := boc.Deserialize(raw)
		if err != nil {
			t.Fatalf("Deserialize: %v", err)
		}
		got, err := bag.SingleRoot()
		if err != nil {
			t.Fatalf("SingleRoot: %v", err)
		}
		if !root.Equal(got) {
			t.Fatalf("roundtrip mismatch: original and decoded roots differ")
		}
	})
}
