package boc_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tlbcodec/tlb/boc"
	"github.com/tlbcodec/tlb/cell"
	"github.com/tlbcodec/tlb/codec"
)

func leafCell(t *testing.T, v uint32) *cell.Cell {
	t.Helper()
	b := cell.NewBuilder()
	require.NoError(t, codec.PackUint(b, v))
	return b.IntoCell()
}

func TestSerializeDeserializeSingleLeafRoundTrip(t *testing.T) {
	root := leafCell(t, 0xDEADBEEF)
	bag := boc.FromRoot(root)

	raw, err := bag.Serialize(boc.DefaultOptions())
	require.NoError(t, err)

	got, err := boc.Deserialize(raw)
	require.NoError(t, err)
	gotRoot, err := got.SingleRoot()
	require.NoError(t, err)
	require.True(t, root.Equal(gotRoot))
}

func TestSerializeDeserializeWithReferencesRoundTrip(t *testing.T) {
	child1 := leafCell(t, 1)
	child2 := leafCell(t, 2)

	b := cell.NewBuilder()
	require.NoError(t, codec.PackUint(b, uint32(0xAAAA)))
	require.NoError(t, b.StoreReference(child1))
	require.NoError(t, b.StoreReference(child2))
	root := b.IntoCell()

	bag := boc.FromRoot(root)
	raw, err := bag.Serialize(boc.DefaultOptions())
	require.NoError(t, err)

	got, err := boc.Deserialize(raw)
	require.NoError(t, err)
	gotRoot, err := got.SingleRoot()
	require.NoError(t, err)
	require.True(t, root.Equal(gotRoot))
	require.Len(t, gotRoot.References(), 2)
}

func TestSerializeDeserializeSharedSubtree(t *testing.T) {
	shared := leafCell(t, 777)

	b1 := cell.NewBuilder()
	require.NoError(t, codec.PackUint(b1, uint32(1)))
	require.NoError(t, b1.StoreReference(shared))
	branchA := b1.IntoCell()

	b2 := cell.NewBuilder()
	require.NoError(t, codec.PackUint(b2, uint32(2)))
	require.NoError(t, b2.StoreReference(shared))
	branchB := b2.IntoCell()

	root := cell.NewBuilder()
	require.NoError(t, root.StoreReference(branchA))
	require.NoError(t, root.StoreReference(branchB))
	rootCell := root.IntoCell()

	bag := boc.FromRoot(rootCell)
	raw, err := bag.Serialize(boc.DefaultOptions())
	require.NoError(t, err)

	got, err := boc.Deserialize(raw)
	require.NoError(t, err)
	gotRoot, err := got.SingleRoot()
	require.NoError(t, err)
	require.True(t, rootCell.Equal(gotRoot))
}

func TestSerializeWithIndexRoundTrip(t *testing.T) {
	root := leafCell(t, 42)
	bag := boc.FromRoot(root)

	raw, err := bag.Serialize(boc.DefaultOptions().WithIndexEnabled())
	require.NoError(t, err)

	got, err := boc.Deserialize(raw)
	require.NoError(t, err)
	gotRoot, err := got.SingleRoot()
	require.NoError(t, err)
	require.True(t, root.Equal(gotRoot))
}

func TestSerializeWithCRC32CRoundTrip(t *testing.T) {
	root := leafCell(t, 42)
	bag := boc.FromRoot(root)

	raw, err := bag.Serialize(boc.DefaultOptions().WithCRC32CEnabled())
	require.NoError(t, err)

	got, err := boc.Deserialize(raw)
	require.NoError(t, err)
	gotRoot, err := got.SingleRoot()
	require.NoError(t, err)
	require.True(t, root.Equal(gotRoot))
}

func TestDeserializeRejectsCorruptedCRC(t *testing.T) {
	root := leafCell(t, 42)
	bag := boc.FromRoot(root)

	raw, err := bag.Serialize(boc.DefaultOptions().WithCRC32CEnabled())
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xFF

	_, err = boc.Deserialize(raw)
	require.Error(t, err)
}

func TestMultiRootRoundTrip(t *testing.T) {
	rootA := leafCell(t, 1)
	rootB := leafCell(t, 2)

	bag := boc.FromRoot(rootA)
	bag.AddRoot(rootB)

	raw, err := bag.Serialize(boc.DefaultOptions())
	require.NoError(t, err)

	got, err := boc.Deserialize(raw)
	require.NoError(t, err)
	require.Len(t, got.Roots(), 2)
	require.True(t, rootA.Equal(got.Roots()[0]))
	require.True(t, rootB.Equal(got.Roots()[1]))
}

func TestSingleRootRejectsMultipleRoots(t *testing.T) {
	bag := boc.FromRoot(leafCell(t, 1))
	bag.AddRoot(leafCell(t, 2))
	_, err := bag.SingleRoot()
	require.Error(t, err)
}

func TestHexAndBase64RoundTrip(t *testing.T) {
	root := leafCell(t, 99)
	bag := boc.FromRoot(root)

	hexStr, err := bag.AppendHex(boc.DefaultOptions())
	require.NoError(t, err)
	gotHex, err := boc.ParseHex(hexStr)
	require.NoError(t, err)
	gotHexRoot, err := gotHex.SingleRoot()
	require.NoError(t, err)
	require.True(t, root.Equal(gotHexRoot))

	b64Str, err := bag.AppendBase64(boc.DefaultOptions())
	require.NoError(t, err)
	gotB64, err := boc.ParseBase64(b64Str)
	require.NoError(t, err)
	gotB64Root, err := gotB64.SingleRoot()
	require.NoError(t, err)
	require.True(t, root.Equal(gotB64Root))
}

func TestHashBagOfCellsConcurrently(t *testing.T) {
	roots := []*cell.Cell{leafCell(t, 1), leafCell(t, 2), leafCell(t, 3)}
	hashes, err := boc.HashBagOfCellsConcurrently(context.Background(), roots)
	require.NoError(t, err)
	require.Len(t, hashes, 3)
	for i, r := range roots {
		require.Equal(t, r.Hash(), hashes[i])
	}
}

func TestDeserializeRejectsGarbage(t *testing.T) {
	_, err := boc.Deserialize([]byte{0, 1, 2, 3})
	require.Error(t, err)
}
