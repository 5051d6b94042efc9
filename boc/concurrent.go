package boc

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/tlbcodec/tlb/cell"
)

// HashBagOfCellsConcurrently computes each root's representation hash in
// its own goroutine. Cell.Hash() is already O(1) (cached at construction,
// SPEC_FULL.md §4.E), so this buys nothing for a single root; it exists
// for the batch case — hashing a large, independent set of root cells
// (e.g. verifying a block's worth of transactions) without forcing the
// caller to loop serially.
func HashBagOfCellsConcurrently(ctx context.Context, roots []*cell.Cell) ([]cell.Hash, error) {
	hashes := make([]cell.Hash, len(roots))
	g, _ := errgroup.WithContext(ctx)
	for i, root := range roots {
		i, root := i, root
		g.Go(func() error {
			hashes[i] = root.Hash()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return hashes, nil
}
