package boc

import (
	"github.com/tlbcodec/tlb/cell"
	"github.com/tlbcodec/tlb/tlberr"
)

// topoSort orders every cell reachable from roots such that every cell
// appears strictly before every cell it references — the ordering
// BagOfCells serialization requires (SPEC_FULL.md §4.F): a reference is
// encoded as an index, and that index must never point backward.
//
// It is a standard reverse-finish-order DFS topological sort (Cormen et
// al.), adapted to dedup structurally-shared cells by Hash so a DAG with
// shared subtrees produces one slot per unique cell rather than one per
// occurrence.
func topoSort(roots []*cell.Cell) (order []*cell.Cell, indexOf map[cell.Hash]int, err error) {
	visited := make(map[cell.Hash]bool)
	onStack := make(map[cell.Hash]bool)
	var postOrder []*cell.Cell

	var visit func(c *cell.Cell) error
	visit = func(c *cell.Cell) error {
		h := c.Hash()
		if visited[h] {
			return nil
		}
		if onStack[h] {
			return tlberr.ErrCycle
		}
		onStack[h] = true
		for _, ref := range c.References() {
			if err := visit(ref); err != nil {
				return err
			}
		}
		onStack[h] = false
		visited[h] = true
		postOrder = append(postOrder, c)
		return nil
	}

	for _, root := range roots {
		if err := visit(root); err != nil {
			return nil, nil, err
		}
	}

	order = make([]*cell.Cell, len(postOrder))
	indexOf = make(map[cell.Hash]int, len(postOrder))
	for i, c := range postOrder {
		pos := len(postOrder) - 1 - i
		order[pos] = c
		indexOf[c.Hash()] = pos
	}
	return order, indexOf, nil
}
