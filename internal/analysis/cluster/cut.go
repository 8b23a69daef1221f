package cluster

import (
	"fmt"

	"github.com/custodia-labs/catalog-cli/internal/core/domain"
)

// Cut returns a CorpusEntry-ID to cluster-label mapping with exactly
// k flat clusters. k=1 puts every entry in one cluster; k equal to
// the leaf count yields all singletons.
func (e *Engine) Cut(tree *domain.LinkageTree, k int) (map[string]int, error) {
	if k < 1 || k > tree.Leaves {
		return nil, fmt.Errorf("%w: cut k=%d for %d leaves", domain.ErrInvalidInput, k, tree.Leaves)
	}
	// Applying the first n-k merges leaves exactly k clusters.
	return e.labels(tree, tree.Leaves-k), nil
}

// CutDistance returns the flat clustering obtained by applying only
// the merges at or below the distance threshold.
func (e *Engine) CutDistance(tree *domain.LinkageTree, threshold float64) map[string]int {
	applied := 0
	for _, m := range tree.Merges {
		if m.Distance > threshold {
			break
		}
		applied++
	}
	return e.labels(tree, applied)
}

// labels assigns flat cluster labels after applying the first
// `applied` merges. Labels are numbered 0..k-1 in order of first
// appearance by leaf index.
func (e *Engine) labels(tree *domain.LinkageTree, applied int) map[string]int {
	parent := make(map[int]int, 2*applied)
	for i := 0; i < applied; i++ {
		newID := tree.Leaves + i
		parent[tree.Merges[i].A] = newID
		parent[tree.Merges[i].B] = newID
	}

	root := func(id int) int {
		for {
			p, ok := parent[id]
			if !ok {
				return id
			}
			id = p
		}
	}

	labels := make(map[string]int, tree.Leaves)
	next := 0
	rootLabel := make(map[int]int)
	for leaf := 0; leaf < tree.Leaves; leaf++ {
		r := root(leaf)
		label, ok := rootLabel[r]
		if !ok {
			label = next
			rootLabel[r] = label
			next++
		}
		labels[tree.EntryIDs[leaf]] = label
	}
	return labels
}
