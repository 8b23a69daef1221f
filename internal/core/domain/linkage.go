package domain

import "fmt"

// LinkageCriterion selects how inter-cluster distances are computed
// during agglomerative clustering.
type LinkageCriterion string

const (
	// LinkageSingle uses the minimum pairwise distance.
	LinkageSingle LinkageCriterion = "single"

	// LinkageComplete uses the maximum pairwise distance.
	LinkageComplete LinkageCriterion = "complete"

	// LinkageAverage uses the unweighted average pairwise distance.
	LinkageAverage LinkageCriterion = "average"

	// LinkageWard minimises within-cluster variance increase.
	LinkageWard LinkageCriterion = "ward"
)

// ParseLinkage validates and returns a linkage criterion.
func ParseLinkage(s string) (LinkageCriterion, error) {
	switch LinkageCriterion(s) {
	case LinkageSingle, LinkageComplete, LinkageAverage, LinkageWard:
		return LinkageCriterion(s), nil
	default:
		return "", fmt.Errorf("%w: linkage criterion %q", ErrInvalidInput, s)
	}
}

// Merge records one agglomeration step. Cluster ids follow the
// standard convention: ids 0..n-1 are the leaf entries, and the
// i-th merge creates cluster id n+i.
type Merge struct {
	// A and B are the ids of the merged clusters, A < B.
	A int
	B int

	// Distance is the inter-cluster distance at which the merge
	// happened.
	Distance float64

	// Size is the number of leaves in the new cluster.
	Size int
}

// LinkageTree is the full merge sequence produced by hierarchical
// clustering over a corpus of Leaves entries. A tree over n leaves
// has exactly n-1 merges.
type LinkageTree struct {
	// EntryIDs holds the CorpusEntry ID for each leaf, index-aligned
	// with the DistanceMatrix the tree was built from.
	EntryIDs []string

	// Leaves is the number of leaf entries.
	Leaves int

	// Merges is the merge sequence, non-decreasing in Distance.
	Merges []Merge
}

// Validate checks the linkage contract: merge count, id ranges and
// the monotonicity invariant. A violation indicates an internal bug.
func (t *LinkageTree) Validate() error {
	if len(t.Merges) != t.Leaves-1 {
		return fmt.Errorf("%w: %d merges for %d leaves", ErrLinkageContract, len(t.Merges), t.Leaves)
	}
	prev := 0.0
	for i, m := range t.Merges {
		maxID := t.Leaves + i // ids created by earlier merges only
		if m.A < 0 || m.B < 0 || m.A >= maxID || m.B >= maxID || m.A == m.B {
			return fmt.Errorf("%w: merge %d references invalid ids (%d,%d)", ErrLinkageContract, i, m.A, m.B)
		}
		if m.Distance+monotonicitySlack < prev {
			return fmt.Errorf("%w: merge %d distance %g below previous %g", ErrLinkageContract, i, m.Distance, prev)
		}
		prev = m.Distance
	}
	return nil
}

// monotonicitySlack absorbs float64 rounding in the Lance-Williams
// updates; genuine inversions are orders of magnitude larger.
const monotonicitySlack = 1e-9
