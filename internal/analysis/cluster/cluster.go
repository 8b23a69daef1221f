// Package cluster implements hierarchical agglomerative clustering
// over a precomputed distance matrix.
//
// Each corpus entry starts as its own singleton cluster; the closest
// pair under the configured linkage criterion is merged repeatedly
// until one cluster remains. Inter-cluster distances are updated with
// the Lance-Williams recurrences, which keep the merge sequence
// monotone for every supported criterion. Ties on the minimum
// distance resolve to the lowest cluster-id pair, so results are
// reproducible across runs.
package cluster

import (
	"fmt"
	"math"

	"github.com/custodia-labs/catalog-cli/internal/core/domain"
	"github.com/custodia-labs/catalog-cli/internal/core/ports/driven"
	"github.com/custodia-labs/catalog-cli/internal/logger"
)

// Ensure Engine implements the interface.
var _ driven.Clusterer = (*Engine)(nil)

// Engine is the hierarchical clustering engine.
type Engine struct{}

// New creates a clustering engine.
func New() *Engine {
	return &Engine{}
}

// Cluster builds a linkage tree over the distance matrix.
func (e *Engine) Cluster(dm *domain.DistanceMatrix, criterion domain.LinkageCriterion) (*domain.LinkageTree, error) {
	if _, err := domain.ParseLinkage(string(criterion)); err != nil {
		return nil, err
	}
	if err := dm.Validate(); err != nil {
		// An invalid matrix here means a caller bug, not bad input.
		return nil, fmt.Errorf("%w: %v", domain.ErrLinkageContract, err)
	}

	n := dm.Len()
	if n < 2 {
		return nil, fmt.Errorf("%w: %d entries, need at least 2", domain.ErrInsufficientData, n)
	}

	// Working distances indexed by cluster id; ids n..2n-2 are created
	// by merges. Sizes likewise.
	total := 2*n - 1
	dist := make([][]float64, total)
	for i := range dist {
		dist[i] = make([]float64, total)
	}
	for i := 0; i < n; i++ {
		copy(dist[i][:n], dm.Values[i])
	}
	size := make([]int, total)
	for i := 0; i < n; i++ {
		size[i] = 1
	}

	active := make([]int, n)
	for i := range active {
		active[i] = i
	}

	tree := &domain.LinkageTree{
		EntryIDs: append([]string(nil), dm.EntryIDs...),
		Leaves:   n,
		Merges:   make([]domain.Merge, 0, n-1),
	}

	for step := 0; step < n-1; step++ {
		// Find the closest active pair; strict < keeps the lowest
		// (a,b) id pair on ties because active stays id-sorted.
		bestA, bestB := -1, -1
		bestD := math.Inf(1)
		for i := 0; i < len(active); i++ {
			for j := i + 1; j < len(active); j++ {
				a, b := active[i], active[j]
				if d := dist[a][b]; d < bestD {
					bestA, bestB, bestD = a, b, d
				}
			}
		}

		newID := n + step
		size[newID] = size[bestA] + size[bestB]
		tree.Merges = append(tree.Merges, domain.Merge{
			A:        bestA,
			B:        bestB,
			Distance: bestD,
			Size:     size[newID],
		})

		// Lance-Williams update against every other active cluster
		for _, other := range active {
			if other == bestA || other == bestB {
				continue
			}
			d := update(criterion, dist[bestA][other], dist[bestB][other], bestD,
				size[bestA], size[bestB], size[other])
			dist[newID][other] = d
			dist[other][newID] = d
		}

		active = replacePair(active, bestA, bestB, newID)
	}

	if err := tree.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("Clustered %d entries with %s linkage", n, criterion)
	return tree, nil
}

// update computes the distance from the freshly merged cluster (a+b)
// to another cluster under the linkage criterion.
func update(criterion domain.LinkageCriterion, dao, dbo, dab float64, sa, sb, so int) float64 {
	switch criterion {
	case domain.LinkageSingle:
		return math.Min(dao, dbo)
	case domain.LinkageComplete:
		return math.Max(dao, dbo)
	case domain.LinkageAverage:
		fa, fb := float64(sa), float64(sb)
		return (fa*dao + fb*dbo) / (fa + fb)
	case domain.LinkageWard:
		fa, fb, fo := float64(sa), float64(sb), float64(so)
		t := fa + fb + fo
		sq := ((fa+fo)*dao*dao + (fb+fo)*dbo*dbo - fo*dab*dab) / t
		if sq < 0 {
			sq = 0 // rounding
		}
		return math.Sqrt(sq)
	default:
		// Unreachable: criterion validated in Cluster.
		return math.NaN()
	}
}

// replacePair removes ids a and b from the active list and appends
// the new id, preserving ascending id order.
func replacePair(active []int, a, b, newID int) []int {
	out := active[:0]
	for _, id := range active {
		if id != a && id != b {
			out = append(out, id)
		}
	}
	return append(out, newID)
}
