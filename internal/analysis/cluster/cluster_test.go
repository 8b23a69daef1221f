package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/catalog-cli/internal/core/domain"
)

// matrix builds a distance matrix from an upper-triangle literal.
func matrix(ids []string, upper map[[2]int]float64) *domain.DistanceMatrix {
	dm := domain.NewDistanceMatrix(ids)
	for pair, d := range upper {
		dm.Set(pair[0], pair[1], d)
	}
	return dm
}

func threeEntries() *domain.DistanceMatrix {
	// a and b are close, c is far from both
	return matrix([]string{"a", "b", "c"}, map[[2]int]float64{
		{0, 1}: 0.1,
		{0, 2}: 0.8,
		{1, 2}: 0.6,
	})
}

func TestCluster_MergeOrderAndDistances(t *testing.T) {
	e := New()
	tree, err := e.Cluster(threeEntries(), domain.LinkageAverage)
	require.NoError(t, err)

	require.Len(t, tree.Merges, 2)
	assert.Equal(t, 0, tree.Merges[0].A)
	assert.Equal(t, 1, tree.Merges[0].B)
	assert.InDelta(t, 0.1, tree.Merges[0].Distance, 1e-12)

	assert.Equal(t, 2, tree.Merges[1].A)
	assert.Equal(t, 3, tree.Merges[1].B)
	assert.InDelta(t, 0.7, tree.Merges[1].Distance, 1e-12)
	assert.Equal(t, 3, tree.Merges[1].Size)
}

func TestCluster_MonotoneForAllCriteria(t *testing.T) {
	dm := matrix([]string{"a", "b", "c", "d", "e"}, map[[2]int]float64{
		{0, 1}: 0.12, {0, 2}: 0.85, {0, 3}: 0.91, {0, 4}: 0.40,
		{1, 2}: 0.78, {1, 3}: 0.88, {1, 4}: 0.35,
		{2, 3}: 0.20, {2, 4}: 0.66,
		{3, 4}: 0.71,
	})

	e := New()
	for _, c := range []domain.LinkageCriterion{
		domain.LinkageSingle, domain.LinkageComplete, domain.LinkageAverage, domain.LinkageWard,
	} {
		tree, err := e.Cluster(dm, c)
		require.NoError(t, err, c)
		require.NoError(t, tree.Validate(), c)
		assert.Len(t, tree.Merges, 4, c)
	}
}

func TestCluster_DeterministicTieBreak(t *testing.T) {
	// All pairwise distances equal: the lowest id pair must win
	// every round.
	dm := matrix([]string{"a", "b", "c", "d"}, map[[2]int]float64{
		{0, 1}: 1, {0, 2}: 1, {0, 3}: 1,
		{1, 2}: 1, {1, 3}: 1,
		{2, 3}: 1,
	})

	e := New()
	tree, err := e.Cluster(dm, domain.LinkageSingle)
	require.NoError(t, err)

	require.Len(t, tree.Merges, 3)
	assert.Equal(t, [2]int{0, 1}, [2]int{tree.Merges[0].A, tree.Merges[0].B})
	assert.Equal(t, [2]int{2, 3}, [2]int{tree.Merges[1].A, tree.Merges[1].B})
	assert.Equal(t, [2]int{4, 5}, [2]int{tree.Merges[2].A, tree.Merges[2].B})
}

func TestCluster_RejectsInvalidMatrix(t *testing.T) {
	dm := domain.NewDistanceMatrix([]string{"a", "b"})
	dm.Values[0][1] = 0.5 // asymmetric on purpose

	e := New()
	_, err := e.Cluster(dm, domain.LinkageAverage)
	assert.ErrorIs(t, err, domain.ErrLinkageContract)
}

func TestCluster_InsufficientData(t *testing.T) {
	e := New()
	_, err := e.Cluster(domain.NewDistanceMatrix([]string{"a"}), domain.LinkageWard)
	assert.ErrorIs(t, err, domain.ErrInsufficientData)
}

func TestCluster_UnknownCriterion(t *testing.T) {
	e := New()
	_, err := e.Cluster(threeEntries(), "centroid")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCut(t *testing.T) {
	e := New()
	tree, err := e.Cluster(threeEntries(), domain.LinkageAverage)
	require.NoError(t, err)

	t.Run("k=1 is one cluster", func(t *testing.T) {
		labels, err := e.Cut(tree, 1)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"a": 0, "b": 0, "c": 0}, labels)
	})

	t.Run("k=N is all singletons", func(t *testing.T) {
		labels, err := e.Cut(tree, 3)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"a": 0, "b": 1, "c": 2}, labels)
	})

	t.Run("k=2 splits the far entry", func(t *testing.T) {
		labels, err := e.Cut(tree, 2)
		require.NoError(t, err)
		assert.Equal(t, labels["a"], labels["b"])
		assert.NotEqual(t, labels["a"], labels["c"])
	})

	t.Run("k out of range", func(t *testing.T) {
		_, err := e.Cut(tree, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		_, err = e.Cut(tree, 4)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestCutDistance(t *testing.T) {
	e := New()
	tree, err := e.Cluster(threeEntries(), domain.LinkageAverage)
	require.NoError(t, err)

	// Threshold between the two merge distances (0.1 and 0.7)
	labels := e.CutDistance(tree, 0.3)
	assert.Equal(t, labels["a"], labels["b"])
	assert.NotEqual(t, labels["a"], labels["c"])

	// Below every merge: all singletons
	assert.Len(t, uniqueLabels(e.CutDistance(tree, 0.01)), 3)

	// Above every merge: one cluster
	assert.Len(t, uniqueLabels(e.CutDistance(tree, 1.0)), 1)
}

func uniqueLabels(labels map[string]int) map[int]struct{} {
	set := make(map[int]struct{})
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return set
}
