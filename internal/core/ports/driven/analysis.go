package driven

import "github.com/custodia-labs/catalog-cli/internal/core/domain"

// Vectorizer turns the deduplicated corpus into a numeric feature
// representation and a pairwise distance matrix. The output rows are
// index-aligned with the entries passed in, and identical input plus
// identical configuration always yields identical values.
type Vectorizer interface {
	// Build vectorizes the entries and computes pairwise distances
	// under the given metric. Fewer than two entries returns
	// domain.ErrInsufficientData.
	Build(entries []domain.CorpusEntry, metric domain.DistanceMetric) (*domain.FeatureMatrix, *domain.DistanceMatrix, error)
}

// Clusterer runs hierarchical agglomerative clustering and cuts the
// resulting tree into flat clusters.
type Clusterer interface {
	// Cluster builds a linkage tree over the distance matrix.
	// An invalid matrix is a contract violation and is rejected.
	Cluster(dm *domain.DistanceMatrix, criterion domain.LinkageCriterion) (*domain.LinkageTree, error)

	// Cut returns a CorpusEntry-ID to cluster-label mapping with
	// exactly k clusters, 1 <= k <= leaves.
	Cut(tree *domain.LinkageTree, k int) (map[string]int, error)

	// CutDistance returns the flat clustering obtained by removing
	// every merge above the distance threshold.
	CutDistance(tree *domain.LinkageTree, threshold float64) map[string]int
}

// Projector reduces the feature space to 2 or 3 dimensions for
// visual layout.
type Projector interface {
	// Project computes coordinates for every feature matrix row.
	// Stochastic methods are seeded and therefore deterministic.
	// A corpus smaller than dims+1 yields a degenerate projection.
	Project(fm *domain.FeatureMatrix, method domain.ProjectionMethod, dims int, seed int64) (*domain.Projection, error)
}
