package vectorize

import (
	"fmt"
	"math"

	"github.com/custodia-labs/catalog-cli/internal/core/domain"
)

// Distances computes the pairwise distance matrix for the feature
// matrix under the given metric. The result is symmetric with a zero
// diagonal by construction.
func Distances(fm *domain.FeatureMatrix, metric domain.DistanceMetric) (*domain.DistanceMatrix, error) {
	var dist func(a, b []float64) float64
	switch metric {
	case domain.MetricCosine:
		dist = cosineDistance
	case domain.MetricEuclidean:
		dist = euclideanDistance
	case domain.MetricJaccard:
		dist = jaccardDistance
	default:
		return nil, fmt.Errorf("%w: distance metric %q", domain.ErrInvalidInput, metric)
	}

	dm := domain.NewDistanceMatrix(fm.EntryIDs)
	for i := 0; i < fm.Len(); i++ {
		for j := i + 1; j < fm.Len(); j++ {
			dm.Set(i, j, dist(fm.Rows[i], fm.Rows[j]))
		}
	}
	return dm, nil
}

// cosineDistance is 1 minus the cosine similarity. Rows are already
// L2-normalized, so the dot product is the similarity; tiny negative
// results from rounding clamp to zero.
func cosineDistance(a, b []float64) float64 {
	dot := 0.0
	for i := range a {
		dot += a[i] * b[i]
	}
	d := 1 - dot
	if d < 0 {
		return 0
	}
	return d
}

// euclideanDistance is the L2 distance.
func euclideanDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

// jaccardDistance treats rows as term presence sets: 1 minus the
// ratio of shared to combined non-zero terms. This reproduces the
// binary-matrix similarity of content overlap analysis.
func jaccardDistance(a, b []float64) float64 {
	intersection, union := 0, 0
	for i := range a {
		inA, inB := a[i] != 0, b[i] != 0
		switch {
		case inA && inB:
			intersection++
			union++
		case inA || inB:
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return 1 - float64(intersection)/float64(union)
}
