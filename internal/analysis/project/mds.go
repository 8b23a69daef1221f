package project

import (
	"math"
	"math/rand"
)

// SMACOF iteration bounds.
const (
	mdsMaxIter = 300
	mdsEps     = 1e-9
)

// mds embeds the rows into dims dimensions by stress majorization
// (SMACOF): start from a seeded random layout and repeatedly apply
// the Guttman transform until the normalized stress stops improving.
// The same seed always produces the same coordinates.
func mds(rows [][]float64, dims int, seed int64) [][]float64 {
	n := len(rows)

	// Target dissimilarities: pairwise euclidean distances in
	// feature space.
	delta := make([][]float64, n)
	for i := range delta {
		delta[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := euclidean(rows[i], rows[j])
			delta[i][j] = d
			delta[j][i] = d
		}
	}

	rng := rand.New(rand.NewSource(seed))
	x := make([][]float64, n)
	for i := range x {
		x[i] = make([]float64, dims)
		for k := range x[i] {
			x[i][k] = rng.Float64() - 0.5
		}
	}

	prevStress := math.Inf(1)
	for iter := 0; iter < mdsMaxIter; iter++ {
		// Current pairwise layout distances
		dist := make([][]float64, n)
		for i := range dist {
			dist[i] = make([]float64, n)
		}
		stress := 0.0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				d := euclidean(x[i], x[j])
				dist[i][j] = d
				dist[j][i] = d
				diff := delta[i][j] - d
				stress += diff * diff
			}
		}

		if prevStress-stress < mdsEps*prevStress {
			break
		}
		prevStress = stress

		// Guttman transform: x' = B(x) x / n
		next := make([][]float64, n)
		for i := range next {
			next[i] = make([]float64, dims)
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				b := 0.0
				if dist[i][j] > 1e-12 {
					b = delta[i][j] / dist[i][j]
				}
				for k := 0; k < dims; k++ {
					next[i][k] += b * (x[i][k] - x[j][k])
				}
			}
			for k := 0; k < dims; k++ {
				next[i][k] /= float64(n)
			}
		}
		x = next
	}
	return x
}

func euclidean(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}
