package project

import (
	"math"
	"sort"
)

// pca projects the rows onto their top principal components.
//
// The feature dimension (vocabulary size) is usually far larger than
// the corpus, so the decomposition runs on the n-by-n Gram matrix of
// the centered rows rather than the d-by-d covariance: the i-th
// principal coordinate equals eigenvector_i * sqrt(eigenvalue_i).
func pca(rows [][]float64, dims int) [][]float64 {
	n := len(rows)
	d := len(rows[0])

	// Center columns
	mean := make([]float64, d)
	for _, row := range rows {
		for j, x := range row {
			mean[j] += x
		}
	}
	for j := range mean {
		mean[j] /= float64(n)
	}
	centered := make([][]float64, n)
	for i, row := range rows {
		c := make([]float64, d)
		for j, x := range row {
			c[j] = x - mean[j]
		}
		centered[i] = c
	}

	// Gram matrix of centered rows
	gram := make([][]float64, n)
	for i := range gram {
		gram[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			dot := 0.0
			for k := 0; k < d; k++ {
				dot += centered[i][k] * centered[j][k]
			}
			gram[i][j] = dot
			gram[j][i] = dot
		}
	}

	values, vectors := jacobiEigen(gram)

	// Top components by eigenvalue, lower index on ties
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return values[order[a]] > values[order[b]] })

	coords := make([][]float64, n)
	for i := range coords {
		coords[i] = make([]float64, dims)
	}
	for c := 0; c < dims && c < n; c++ {
		k := order[c]
		scale := math.Sqrt(math.Max(values[k], 0))
		col := canonicalSign(vectors, k)
		for i := 0; i < n; i++ {
			coords[i][c] = vectors[i][k] * col * scale
		}
	}
	return coords
}

// canonicalSign fixes each eigenvector's sign so the component with
// the largest magnitude is positive, making output reproducible.
func canonicalSign(vectors [][]float64, col int) float64 {
	maxAbs, sign := 0.0, 1.0
	for i := range vectors {
		if a := math.Abs(vectors[i][col]); a > maxAbs {
			maxAbs = a
			if vectors[i][col] < 0 {
				sign = -1
			} else {
				sign = 1
			}
		}
	}
	return sign
}

// jacobiEigen decomposes a symmetric matrix with cyclic Jacobi
// rotations. Returns eigenvalues and the matrix of column
// eigenvectors. Deterministic: fixed sweep order, fixed tolerance.
func jacobiEigen(m [][]float64) ([]float64, [][]float64) {
	n := len(m)

	a := make([][]float64, n)
	v := make([][]float64, n)
	for i := 0; i < n; i++ {
		a[i] = append([]float64(nil), m[i]...)
		v[i] = make([]float64, n)
		v[i][i] = 1
	}

	const maxSweeps = 100
	for sweep := 0; sweep < maxSweeps; sweep++ {
		off := 0.0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				off += a[i][j] * a[i][j]
			}
		}
		if off < 1e-20 {
			break
		}

		for p := 0; p < n-1; p++ {
			for q := p + 1; q < n; q++ {
				if math.Abs(a[p][q]) < 1e-15 {
					continue
				}
				theta := (a[q][q] - a[p][p]) / (2 * a[p][q])
				t := 1 / (math.Abs(theta) + math.Sqrt(theta*theta+1))
				if theta < 0 {
					t = -t
				}
				c := 1 / math.Sqrt(t*t+1)
				s := t * c

				for k := 0; k < n; k++ {
					akp, akq := a[k][p], a[k][q]
					a[k][p] = c*akp - s*akq
					a[k][q] = s*akp + c*akq
				}
				for k := 0; k < n; k++ {
					apk, aqk := a[p][k], a[q][k]
					a[p][k] = c*apk - s*aqk
					a[q][k] = s*apk + c*aqk
				}
				for k := 0; k < n; k++ {
					vkp, vkq := v[k][p], v[k][q]
					v[k][p] = c*vkp - s*vkq
					v[k][q] = s*vkp + c*vkq
				}
			}
		}
	}

	values := make([]float64, n)
	for i := 0; i < n; i++ {
		values[i] = a[i][i]
	}
	return values, v
}
