package domain

import "fmt"

// FeatureMatrix holds one numeric vector per corpus entry.
// Row order is index-aligned with the CorpusEntry list it was built
// from, so cluster labels and projected coordinates join by index.
type FeatureMatrix struct {
	// EntryIDs holds the CorpusEntry ID for each row.
	EntryIDs []string

	// Terms is the sorted vocabulary, one per column.
	Terms []string

	// Rows holds the feature vectors, len(Rows) == len(EntryIDs).
	Rows [][]float64
}

// Len returns the number of rows.
func (m *FeatureMatrix) Len() int {
	return len(m.Rows)
}

// DistanceMatrix is a symmetric, zero-diagonal matrix of pairwise
// dissimilarities between corpus entries.
type DistanceMatrix struct {
	// EntryIDs holds the CorpusEntry ID for each row/column.
	EntryIDs []string

	// Values is the full square matrix, row-major.
	Values [][]float64
}

// NewDistanceMatrix returns a zeroed n-by-n matrix.
func NewDistanceMatrix(entryIDs []string) *DistanceMatrix {
	n := len(entryIDs)
	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
	}
	return &DistanceMatrix{EntryIDs: entryIDs, Values: values}
}

// Len returns the number of rows.
func (m *DistanceMatrix) Len() int {
	return len(m.Values)
}

// At returns the distance between entries i and j.
func (m *DistanceMatrix) At(i, j int) float64 {
	return m.Values[i][j]
}

// Set stores a distance symmetrically.
func (m *DistanceMatrix) Set(i, j int, d float64) {
	m.Values[i][j] = d
	m.Values[j][i] = d
}

// Validate checks the distance matrix contract: square shape,
// symmetry, zero diagonal and non-negative entries.
func (m *DistanceMatrix) Validate() error {
	n := len(m.Values)
	if len(m.EntryIDs) != n {
		return fmt.Errorf("%w: %d entry ids for %d rows", ErrInvalidInput, len(m.EntryIDs), n)
	}
	for i := 0; i < n; i++ {
		if len(m.Values[i]) != n {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidInput, i, len(m.Values[i]), n)
		}
		if m.Values[i][i] != 0 {
			return fmt.Errorf("%w: non-zero diagonal at %d", ErrInvalidInput, i)
		}
		for j := 0; j < i; j++ {
			if m.Values[i][j] < 0 {
				return fmt.Errorf("%w: negative distance at (%d,%d)", ErrInvalidInput, i, j)
			}
			if m.Values[i][j] != m.Values[j][i] {
				return fmt.Errorf("%w: asymmetry at (%d,%d)", ErrInvalidInput, i, j)
			}
		}
	}
	return nil
}
