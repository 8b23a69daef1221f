package domain

import "fmt"

// ProjectionMethod selects the dimensionality reduction algorithm.
type ProjectionMethod string

const (
	// ProjectionPCA projects onto principal components.
	ProjectionPCA ProjectionMethod = "pca"

	// ProjectionMDS uses stress-minimising multidimensional scaling.
	ProjectionMDS ProjectionMethod = "mds"
)

// ParseProjection validates and returns a projection method.
func ParseProjection(s string) (ProjectionMethod, error) {
	switch ProjectionMethod(s) {
	case ProjectionPCA, ProjectionMDS:
		return ProjectionMethod(s), nil
	default:
		return "", fmt.Errorf("%w: projection method %q", ErrInvalidInput, s)
	}
}

// Projection holds low-dimensional coordinates for each corpus entry,
// index-aligned with the FeatureMatrix rows it was computed from.
// An empty Coords slice with Degenerate set means the corpus was too
// small to project.
type Projection struct {
	// Method is the algorithm that produced the coordinates.
	Method ProjectionMethod

	// Dims is the target dimensionality, 2 or 3.
	Dims int

	// EntryIDs holds the CorpusEntry ID for each row.
	EntryIDs []string

	// Coords holds one Dims-length coordinate per entry.
	Coords [][]float64

	// Degenerate is set when the corpus had fewer entries than
	// Dims+1 and no projection was computed.
	Degenerate bool
}
