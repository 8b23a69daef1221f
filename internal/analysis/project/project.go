// Package project reduces the TF-IDF feature space to 2 or 3
// dimensions for visual layout.
//
// Two methods are provided: principal-component projection (exact,
// fully deterministic) and stress-minimising multidimensional scaling
// (iterative, deterministic for a fixed seed). Both keep output rows
// index-aligned with the feature matrix.
package project

import (
	"fmt"

	"github.com/custodia-labs/catalog-cli/internal/core/domain"
	"github.com/custodia-labs/catalog-cli/internal/core/ports/driven"
	"github.com/custodia-labs/catalog-cli/internal/logger"
)

// Ensure Engine implements the interface.
var _ driven.Projector = (*Engine)(nil)

// Engine is the dimensionality reduction engine.
type Engine struct{}

// New creates a projection engine.
func New() *Engine {
	return &Engine{}
}

// Project computes low-dimensional coordinates for every feature
// matrix row. A corpus with fewer than dims+1 entries yields a
// degenerate projection instead of an error.
func (e *Engine) Project(fm *domain.FeatureMatrix, method domain.ProjectionMethod, dims int, seed int64) (*domain.Projection, error) {
	if _, err := domain.ParseProjection(string(method)); err != nil {
		return nil, err
	}
	if dims != 2 && dims != 3 {
		return nil, fmt.Errorf("%w: target dims %d, want 2 or 3", domain.ErrInvalidInput, dims)
	}

	p := &domain.Projection{
		Method:   method,
		Dims:     dims,
		EntryIDs: append([]string(nil), fm.EntryIDs...),
	}

	if fm.Len() < dims+1 {
		logger.Warn("Projection skipped: %d entries for %d dims", fm.Len(), dims)
		p.Degenerate = true
		p.Coords = [][]float64{}
		return p, nil
	}

	switch method {
	case domain.ProjectionPCA:
		p.Coords = pca(fm.Rows, dims)
	case domain.ProjectionMDS:
		p.Coords = mds(fm.Rows, dims, seed)
	}

	logger.Debug("Projected %d entries to %dD via %s", fm.Len(), dims, method)
	return p, nil
}
