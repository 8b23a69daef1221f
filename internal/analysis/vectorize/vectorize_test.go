package vectorize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/catalog-cli/internal/core/domain"
)

func entries(texts ...string) []domain.CorpusEntry {
	out := make([]domain.CorpusEntry, len(texts))
	for i, text := range texts {
		out[i] = domain.CorpusEntry{ID: string(rune('a' + i)), Text: text}
	}
	return out
}

func TestBuild_RowAlignmentAndDeterminism(t *testing.T) {
	v := New()
	corpus := entries(
		"alpha beta gamma delta",
		"alpha beta epsilon",
		"zeta eta theta",
	)

	fm1, dm1, err := v.Build(corpus, domain.MetricCosine)
	require.NoError(t, err)
	fm2, dm2, err := v.Build(corpus, domain.MetricCosine)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, fm1.EntryIDs)
	assert.Len(t, fm1.Rows, 3)
	// Identical input yields bit-identical matrices
	assert.Equal(t, fm1.Rows, fm2.Rows)
	assert.Equal(t, fm1.Terms, fm2.Terms)
	assert.Equal(t, dm1.Values, dm2.Values)
}

func TestBuild_DistanceMatrixContract(t *testing.T) {
	v := New()
	corpus := entries(
		"apples oranges pears",
		"apples bananas",
		"trains planes automobiles",
		"apples oranges pears", // duplicate text, still a distinct entry
	)

	for _, metric := range []domain.DistanceMetric{domain.MetricCosine, domain.MetricEuclidean, domain.MetricJaccard} {
		_, dm, err := v.Build(corpus, metric)
		require.NoError(t, err, metric)
		require.NoError(t, dm.Validate(), metric)
		// Identical texts sit at distance zero
		assert.InDelta(t, 0, dm.At(0, 3), 1e-12, metric)
		// Disjoint texts are maximally distant under cosine/jaccard
		if metric != domain.MetricEuclidean {
			assert.InDelta(t, 1, dm.At(0, 2), 1e-12, metric)
		}
	}
}

func TestBuild_RelatedCloserThanUnrelated(t *testing.T) {
	v := New()
	corpus := entries(
		"shipping manifest cargo vessel tonnage",
		"cargo vessel shipping schedule",
		"recipe flour butter sugar oven",
	)

	_, dm, err := v.Build(corpus, domain.MetricCosine)
	require.NoError(t, err)
	assert.Less(t, dm.At(0, 1), dm.At(0, 2))
	assert.Less(t, dm.At(0, 1), dm.At(1, 2))
}

func TestBuild_InsufficientData(t *testing.T) {
	v := New()

	_, _, err := v.Build(nil, domain.MetricCosine)
	assert.ErrorIs(t, err, domain.ErrInsufficientData)

	_, _, err = v.Build(entries("only one document"), domain.MetricCosine)
	assert.ErrorIs(t, err, domain.ErrInsufficientData)
}

func TestBuild_StopwordOnlyCorpus(t *testing.T) {
	v := New()
	_, _, err := v.Build(entries("the and of", "a an it"), domain.MetricCosine)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuild_UnknownMetric(t *testing.T) {
	v := New()
	_, _, err := v.Build(entries("one two", "three four"), "chebyshev")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
