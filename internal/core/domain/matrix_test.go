package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceMatrix_SetIsSymmetric(t *testing.T) {
	m := NewDistanceMatrix([]string{"a", "b", "c"})
	m.Set(0, 1, 0.5)
	m.Set(2, 0, 0.25)

	assert.Equal(t, 0.5, m.At(1, 0))
	assert.Equal(t, 0.25, m.At(0, 2))
	require.NoError(t, m.Validate())
}

func TestDistanceMatrix_Validate(t *testing.T) {
	t.Run("zero matrix is valid", func(t *testing.T) {
		m := NewDistanceMatrix([]string{"a", "b"})
		assert.NoError(t, m.Validate())
	})

	t.Run("non-zero diagonal rejected", func(t *testing.T) {
		m := NewDistanceMatrix([]string{"a", "b"})
		m.Values[0][0] = 1
		assert.ErrorIs(t, m.Validate(), ErrInvalidInput)
	})

	t.Run("asymmetry rejected", func(t *testing.T) {
		m := NewDistanceMatrix([]string{"a", "b"})
		m.Values[0][1] = 0.3
		assert.ErrorIs(t, m.Validate(), ErrInvalidInput)
	})

	t.Run("negative distance rejected", func(t *testing.T) {
		m := NewDistanceMatrix([]string{"a", "b"})
		m.Values[0][1] = -0.3
		m.Values[1][0] = -0.3
		assert.ErrorIs(t, m.Validate(), ErrInvalidInput)
	})

	t.Run("ragged rows rejected", func(t *testing.T) {
		m := NewDistanceMatrix([]string{"a", "b"})
		m.Values[1] = m.Values[1][:1]
		assert.ErrorIs(t, m.Validate(), ErrInvalidInput)
	})
}

func TestLinkageTree_Validate(t *testing.T) {
	t.Run("monotone tree is valid", func(t *testing.T) {
		tree := &LinkageTree{
			EntryIDs: []string{"a", "b", "c"},
			Leaves:   3,
			Merges: []Merge{
				{A: 0, B: 1, Distance: 0.2, Size: 2},
				{A: 2, B: 3, Distance: 0.7, Size: 3},
			},
		}
		assert.NoError(t, tree.Validate())
	})

	t.Run("decreasing distance rejected", func(t *testing.T) {
		tree := &LinkageTree{
			EntryIDs: []string{"a", "b", "c"},
			Leaves:   3,
			Merges: []Merge{
				{A: 0, B: 1, Distance: 0.7, Size: 2},
				{A: 2, B: 3, Distance: 0.2, Size: 3},
			},
		}
		assert.ErrorIs(t, tree.Validate(), ErrLinkageContract)
	})

	t.Run("wrong merge count rejected", func(t *testing.T) {
		tree := &LinkageTree{
			EntryIDs: []string{"a", "b", "c"},
			Leaves:   3,
			Merges:   []Merge{{A: 0, B: 1, Distance: 0.2, Size: 2}},
		}
		assert.ErrorIs(t, tree.Validate(), ErrLinkageContract)
	})

	t.Run("forward id reference rejected", func(t *testing.T) {
		tree := &LinkageTree{
			EntryIDs: []string{"a", "b", "c"},
			Leaves:   3,
			Merges: []Merge{
				{A: 0, B: 4, Distance: 0.2, Size: 2},
				{A: 1, B: 3, Distance: 0.3, Size: 3},
			},
		}
		assert.ErrorIs(t, tree.Validate(), ErrLinkageContract)
	})
}
