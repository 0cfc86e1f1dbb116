package tensor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape_ComputeStrides(t *testing.T) {
	tests := []struct {
		shape Shape
		want  []int
	}{
		{Shape{}, []int{}},
		{Shape{5}, []int{1}},
		{Shape{2, 3}, []int{3, 1}},
		{Shape{2, 3, 4}, []int{12, 4, 1}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.shape.ComputeStrides(), "shape %v", tt.shape)
	}
}

func TestShape_Validate(t *testing.T) {
	assert.NoError(t, Shape{1, 2, 3}.Validate())
	assert.Error(t, Shape{2, 0}.Validate())
	assert.Error(t, Shape{-1}.Validate())
}

func TestShape_FlatIndex(t *testing.T) {
	s := Shape{2, 3, 4}

	got, err := s.FlatIndex(1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 23, got)

	got, err = s.FlatIndex(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	t.Run("wrong arity", func(t *testing.T) {
		_, err := s.FlatIndex(1, 2)
		assert.ErrorIs(t, err, ErrIndex)
		var idxErr *IndexError
		require.True(t, errors.As(err, &idxErr))
		assert.Equal(t, []int{1, 2}, idxErr.Coord)
	})

	t.Run("out of bounds", func(t *testing.T) {
		_, err := s.FlatIndex(1, 3, 0)
		assert.ErrorIs(t, err, ErrIndex)
		assert.NotErrorIs(t, err, ErrShape)
	})

	t.Run("negative", func(t *testing.T) {
		_, err := s.FlatIndex(0, -1, 0)
		assert.ErrorIs(t, err, ErrIndex)
	})
}

func TestShape_FlatIndexBijection(t *testing.T) {
	for _, s := range []Shape{{7}, {3, 5}, {2, 3, 4}, {2, 1, 3, 2}} {
		seen := make([]bool, s.NumElements())
		for flat := 0; flat < s.NumElements(); flat++ {
			coord, err := s.Unravel(flat)
			require.NoError(t, err)
			for i := range coord {
				require.Less(t, coord[i], s[i])
			}

			back, err := s.FlatIndex(coord...)
			require.NoError(t, err)
			require.Equal(t, flat, back, "shape %v coord %v", s, coord)
			require.False(t, seen[back])
			seen[back] = true
		}
	}
}

func TestShape_Unravel_OutOfRange(t *testing.T) {
	_, err := Shape{2, 2}.Unravel(4)
	assert.ErrorIs(t, err, ErrIndex)
	_, err = Shape{2, 2}.Unravel(-1)
	assert.ErrorIs(t, err, ErrIndex)
}

func TestShape_EqualClone(t *testing.T) {
	s := Shape{2, 3}
	c := s.Clone()
	assert.True(t, s.Equal(c))
	c[0] = 9
	assert.False(t, s.Equal(c))
	assert.False(t, s.Equal(Shape{2, 3, 1}))
	assert.Equal(t, "[2 3]", s.String())
}
