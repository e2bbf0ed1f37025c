package offsets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloor(t *testing.T) {
	x := New()
	// "cow" "dog" "cwd" "cat", each followed by one separator.
	for id, start := range []int{0, 4, 8, 12} {
		require.NoError(t, x.Add(start, id))
	}
	require.Equal(t, 4, x.Len())

	tests := []struct {
		offset, start, id int
	}{
		{0, 0, 0},
		{3, 0, 0},
		{4, 4, 1},
		{9, 8, 2},
		{15, 12, 3},
		{1000, 12, 3},
	}
	for _, tc := range tests {
		start, id, ok := x.Floor(tc.offset)
		require.True(t, ok)
		assert.Equal(t, tc.start, start, "offset %d", tc.offset)
		assert.Equal(t, tc.id, id, "offset %d", tc.offset)
		assert.Equal(t, tc.id, x.ID(tc.offset))
	}
}

func TestFloorBeforeFirst(t *testing.T) {
	x := New()
	require.NoError(t, x.Add(10, 0))
	_, _, ok := x.Floor(9)
	assert.False(t, ok)
	assert.Equal(t, -1, x.ID(9))

	_, _, ok = New().Floor(0)
	assert.False(t, ok)
}

func TestAddDuplicate(t *testing.T) {
	x := New()
	require.NoError(t, x.Add(0, 0))
	require.ErrorIs(t, x.Add(0, 1), ErrDuplicateStart)
	assert.Equal(t, 0, x.ID(0))
}
