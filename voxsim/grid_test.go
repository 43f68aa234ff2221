package voxsim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackUnpackPmap(t *testing.T) {
	cases := []struct {
		typ uint32
		id  int32
	}{
		{0, 0},
		{1, 1},
		{1023, 4194303},
		{5, 12345},
	}
	for _, c := range cases {
		packed := PackPmap(c.typ, c.id)
		require.Equal(t, c.typ, UnpackType(packed))
		require.Equal(t, c.id, UnpackID(packed))
	}
}

func TestGridBoundsInBounds(t *testing.T) {
	b := GridBounds{XRes: 10, YRes: 10, ZRes: 10}

	require.True(t, b.InBounds(5, 5, 5))
	require.False(t, b.InBounds(0, 5, 5))
	require.False(t, b.InBounds(9, 5, 5))
	require.False(t, b.InBounds(5, 0, 5))
	require.False(t, b.InBounds(5, 5, 9))
	require.True(t, b.OutOfBounds(0, 0, 0))
}

func TestGridBoundsNumCells(t *testing.T) {
	b := GridBounds{XRes: 4, YRes: 5, ZRes: 6}
	require.Equal(t, 120, b.NumCells())
}
