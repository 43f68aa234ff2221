package voxsim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testEngine() *Engine {
	elements := testElements()
	swap := BuildSwapMatrix(elements)
	bounds := GridBounds{XRes: 10, YRes: 10, ZRes: 10}
	return NewEngine(bounds, elements, swap)
}

func TestCreatePartBasic(t *testing.T) {
	e := testEngine()

	id, err := e.CreatePart(1, 5, 5, 5)
	require.NoError(t, err)
	require.Equal(t, int32(1), id)
	require.Equal(t, 1, e.PartsCount())
	require.Equal(t, uint32(1), e.MatterTypeAt(5, 5, 5))
}

func TestCreatePartOutOfBounds(t *testing.T) {
	e := testEngine()
	_, err := e.CreatePart(1, 0, 0, 0)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestCreatePartAlreadyOccupied(t *testing.T) {
	e := testEngine()
	_, err := e.CreatePart(1, 5, 5, 5)
	require.NoError(t, err)

	_, err = e.CreatePart(2, 5, 5, 5)
	require.ErrorIs(t, err, ErrAlreadyOccupied)
}

func TestCreatePartEnergyUsesPhotonsMap(t *testing.T) {
	e := testEngine()

	matterID, err := e.CreatePart(1, 5, 5, 5)
	require.NoError(t, err)

	// An energy particle can share the same cell as a matter particle,
	// since they live in independent maps.
	energyID, err := e.CreatePart(4, 5, 5, 5)
	require.NoError(t, err)

	require.Equal(t, uint32(1), e.MatterTypeAt(5, 5, 5))
	require.Equal(t, uint32(4), e.EnergyTypeAt(5, 5, 5))
	require.NotEqual(t, matterID, energyID)
}

func TestKillPartFreesMapAndSlot(t *testing.T) {
	e := testEngine()
	id, err := e.CreatePart(1, 5, 5, 5)
	require.NoError(t, err)

	e.KillPart(id)

	require.Equal(t, 0, e.PartsCount())
	require.Equal(t, PT_NONE, e.MatterTypeAt(5, 5, 5))

	// The freed slot should be reusable by a subsequent create.
	newID, err := e.CreatePart(2, 1, 1, 1)
	require.NoError(t, err)
	require.Equal(t, id, newID)
}

func TestCreatePartPartsFull(t *testing.T) {
	e := testEngine()
	// shrink the matter store to force exhaustion quickly
	e.Matter = NewStore(2)

	_, err := e.CreatePart(1, 1, 1, 1)
	require.NoError(t, err)

	_, err = e.CreatePart(1, 2, 2, 2)
	require.ErrorIs(t, err, ErrPartsFull)
}
