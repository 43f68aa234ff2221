package voxsim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testElements() ElementTable {
	return ElementTable{
		{}, // PT_NONE
		{Name: "sand", State: Powder, Weight: 100, Enabled: true, Gravity: 1.0, Loss: 1.0},  // 1
		{Name: "water", State: Liquid, Weight: 50, Enabled: true, Gravity: 1.0, Loss: 1.0},   // 2
		{Name: "steam", State: Gas, Weight: 1, Enabled: true, Gravity: -0.2, Loss: 1.0},      // 3
		{Name: "photon1", State: Energy, Weight: 0, Enabled: true, Loss: 1.0, Collision: -1}, // 4
		{Name: "photon2", State: Energy, Weight: 0, Enabled: true, Loss: 1.0, Collision: -1}, // 5
	}
}

func TestBuildSwapMatrixWeightOrdering(t *testing.T) {
	m := BuildSwapMatrix(testElements())

	require.Equal(t, SWAP, m.Lookup(1, 2), "sand (100) should displace water (50)")
	require.Equal(t, NOOP, m.Lookup(2, 1), "water (50) should not displace sand (100)")
	require.Equal(t, SWAP, m.Lookup(2, 3), "water (50) should displace steam (1)")
}

func TestBuildSwapMatrixEmptyCell(t *testing.T) {
	m := BuildSwapMatrix(testElements())

	require.Equal(t, SWAP, m.Lookup(1, PT_NONE))
	require.Equal(t, SWAP, m.Lookup(PT_NONE, 1))
}

func TestBuildSwapMatrixEnergyOccupySame(t *testing.T) {
	m := BuildSwapMatrix(testElements())
	require.Equal(t, OccupySame, m.Lookup(4, 5))
	require.Equal(t, OccupySame, m.Lookup(5, 4))
}

func TestBuildSwapMatrixOverride(t *testing.T) {
	m := BuildSwapMatrix(testElements(), SpecialOverride{Mover: 1, Occupant: 3})
	require.Equal(t, SPECIAL, m.Lookup(1, 3))
}

func TestSwapMatrixLookupOutOfRange(t *testing.T) {
	m := BuildSwapMatrix(testElements())
	require.Equal(t, NOOP, m.Lookup(99, 1))
	require.Equal(t, NOOP, m.Lookup(1, 99))
}
