package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gekko3d/voxsim"
)

func testSyncEngine(t *testing.T) *voxsim.Engine {
	table := voxsim.ElementTable{{}, {Name: "sand", State: voxsim.Powder, Weight: 100, Enabled: true}}
	swap := voxsim.BuildSwapMatrix(table)
	return voxsim.NewEngine(voxsim.GridBounds{XRes: 10, YRes: 10, ZRes: 10}, table, swap)
}

func TestSyncFromEngineWritesLiveParticles(t *testing.T) {
	e := testSyncEngine(t)
	_, err := e.CreatePart(1, 3, 4, 5)
	require.NoError(t, err)

	m := NewBrickMap()
	matter, energy := m.SyncFromEngine(e, nil, nil)

	require.Len(t, matter, 1)
	require.Empty(t, energy)

	found, val := m.GetVoxel(3, 4, 5)
	require.True(t, found)
	require.Equal(t, paletteIndex(1), val)
}

func TestSyncFromEngineClearsVacatedCells(t *testing.T) {
	e := testSyncEngine(t)
	id, err := e.CreatePart(1, 3, 4, 5)
	require.NoError(t, err)

	m := NewBrickMap()
	matter, energy := m.SyncFromEngine(e, nil, nil)

	e.KillPart(id)
	matter, energy = m.SyncFromEngine(e, matter, energy)

	require.Empty(t, matter)
	found, _ := m.GetVoxel(3, 4, 5)
	require.False(t, found)
}

func TestPaletteIndexNeverZero(t *testing.T) {
	for _, elementType := range []uint32{0, 1, 254, 255, 256, 1000} {
		require.NotZero(t, paletteIndex(elementType))
	}
}
