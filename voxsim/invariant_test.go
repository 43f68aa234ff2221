package voxsim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestInvariantAtMostOneMatterParticlePerCell checks that CreatePart never
// lets two matter particles occupy the same cell.
func TestInvariantAtMostOneMatterParticlePerCell(t *testing.T) {
	e := testEngine()
	_, err := e.CreatePart(1, 5, 5, 5)
	require.NoError(t, err)

	_, err = e.CreatePart(2, 5, 5, 5)
	require.Error(t, err)

	seen := map[[3]int]bool{}
	n := e.Matter.Cap()
	for i := 1; i < n; i++ {
		p := &e.Matter.Parts[i]
		if !p.IsAlive() {
			continue
		}
		key := [3]int{p.RX, p.RY, p.RZ}
		require.False(t, seen[key], "two live matter particles share a cell")
		seen[key] = true
	}
}

// TestInvariantBorderAlwaysBlocks checks that every border cell (any axis
// at 0 or Res-1) is treated as occupied, matching spec.md's always-solid
// boundary.
func TestInvariantBorderAlwaysBlocks(t *testing.T) {
	e := testEngine()
	borderCells := [][3]int{
		{0, 5, 5}, {9, 5, 5},
		{5, 0, 5}, {5, 9, 5},
		{5, 5, 0}, {5, 5, 9},
	}
	for _, c := range borderCells {
		behavior, _ := e.evalMove(1, c[0], c[1], c[2])
		require.Equal(t, NOOP, behavior, "border cell %v must block every mover", c)
	}
}

// TestInvariantPartsCountConservedWithoutCreateOrKill checks that ticking
// the engine with no create/kill calls in between never changes the live
// particle count.
func TestInvariantPartsCountConservedWithoutCreateOrKill(t *testing.T) {
	e := testEngine()
	for i := 0; i < 5; i++ {
		_, err := e.CreatePart(1, i+1, 5, 5)
		require.NoError(t, err)
	}

	before := e.PartsCount()
	for tick := 0; tick < 10; tick++ {
		e.Update(2)
	}
	require.Equal(t, before, e.PartsCount())
}

// TestInvariantDeadSlotsNeverReportAlive checks that a freed particle
// slot is immediately reported as not alive.
func TestInvariantDeadSlotsNeverReportAlive(t *testing.T) {
	e := testEngine()
	id, err := e.CreatePart(1, 5, 5, 5)
	require.NoError(t, err)

	e.KillPart(id)
	require.False(t, e.Matter.Parts[id].IsAlive())
}

// TestInvariantLiveParticlesStayInBounds checks that after repeated ticks
// every live particle's rounded position remains a valid interior cell.
func TestInvariantLiveParticlesStayInBounds(t *testing.T) {
	e := testEngine()
	for i := 0; i < 6; i++ {
		_, err := e.CreatePart(1, i+1, 5, 8)
		require.NoError(t, err)
	}

	for tick := 0; tick < 20; tick++ {
		e.Update(2)
	}

	n := e.Matter.Cap()
	for i := 1; i < n; i++ {
		p := &e.Matter.Parts[i]
		if !p.IsAlive() {
			continue
		}
		require.True(t, e.Bounds.InBounds(p.RX, p.RY, p.RZ), "particle %d escaped the grid interior", i)
	}
}
