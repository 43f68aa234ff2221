package voxsim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWorkerCountBoundedByCausality(t *testing.T) {
	// zRes=64 -> capByCausality = 64/(4*4) = 4
	require.Equal(t, 4, WorkerCount(64, 16))
	require.Equal(t, 2, WorkerCount(64, 2))
	require.Equal(t, 1, WorkerCount(8, 16))
}

func TestUpdateAdvancesFrameCount(t *testing.T) {
	e := testEngine()
	_, err := e.CreatePart(1, 5, 5, 5)
	require.NoError(t, err)

	require.Equal(t, uint64(0), e.FrameCount)
	e.Update(2)
	require.Equal(t, uint64(1), e.FrameCount)
}

func TestUpdatePartDefersHighCausalityElementUntilRecalc(t *testing.T) {
	e := testEngine()
	el := e.Elements[1]
	el.Causality = 100 // far beyond any plausible slab radius
	e.Elements[1] = el

	id, err := e.CreatePart(1, 5, 5, 5)
	require.NoError(t, err)
	e.Matter.Parts[id].VX = 1

	rng := NewRNG(1)
	e.updatePart(e.Matter, e.pmap, id, rng, true, 4)
	require.False(t, e.Matter.Parts[id].Flag.has(FlagUpdateFrame) == updateParity(e.FrameCount),
		"a particle whose element's Causality exceeds r must be deferred, not advanced")

	e.updatePart(e.Matter, e.pmap, id, rng, false, 0)
	require.True(t, e.Matter.Parts[id].Flag.has(FlagUpdateFrame) == updateParity(e.FrameCount),
		"recalcFreeParticles's considerCausality=false pass must flush the deferred particle")
}

func TestUpdatePartDefersFastParticleUntilRecalc(t *testing.T) {
	e := testEngine()
	id, err := e.CreatePart(1, 5, 5, 5)
	require.NoError(t, err)
	p := &e.Matter.Parts[id]
	p.Flag.set(FlagUpdateFrame, updateParity(e.FrameCount)) // skip straight to the move phase
	p.VZ = 10                                               // exceeds r below

	rng := NewRNG(1)
	e.updatePart(e.Matter, e.pmap, id, rng, true, 4)
	require.True(t, e.Matter.Parts[id].Flag.has(FlagMoveFrame) != updateParity(e.FrameCount),
		"a particle whose |vz| exceeds r must be deferred rather than raycast in the parallel phase")

	e.updatePart(e.Matter, e.pmap, id, rng, false, 0)
	require.True(t, e.Matter.Parts[id].Flag.has(FlagMoveFrame) == updateParity(e.FrameCount),
		"the sequential recalc pass must flush the deferred fast particle")
}

func TestUpdateIsConcurrencySafeAcrossManyParticles(t *testing.T) {
	elements := testElements()
	swap := BuildSwapMatrix(elements)
	e := NewEngine(GridBounds{XRes: 64, YRes: 64, ZRes: 64}, elements, swap)

	for z := 1; z < 63; z += 4 {
		for x := 1; x < 63; x += 8 {
			_, err := e.CreatePart(1, x, 32, z)
			require.NoError(t, err)
		}
	}

	require.NotPanics(t, func() {
		for i := 0; i < 5; i++ {
			e.Update(4)
		}
	})
}
