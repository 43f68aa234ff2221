package air

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGridVelocityAtOutOfRangeIsZero(t *testing.T) {
	g := NewGrid(4, 4, 4)
	vx, vy, vz := g.VelocityAt(-1, 0, 0)
	require.Zero(t, vx)
	require.Zero(t, vy)
	require.Zero(t, vz)
}

func TestGridAddVelocityThenSample(t *testing.T) {
	g := NewGrid(4, 4, 4)
	g.AddVelocity(1, 1, 1, 2, 0, 0)

	vx, _, _ := g.VelocityAt(1, 1, 1)
	require.Equal(t, float32(2), vx)
}

func TestGridUpdateDiffusesAndDecays(t *testing.T) {
	g := NewGrid(5, 5, 5)
	g.Diffusion = 1.0
	g.Dissipation = 0.0
	g.Buoyancy = 0

	g.AddVelocity(2, 2, 2, 6, 0, 0)
	g.Update(1.0 / 60.0)

	vx, _, _ := g.VelocityAt(2, 2, 2)
	require.Less(t, vx, float32(6), "the source cell should have lost velocity to its neighbors")

	nx, _, _ := g.VelocityAt(3, 2, 2)
	require.Greater(t, nx, float32(0), "a neighbor should have gained velocity from diffusion")
}

func TestGridUpdateFullDissipationZeroesVelocity(t *testing.T) {
	g := NewGrid(3, 3, 3)
	g.Dissipation = 1.0 // total decay

	g.AddVelocity(1, 1, 1, 5, 0, 0)
	g.Update(1.0 / 60.0)

	vx, _, _ := g.VelocityAt(1, 1, 1)
	require.Zero(t, vx)
}
