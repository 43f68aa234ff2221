// Package air implements the ambient air velocity field that particles
// advect off of. It is a cellular-volume diffusion step, in the style of a
// smoke diffusion step, applied to a vector velocity field rather than a
// scalar density field and decoupled from any entity system:
// a Grid is a standalone value a simulation engine samples through the
// voxsim.AirSampler interface, updated on its own cadence.
package air

// Grid is a coarse 3D velocity field independent of the particle
// simulation's own resolution; it is typically stepped less often than
// the particle tick, e.g. once every few ticks.
type Grid struct {
	NX, NY, NZ int

	Diffusion  float32 // neighbor-share coefficient in [0, 1]
	Dissipation float32 // fraction of velocity lost to drag per step, in [0, 1]
	Buoyancy   float32 // vertical bias in [-1, 1]; positive rises

	vx, vy, vz     []float32
	nextVX, nextVY, nextVZ []float32
}

// NewGrid allocates a zeroed velocity field of the given resolution.
func NewGrid(nx, ny, nz int) *Grid {
	n := nx * ny * nz
	return &Grid{
		NX: nx, NY: ny, NZ: nz,
		Diffusion:   0.2,
		Dissipation: 0.01,
		Buoyancy:    0.1,
		vx:          make([]float32, n),
		vy:          make([]float32, n),
		vz:          make([]float32, n),
	}
}

func (g *Grid) idx(x, y, z int) int {
	if x < 0 || x >= g.NX || y < 0 || y >= g.NY || z < 0 || z >= g.NZ {
		return -1
	}
	return (z*g.NY+y)*g.NX + x
}

// VelocityAt implements voxsim.AirSampler by returning the velocity of the
// coarse cell containing (x,y,z). Coordinates outside the grid read as
// zero (still air).
func (g *Grid) VelocityAt(x, y, z int) (float32, float32, float32) {
	i := g.idx(x, y, z)
	if i < 0 {
		return 0, 0, 0
	}
	return g.vx[i], g.vy[i], g.vz[i]
}

// AddVelocity injects an impulse at (x,y,z), e.g. from a particle that
// just moved through that cell and should stir the air.
func (g *Grid) AddVelocity(x, y, z int, dvx, dvy, dvz float32) {
	i := g.idx(x, y, z)
	if i < 0 {
		return
	}
	g.vx[i] += dvx
	g.vy[i] += dvy
	g.vz[i] += dvz
}

// Update steps the field forward by one air tick: 6-neighborhood diffusion
// of each velocity component with a buoyancy-biased vertical split,
// followed by dissipation decay. The three components are diffused in
// lockstep so the field stays divergence-smooth rather than drifting
// axis by axis.
func (g *Grid) Update(dt float32) {
	n := len(g.vx)
	if cap(g.nextVX) < n {
		g.nextVX = make([]float32, n)
		g.nextVY = make([]float32, n)
		g.nextVZ = make([]float32, n)
	}
	nextVX, nextVY, nextVZ := g.nextVX[:n], g.nextVY[:n], g.nextVZ[:n]
	for i := range nextVX {
		nextVX[i], nextVY[i], nextVZ[i] = 0, 0, 0
	}

	dif := clamp01(g.Diffusion)
	decay := 1 - clamp01(g.Dissipation)
	buoy := clampSigned(g.Buoyancy)

	const cutoff = 1e-4

	for z := 0; z < g.NZ; z++ {
		for y := 0; y < g.NY; y++ {
			for x := 0; x < g.NX; x++ {
				i := g.idx(x, y, z)
				cx, cy, cz := g.vx[i]*decay, g.vy[i]*decay, g.vz[i]*decay
				if absf(cx)+absf(cy)+absf(cz) <= cutoff {
					continue
				}

				shareX := cx * dif * 0.16666667
				shareY := cy * dif * 0.16666667
				shareZ := cz * dif * 0.16666667

				nextVX[i] += cx - shareX*6
				nextVY[i] += cy - shareY*6
				nextVZ[i] += cz - shareZ*6

				spreadAxis(g, nextVX, nextVY, nextVZ, x+1, y, z, shareX, shareY, shareZ, i)
				spreadAxis(g, nextVX, nextVY, nextVZ, x-1, y, z, shareX, shareY, shareZ, i)
				spreadAxis(g, nextVX, nextVY, nextVZ, x, y, z+1, shareX, shareY, shareZ, i)
				spreadAxis(g, nextVX, nextVY, nextVZ, x, y, z-1, shareX, shareY, shareZ, i)

				upY := shareY * (1 + buoy)
				downY := shareY * (1 - buoy)
				if j := g.idx(x, y+1, z); j >= 0 {
					nextVY[j] += upY
					nextVX[j] += shareX
					nextVZ[j] += shareZ
				} else {
					nextVY[i] += upY
				}
				if j := g.idx(x, y-1, z); j >= 0 {
					nextVY[j] += downY
					nextVX[j] += shareX
					nextVZ[j] += shareZ
				} else {
					nextVY[i] += downY
				}
			}
		}
	}

	g.vx, g.nextVX = nextVX, g.vx
	g.vy, g.nextVY = nextVY, g.vy
	g.vz, g.nextVZ = nextVZ, g.vz
}

func spreadAxis(g *Grid, nextVX, nextVY, nextVZ []float32, x, y, z int, sx, sy, sz float32, self int) {
	if j := g.idx(x, y, z); j >= 0 {
		nextVX[j] += sx
		nextVY[j] += sy
		nextVZ[j] += sz
	} else {
		nextVX[self] += sx
		nextVY[self] += sy
		nextVZ[self] += sz
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampSigned(v float32) float32 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
