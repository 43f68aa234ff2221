package voxsim

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/voxsim/raycast"
)

// gravityVector returns the acceleration gravity applies to a particle at
// (x,y,z) this tick, given the engine's current GravityMode. Vertical
// gravity pulls along -Y, matching the original's
// `part.vy -= el.Gravity` in move_behavior.
func (e *Engine) gravityVector(x, y, z float32) mgl32.Vec3 {
	switch e.GravityMode {
	case GravityZeroG:
		return mgl32.Vec3{}
	case GravityRadial:
		c := mgl32.Vec3{e.RadialCenter[0], e.RadialCenter[1], e.RadialCenter[2]}
		p := mgl32.Vec3{x, y, z}
		d := c.Sub(p)
		if d.Len() < 1e-6 {
			return mgl32.Vec3{}
		}
		return d.Normalize()
	default: // GravityVertical
		return mgl32.Vec3{0, -1, 0}
	}
}

// evalMove resolves what happens if a particle of moverType attempts to
// enter (x,y,z), by looking up the cell's occupant against the swap matrix.
// A matter occupant in pmap decides the result; the photons map is
// consulted only when the cell holds no matter, and an empty cell resolves
// to SWAP. occupantIsEnergy reports which map the resolved occupant
// (if any) came from, so a caller performing a SWAP knows which store to
// pull it from.
func (e *Engine) evalMove(moverType uint32, x, y, z int) (behavior SwapBehavior, occupantIsEnergy bool) {
	if e.Bounds.OutOfBounds(x, y, z) {
		return NOOP, false
	}

	if matterOccupant := e.pmap.occupantType(x, y, z); matterOccupant != PT_NONE {
		behavior = e.Swap.Lookup(moverType, matterOccupant)
	} else if energyOccupant := e.photons.occupantType(x, y, z); energyOccupant != PT_NONE {
		behavior = e.Swap.Lookup(moverType, energyOccupant)
		occupantIsEnergy = true
	} else {
		behavior = SWAP
	}

	// SPECIAL has no resolver registered yet. The original throws under
	// its own DEBUG build when try_move hits an unresolved SPECIAL
	// behavior rather than silently letting it through; this mirrors
	// that with a Debug-gated panic and degrades to NOOP otherwise.
	if behavior == SPECIAL && e.Debug {
		panic(fmt.Sprintf("voxsim: particle of type %d has unresolved SPECIAL move behavior at (%d,%d,%d)", moverType, x, y, z))
	}
	if behavior == SPECIAL {
		return NOOP, false
	}
	return behavior, occupantIsEnergy
}

// tryMove attempts to move particle id (in store/pm, at slot i) to
// (nx,ny,nz), snapping the destination to its nearest voxel first. A target
// inside the particle's current voxel only updates the sub-voxel X/Y/Z, so
// drift is preserved for the next tick, and returns false. Otherwise it
// returns true if the particle's rounded position changed (a swap, a move
// into empty space, or an OccupySame move); a NOOP or out-of-bounds target
// leaves both X/Y/Z and RX/RY/RZ untouched and returns false.
func (e *Engine) tryMove(store *Store, pm *posMap, i int32, nx, ny, nz float32) bool {
	p := &store.Parts[i]

	rx := int(roundf(nx))
	ry := int(roundf(ny))
	rz := int(roundf(nz))

	if rx == p.RX && ry == p.RY && rz == p.RZ {
		p.X, p.Y, p.Z = nx, ny, nz
		return false
	}

	if e.Bounds.OutOfBounds(rx, ry, rz) {
		return false
	}

	behavior, occupantIsEnergy := e.evalMove(p.Type, rx, ry, rz)

	switch behavior {
	case SWAP:
		occStore, occMap := e.Matter, e.pmap
		if occupantIsEnergy {
			occStore, occMap = e.Energy, e.photons
		}
		if occMap.occupantType(rx, ry, rz) != PT_NONE {
			occID := occMap.occupantID(rx, ry, rz)
			e.SwapPart(i, occID, store, occStore, pm, occMap)
			p.X, p.Y, p.Z = nx, ny, nz
			return true
		}
		// moving into a genuinely empty cell
		pm.set(p.RX, p.RY, p.RZ, 0)
		p.X, p.Y, p.Z = nx, ny, nz
		p.RX, p.RY, p.RZ = rx, ry, rz
		pm.set(rx, ry, rz, PackPmap(p.Type, i))
		return true
	case OccupySame:
		// Energy particles may coexist in the same cell as matter; the
		// particle conceptually moves, but only the photons map entry
		// needs updating since they live in separate maps.
		if pm.occupantType(p.RX, p.RY, p.RZ) != PT_NONE {
			pm.set(p.RX, p.RY, p.RZ, 0)
		}
		p.X, p.Y, p.Z = nx, ny, nz
		p.RX, p.RY, p.RZ = rx, ry, rz
		pm.set(rx, ry, rz, PackPmap(p.Type, i))
		return true
	default: // NOOP
		return false
	}
}

// roundf rounds to nearest, ties away from zero, matching the original's
// util.h roundf/ceil_proper pairing used throughout SimulationMove.cpp.
func roundf(v float32) float32 {
	return float32(math.Floor(float64(v) + 0.5))
}

// clampVelocity bounds each component of v to +/-MaxVelocity.
func clampVelocity(v mgl32.Vec3) mgl32.Vec3 {
	clamp := func(c float32) float32 {
		if c > MaxVelocity {
			return MaxVelocity
		}
		if c < -MaxVelocity {
			return -MaxVelocity
		}
		return c
	}
	return mgl32.Vec3{clamp(v.X()), clamp(v.Y()), clamp(v.Z())}
}

// raycastMovement is the original's _raycast_movement: it clamps the
// particle's velocity, then iteratively raycasts along the remaining
// displacement budget, calling tryMove up to the first obstruction and
// applying the element's Collision coefficient to the leftover velocity
// on each bounce, until the full budget is consumed or the particle
// stops making progress.
func (e *Engine) raycastMovement(store *Store, pm *posMap, i int32, rng *RNG) {
	p := &store.Parts[i]
	el := e.Elements.Get(p.Type)

	vel := clampVelocity(mgl32.Vec3{p.VX, p.VY, p.VZ})
	p.VX, p.VY, p.VZ = vel.X(), vel.Y(), vel.Z()

	remaining := vel.Len()
	if remaining < 1e-6 {
		return
	}
	dir := vel.Normalize()

	const maxBounces = 8
	for bounce := 0; bounce < maxBounces && remaining > 1e-4; bounce++ {
		hit, ok := raycast.Cast(p.X, p.Y, p.Z, dir.X(), dir.Y(), dir.Z(), remaining, func(x, y, z int) bool {
			behavior, _ := e.evalMove(p.Type, x, y, z)
			return behavior == NOOP
		})

		travel := remaining
		if ok {
			travel = hit.Dist
			if travel < 0 {
				travel = 0
			}
		}

		nx := p.X + dir.X()*travel
		ny := p.Y + dir.Y()*travel
		nz := p.Z + dir.Z()*travel
		if ok {
			// Stop in the last free voxel before the obstruction.
			back := faceNormal(hit.Face)
			nx = float32(hit.X) + back.X()
			ny = float32(hit.Y) + back.Y()
			nz = float32(hit.Z) + back.Z()
		}
		e.tryMove(store, pm, i, nx, ny, nz)

		remaining -= travel
		if !ok {
			break
		}

		// Bounce: the velocity component along the hit face's normal is
		// multiplied by the element's Collision coefficient and the
		// tangential part is kept, so a negative Collision (e.g. photons)
		// reflects off the obstruction, zero stops against it and a
		// positive value keeps pressing into it. The leftover displacement
		// is transformed the same way.
		normal := faceNormal(hit.Face)
		vel = mgl32.Vec3{p.VX, p.VY, p.VZ}
		vel = vel.Add(normal.Mul((el.Collision - 1) * vel.Dot(normal)))
		p.VX, p.VY, p.VZ = vel.X(), vel.Y(), vel.Z()
		disp := dir.Mul(remaining)
		disp = disp.Add(normal.Mul((el.Collision - 1) * disp.Dot(normal)))
		remaining = disp.Len()
		if remaining < 1e-6 {
			break
		}
		dir = disp.Normalize()
	}
}

func absf32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func faceNormal(f raycast.Face) mgl32.Vec3 {
	switch f {
	case raycast.FaceNegX:
		return mgl32.Vec3{-1, 0, 0}
	case raycast.FacePosX:
		return mgl32.Vec3{1, 0, 0}
	case raycast.FaceNegY:
		return mgl32.Vec3{0, -1, 0}
	case raycast.FacePosY:
		return mgl32.Vec3{0, 1, 0}
	case raycast.FaceNegZ:
		return mgl32.Vec3{0, 0, -1}
	case raycast.FacePosZ:
		return mgl32.Vec3{0, 0, 1}
	default:
		return mgl32.Vec3{}
	}
}

// canFallBelow reports whether a matter particle at (x,y,z) could move one
// cell further along -Y right now, i.e. the cell below isn't itself what's
// blocking it. Used to gate both gravity accrual and the settle wiggle the
// same way the original's move_behavior does.
func (e *Engine) canFallBelow(moverType uint32, x, y, z int) bool {
	behavior, _ := e.evalMove(moverType, x, y-1, z)
	return behavior != NOOP
}

// moveBehavior applies the element's default per-state motion for one
// tick: gravity acceleration for everything with nonzero Gravity, plus
// diffusion for Powder (settle pile wiggle), Liquid (spread wiggle) and
// Gas (isotropic random walk). SOLID and ENERGY elements have no default
// motion of their own. This only accumulates velocity; raycastMovement,
// called separately by updatePart, resolves the resulting displacement
// against obstacles.
func (e *Engine) moveBehavior(store *Store, pm *posMap, i int32, rng *RNG) {
	p := &store.Parts[i]
	el := e.Elements.Get(p.Type)

	if el.State == Solid || el.State == Energy {
		return
	}

	g := e.gravityVector(p.X, p.Y, p.Z).Mul(el.Gravity)
	if el.Gravity != 0 {
		switch e.GravityMode {
		case GravityVertical:
			// Only keep accelerating downward while the cell below is
			// actually open to fall into; once blocked, further
			// acceleration would just build up velocity the floor
			// immediately bounces or clamps away.
			if e.canFallBelow(p.Type, p.RX, p.RY, p.RZ) {
				p.VY += g.Y()
			}
		default:
			p.VX += g.X()
			p.VY += g.Y()
			p.VZ += g.Z()
		}
	}

	switch el.State {
	case Powder, Liquid:
		if el.Diffusion <= 0 {
			break
		}
		// Only wiggle once resting against something below; a particle
		// still free to fall straight down needs no lateral jitter.
		if e.GravityMode == GravityVertical && e.canFallBelow(p.Type, p.RX, p.RY, p.RZ) {
			break
		}
		isLiquid := el.State == Liquid
		lo, hi := float32(0), float32(1)
		if isLiquid {
			lo, hi = 0.5, 1.5
		}
		wig := rng.RandPerpendicularVector(g).Mul(el.Diffusion * rng.Uniform(lo, hi))
		p.VX += wig.X()
		p.VZ += wig.Z()
		if !isLiquid {
			// Powder's wiggle targets y-1 ("fall off a ledge") rather
			// than staying level like liquid's does.
			p.VY -= el.Diffusion
		}
	case Gas:
		if el.Diffusion > 0 {
			wig := rng.RandNormVector().Mul(el.Diffusion)
			p.VX += wig.X()
			p.VY += wig.Y()
			p.VZ += wig.Z()
		}
	}
}
