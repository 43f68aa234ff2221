// Package voxsim implements a three-dimensional falling-sand / voxel
// particle simulator: a fixed cubic grid in which every cell may hold at
// most one matter particle and, independently, at most one energy particle.
package voxsim

// Coord is a grid axis coordinate. Resolutions must fit in a byte per
// SimulationDef's coord_t, so morton-style packing stays cheap.
type Coord = uint8

// MaxRes is the largest resolution allowed along any axis.
const MaxRes = 256

// IDBits is the width of the particle-id field packed into a pmap/photons
// cell; the remaining high bits hold the element type.
const IDBits = 22

// MaxElementTypes is the number of element type ids representable above the
// IDBits partition (1 << (32 - IDBits)); the largest is MaxElementTypes-1.
const MaxElementTypes = 1 << (32 - IDBits)

// MaxParticles is the number of particle ids representable in IDBits; the
// largest is MaxParticles-1.
const MaxParticles = 1 << IDBits

// MaxVelocity bounds every velocity component before it is handed to the
// raycaster, preventing NaN/Inf from ever reaching arithmetic that assumes
// finite displacement.
const MaxVelocity = 50.0

// PackPmap merges an element type and a particle id into one pmap/photons
// cell value. A zero result means empty.
func PackPmap(elementType uint32, id int32) uint32 {
	return (elementType << IDBits) | uint32(id)
}

// UnpackType extracts the element type from a packed pmap/photons cell.
func UnpackType(cell uint32) uint32 {
	return cell >> IDBits
}

// UnpackID extracts the particle id from a packed pmap/photons cell.
func UnpackID(cell uint32) int32 {
	return int32(cell & (MaxParticles - 1))
}

// GridBounds describes the fixed resolution of the simulation grid. Cells at
// coordinate 0 or Res-1 on any axis are the border and are always treated as
// occupied (spec.md §3).
type GridBounds struct {
	XRes, YRes, ZRes int
}

// InBounds reports whether (x,y,z) is a non-border interior cell.
func (g GridBounds) InBounds(x, y, z int) bool {
	return x > 0 && x < g.XRes-1 &&
		y > 0 && y < g.YRes-1 &&
		z > 0 && z < g.ZRes-1
}

// OutOfBounds is the negation of InBounds, matching the original's
// REVERSE_BOUNDS_CHECK naming for readability at call sites that short
// circuit on the "can't be here" case.
func (g GridBounds) OutOfBounds(x, y, z int) bool {
	return !g.InBounds(x, y, z)
}

// NumCells returns the total number of cells in the grid (= NPARTS, the
// fixed particle store capacity).
func (g GridBounds) NumCells() int {
	return g.XRes * g.YRes * g.ZRes
}
