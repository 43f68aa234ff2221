package voxsim

import "fmt"

// ErrAlreadyOccupied is returned by CreatePart when the target cell's map
// (pmap for matter, photons for energy) already holds a live particle.
var ErrAlreadyOccupied = fmt.Errorf("voxsim: cell already occupied")

// ErrPartsFull is returned by CreatePart when the particle store has no
// free slot left.
var ErrPartsFull = fmt.Errorf("voxsim: particle store full")

// ErrOutOfBounds is returned by CreatePart when the target cell is outside
// the grid's interior (border cells are always occupied).
var ErrOutOfBounds = fmt.Errorf("voxsim: position out of bounds")

// posMap is a flattened XRes*YRes*ZRes array of packed pmap/photons cells.
// A zero cell means empty; PackPmap/UnpackType/UnpackID encode/decode it.
type posMap struct {
	bounds GridBounds
	cells  []uint32
}

func newPosMap(b GridBounds) *posMap {
	return &posMap{bounds: b, cells: make([]uint32, b.NumCells())}
}

func (m *posMap) index(x, y, z int) int {
	return (z*m.bounds.YRes+y)*m.bounds.XRes + x
}

func (m *posMap) get(x, y, z int) uint32 {
	return m.cells[m.index(x, y, z)]
}

func (m *posMap) set(x, y, z int, v uint32) {
	m.cells[m.index(x, y, z)] = v
}

// occupantType returns the element type occupying (x,y,z) in this map, or
// PT_NONE if empty.
func (m *posMap) occupantType(x, y, z int) uint32 {
	return UnpackType(m.get(x, y, z))
}

// occupantID returns the particle id occupying (x,y,z) in this map, or 0
// if empty.
func (m *posMap) occupantID(x, y, z int) int32 {
	return UnpackID(m.get(x, y, z))
}
