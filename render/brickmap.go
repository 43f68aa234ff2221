package render

import "math/bits"

// BrickMap mirrors an Engine's live particle positions into a sparse,
// GPU-friendly layout: voxels are grouped into 8^3 Bricks, bricks into
// 4^3 Sectors, and empty sectors/bricks are dropped entirely rather than
// stored as zeroed memory. A falling-sand grid is overwhelmingly empty
// space at any given tick, so this keeps the viewer's working set
// proportional to live particle count rather than grid volume.
const (
	BrickSize    = 8
	MicroSize    = 2
	SectorBricks = 4
	SectorSize   = SectorBricks * BrickSize
)

// Brick holds one 8^3 block of palette indices (0 = empty, matching
// voxsim.PT_NONE) plus a 4^3 occupancy mask, sampled at MicroSize
// granularity, that a renderer can test before descending into the full
// payload.
type Brick struct {
	OccupancyMask64 uint64
	Payload         [BrickSize][BrickSize][BrickSize]uint8
}

func newBrick() *Brick {
	return &Brick{}
}

// IsEmpty reports whether every voxel in the brick is empty.
func (b *Brick) IsEmpty() bool {
	return b.OccupancyMask64 == 0
}

// SetVoxel writes val (an element's palette index) at the brick-local
// coordinate (bx,by,bz) and updates the occupancy mask for that voxel's
// micro-cell.
func (b *Brick) SetVoxel(bx, by, bz int, val uint8) {
	b.Payload[bx][by][bz] = val

	mx, my, mz := bx/MicroSize, by/MicroSize, bz/MicroSize
	bitIdx := mx + my*4 + mz*16

	if val != 0 {
		b.OccupancyMask64 |= 1 << bitIdx
		return
	}

	startX, startY, startZ := mx*MicroSize, my*MicroSize, mz*MicroSize
	for x := 0; x < MicroSize; x++ {
		for y := 0; y < MicroSize; y++ {
			for z := 0; z < MicroSize; z++ {
				if b.Payload[startX+x][startY+y][startZ+z] != 0 {
					return
				}
			}
		}
	}
	b.OccupancyMask64 &^= 1 << bitIdx
}

// Sector packs up to SectorBricks^3 bricks, storing only the live ones in
// PackedBricks and using a 64-bit presence mask plus a popcount-based
// index to locate one without scanning.
type Sector struct {
	Coords       [3]int
	BrickMask64  uint64
	PackedBricks []*Brick
}

func newSector(sx, sy, sz int) *Sector {
	return &Sector{Coords: [3]int{sx, sy, sz}}
}

func (s *Sector) packedIndex(flatIdx int) int {
	below := uint64(1)<<flatIdx - 1
	return bits.OnesCount64(s.BrickMask64 & below)
}

func (s *Sector) getBrick(bx, by, bz int) *Brick {
	flatIdx := bx + by*SectorBricks + bz*SectorBricks*SectorBricks
	if s.BrickMask64&(1<<flatIdx) == 0 {
		return nil
	}
	return s.PackedBricks[s.packedIndex(flatIdx)]
}

func (s *Sector) getOrCreateBrick(bx, by, bz int) *Brick {
	flatIdx := bx + by*SectorBricks + bz*SectorBricks*SectorBricks
	idx := s.packedIndex(flatIdx)
	if s.BrickMask64&(1<<flatIdx) != 0 {
		return s.PackedBricks[idx]
	}

	b := newBrick()
	s.PackedBricks = append(s.PackedBricks, nil)
	copy(s.PackedBricks[idx+1:], s.PackedBricks[idx:])
	s.PackedBricks[idx] = b
	s.BrickMask64 |= 1 << flatIdx
	return b
}

func (s *Sector) removeBrickIfEmpty(bx, by, bz int) {
	flatIdx := bx + by*SectorBricks + bz*SectorBricks*SectorBricks
	if s.BrickMask64&(1<<flatIdx) == 0 {
		return
	}
	idx := s.packedIndex(flatIdx)
	if !s.PackedBricks[idx].IsEmpty() {
		return
	}
	s.PackedBricks = append(s.PackedBricks[:idx], s.PackedBricks[idx+1:]...)
	s.BrickMask64 &^= 1 << flatIdx
}

// BrickMap is the full sparse voxel mirror: a map of Sector keyed by
// sector coordinate, plus the set of sectors touched since the last
// ClearDirty call so a renderer can re-upload only what changed.
type BrickMap struct {
	Sectors      map[[3]int]*Sector
	DirtySectors map[[3]int]bool
}

// NewBrickMap returns an empty BrickMap.
func NewBrickMap() *BrickMap {
	return &BrickMap{
		Sectors:      make(map[[3]int]*Sector),
		DirtySectors: make(map[[3]int]bool),
	}
}

// ClearDirty resets the dirty-sector set; call after a renderer has
// consumed it.
func (m *BrickMap) ClearDirty() {
	m.DirtySectors = make(map[[3]int]bool)
}

func sectorAndLocal(g int) (sector, local int) {
	sector, local = g/SectorSize, g%SectorSize
	if local < 0 {
		local += SectorSize
		sector--
	}
	return sector, local
}

// SetVoxel writes val at global grid coordinate (gx,gy,gz), creating or
// dropping sectors/bricks as occupancy requires.
func (m *BrickMap) SetVoxel(gx, gy, gz int, val uint8) {
	sx, slx := sectorAndLocal(gx)
	sy, sly := sectorAndLocal(gy)
	sz, slz := sectorAndLocal(gz)

	bx, vx := slx/BrickSize, slx%BrickSize
	by, vy := sly/BrickSize, sly%BrickSize
	bz, vz := slz/BrickSize, slz%BrickSize

	sKey := [3]int{sx, sy, sz}

	if val == 0 {
		sector, ok := m.Sectors[sKey]
		if !ok {
			return
		}
		brick := sector.getBrick(bx, by, bz)
		if brick == nil {
			return
		}
		brick.SetVoxel(vx, vy, vz, 0)
		m.DirtySectors[sKey] = true
		sector.removeBrickIfEmpty(bx, by, bz)
		if sector.IsEmpty() {
			delete(m.Sectors, sKey)
		}
		return
	}

	sector, ok := m.Sectors[sKey]
	if !ok {
		sector = newSector(sx, sy, sz)
		m.Sectors[sKey] = sector
	}
	brick := sector.getOrCreateBrick(bx, by, bz)
	brick.SetVoxel(vx, vy, vz, val)
	m.DirtySectors[sKey] = true
}

// IsEmpty reports whether a sector has no live bricks left.
func (s *Sector) IsEmpty() bool {
	return s.BrickMask64 == 0
}

// GetVoxel returns (found, value) for the voxel at global coordinates.
func (m *BrickMap) GetVoxel(gx, gy, gz int) (bool, uint8) {
	sx, slx := sectorAndLocal(gx)
	sy, sly := sectorAndLocal(gy)
	sz, slz := sectorAndLocal(gz)

	sector, ok := m.Sectors[[3]int{sx, sy, sz}]
	if !ok {
		return false, 0
	}
	bx, vx := slx/BrickSize, slx%BrickSize
	by, vy := sly/BrickSize, sly%BrickSize
	bz, vz := slz/BrickSize, slz%BrickSize

	brick := sector.getBrick(bx, by, bz)
	if brick == nil {
		return false, 0
	}
	return true, brick.Payload[vx][vy][vz]
}
