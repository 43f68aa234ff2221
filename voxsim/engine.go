package voxsim

import "github.com/google/uuid"

// GravityMode selects how gravity's direction is computed for a given
// particle position (spec.md §4.G).
type GravityMode int

const (
	GravityVertical GravityMode = iota
	GravityZeroG
	GravityRadial
)

// Engine owns one simulation's full state: the particle store, the pmap
// and photons position maps, the element table and swap matrix, and the
// bookkeeping (frame count, gravity mode) needed to step it forward.
type Engine struct {
	id uuid.UUID

	Bounds   GridBounds
	Elements ElementTable
	Swap     SwapMatrix

	Matter *Store
	Energy *Store

	pmap    *posMap
	photons *posMap

	GravityMode GravityMode
	RadialCenter [3]float32

	FrameCount uint64
	partsCount int

	// Debug gates invariant assertions: when true, violated invariants
	// panic; when false they are silently tolerated (matches the
	// original's #ifdef DEBUG guards).
	Debug bool

	Logger Logger

	air AirSampler
}

// NewEngine constructs an Engine over a grid of the given bounds and
// element table. swap is normally BuildSwapMatrix(elements, ...).
func NewEngine(bounds GridBounds, elements ElementTable, swap SwapMatrix) *Engine {
	n := bounds.NumCells()
	return &Engine{
		id:       uuid.New(),
		Bounds:   bounds,
		Elements: elements,
		Swap:     swap,
		Matter:   NewStore(n),
		Energy:   NewStore(n),
		pmap:     newPosMap(bounds),
		photons:  newPosMap(bounds),
		GravityMode: GravityVertical,
		Logger:   NewNopLogger(),
	}
}

// ID returns this engine instance's stable identity, useful for
// correlating log lines across multiple concurrently running simulations.
func (e *Engine) ID() uuid.UUID {
	return e.id
}

// SetAir installs the external air velocity field this engine's Advection
// pass samples from. A nil air field disables advection.
func (e *Engine) SetAir(a AirSampler) {
	e.air = a
}

// PartsCount returns the number of live particles (matter + energy);
// CreatePart and KillPart update it immediately.
func (e *Engine) PartsCount() int {
	return e.partsCount
}

// MatterTypeAt returns the element type occupying (x,y,z) in the matter
// map, or PT_NONE if empty. Exposed for element Update hooks (e.g. a
// neighbor-counting rule) that need read access without reaching into the
// engine's private position maps.
func (e *Engine) MatterTypeAt(x, y, z int) uint32 {
	return e.pmap.occupantType(x, y, z)
}

// EnergyTypeAt is MatterTypeAt's counterpart for the photons map.
func (e *Engine) EnergyTypeAt(x, y, z int) uint32 {
	return e.photons.occupantType(x, y, z)
}

// storeFor returns the store and position map backing elementType's state
// (Energy -> photons/Energy store, everything else -> pmap/Matter store).
func (e *Engine) storeFor(elementType uint32) (*Store, *posMap) {
	if e.Elements.Get(elementType).State == Energy {
		return e.Energy, e.photons
	}
	return e.Matter, e.pmap
}

// CreatePart spawns a new particle of elementType at (x,y,z). It fails if
// the position is out of bounds, already occupied in the relevant map, or
// the backing store is full.
func (e *Engine) CreatePart(elementType uint32, x, y, z int) (int32, error) {
	if e.Bounds.OutOfBounds(x, y, z) {
		return -1, ErrOutOfBounds
	}

	store, pm := e.storeFor(elementType)

	if pm.occupantType(x, y, z) != PT_NONE {
		e.Logger.Warnf("CreatePart: cell (%d,%d,%d) already occupied", x, y, z)
		return -1, ErrAlreadyOccupied
	}

	i := store.alloc()
	if i < 0 {
		e.Logger.Warnf("CreatePart: particle store full for type %d", elementType)
		return -1, ErrPartsFull
	}

	p := &store.Parts[i]
	*p = Particle{
		ID:   i,
		Type: elementType,
		X:    float32(x), Y: float32(y), Z: float32(z),
		RX: x, RY: y, RZ: z,
	}
	// Initialize frame-parity flags to the opposite of the current frame's
	// parity so this particle's update/move phases run on the very tick
	// they were created, rather than being skipped as "already visited".
	notYetVisited := !updateParity(e.FrameCount)
	p.Flag.set(FlagUpdateFrame, notYetVisited)
	p.Flag.set(FlagMoveFrame, notYetVisited)
	if e.Elements.Get(elementType).State == Energy {
		p.Flag.set(FlagIsEnergy, true)
	}

	pm.set(x, y, z, PackPmap(elementType, i))
	e.partsCount++

	return i, nil
}

// KillPart removes the particle at store slot i, clearing its map entry
// (only if the entry still points at i) and returning the slot to the
// free list.
func (e *Engine) KillPart(i int32) {
	store, pm := e.storeForSlot(i)
	p := &store.Parts[i]
	if !p.IsAlive() {
		return
	}

	if pm.occupantID(p.RX, p.RY, p.RZ) == i {
		pm.set(p.RX, p.RY, p.RZ, 0)
	}

	store.free(i)
	e.partsCount--
}

// storeForSlot resolves which store/map a slot index belongs to, given it
// was allocated by CreatePart's storeFor dispatch. It is used by KillPart,
// which receives only a raw slot id.
func (e *Engine) storeForSlot(i int32) (*Store, *posMap) {
	// A slot index alone is ambiguous between the two stores: a live
	// matter particle at i wins, otherwise the energy store is returned,
	// so an id that is live in both stores resolves to matter.
	if int(i) < len(e.Matter.Parts) && e.Matter.Parts[i].IsAlive() {
		return e.Matter, e.pmap
	}
	return e.Energy, e.photons
}

// SwapPart exchanges the positions of two live particles a and b, one of
// which is moving into the other's cell. It updates X/Y/Z, RX/RY/RZ, and
// the position map entries for both, using the store and map passed in
// for each (an energy particle and a matter particle may legitimately
// swap, in which case each map's entry at the cell its particle left is
// cleared).
func (e *Engine) SwapPart(a, b int32, aStore, bStore *Store, aMap, bMap *posMap) {
	pa := &aStore.Parts[a]
	pb := &bStore.Parts[b]

	pa.X, pb.X = pb.X, pa.X
	pa.Y, pb.Y = pb.Y, pa.Y
	pa.Z, pb.Z = pb.Z, pa.Z
	pa.RX, pb.RX = pb.RX, pa.RX
	pa.RY, pb.RY = pb.RY, pa.RY
	pa.RZ, pb.RZ = pb.RZ, pa.RZ

	if aMap != bMap {
		aMap.set(pb.RX, pb.RY, pb.RZ, 0)
		bMap.set(pa.RX, pa.RY, pa.RZ, 0)
	}

	aMap.set(pa.RX, pa.RY, pa.RZ, PackPmap(pa.Type, a))
	bMap.set(pb.RX, pb.RY, pb.RZ, PackPmap(pb.Type, b))
}

// CycleGravityMode advances to the next gravity mode in ZeroG -> Vertical
// -> Radial -> ZeroG order, matching the original's debug-key cycling.
func (e *Engine) CycleGravityMode() {
	switch e.GravityMode {
	case GravityZeroG:
		e.GravityMode = GravityVertical
	case GravityVertical:
		e.GravityMode = GravityRadial
	case GravityRadial:
		e.GravityMode = GravityZeroG
	}
}
