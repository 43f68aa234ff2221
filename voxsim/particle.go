package voxsim

// PartFlag is a bitset carried per-particle. At least UpdateFrame,
// MoveFrame, and IsEnergy must be present (spec.md §3).
type PartFlag uint8

const (
	// FlagUpdateFrame records the parity of frame_count at which this
	// particle's element-update phase last ran, so a particle visited twice
	// in one tick (because it moved into unscanned territory) is not
	// updated twice.
	FlagUpdateFrame PartFlag = 1 << iota
	// FlagMoveFrame is the same bookkeeping for the raycast-movement phase.
	FlagMoveFrame
	// FlagIsEnergy marks a particle as living in the photons map rather
	// than pmap.
	FlagIsEnergy
)

func (f PartFlag) has(bit PartFlag) bool {
	return f&bit != 0
}

func (f *PartFlag) set(bit PartFlag, v bool) {
	if v {
		*f |= bit
	} else {
		*f &^= bit
	}
}

// PT_NONE is the element type of a dead/free particle slot.
const PT_NONE uint32 = 0

// Particle is one occupant of a voxel, either matter (in pmap) or energy (in
// photons). Free slots reuse this struct: ID holds -(next free slot) and
// Type is PT_NONE.
//
// X/Y/Z accumulate float displacement; RX/RY/RZ are the rounded integer
// voxel coordinates kept in sync by TryMove. They may drift apart by up to
// ±0.5 between moves — spec.md's sub-voxel drift open question.
type Particle struct {
	ID   int32
	Type uint32

	X, Y, Z    float32
	RX, RY, RZ int

	VX, VY, VZ float32

	// Life is scratch storage for an element's Update hook (e.g. the
	// Game-of-Life reference element uses it as a neighbor count).
	Life int32

	Flag PartFlag
}

// IsAlive reports whether this slot holds a live particle rather than a
// free-list link.
func (p *Particle) IsAlive() bool {
	return p.Type != PT_NONE
}

// IsEnergy reports whether this particle lives in the photons map.
func (p *Particle) IsEnergy() bool {
	return p.Flag.has(FlagIsEnergy)
}
