package voxsim

// SwapBehavior is the resolved outcome of a mover attempting to enter a
// voxel occupied (or not) by another particle.
type SwapBehavior uint8

const (
	NOOP SwapBehavior = iota
	SWAP
	OccupySame
	SPECIAL
	notEvaledYet
)

// SwapMatrix is the precomputed (mover type, occupant type) -> behavior
// table, sized (N+1)x(N+1) so index 0 (PT_NONE, i.e. empty) is valid.
type SwapMatrix [][]SwapBehavior

// SpecialOverride lets an element table register a SPECIAL entry for a
// specific (mover, occupant) pair, to be resolved at motion time by a
// caller-supplied resolver (today: always NOOP, per spec.md's open
// question on SPECIAL handling).
type SpecialOverride struct {
	Mover, Occupant uint32
}

// BuildSwapMatrix constructs the swap matrix from an element table,
// following the original's _init_can_move exactly:
//   - every element swaps freely with empty (PT_NONE) in both directions
//   - a heavier mover displaces ("swaps with") a lighter occupant
//   - two Energy-state elements occupy the same cell rather than swapping
//   - any (mover, occupant) pair named in overrides is forced to SPECIAL,
//     taking precedence over the weight/energy rules above
func BuildSwapMatrix(elements ElementTable, overrides ...SpecialOverride) SwapMatrix {
	n := len(elements)
	m := make(SwapMatrix, n)
	for i := range m {
		m[i] = make([]SwapBehavior, n)
	}

	for mover := 1; mover < n; mover++ {
		m[mover][PT_NONE] = SWAP
		m[PT_NONE][mover] = SWAP

		moverEl := elements[mover]
		for occupant := 1; occupant < n; occupant++ {
			occupantEl := elements[occupant]

			if moverEl.Weight > occupantEl.Weight {
				m[mover][occupant] = SWAP
			}
			if moverEl.State == Energy && occupantEl.State == Energy {
				m[mover][occupant] = OccupySame
			}
		}
	}

	for _, ov := range overrides {
		if int(ov.Mover) < n && int(ov.Occupant) < n {
			m[ov.Mover][ov.Occupant] = SPECIAL
		}
	}

	return m
}

// Lookup returns the behavior for a mover of type `mover` attempting to
// enter a cell occupied by `occupant` (occupant == PT_NONE for empty).
func (m SwapMatrix) Lookup(mover, occupant uint32) SwapBehavior {
	if int(mover) >= len(m) || int(occupant) >= len(m) {
		return NOOP
	}
	return m[mover][occupant]
}
