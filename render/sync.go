package render

import "github.com/gekko3d/voxsim"

// SyncFromEngine clears val everywhere a particle moved away from since
// the last call and writes val at every live particle's current position,
// using paletteIndex of each particle's element type (type%255+1) as its
// palette index. prevMatter/prevEnergy should be the coordinate sets returned by
// the previous SyncFromEngine call; pass nil sets on the first call.
func (m *BrickMap) SyncFromEngine(e *voxsim.Engine, prevMatter, prevEnergy map[[3]int]uint8) (matter, energy map[[3]int]uint8) {
	matter = make(map[[3]int]uint8, len(prevMatter))
	energy = make(map[[3]int]uint8, len(prevEnergy))

	walk := func(store *voxsim.Store, dst map[[3]int]uint8) {
		n := store.Cap()
		for i := 1; i < n; i++ {
			p := &store.Parts[i]
			if !p.IsAlive() {
				continue
			}
			key := [3]int{p.RX, p.RY, p.RZ}
			dst[key] = paletteIndex(p.Type)
		}
	}
	walk(e.Matter, matter)
	walk(e.Energy, energy)

	for key := range prevMatter {
		if _, still := matter[key]; !still {
			m.SetVoxel(key[0], key[1], key[2], 0)
		}
	}
	for key := range prevEnergy {
		if _, still := energy[key]; !still {
			m.SetVoxel(key[0], key[1], key[2], 0)
		}
	}
	for key, val := range matter {
		m.SetVoxel(key[0], key[1], key[2], val)
	}
	for key, val := range energy {
		m.SetVoxel(key[0], key[1], key[2], val)
	}

	return matter, energy
}

// paletteIndex squashes an element type id into the byte range a Brick's
// payload can hold. Types beyond 255 alias; the viewer is a debug tool,
// not a color-accurate renderer (full palette management is out of
// scope).
func paletteIndex(elementType uint32) uint8 {
	idx := elementType % 255
	return uint8(idx + 1)
}
