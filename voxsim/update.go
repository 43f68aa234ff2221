package voxsim

// updateParity returns which parity value FlagUpdateFrame/FlagMoveFrame
// should carry for a particle visited during the tick with this frame
// count, so a particle touched twice in one tick (by moving into a slab
// that hasn't been scanned yet) is not updated twice.
func updateParity(frameCount uint64) bool {
	return frameCount%2 == 0
}

// updatePart runs one particle's full per-tick pipeline (spec.md §4.F):
// a causality gate, then (frame-parity guarded) velocity loss, advection
// sampling from the air field, the element's Update hook and the default
// move_behavior, and finally (independently frame-parity guarded and
// causality gated) raycastMovement. considerCausality is true for the
// scheduler's parallel phases, where r bounds how far a particle may
// safely reach without risking a cross-slab race; recalcFreeParticles
// passes considerCausality=false to flush whatever the parallel phases
// deferred, since by then it is running single-threaded.
func (e *Engine) updatePart(store *Store, pm *posMap, i int32, rng *RNG, considerCausality bool, r int) {
	p := &store.Parts[i]
	if !p.IsAlive() {
		return
	}

	el := e.Elements.Get(p.Type)
	if considerCausality && el.Causality > r {
		return // deferred: this element's reach exceeds the slab's safe radius
	}

	want := updateParity(e.FrameCount)

	if p.Flag.has(FlagUpdateFrame) != want {
		p.Flag.set(FlagUpdateFrame, want)

		p.VX *= el.Loss
		p.VY *= el.Loss
		p.VZ *= el.Loss

		if e.air != nil && el.Advection != 0 {
			avx, avy, avz := e.air.VelocityAt(p.RX, p.RY, p.RZ)
			p.VX += avx * el.Advection
			p.VY += avy * el.Advection
			p.VZ += avz * el.Advection
		}

		if el.Update != nil {
			if el.Update(e, i, p.RX, p.RY, p.RZ) == ResultHandled {
				p.Flag.set(FlagMoveFrame, want)
				return
			}
		}

		e.moveBehavior(store, pm, i, rng)
	}

	if p.Flag.has(FlagMoveFrame) == want {
		return
	}
	if considerCausality && absf32(p.VZ) > float32(r) {
		return // deferred: vz could reach into a neighboring slab this tick
	}
	if p.VX != 0 || p.VY != 0 || p.VZ != 0 {
		e.raycastMovement(store, pm, i, rng)
	}
	p.Flag.set(FlagMoveFrame, want)
}

// updateZSlice runs updatePart for every live matter and energy particle
// whose rounded Z falls in [zMin, zMax), using rng as this slab's private
// random source. considerCausality and r are threaded straight through to
// updatePart so a particle that could reach past this slab's bounds is
// deferred to the sequential reconciliation pass instead of raced.
func (e *Engine) updateZSlice(zMin, zMax int, rng *RNG, considerCausality bool, r int) {
	maxM := e.Matter.MaxID()
	for i := int32(1); i < maxM; i++ {
		p := &e.Matter.Parts[i]
		if p.IsAlive() && p.RZ >= zMin && p.RZ < zMax {
			e.updatePart(e.Matter, e.pmap, i, rng, considerCausality, r)
		}
	}

	maxE := e.Energy.MaxID()
	for i := int32(1); i < maxE; i++ {
		p := &e.Energy.Parts[i]
		if p.IsAlive() && p.RZ >= zMin && p.RZ < zMax {
			e.updatePart(e.Energy, e.photons, i, rng, considerCausality, r)
		}
	}
}

// recalcFreeParticles rescans every slot up to each store's current
// capacity, flushing any particle still deferred by the parallel phases'
// causality guard (considerCausality=false here, since this pass runs
// single-threaded after both phases have joined) and recomputing
// parts_count and each store's true tip, exactly as the original's
// recalc_free_particles does at the end of every tick.
func (e *Engine) recalcFreeParticles(rng *RNG) {
	e.partsCount = 0

	for _, sm := range []struct {
		store *Store
		pm    *posMap
	}{{e.Matter, e.pmap}, {e.Energy, e.photons}} {
		newMaxID := int32(0)
		for i := int32(1); i < int32(sm.store.Cap()); i++ {
			p := &sm.store.Parts[i]
			if !p.IsAlive() {
				continue
			}
			e.updatePart(sm.store, sm.pm, i, rng, false, 0)
			e.partsCount++
			if i+1 > newMaxID {
				newMaxID = i + 1
			}
		}
		sm.store.setMaxID(newMaxID)
	}
}
