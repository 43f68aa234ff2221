package voxsim

import "sync"

// MinCausalityRadius is the smallest per-slab causality radius the
// scheduler will tolerate; it bounds the maximum thread count so no slab
// ever gets thinner than an element with Causality==MinCausalityRadius
// could safely read or write across.
const MinCausalityRadius = 4

// WorkerCount returns how many Z-slabs (and goroutines) the scheduler
// should use for a grid of the given Z resolution, bounded by both the
// caller's maxWorkers (typically runtime.GOMAXPROCS(0)) and by
// MinCausalityRadius: ZRes / (4 * MinCausalityRadius).
func WorkerCount(zRes, maxWorkers int) int {
	capByCausality := zRes / (4 * MinCausalityRadius)
	if capByCausality < 1 {
		capByCausality = 1
	}
	if maxWorkers < capByCausality {
		return max1(maxWorkers)
	}
	return capByCausality
}

func max1(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

// Update advances the simulation by one tick: a two-phase (even/odd)
// fork-join pass over Z-slabs wide enough that no element's Causality
// radius can reach across a slab boundary within a single phase, each
// phase separated by a full barrier, followed by the sequential
// recalcFreeParticles reconciliation pass that flushes anything the
// causality guard deferred and recomputes bookkeeping. maxWorkers is
// normally runtime.GOMAXPROCS(0); pass 1 to run single-threaded.
//
// R = ZRES/(4*workers) is the per-slab causality radius (spec.md §4.E):
// the parallel phases refuse to advance any particle whose element's
// Causality, or whose own |vz|, exceeds R, since such a particle could
// reach into a neighboring goroutine's slab while it is concurrently
// running. This is the system's sole safeguard against cross-slab data
// races; recalcFreeParticles then flushes every particle deferred this
// way, single-threaded, where no such race is possible.
func (e *Engine) Update(maxWorkers int) {
	zRes := e.Bounds.ZRes
	workers := WorkerCount(zRes, maxWorkers)

	slabWidth := zRes / workers
	if slabWidth < 1 {
		slabWidth = 1
	}

	r := zRes / (4 * workers)
	if r < 1 {
		r = 1
	}

	e.Logger.Debugf("tick %d: %d workers, slab width %d, r %d, parts %d", e.FrameCount, workers, slabWidth, r, e.partsCount)

	// Phase A: even-indexed slabs run concurrently (no two adjacent
	// slabs touch in this phase, so there is no cross-slab hazard).
	e.runPhase(0, workers, 2, slabWidth, zRes, r)
	// Phase B: odd-indexed slabs run concurrently, each safely spanning
	// the boundary between two phase-A slabs that are now both settled.
	e.runPhase(1, workers, 2, slabWidth, zRes, r)

	recalcRNG := NewRNG(int64(e.FrameCount)*2 + 1)
	e.recalcFreeParticles(recalcRNG)

	e.FrameCount++
}

// runPhase launches one goroutine per slab index in [start, workers)
// stepping by stride, waits for all of them (the barrier), then returns.
// Each slab's updateZSlice call considers causality with the given
// radius r, since this phase runs concurrently with its siblings.
func (e *Engine) runPhase(start, workers, stride, slabWidth, zRes, r int) {
	var wg sync.WaitGroup
	for slab := start; slab < workers; slab += stride {
		zMin := slab * slabWidth
		zMax := zMin + slabWidth
		if slab == workers-1 {
			zMax = zRes
		}

		wg.Add(1)
		go func(zMin, zMax, slab int) {
			defer wg.Done()
			rng := NewRNG(int64(e.FrameCount)*int64(workers) + int64(slab))
			e.updateZSlice(zMin, zMax, rng, true, r)
		}(zMin, zMax, slab)
	}
	wg.Wait()
}
