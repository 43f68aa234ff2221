package voxsim

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// RNG is a per-goroutine random source. The scheduler hands each worker
// its own RNG (seeded independently) so concurrent Z-slabs never contend
// on a shared generator or reproduce the same stream.
type RNG struct {
	r *rand.Rand
}

// NewRNG returns an RNG seeded with seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// Uniform returns a float uniformly distributed in [a, b).
func (g *RNG) Uniform(a, b float32) float32 {
	return a + g.r.Float32()*(b-a)
}

// RandNormVector returns a unit vector uniformly distributed on the
// sphere, using the standard normalized-Gaussian-components construction
// so the distribution is rotation invariant (no polar clustering).
func (g *RNG) RandNormVector() mgl32.Vec3 {
	for {
		v := mgl32.Vec3{
			float32(g.r.NormFloat64()),
			float32(g.r.NormFloat64()),
			float32(g.r.NormFloat64()),
		}
		l := v.Len()
		if l > 1e-6 {
			return v.Mul(1 / l)
		}
	}
}

// RandPerpendicularVector returns a random unit vector perpendicular to dir.
// If dir is (near) the zero vector, it falls back to a random vector on the
// unit sphere since no perpendicular is well defined.
func (g *RNG) RandPerpendicularVector(dir mgl32.Vec3) mgl32.Vec3 {
	if dir.Len() < 1e-6 {
		return g.RandNormVector()
	}
	n := dir.Normalize()

	ref := mgl32.Vec3{1, 0, 0}
	if math.Abs(float64(n.X())) > 0.9 {
		ref = mgl32.Vec3{0, 1, 0}
	}

	perp := n.Cross(ref).Normalize()
	bi := n.Cross(perp)

	theta := g.Uniform(0, float32(2*math.Pi))
	return perp.Mul(float32(math.Cos(float64(theta)))).Add(bi.Mul(float32(math.Sin(float64(theta)))))
}
