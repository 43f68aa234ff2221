// Package render provides an optional, deliberately thin viewer layer on
// top of a running voxsim.Engine: an orbit camera framing the grid, and a
// brick-map mirror of live particle positions for a GPU to draw from. It
// owns no simulation state of its own.
package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/voxsim"
)

// Viewer is an orbit camera that always looks at a fixed target (the
// center of the simulation grid) from a distance, rather than the
// original free-fly camera it's adapted from: a falling-sand grid has a
// natural center to frame, so orbiting it reads the simulation better
// than flying through it.
type Viewer struct {
	Target   mgl32.Vec3
	Distance float32
	Yaw      float32
	Pitch    float32

	Sensitivity float32
	ZoomSpeed   float32
}

// NewViewer returns a Viewer framing the whole grid from outside one
// corner, far enough back that the grid's bounding sphere fits in view.
func NewViewer(bounds voxsim.GridBounds) *Viewer {
	cx := float32(bounds.XRes) / 2
	cy := float32(bounds.YRes) / 2
	cz := float32(bounds.ZRes) / 2
	radius := float32(math.Sqrt(float64(cx*cx + cy*cy + cz*cz)))

	return &Viewer{
		Target:      mgl32.Vec3{cx, cy, cz},
		Distance:    radius * 2.2,
		Yaw:         0.7,
		Pitch:       0.5,
		Sensitivity: 0.003,
		ZoomSpeed:   1.0,
	}
}

// Orbit adjusts yaw/pitch by a mouse-delta-style input, clamping pitch
// away from the poles so the view never flips.
func (v *Viewer) Orbit(dx, dy float32) {
	v.Yaw += dx * v.Sensitivity
	v.Pitch += dy * v.Sensitivity

	const limit = math.Pi/2 - 0.01
	if v.Pitch > limit {
		v.Pitch = limit
	}
	if v.Pitch < -limit {
		v.Pitch = -limit
	}
}

// Zoom moves the camera toward or away from Target, never crossing it.
func (v *Viewer) Zoom(delta float32) {
	v.Distance -= delta * v.ZoomSpeed
	if v.Distance < 1 {
		v.Distance = 1
	}
}

// forward is the unit vector from Target toward the eye's look direction,
// reusing the original Z-up yaw/pitch decomposition.
func (v *Viewer) forward() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(math.Cos(float64(v.Pitch)) * math.Sin(float64(v.Yaw))),
		float32(-math.Cos(float64(v.Pitch)) * math.Cos(float64(v.Yaw))),
		float32(math.Sin(float64(v.Pitch))),
	}
}

// Eye returns the camera's world-space position.
func (v *Viewer) Eye() mgl32.Vec3 {
	return v.Target.Sub(v.forward().Mul(v.Distance))
}

// ViewMatrix returns the Z-up look-at matrix from Eye() toward Target.
func (v *Viewer) ViewMatrix() mgl32.Mat4 {
	up := mgl32.Vec3{0, 0, 1}
	return mgl32.LookAtV(v.Eye(), v.Target, up)
}

// frustumRow is one (rowA, rowB, sign) recipe for building a frustum plane
// from two rows of a view-projection matrix, used to collapse the six
// near-identical plane extractions below into one loop.
type frustumRow struct {
	rowA, rowB int
	sign       float32
}

var frustumRows = [6]frustumRow{
	{3, 0, 1},  // left
	{3, 0, -1}, // right
	{3, 1, 1},  // bottom
	{3, 1, -1}, // top
	{3, 2, 1},  // near
	{3, 2, -1}, // far
}

// FrustumPlanes extracts the six view-frustum planes (left, right, bottom,
// top, near, far; Ax+By+Cz+D=0, inward normals) from a combined
// view-projection matrix, for culling brick-map sectors outside view.
func FrustumPlanes(vp mgl32.Mat4) [6]mgl32.Vec4 {
	var planes [6]mgl32.Vec4
	for i, r := range frustumRows {
		var plane mgl32.Vec4
		for col := 0; col < 4; col++ {
			plane[col] = vp.At(r.rowA, col) + r.sign*vp.At(r.rowB, col)
		}
		length := float32(math.Sqrt(float64(plane[0]*plane[0] + plane[1]*plane[1] + plane[2]*plane[2])))
		if length > 0 {
			plane = plane.Mul(1.0 / length)
		}
		planes[i] = plane
	}
	return planes
}
