package voxsim

// AirSampler is the interface the core engine uses to read the ambient air
// velocity at a voxel position for advection. It is satisfied by
// voxsim/air.Grid but declared here, dependency-free, so the core package
// never imports the air package: the air field is an external collaborator
// the engine consumes, not a component it owns (spec.md §6).
type AirSampler interface {
	// VelocityAt returns the air velocity at the voxel containing (x,y,z).
	VelocityAt(x, y, z int) (vx, vy, vz float32)
}
