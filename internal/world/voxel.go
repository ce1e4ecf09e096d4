package world

// Imploded path slopes. Values below PathFlatCount are flat paths (the value
// encodes which neighbours connect); the ramps follow.
const PathFlatCount = 16

const (
	PathRampNE = PathFlatCount + iota
	PathRampSE
	PathRampSW
	PathRampNW
)

// PathInvalid is the slope of a voxel without a path.
const PathInvalid = 0xFF

// Voxel holds the path-related contents of one voxel.
type Voxel struct {
	Path       bool  `json:"path"`
	Slope      uint8 `json:"slope"`
	Litter     uint8 `json:"litter"`
	Vandalised bool  `json:"vandalised"` // Demolished benches or lamps along the path.
}

// HasValidPath reports whether the voxel holds a usable path.
func HasValidPath(v *Voxel) bool {
	return v != nil && v.Path
}

// ImplodedPathSlope returns the path slope of the voxel, PathInvalid without a path.
func ImplodedPathSlope(v *Voxel) uint8 {
	if !HasValidPath(v) {
		return PathInvalid
	}
	return v.Slope
}

// Query is read-only access to the voxel world.
type Query interface {
	XSize() int16
	YSize() int16
	BaseGroundHeight(x, y int16) int16
	Voxel(p XYZPoint16) *Voxel
}

// Sweeper is implemented by worlds whose path litter can be cleaned up.
type Sweeper interface {
	// SweepLitter removes the litter at p and reports whether there was any.
	SweepLitter(p XYZPoint16) bool
}

// Litterer is implemented by worlds where guests can drop litter.
type Litterer interface {
	AddLitter(p XYZPoint16, n uint8)
}

// GroundVoxel returns the position of the ground voxel of stack (x, y).
func GroundVoxel(q Query, x, y int16) XYZPoint16 {
	return XYZPoint16{X: x, Y: y, Z: q.BaseGroundHeight(x, y)}
}
