// Package world provides the voxel-world view used by the people
// simulation: coordinates, voxel path data, and edge-road search.
package world

import "fmt"

// Point16 is the x/y position of a voxel stack.
type Point16 struct {
	X int16 `json:"x"`
	Y int16 `json:"y"`
}

// NoPoint marks an unknown or off-world stack.
var NoPoint = Point16{X: -1, Y: -1}

// XYZPoint16 is the position of a single voxel.
type XYZPoint16 struct {
	X int16 `json:"x"`
	Y int16 `json:"y"`
	Z int16 `json:"z"`
}

// XY drops the height.
func (p XYZPoint16) XY() Point16 {
	return Point16{X: p.X, Y: p.Y}
}

func (p XYZPoint16) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

// TileEdge is one of the four edges of a voxel.
type TileEdge uint8

const (
	EdgeNE TileEdge = iota
	EdgeSE
	EdgeSW
	EdgeNW

	EdgeCount
	EdgeInvalid = 0xFF
)

// EdgeCoordinate is a voxel position together with one of its edges,
// for example the side of a ride where a mechanic enters.
type EdgeCoordinate struct {
	Coords XYZPoint16 `json:"coords"`
	Edge   TileEdge   `json:"edge"`
}

// ManhattanDistance is |dx| + |dy| + |dz| between two voxels.
func ManhattanDistance(a, b XYZPoint16) int {
	return abs(int(a.X)-int(b.X)) + abs(int(a.Y)-int(b.Y)) + abs(int(a.Z)-int(b.Z))
}

// StepToward moves p one voxel closer to dest, x first, then y, then z.
// It returns p unchanged when the two are equal.
func StepToward(p, dest XYZPoint16) XYZPoint16 {
	switch {
	case p.X < dest.X:
		p.X++
	case p.X > dest.X:
		p.X--
	case p.Y < dest.Y:
		p.Y++
	case p.Y > dest.Y:
		p.Y--
	case p.Z < dest.Z:
		p.Z++
	case p.Z > dest.Z:
		p.Z--
	}
	return p
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
