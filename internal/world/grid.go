package world

import "fmt"

// Grid is an in-memory voxel world: one ground height per stack and a sparse
// set of path voxels.
type Grid struct {
	xsize, ysize int16
	ground       []int16
	voxels       map[XYZPoint16]*Voxel
}

// NewGrid creates a flat world of xsize by ysize stacks at the given height.
func NewGrid(xsize, ysize, height int16) *Grid {
	g := &Grid{
		xsize:  xsize,
		ysize:  ysize,
		ground: make([]int16, int(xsize)*int(ysize)),
		voxels: make(map[XYZPoint16]*Voxel),
	}
	for i := range g.ground {
		g.ground[i] = height
	}
	return g
}

func (g *Grid) XSize() int16 { return g.xsize }
func (g *Grid) YSize() int16 { return g.ysize }

// InBounds returns true if the stack is inside the world.
func (g *Grid) InBounds(x, y int16) bool {
	return x >= 0 && y >= 0 && x < g.xsize && y < g.ysize
}

// BaseGroundHeight returns the ground height of a stack, 0 outside the world.
func (g *Grid) BaseGroundHeight(x, y int16) int16 {
	if !g.InBounds(x, y) {
		return 0
	}
	return g.ground[int(y)*int(g.xsize)+int(x)]
}

// SetGroundHeight changes the ground height of a stack.
func (g *Grid) SetGroundHeight(x, y, height int16) {
	if g.InBounds(x, y) {
		g.ground[int(y)*int(g.xsize)+int(x)] = height
	}
}

// Voxel returns the voxel at p, or nil if it is empty.
func (g *Grid) Voxel(p XYZPoint16) *Voxel {
	return g.voxels[p]
}

// SetPath lays a flat path on the ground voxel of a stack.
func (g *Grid) SetPath(x, y int16) {
	if !g.InBounds(x, y) {
		return
	}
	g.voxel(GroundVoxel(g, x, y)).Path = true
}

// SetRamp lays a sloped path on the ground voxel of a stack.
func (g *Grid) SetRamp(x, y int16, slope uint8) {
	if !g.InBounds(x, y) {
		return
	}
	v := g.voxel(GroundVoxel(g, x, y))
	v.Path = true
	v.Slope = slope
}

// RemovePath demolishes the path on the ground voxel of a stack.
func (g *Grid) RemovePath(x, y int16) {
	delete(g.voxels, GroundVoxel(g, x, y))
}

// AddLitter drops n pieces of litter on a path voxel.
func (g *Grid) AddLitter(p XYZPoint16, n uint8) {
	v := g.voxels[p]
	if v == nil {
		return
	}
	if int(v.Litter)+int(n) > 0xFF {
		v.Litter = 0xFF
		return
	}
	v.Litter += n
}

// SetVandalised marks the path furniture at p as demolished or repaired.
func (g *Grid) SetVandalised(p XYZPoint16, vandalised bool) {
	if v := g.voxels[p]; v != nil {
		v.Vandalised = vandalised
	}
}

// SweepLitter implements Sweeper.
func (g *Grid) SweepLitter(p XYZPoint16) bool {
	v := g.voxels[p]
	if v == nil || v.Litter == 0 {
		return false
	}
	v.Litter = 0
	return true
}

// PathCount returns the number of path voxels.
func (g *Grid) PathCount() int {
	n := 0
	for _, v := range g.voxels {
		if v.Path {
			n++
		}
	}
	return n
}

func (g *Grid) voxel(p XYZPoint16) *Voxel {
	v, ok := g.voxels[p]
	if !ok {
		v = &Voxel{}
		g.voxels[p] = v
	}
	return v
}

// String returns a summary of the grid.
func (g *Grid) String() string {
	return fmt.Sprintf("Grid(%dx%d, paths=%d)", g.xsize, g.ysize, g.PathCount())
}
