package world

// IsGoodEdgeRoad reports whether the ground voxel of stack (x, y) holds a
// flat path, making it usable as an entry point for new guests.
func IsGoodEdgeRoad(q Query, x, y int16) bool {
	if x < 0 || y < 0 {
		return false
	}
	v := q.Voxel(GroundVoxel(q, x, y))
	return HasValidPath(v) && ImplodedPathSlope(v) < PathFlatCount
}

// FindEdgeRoad walks the four map edges, corners excluded, and returns the
// first stack that is a good edge road. NoPoint is returned when none is.
func FindEdgeRoad(q Query) Point16 {
	highestX := q.XSize() - 1
	highestY := q.YSize() - 1
	for x := int16(1); x < highestX; x++ {
		if IsGoodEdgeRoad(q, x, 0) {
			return Point16{X: x, Y: 0}
		}
		if IsGoodEdgeRoad(q, x, highestY) {
			return Point16{X: x, Y: highestY}
		}
	}
	for y := int16(1); y < highestY; y++ {
		if IsGoodEdgeRoad(q, 0, y) {
			return Point16{X: 0, Y: y}
		}
		if IsGoodEdgeRoad(q, highestX, y) {
			return Point16{X: highestX, Y: y}
		}
	}
	return NoPoint
}

// PathNeighbours returns the ground voxels next to p (in NE, SE, SW, NW
// order) that hold a valid path.
func PathNeighbours(q Query, p XYZPoint16) []XYZPoint16 {
	offsets := [EdgeCount]Point16{{X: -1}, {Y: 1}, {X: 1}, {Y: -1}}
	var out []XYZPoint16
	for _, d := range offsets {
		x, y := p.X+d.X, p.Y+d.Y
		if x < 0 || y < 0 || x >= q.XSize() || y >= q.YSize() {
			continue
		}
		n := GroundVoxel(q, x, y)
		if HasValidPath(q.Voxel(n)) {
			out = append(out, n)
		}
	}
	return out
}
