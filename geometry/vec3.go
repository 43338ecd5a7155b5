// Package geometry provides the world-space primitives shared by the map
// preprocessor, the pathfinder, and the player engine: 3D vectors, axis
// aligned bounding boxes, and the cell/world coordinate transforms tying
// them to the voxel grid.
package geometry

import "math"

// CellSize is the world-unit edge length of one voxel in the occupancy and
// walkable grids.
const CellSize = 2.5

// Vec3 is a point or extent in world units.
type Vec3 struct {
	X, Y, Z float64
}

// MaxDiffXZ reports whether v and other differ by at most maxDiff on both
// the x and z axes, ignoring y entirely.
func (v Vec3) MaxDiffXZ(other Vec3, maxDiff float64) bool {
	return math.Abs(v.X-other.X) <= maxDiff && math.Abs(v.Z-other.Z) <= maxDiff
}

// MaxDiffY reports whether v and other differ by at most maxDiff on y.
func (v Vec3) MaxDiffY(other Vec3, maxDiff float64) bool {
	return math.Abs(v.Y-other.Y) <= maxDiff
}

// Cell is an integer coordinate into a voxel grid.
type Cell struct {
	X, Y, Z int
}

// PositionToCell floors a world position into the grid cell that contains it,
// relative to bounds.Min.
func PositionToCell(bounds AABB, p Vec3) Cell {
	return Cell{
		X: int(math.Floor((p.X - bounds.Min.X) / CellSize)),
		Y: int(math.Floor((p.Y - bounds.Min.Y) / CellSize)),
		Z: int(math.Floor((p.Z - bounds.Min.Z) / CellSize)),
	}
}

// CellToPosition returns the world position at the center of the given cell.
func CellToPosition(bounds AABB, c Cell) Vec3 {
	return Vec3{
		X: bounds.Min.X + float64(c.X)*CellSize + CellSize/2,
		Y: bounds.Min.Y + float64(c.Y)*CellSize + CellSize/2,
		Z: bounds.Min.Z + float64(c.Z)*CellSize + CellSize/2,
	}
}
