package pathfind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krunkerbot/client/geometry"
)

// fakeGrid is a hand-built walkable grid for exercising pathfind in
// isolation, without going through worldmap's voxelization pipeline.
type fakeGrid struct {
	bounds     geometry.AABB
	nx, ny, nz int
	cells      map[geometry.Cell]uint8
}

func newFakeGrid(nx, ny, nz int) *fakeGrid {
	return &fakeGrid{
		bounds: geometry.AABB{Min: geometry.Vec3{}, Max: geometry.Vec3{X: float64(nx) * geometry.CellSize, Y: float64(ny) * geometry.CellSize, Z: float64(nz) * geometry.CellSize}},
		nx:     nx, ny: ny, nz: nz,
		cells: map[geometry.Cell]uint8{},
	}
}

func (g *fakeGrid) Bounds() geometry.AABB         { return g.bounds }
func (g *fakeGrid) Dims() (int, int, int)         { return g.nx, g.ny, g.nz }
func (g *fakeGrid) WalkableAt(c geometry.Cell) uint8 {
	return g.cells[c]
}

// flatWalkableFloor marks every (x,0,z) cell in an nx*nz floor as walkable.
func flatWalkableFloor(nx, nz int) *fakeGrid {
	g := newFakeGrid(nx, 3, nz)
	for x := 0; x < nx; x++ {
		for z := 0; z < nz; z++ {
			g.cells[geometry.Cell{X: x, Y: 0, Z: z}] = 1
		}
	}
	return g
}

func TestFindPath_StraightLine(t *testing.T) {
	g := flatWalkableFloor(10, 3)
	path, ok := FindPath(g, geometry.Cell{X: 0, Y: 0, Z: 1}, geometry.Cell{X: 9, Y: 0, Z: 1})
	require.True(t, ok)
	require.NotEmpty(t, path)
	assert.Equal(t, geometry.Cell{X: 0, Y: 0, Z: 1}, path[0])
	assert.Equal(t, geometry.Cell{X: 9, Y: 0, Z: 1}, path[len(path)-1])
	// a clear straight corridor should simplify to just the two endpoints.
	assert.Len(t, path, 2)
}

func TestFindPath_NoPathWhenDisconnected(t *testing.T) {
	g := newFakeGrid(5, 3, 5)
	g.cells[geometry.Cell{X: 0, Y: 0, Z: 0}] = 1
	g.cells[geometry.Cell{X: 4, Y: 0, Z: 4}] = 1

	_, ok := FindPath(g, geometry.Cell{X: 0, Y: 0, Z: 0}, geometry.Cell{X: 4, Y: 0, Z: 4})
	assert.False(t, ok)
}

func TestAstar_TraversesSoleLadderInNarrowCorridor(t *testing.T) {
	// a single-file corridor (nz=1) forces the raw search through the
	// ladder cell; there is no detour around it. Exercised via the
	// unexported astar directly since FindPath's path simplifier would
	// otherwise collapse the fully-walkable corridor down to its endpoints.
	g := flatWalkableFloor(5, 1)
	g.cells[geometry.Cell{X: 2, Y: 0, Z: 0}] = 2

	path, ok := astar(g, geometry.Cell{X: 0, Y: 0, Z: 0}, geometry.Cell{X: 4, Y: 0, Z: 0})
	require.True(t, ok)
	assert.Contains(t, path, geometry.Cell{X: 2, Y: 0, Z: 0})
}

func TestClosestWalkableCell_OutOfBounds(t *testing.T) {
	g := flatWalkableFloor(5, 5)
	_, ok := ClosestWalkableCell(g, geometry.Vec3{X: -100, Y: 0, Z: 0})
	assert.False(t, ok)
}

func TestClosestWalkableCell_FindsGroundBelow(t *testing.T) {
	g := flatWalkableFloor(5, 5)
	p := geometry.CellToPosition(g.bounds, geometry.Cell{X: 2, Y: 2, Z: 2})
	cell, ok := ClosestWalkableCell(g, p)
	require.True(t, ok)
	assert.Equal(t, geometry.Cell{X: 2, Y: 0, Z: 2}, cell)
}

func TestSimplifyPath_ShortPathUnchanged(t *testing.T) {
	g := flatWalkableFloor(3, 3)
	path := []geometry.Cell{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}}
	assert.Equal(t, path, SimplifyPath(g, path))
}
