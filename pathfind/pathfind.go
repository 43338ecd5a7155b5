// Package pathfind implements the 3D pathfinder (spec §4.6): nearest
// standable cell lookup, A* search over a worldmap.Map's walkable grid, and
// path simplification.
package pathfind

import (
	"container/heap"
	"math"

	"github.com/krunkerbot/client/geometry"
	"github.com/krunkerbot/client/worldmap"
)

// grid is the minimal read-only surface pathfind needs from a loaded map.
type grid interface {
	Bounds() geometry.AABB
	Dims() (int, int, int)
	WalkableAt(c geometry.Cell) uint8
}

// ClosestWalkableCell returns the first walkable cell found near p, searching
// p's own cell and then its 8 horizontal Moore neighbors, each probed outward
// in increasing y offsets up to 2*PlayerHeight; p's own column is scanned
// completely before any neighbor is tried. Returns ok=false if p lies
// outside the map's bounds or no walkable cell is found (spec §4.6).
func ClosestWalkableCell(m grid, p geometry.Vec3) (geometry.Cell, bool) {
	if !m.Bounds().Contains(p) {
		return geometry.Cell{}, false
	}

	nx, _, nz := m.Dims()
	center := geometry.PositionToCell(m.Bounds(), p)

	candidates := []geometry.Cell{center}
	for _, h := range horizontalMoore(center, nx, nz) {
		candidates = append(candidates, h)
	}

	for _, c := range candidates {
		for offset := 0; offset <= 2*worldmap.PlayerHeight; offset++ {
			if found, ok := probeOffset(m, c, offset); ok {
				return found, true
			}
		}
	}
	return geometry.Cell{}, false
}

func probeOffset(m grid, c geometry.Cell, offset int) (geometry.Cell, bool) {
	up := geometry.Cell{X: c.X, Y: c.Y + offset, Z: c.Z}
	if m.WalkableAt(up) != 0 {
		return up, true
	}
	if offset == 0 {
		return geometry.Cell{}, false
	}
	down := geometry.Cell{X: c.X, Y: c.Y - offset, Z: c.Z}
	if m.WalkableAt(down) != 0 {
		return down, true
	}
	return geometry.Cell{}, false
}

func horizontalMoore(c geometry.Cell, nx, nz int) []geometry.Cell {
	offsets := [8][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	out := make([]geometry.Cell, 0, 8)
	for _, o := range offsets {
		x, z := c.X+o[0], c.Z+o[1]
		if x >= 0 && x < nx && z >= 0 && z < nz {
			out = append(out, geometry.Cell{X: x, Y: c.Y, Z: z})
		}
	}
	return out
}

// moore14 enumerates the 3D Moore-minus-edges 14-cell successor set:
// top-5, middle-4, bottom-5 (spec §4.6).
func moore14(c geometry.Cell) []geometry.Cell {
	return []geometry.Cell{
		{X: c.X, Y: c.Y + 1, Z: c.Z},
		{X: c.X - 1, Y: c.Y + 1, Z: c.Z},
		{X: c.X + 1, Y: c.Y + 1, Z: c.Z},
		{X: c.X, Y: c.Y + 1, Z: c.Z - 1},
		{X: c.X, Y: c.Y + 1, Z: c.Z + 1},
		{X: c.X - 1, Y: c.Y, Z: c.Z},
		{X: c.X + 1, Y: c.Y, Z: c.Z},
		{X: c.X, Y: c.Y, Z: c.Z - 1},
		{X: c.X, Y: c.Y, Z: c.Z + 1},
		{X: c.X, Y: c.Y - 1, Z: c.Z},
		{X: c.X - 1, Y: c.Y - 1, Z: c.Z},
		{X: c.X + 1, Y: c.Y - 1, Z: c.Z},
		{X: c.X, Y: c.Y - 1, Z: c.Z - 1},
		{X: c.X, Y: c.Y - 1, Z: c.Z + 1},
	}
}

// horizontalMoore8 enumerates the 8 horizontal Moore neighbors of c,
// unfiltered (the floating-island check probes these directly).
func horizontalMoore8(c geometry.Cell) []geometry.Cell {
	offsets := [8][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	out := make([]geometry.Cell, 8)
	for i, o := range offsets {
		out[i] = geometry.Cell{X: c.X + o[0], Y: c.Y, Z: c.Z + o[1]}
	}
	return out
}

func isFloatingIsland(m grid, n geometry.Cell) bool {
	for _, h := range horizontalMoore8(n) {
		if m.WalkableAt(h) == 0 &&
			m.WalkableAt(geometry.Cell{X: h.X, Y: h.Y + 1, Z: h.Z}) == 0 &&
			m.WalkableAt(geometry.Cell{X: h.X, Y: h.Y - 1, Z: h.Z}) == 0 {
			return true
		}
	}
	return false
}

// edgeCost returns the A* edge cost of stepping from c to successor c' per
// spec §4.6: 3 for a ladder cell, 3 for a cell adjacent to a floating
// island, else 1 if c' is at the same y as c, else 2.
func edgeCost(m grid, c, cPrime geometry.Cell) int {
	switch {
	case m.WalkableAt(cPrime) == 2:
		return 3
	case isFloatingIsland(m, cPrime):
		return 3
	case cPrime.Y == c.Y:
		return 1
	default:
		return 2
	}
}

func heuristic(c, end geometry.Cell) int {
	dx := float64(c.X - end.X)
	dy := float64(c.Y - end.Y)
	dz := float64(c.Z - end.Z)
	return int(math.Floor(math.Sqrt(dx*dx + dy*dy + dz*dz)))
}

// FindPath runs A* over m's walkable grid from start to end and returns the
// simplified path, or ok=false if no path exists (spec §4.6).
func FindPath(m grid, start, end geometry.Cell) ([]geometry.Cell, bool) {
	path, ok := astar(m, start, end)
	if !ok {
		return nil, false
	}
	return SimplifyPath(m, path), true
}

type openEntry struct {
	cell     geometry.Cell
	priority int
	index    int
}

type openQueue []*openEntry

func (q openQueue) Len() int            { return len(q) }
func (q openQueue) Less(i, j int) bool   { return q[i].priority < q[j].priority }
func (q openQueue) Swap(i, j int)        { q[i], q[j] = q[j], q[i]; q[i].index, q[j].index = i, j }
func (q *openQueue) Push(x any)          { e := x.(*openEntry); e.index = len(*q); *q = append(*q, e) }
func (q *openQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}

// astar runs a textbook A* with lazy deletion: a cell may be pushed onto
// the open queue more than once as its gScore improves; closed tracks
// cells whose shortest path is already finalized so stale pops are skipped.
func astar(m grid, start, end geometry.Cell) ([]geometry.Cell, bool) {
	gScore := map[geometry.Cell]int{start: 0}
	cameFrom := map[geometry.Cell]geometry.Cell{}
	closed := map[geometry.Cell]bool{}

	open := &openQueue{{cell: start, priority: heuristic(start, end)}}
	heap.Init(open)

	for open.Len() > 0 {
		current := heap.Pop(open).(*openEntry).cell
		if closed[current] {
			continue
		}
		closed[current] = true

		if current == end {
			return reconstructPath(cameFrom, current), true
		}

		for _, successor := range moore14(current) {
			if m.WalkableAt(successor) == 0 || closed[successor] {
				continue
			}
			tentative := gScore[current] + edgeCost(m, current, successor)
			if best, seen := gScore[successor]; seen && tentative >= best {
				continue
			}
			cameFrom[successor] = current
			gScore[successor] = tentative
			heap.Push(open, &openEntry{cell: successor, priority: tentative + heuristic(successor, end)})
		}
	}
	return nil, false
}

func reconstructPath(cameFrom map[geometry.Cell]geometry.Cell, end geometry.Cell) []geometry.Cell {
	path := []geometry.Cell{end}
	for {
		prev, ok := cameFrom[path[len(path)-1]]
		if !ok {
			break
		}
		path = append(path, prev)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// SimplifyPath collapses runs of path cells that share an unobstructed
// corridor of walkable cells, keeping only the waypoints where the straight
// line to the next candidate would pass through a gap (spec §4.6).
func SimplifyPath(m grid, path []geometry.Cell) []geometry.Cell {
	if len(path) <= 2 {
		out := make([]geometry.Cell, len(path))
		copy(out, path)
		return out
	}

	simplified := []geometry.Cell{path[0]}
	fromCell := path[0]
	lastCell := path[1]

outer:
	for _, cell := range path[2:] {
		for x := minInt(cell.X, fromCell.X); x <= maxInt(cell.X, fromCell.X); x++ {
			for z := minInt(cell.Z, fromCell.Z); z <= maxInt(cell.Z, fromCell.Z); z++ {
				foundFilled := false
				for y := minInt(cell.Y, fromCell.Y); y <= maxInt(cell.Y, fromCell.Y); y++ {
					if m.WalkableAt(geometry.Cell{X: x, Y: y, Z: z}) > 0 {
						foundFilled = true
						break
					}
				}
				if !foundFilled {
					simplified = append(simplified, lastCell)
					fromCell = lastCell
					lastCell = cell
					continue outer
				}
			}
		}
		lastCell = cell
	}

	simplified = append(simplified, lastCell)
	return simplified
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
