package worldmap

import "github.com/krunkerbot/client/geometry"

// cellCoord is an (x,y,z) grid index used internally by the walkable-grid
// builder; geometry.Cell is the public equivalent used by pathfind/player.
type cellCoord struct{ x, y, z int }

// neighbours returns the 3D Moore-minus-edges 14-cell set (edges=false) or
// the full 26-cell 3D Moore neighborhood (edges=true), filtered to cells
// that lie inside the grid (spec §4.5).
func neighbours(c cellCoord, nx, ny, nz int, edges bool) []cellCoord {
	base := []cellCoord{
		{c.x, c.y + 1, c.z},
		{c.x - 1, c.y + 1, c.z},
		{c.x + 1, c.y + 1, c.z},
		{c.x, c.y + 1, c.z - 1},
		{c.x, c.y + 1, c.z + 1},
		{c.x - 1, c.y, c.z},
		{c.x + 1, c.y, c.z},
		{c.x, c.y, c.z - 1},
		{c.x, c.y, c.z + 1},
		{c.x, c.y - 1, c.z},
		{c.x - 1, c.y - 1, c.z},
		{c.x + 1, c.y - 1, c.z},
		{c.x, c.y - 1, c.z - 1},
		{c.x, c.y - 1, c.z + 1},
	}
	if edges {
		base = append(base,
			cellCoord{c.x - 1, c.y + 1, c.z - 1},
			cellCoord{c.x - 1, c.y + 1, c.z + 1},
			cellCoord{c.x + 1, c.y + 1, c.z - 1},
			cellCoord{c.x + 1, c.y + 1, c.z + 1},
			cellCoord{c.x - 1, c.y, c.z - 1},
			cellCoord{c.x - 1, c.y, c.z + 1},
			cellCoord{c.x + 1, c.y, c.z - 1},
			cellCoord{c.x + 1, c.y, c.z + 1},
			cellCoord{c.x - 1, c.y - 1, c.z - 1},
			cellCoord{c.x - 1, c.y - 1, c.z + 1},
			cellCoord{c.x + 1, c.y - 1, c.z - 1},
			cellCoord{c.x + 1, c.y - 1, c.z + 1},
		)
	}

	out := base[:0:0]
	for _, n := range base {
		if n.x >= 0 && n.x < nx && n.y >= 0 && n.y < ny && n.z >= 0 && n.z < nz {
			out = append(out, n)
		}
	}
	return out
}

// horizontalNeighbours returns the 4 axis-aligned (edges=false) or 8 Moore
// (edges=true) horizontal neighbors, filtered to the grid's x/z extent. y is
// passed through unfiltered, matching the source's per-caller bounds checks.
func horizontalNeighbours(c cellCoord, nx, nz int, edges bool) []cellCoord {
	base := []cellCoord{
		{c.x - 1, c.y, c.z},
		{c.x + 1, c.y, c.z},
		{c.x, c.y, c.z - 1},
		{c.x, c.y, c.z + 1},
	}
	if edges {
		base = append(base,
			cellCoord{c.x - 1, c.y, c.z - 1},
			cellCoord{c.x - 1, c.y, c.z + 1},
			cellCoord{c.x + 1, c.y, c.z - 1},
			cellCoord{c.x + 1, c.y, c.z + 1},
		)
	}

	out := base[:0:0]
	for _, n := range base {
		if n.x >= 0 && n.x < nx && n.z >= 0 && n.z < nz {
			out = append(out, n)
		}
	}
	return out
}

// isCellWalkable applies the preprocessor's standing-room/ramp/ladder rules
// to a single occupancy-grid cell (spec §4.5 "is_walkable(c)").
func isCellWalkable(c cellCoord, occ grid3) bool {
	if c.x == 0 || c.x+1 >= occ.nx ||
		c.y < 2 || c.y+PlayerHeight > occ.ny ||
		c.z == 0 || c.z+1 >= occ.nz {
		return false
	}

	for i := 0; i < PlayerHeight-1; i++ {
		if occ.at(c.x, c.y+i, c.z) == 1 {
			return false
		}
	}

	if occ.at(c.x, c.y-1, c.z) == 0 {
		return false
	}

	switch occ.at(c.x, c.y, c.z) {
	case 0:
		for i := 0; i < 2; i++ {
			if occ.at(c.x-1, c.y-i, c.z) == 3 || occ.at(c.x-1, c.y-i, c.z) == 5 ||
				occ.at(c.x+1, c.y-i, c.z) == 3 || occ.at(c.x+1, c.y-i, c.z) == 5 ||
				occ.at(c.x, c.y-i, c.z-1) == 2 || occ.at(c.x, c.y-i, c.z-1) == 4 ||
				occ.at(c.x, c.y-i, c.z+1) == 2 || occ.at(c.x, c.y-i, c.z+1) == 4 {
				return false
			}
		}

		for _, n := range horizontalNeighbours(c, occ.nx, occ.nz, true) {
			if occ.at(n.x, n.y-2, n.z) == 0 && occ.at(n.x, n.y-1, n.z) == 0 && occ.at(n.x, n.y, n.z) == 0 {
				return false
			}
			if occ.at(n.x, n.y+1, n.z) == 1 {
				return false
			}
		}
	case 6:
		xLadders := occ.at(c.x-1, c.y, c.z) == 6 && occ.at(c.x+1, c.y, c.z) == 6
		zLadders := occ.at(c.x, c.y, c.z-1) == 6 && occ.at(c.x, c.y, c.z+1) == 6
		if !xLadders && !zLadders {
			return false
		}
	}

	return true
}

// buildWalkableGrid flood-fills reachability from spawns over occ, producing
// the final walkable grid: 0 not walkable, 1 walkable, 2 walkable ladder
// (spec §4.5 "Compute walkable grid via flood fill from spawns").
func buildWalkableGrid(occ grid3, bounds geometry.AABB, spawns []geometry.Vec3) (grid3, error) {
	walkable := newOccGrid(occ.nx, occ.ny, occ.nz)

	queue := make([]cellCoord, 0, len(spawns))
	for _, spawn := range spawns {
		gc := geometry.PositionToCell(bounds, spawn)
		c := cellCoord{gc.X, gc.Y, gc.Z}
		if occ.at(c.x, c.y, c.z) != 0 {
			c.y++
		}
		queue = append(queue, c)
	}

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]

		if !occ.inBounds(c.x, c.y, c.z) {
			return grid3{}, newParseError(OutOfBoundsCell, "flood fill cell (%d,%d,%d) out of bounds", c.x, c.y, c.z)
		}
		if walkable.at(c.x, c.y, c.z) != 0 {
			continue
		}

		occAtC := occ.at(c.x, c.y, c.z)
		if occAtC == 6 {
			walkable.set(c.x, c.y, c.z, 2)
		} else {
			walkable.set(c.x, c.y, c.z, 1)
		}

		if occAtC == 0 {
			for _, n := range horizontalNeighbours(c, occ.nx, occ.nz, false) {
				switch {
				case isCellWalkable(n, occ):
					queue = append(queue, n)
				case isCellWalkable(cellCoord{n.x, n.y + 1, n.z}, occ):
					queue = append(queue, cellCoord{n.x, n.y + 1, n.z})
				case n.y > 0 && isCellWalkable(cellCoord{n.x, n.y - 1, n.z}, occ):
					queue = append(queue, cellCoord{n.x, n.y - 1, n.z})
				}
			}
		} else {
			for _, n := range neighbours(c, occ.nx, occ.ny, occ.nz, true) {
				if isCellWalkable(n, occ) {
					queue = append(queue, n)
				}
			}
		}
	}

	return walkable, nil
}
