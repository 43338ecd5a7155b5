package worldmap

import (
	"math"

	"github.com/krunkerbot/client/geometry"
)

// excludeObjectIDs are raw object ids filtered out before voxelization
// (decorative/non-collidable catalog entries, spec §4.5).
var excludeObjectIDs = map[int]struct{}{
	4: {}, 13: {}, 14: {}, 15: {}, 18: {}, 23: {}, 26: {}, 29: {}, 32: {}, 38: {}, 45: {}, 77: {},
}

const chunkSize = 130 * geometry.CellSize

// PlayerHeight is the number of vertical cells a standing player occupies.
const PlayerHeight = int(15 / geometry.CellSize)

// ramp is a classified ramp object: its footprint AABB plus facing direction
// (0..3), which selects the occupancy code 2+direction.
type ramp struct {
	bounds    geometry.AABB
	direction int
}

// filteredObjects is the output of filterObjects: the map's overall bounds
// plus its three classified geometry buckets.
type filteredObjects struct {
	bounds  geometry.AABB
	objects []geometry.AABB
	ramps   []ramp
	ladders []geometry.AABB
}

// filterObjects applies the exclude/not-collidable/border rules to a raw
// map's object list and classifies survivors into generic/ramp/ladder
// buckets, extending mapBounds along the way (spec §4.5 "Filter objects").
func filterObjects(raw RawMap) (filteredObjects, error) {
	sizes := raw.sizeGroups()

	var bounds geometry.AABB // zero value: Min=Max={0,0,0}, extended below
	var objects []geometry.AABB
	var ramps []ramp
	var ladders []geometry.AABB

	for _, obj := range raw.Objects {
		if obj.NotCollidable != nil {
			continue
		}
		if obj.ID != nil {
			if _, excluded := excludeObjectIDs[*obj.ID]; excluded {
				continue
			}
		}
		if obj.SizeIndex == nil {
			continue
		}
		if *obj.SizeIndex < 0 || *obj.SizeIndex >= len(sizes) {
			return filteredObjects{}, newParseError(MissingSize, "object size index %d out of bounds (have %d sizes)", *obj.SizeIndex, len(sizes))
		}
		size := sizes[*obj.SizeIndex]

		box := geometry.AABB{
			Min: geometry.Vec3{X: obj.Position[0] - size.X/2, Y: obj.Position[1], Z: obj.Position[2] - size.Z/2},
			Max: geometry.Vec3{X: obj.Position[0] + size.X/2, Y: obj.Position[1] + size.Y, Z: obj.Position[2] + size.Z/2},
		}

		bounds.ExtendBy(box)

		if obj.Border != nil {
			box.Max.Y = geometry.MaxMapBounds.Max.Y
		}

		switch {
		case obj.ID != nil && *obj.ID == 9:
			direction := 0
			if obj.Direction != nil {
				direction = *obj.Direction
			}
			ramps = append(ramps, ramp{bounds: box, direction: direction})
		case obj.ID != nil && *obj.ID == 3:
			ladders = append(ladders, box)
		default:
			objects = append(objects, box)
		}
	}

	bounds.LimitBy(geometry.MaxMapBounds)

	return filteredObjects{bounds: bounds, objects: objects, ramps: ramps, ladders: ladders}, nil
}

// chunk is a coarse x/z tile of the map, holding references to the geometry
// that overlaps it so voxelization only has to scan nearby objects.
type chunk struct {
	bounds  geometry.AABB
	objects []geometry.AABB
	ramps   []ramp
	ladders []geometry.AABB
}

// chunkIndex tiles mapBounds into chunkSize x/z cells and buckets each
// classified AABB into the chunks it overlaps (spec §4.5 "Chunk index").
func chunkIndex(bounds geometry.AABB, objs filteredObjects) [][]chunk {
	nx := int(math.Ceil((bounds.Max.X - bounds.Min.X) / chunkSize))
	nz := int(math.Ceil((bounds.Max.Z - bounds.Min.Z) / chunkSize))
	if nx < 1 {
		nx = 1
	}
	if nz < 1 {
		nz = 1
	}

	chunks := make([][]chunk, nx)
	for x := 0; x < nx; x++ {
		chunks[x] = make([]chunk, nz)
		for z := 0; z < nz; z++ {
			cb := geometry.AABB{
				Min: geometry.Vec3{X: bounds.Min.X + float64(x)*chunkSize, Y: geometry.MaxMapBounds.Min.Y, Z: bounds.Min.Z + float64(z)*chunkSize},
				Max: geometry.Vec3{X: bounds.Min.X + float64(x)*chunkSize + chunkSize, Y: geometry.MaxMapBounds.Max.Y, Z: bounds.Min.Z + float64(z)*chunkSize + chunkSize},
			}

			c := chunk{bounds: cb}
			for _, o := range objs.objects {
				if cb.Intersects(o) {
					c.objects = append(c.objects, o)
				}
			}
			for _, r := range objs.ramps {
				if cb.Intersects(r.bounds) {
					c.ramps = append(c.ramps, r)
				}
			}
			for _, l := range objs.ladders {
				if cb.Intersects(l) {
					c.ladders = append(c.ladders, l)
				}
			}
			chunks[x][z] = c
		}
	}
	return chunks
}

// grid3 is the transient per-cell occupancy grid built during
// voxelization: 0 air, 1 solid, 2..5 ramp (2+direction), 6 ladder.
type grid3 struct {
	nx, ny, nz int
	cells      []uint8
}

func newOccGrid(nx, ny, nz int) grid3 {
	return grid3{nx: nx, ny: ny, nz: nz, cells: make([]uint8, nx*ny*nz)}
}

func (g grid3) inBounds(x, y, z int) bool {
	return x >= 0 && x < g.nx && y >= 0 && y < g.ny && z >= 0 && z < g.nz
}

func (g grid3) index(x, y, z int) int { return (x*g.ny+y)*g.nz + z }

func (g grid3) at(x, y, z int) uint8 {
	if !g.inBounds(x, y, z) {
		return 0
	}
	return g.cells[g.index(x, y, z)]
}

func (g *grid3) set(x, y, z int, v uint8) { g.cells[g.index(x, y, z)] = v }

// voxelize builds the occupancy grid for mapBounds by, for each cell,
// locating its covering chunk and assigning the first match in priority
// ladder(6) > object(1) > ramp(2+direction) (spec §4.5 "Voxelize occupancy").
// It panics if a cell falls outside every chunk: an internal invariant, not
// a recoverable error (spec §7).
func voxelize(bounds geometry.AABB, chunks [][]chunk) grid3 {
	nx := int(math.Ceil((bounds.Max.X - bounds.Min.X) / geometry.CellSize))
	ny := int(math.Ceil((bounds.Max.Y - bounds.Min.Y) / geometry.CellSize))
	nz := int(math.Ceil((bounds.Max.Z - bounds.Min.Z) / geometry.CellSize))

	grid := newOccGrid(nx, ny, nz)
	chunkCountX, chunkCountZ := len(chunks), 0
	if chunkCountX > 0 {
		chunkCountZ = len(chunks[0])
	}

	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			for z := 0; z < nz; z++ {
				cellBounds := geometry.AABB{
					Min: geometry.Vec3{X: bounds.Min.X + float64(x)*geometry.CellSize, Y: bounds.Min.Y + float64(y)*geometry.CellSize, Z: bounds.Min.Z + float64(z)*geometry.CellSize},
				}
				cellBounds.Max = geometry.Vec3{X: cellBounds.Min.X + geometry.CellSize, Y: cellBounds.Min.Y + geometry.CellSize, Z: cellBounds.Min.Z + geometry.CellSize}

				cx := int((cellBounds.Min.X - bounds.Min.X) / chunkSize)
				cz := int((cellBounds.Min.Z - bounds.Min.Z) / chunkSize)
				if cx < 0 || cx >= chunkCountX || cz < 0 || cz >= chunkCountZ {
					panic("worldmap: cell not in a chunk")
				}
				c := chunks[cx][cz]

				var cell uint8
				for _, r := range c.ramps {
					if cellBounds.Intersects(r.bounds) {
						cell = uint8(2 + r.direction)
						break
					}
				}
				for _, o := range c.objects {
					if cellBounds.Intersects(o) {
						cell = 1
						break
					}
				}
				for _, l := range c.ladders {
					if cellBounds.Intersects(l) {
						cell = 6
						break
					}
				}

				grid.set(x, y, z, cell)
			}
		}
	}

	return grid
}
