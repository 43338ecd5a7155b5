// Package worldmap implements the map preprocessor (spec §4.5): it turns a
// raw map JSON blob into a walkable voxel grid a Player can navigate, via a
// filter -> chunk -> voxelize -> flood-fill pipeline run once at load time.
package worldmap

import (
	"log"

	"github.com/krunkerbot/client/geometry"
)

// Map is the fully preprocessed, immutable result of loading one raw map.
// Its walkable grid, read through WalkableAt, is consulted by pathfind's A*
// search and closest-walkable-cell lookup; worldmap itself never plans paths.
type Map struct {
	name     string
	spawns   []geometry.Vec3
	bounds   geometry.AABB
	walkable grid3
}

// New runs the filter/chunk/voxelize/flood-fill pipeline over raw and
// returns the resulting Map, or the first ParseError encountered. logger
// defaults to log.Default() if nil.
func New(raw RawMap, logger *log.Logger) (*Map, error) {
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("worldmap: loading %q", raw.Name)

	objs, err := filterObjects(raw)
	if err != nil {
		return nil, err
	}

	spawns := make([]geometry.Vec3, 0, len(raw.Spawns))
	for _, s := range raw.Spawns {
		if len(s) < 3 {
			return nil, newParseError(ShortSpawn, "spawn has %d coordinates, want at least 3", len(s))
		}
		if s[0] == nil || s[1] == nil || s[2] == nil {
			return nil, newParseError(NullSpawn, "spawn coordinate is null")
		}
		spawns = append(spawns, geometry.Vec3{X: *s[0], Y: *s[1], Z: *s[2]})
	}

	chunks := chunkIndex(objs.bounds, objs)
	occ := voxelize(objs.bounds, chunks)
	walkable, err := buildWalkableGrid(occ, objs.bounds, spawns)
	if err != nil {
		return nil, err
	}

	logger.Printf("worldmap: finished loading %q", raw.Name)

	return &Map{name: raw.Name, spawns: spawns, bounds: objs.bounds, walkable: walkable}, nil
}

// Name returns the map's catalog name.
func (m *Map) Name() string { return m.name }

// Spawns returns the map's ordered spawn positions.
func (m *Map) Spawns() []geometry.Vec3 {
	out := make([]geometry.Vec3, len(m.spawns))
	copy(out, m.spawns)
	return out
}

// Bounds returns the map's clamped AABB.
func (m *Map) Bounds() geometry.AABB { return m.bounds }

// Dims returns the walkable grid's (nx, ny, nz) shape.
func (m *Map) Dims() (int, int, int) { return m.walkable.nx, m.walkable.ny, m.walkable.nz }

// WalkableAt reports the walkable-grid code (0 not walkable, 1 walkable,
// 2 walkable ladder) at cell c, or 0 if c is out of bounds.
func (m *Map) WalkableAt(c geometry.Cell) uint8 { return m.walkable.at(c.X, c.Y, c.Z) }
