package worldmap

import "github.com/krunkerbot/client/geometry"

// RawMapObject is one entry in a raw map's object list, as published by the
// matchmaker's map catalog. Field names mirror the abbreviated keys the
// source JSON actually uses.
type RawMapObject struct {
	Position      [3]float64 `json:"p"`
	SizeIndex     *int       `json:"si"`
	ID            *int       `json:"i"`
	NotCollidable *int       `json:"l"`
	Border        *int       `json:"bo"`
	Direction     *int       `json:"d"`
}

// RawMapConfig carries the subset of a map's config the client cares about.
type RawMapConfig struct {
	Modes []int `json:"modes"`
}

// RawMap is the catalog's raw, unprocessed map description (spec §3/§4.5).
type RawMap struct {
	Name    string         `json:"name"`
	Sizes   []float64      `json:"xyz"`
	Objects []RawMapObject `json:"objects"`
	Config  RawMapConfig   `json:"config"`
	Spawns  [][]*float64   `json:"spawns"`
}

// sizeGroups reassembles the flat xyz size table into (x,y,z) triples,
// stopping at the first incomplete trailing group.
func (r RawMap) sizeGroups() []geometry.Vec3 {
	var groups []geometry.Vec3
	for i := 0; i+2 < len(r.Sizes); i += 3 {
		groups = append(groups, geometry.Vec3{X: r.Sizes[i], Y: r.Sizes[i+1], Z: r.Sizes[i+2]})
	}
	return groups
}
