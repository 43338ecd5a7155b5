package player

import "github.com/krunkerbot/client/geometry"

// snapshot is one retained (tick, position, rotation, walking) entry used by
// reconciliation to replay client-side prediction after a server update
// (spec §4.4, §3 Player state).
type snapshot struct {
	tick     uint32
	position geometry.Vec3
	rotation float64
	walking  bool
}

// Game is the metadata refreshed on an inbound "init" message. The spec
// leaves its exact shape to the caller's matchmaker collaborator; this
// client keeps the one field walk_to and logging need.
type Game struct {
	MapName string
}
