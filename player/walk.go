package player

import (
	"math"
	"time"

	"github.com/krunkerbot/client/geometry"
	"github.com/krunkerbot/client/pathfind"
)

// walkTo implements spec §4.4's walk_to: pathfind to target, then steer the
// tick loop cell by cell until each is reached or the walk fails.
func (a *playerActor) walkTo(target geometry.Vec3) error {
	if a.disconnected {
		return ErrDisconnected
	}
	if !a.inGame {
		return ErrStateError
	}
	if a.currentMap == nil {
		return newPathError(NoMap)
	}

	start, ok := pathfind.ClosestWalkableCell(a.currentMap, a.position)
	if !ok {
		return newPathError(PositionNotWalkable)
	}
	end, ok := pathfind.ClosestWalkableCell(a.currentMap, target)
	if !ok {
		return newPathError(PositionNotWalkable)
	}

	path, ok := pathfind.FindPath(a.currentMap, start, end)
	if !ok {
		return newPathError(NoPath)
	}

	a.walking = true
	a.sendWalkState(true)

	lastCell := start
	if len(path) > 0 {
		lastCell = path[0]
	}

	for _, cell := range path[1:] {
		if err := a.walkToCell(cell, &lastCell); err != nil {
			a.walking = false
			return err
		}
	}

	a.walking = false
	a.sendWalkState(false)
	return nil
}

// walkToCell drives the tick loop toward cell until it is reached, updating
// *lastCell once it is. It is its own function so the exit check's early
// returns don't entangle with the outer path loop.
func (a *playerActor) walkToCell(cell geometry.Cell, lastCell *geometry.Cell) error {
	target := geometry.CellToPosition(a.currentMap.Bounds(), cell)

	for {
		if a.disconnected {
			return ErrDisconnected
		}
		if !a.inGame {
			return ErrPlayerDiedOrGameEnded
		}

		a.runTickStep()
		for _, ev := range a.socket.GetMessages() {
			a.handleEvent(ev)
		}
		a.lookAt(target)
		time.Sleep(a.cfg.TickInterval)

		dx := math.Abs(a.position.X - target.X)
		dz := math.Abs(a.position.Z - target.Z)
		dy := math.Abs(a.position.Y - target.Y)

		if dx <= walkXZThreshold && dz <= walkXZThreshold && (lastCell.Y >= cell.Y || dy <= walkYThreshold) {
			*lastCell = cell
			return nil
		}
	}
}
