package player

import (
	"math"
	"time"

	"github.com/krunkerbot/client/geometry"
	"github.com/krunkerbot/client/protocol"
	"github.com/krunkerbot/client/transport"
)

// handleEvent dispatches one drained socket event through the connection/
// play state machine (spec §4.4). Codec errors and close events are logged
// or applied directly; message events are dispatched by type.
func (a *playerActor) handleEvent(ev transport.Event) {
	switch ev.Kind {
	case transport.KindClose:
		a.disconnected = true
		return
	case transport.KindError:
		a.logger.Printf("player: codec error: %v", ev.Err)
		return
	}

	switch ev.Msg.Type {
	case "pi":
		a.send(protocol.Pong())

	case "load":
		a.send(protocol.Load())

	case "io-init":
		id, err := protocol.ParseIOInit(ev.Msg.Args)
		if err != nil {
			a.logger.Printf("player: io-init: %v", err)
			return
		}
		a.serverID = id

	case "init":
		a.handleInit(ev.Msg.Args)

	case "ready":
		if a.account != nil {
			a.send(protocol.Login(a.account.Username, a.account.Password))
		} else {
			a.ready = true
			a.send(protocol.Enter())
		}

	case "0":
		a.handleSpawn(ev.Msg.Args)

	case "l":
		a.handlePlayerUpdate(ev.Msg.Args)

	case "end":
		a.inGame = false

	default:
		// unknown types are silently ignored (spec §4.3).
	}
}

func (a *playerActor) send(v any) {
	if err := a.socket.Send(v); err != nil {
		a.logger.Printf("player: send: %v", err)
	}
}

// handleInit refreshes Game metadata and binds currentMap from the catalog
// by name, then sends "en" if already ready (spec §4.4).
//
// The wire shape of "init"'s argument is not specified beyond "refresh Game
// metadata"; this client accepts either a bare map-name string or an object
// carrying a "name" field, logging and skipping on anything else (spec §7's
// schema-drift handling).
func (a *playerActor) handleInit(args []any) {
	name, ok := parseInitMapName(args)
	if !ok {
		a.logger.Printf("player: init: could not extract map name from %v", args)
		return
	}

	a.game = Game{MapName: name}

	if a.mapLookup != nil {
		if m, found := a.mapLookup(name); found {
			a.currentMap = m
		} else {
			a.logger.Printf("player: init: unknown map %q", name)
		}
	}

	if a.ready {
		a.send(protocol.Enter())
	}
}

func parseInitMapName(args []any) (string, bool) {
	if len(args) == 0 {
		return "", false
	}
	switch v := args[0].(type) {
	case string:
		return v, true
	case map[string]any:
		if name, ok := v["name"].(string); ok {
			return name, true
		}
	}
	return "", false
}

// handleSpawn handles an "0" message: if the player's own server id is
// present in the flat id/coordinate array, enters the in-game state at the
// parsed position and kicks off the init-tick handshake (spec §4.4).
func (a *playerActor) handleSpawn(args []any) {
	if a.serverID == "" {
		a.logger.Printf("player: spawn received before io-init")
		return
	}

	pos, err := protocol.ParseSpawnPosition(args, a.serverID)
	if err != nil {
		a.logger.Printf("player: spawn: %v", err)
		return
	}
	if pos == nil {
		return
	}

	a.inGame = true
	a.walking = false
	a.position = geometry.Vec3{X: pos.X, Y: pos.Y, Z: pos.Z}
	a.send(protocol.InitTick())
	a.tick = 1
}

// handlePlayerUpdate handles an "l" message: either a death notice or a
// server position update to reconcile against (spec §4.4).
func (a *playerActor) handlePlayerUpdate(args []any) {
	update, err := protocol.ParsePlayerUpdate(args)
	if err != nil {
		a.logger.Printf("player: player update: %v", err)
		return
	}

	if update.IsDead {
		a.inGame = false
		time.Sleep(3 * time.Second)
		a.send(protocol.Enter())
		return
	}

	a.reconcile(update.Tick, geometry.Vec3{X: update.Position.X, Y: update.Position.Y, Z: update.Position.Z})
}

// reconcile applies an alive "l" update against state_buffer (spec §4.4):
// drop stale snapshots, and if the retained head snapshot disagrees with the
// server position beyond the ±0.5 x/z threshold, snap to the server
// position and replay every retained snapshot's walking delta using that
// snapshot's own rotation.
func (a *playerActor) reconcile(serverTick uint32, serverPos geometry.Vec3) {
	i := 0
	for i < len(a.stateBuffer) && a.stateBuffer[i].tick < serverTick {
		i++
	}
	a.stateBuffer = a.stateBuffer[i:]

	if len(a.stateBuffer) == 0 {
		a.position = serverPos
		return
	}

	if a.stateBuffer[0].position.MaxDiffXZ(serverPos, 0.5) {
		return
	}

	pos := serverPos
	for idx := range a.stateBuffer {
		snap := &a.stateBuffer[idx]
		if snap.walking {
			dist := float64(a.cfg.TickInterval.Microseconds()) * MovementSpeed
			pos.X += dist * math.Sin(snap.rotation)
			pos.Z += dist * -math.Cos(snap.rotation)
		}
		snap.position = pos
	}
	a.position = pos
}
