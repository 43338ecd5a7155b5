// Package player implements the Player engine (spec §4.4): a fixed-interval
// tick loop, the connection/play state machine, client-side motion
// prediction with server reconciliation, and the WalkTo pathfinding
// follower. Concurrency is built on internal/actor's single-goroutine actor
// model rather than a bare mutex, per spec §9's sanctioned alternative —
// every state mutation happens inside one actor's Receive, serializing the
// ticker, inbound socket messages, and user-invoked commands without a lock.
package player

import (
	"log"
	"math"
	"time"

	"github.com/krunkerbot/client/geometry"
	"github.com/krunkerbot/client/internal/actor"
	"github.com/krunkerbot/client/pathfind"
	"github.com/krunkerbot/client/protocol"
	"github.com/krunkerbot/client/transport"
	"github.com/krunkerbot/client/worldmap"
)

// MapLookup resolves a map name (as carried by an inbound "init" message) to
// a preprocessed Map from the Client's catalog.
type MapLookup func(name string) (*worldmap.Map, bool)

// Player drives one Socket's tick loop and exposes the commands a caller can
// invoke against it: WalkTo, Rotate, LookAt, Disconnect. All of its state is
// owned by a single actor goroutine; Player itself is just a thin handle.
type Player struct {
	cfg    Config
	engine *actor.Engine
	pid    *actor.PID

	tickerStop chan struct{}
	tickerDone chan struct{}
}

// New constructs a Player bound to socket. logger defaults to log.Default()
// if nil. The Player does not start ticking until Start is called.
func New(socket *transport.Socket, cfg Config, mapLookup MapLookup, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}

	engine := actor.NewEngine(logger)
	pid := engine.Spawn(func() actor.Actor {
		return &playerActor{
			cfg:       cfg,
			socket:    socket,
			mapLookup: mapLookup,
			logger:    logger,
			account:   cfg.Account,
		}
	})

	return &Player{cfg: cfg, engine: engine, pid: pid}
}

// Start launches the background ticker task (spec §5 "Player ticker task").
func (p *Player) Start() {
	p.tickerStop = make(chan struct{})
	p.tickerDone = make(chan struct{})
	go p.runTicker()
}

func (p *Player) runTicker() {
	defer close(p.tickerDone)
	ticker := time.NewTicker(p.cfg.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-p.tickerStop:
			return
		case <-ticker.C:
			p.engine.Send(p.pid, tickMsg{})
		}
	}
}

// Stop halts the ticker and the underlying actor. Idempotent only up to the
// first call; calling it twice double-closes tickerStop.
func (p *Player) Stop() {
	if p.tickerStop != nil {
		close(p.tickerStop)
		<-p.tickerDone
	}
	p.engine.Stop(p.pid)
}

// WalkTo steers the Player along a pathfound route to target, blocking
// until it arrives or fails (spec §4.4 walk_to).
func (p *Player) WalkTo(target geometry.Vec3) error {
	reply := make(chan error, 1)
	p.engine.Send(p.pid, walkToMsg{target: target, reply: reply})
	return <-reply
}

// Rotate adds delta radians to the Player's rotation, wrapping to [0, 2π).
func (p *Player) Rotate(delta float64) {
	p.engine.Send(p.pid, rotateMsg{delta: delta})
}

// LookAt points the Player's rotation at p.
func (p *Player) LookAt(point geometry.Vec3) {
	p.engine.Send(p.pid, lookAtMsg{point: point})
}

// Disconnect closes the underlying socket and stops the tick loop.
func (p *Player) Disconnect() error {
	reply := make(chan error, 1)
	p.engine.Send(p.pid, disconnectMsg{reply: reply})
	return <-reply
}

// --- actor messages ---

type tickMsg struct{}

type walkToMsg struct {
	target geometry.Vec3
	reply  chan error
}

type rotateMsg struct{ delta float64 }

type lookAtMsg struct{ point geometry.Vec3 }

type disconnectMsg struct{ reply chan error }

// playerActor owns every mutable field the spec assigns to "Player state"
// (§3). It is never touched from more than one goroutine: Receive is the
// only entry point.
type playerActor struct {
	cfg       Config
	socket    *transport.Socket
	mapLookup MapLookup
	logger    *log.Logger
	account   *Account

	tick         uint32
	position     geometry.Vec3
	rotation     float64
	walking      bool
	inGame       bool
	ready        bool
	disconnected bool
	serverID     string

	game       Game
	currentMap *worldmap.Map

	stateBuffer []snapshot
}

func (a *playerActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case actor.Started:
		a.logger.Printf("player: started")

	case actor.Stopping:
		_ = a.socket.Close()

	case tickMsg:
		if a.disconnected {
			ctx.Engine().Stop(ctx.Self())
			return
		}
		a.runTickStep()
		for _, ev := range a.socket.GetMessages() {
			a.handleEvent(ev)
		}

	case walkToMsg:
		msg.reply <- a.walkTo(msg.target)

	case rotateMsg:
		a.rotation = wrapAngle(a.rotation + msg.delta)

	case lookAtMsg:
		a.lookAt(msg.point)

	case disconnectMsg:
		a.disconnected = true
		msg.reply <- a.socket.Close()
	}
}

// runTickStep implements step 2 of the per-tick algorithm (spec §4.4): send
// a regular tick, advance position if walking, record a reconciliation
// snapshot. walk_to also calls this directly ("invoke one tick manually")
// so its per-cell loop reuses the exact same send/advance/snapshot logic.
func (a *playerActor) runTickStep() {
	if !a.inGame {
		return
	}

	rotation := a.rotation
	if err := a.socket.Send(protocol.Tick(a.tick, a.cfg.TickInterval, &rotation, nil)); err != nil {
		a.logger.Printf("player: send tick: %v", err)
	}
	a.tick++

	if a.walking {
		dist := float64(a.cfg.TickInterval.Microseconds()) * MovementSpeed
		a.position.X += dist * math.Sin(a.rotation)
		a.position.Z += dist * -math.Cos(a.rotation)
	}

	a.appendSnapshot()
}

func (a *playerActor) appendSnapshot() {
	a.stateBuffer = append(a.stateBuffer, snapshot{
		tick:     a.tick,
		position: a.position,
		rotation: a.rotation,
		walking:  a.walking,
	})
	if len(a.stateBuffer) > defaultStateBufferSize {
		a.stateBuffer = a.stateBuffer[len(a.stateBuffer)-defaultStateBufferSize:]
	}
}

func (a *playerActor) sendWalkState(on bool) {
	rotation := a.rotation
	msg := protocol.Tick(a.tick, a.cfg.TickInterval, &rotation, protocol.WalkState(on))
	if err := a.socket.Send(msg); err != nil {
		a.logger.Printf("player: send walk state: %v", err)
	}
}

func (a *playerActor) rotate(delta float64) {
	a.rotation = wrapAngle(a.rotation + delta)
}

func (a *playerActor) lookAt(p geometry.Vec3) {
	a.rotation = wrapAngle(math.Atan2(p.Z-a.position.Z, p.X-a.position.X) + math.Pi/2)
}

func wrapAngle(theta float64) float64 {
	const twoPi = 2 * math.Pi
	theta = math.Mod(theta, twoPi)
	if theta < 0 {
		theta += twoPi
	}
	return theta
}
