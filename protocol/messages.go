// Package protocol builds and parses the small closed set of tagged-array
// messages the client understands (spec §4.3). Builders return values ready
// for codec.Rolling.Encode / transport.Socket.Send; parsers take a decoded
// message's argument tail and extract the fields the player engine needs.
package protocol

import (
	"errors"
	"math"
	"strconv"
	"time"
)

// ErrWrongMessageType is returned when an inbound message's shape does not
// match what its type implies. Per spec §7/§9 these are logged and skipped
// by the caller rather than treated as fatal.
var ErrWrongMessageType = errors.New("protocol: wrong message type")

// --- Outbound builders ---

// Pong builds ["po"].
func Pong() any { return []any{"po"} }

// Load builds ["load", null].
func Load() any { return []any{"load", nil} }

// Login builds ["a", 1, [username, password, null], null].
func Login(username, password string) any {
	return []any{"a", 1, []any{username, password, nil}, nil}
}

// Enter builds the fixed "en" enter-game message (spec §4.3).
func Enter() any {
	return []any{
		"en",
		[]any{
			0, 2482, []any{-1, -1}, -1, -1, 2, 0, 0, 1, -1, -1, 1, 0,
			-1, -1, -1, -1, -1, -1, 0, -1, -1, 1, 1, 1, 1, -1,
		},
		16, 18, false,
	}
}

// InitTick builds the fixed "q" init-tick message (spec §4.3).
func InitTick() any {
	return []any{
		"q", 0, 0, "3000", 2, []any{0, 0},
		map[string]any{
			"0-4": -1, "0-5": 0, "0-6": 0, "0-7": 0, "0-8": 0, "0-9": 0,
			"0-10": 0, "0-11": 0, "0-12": 0, "0-13": 0, "0-14": 0,
		},
	}
}

// TickDt computes the dt field used by a regular tick: the tick interval in
// microseconds divided by 10, rounded, and clamped to 3333 (spec §4.3, §8).
func TickDt(tickInterval time.Duration) int {
	micros := float64(tickInterval.Microseconds())
	dt := int(math.Round(micros / 10))
	if dt > 3333 {
		dt = 3333
	}
	return dt
}

// Tick builds a regular "q" tick message. rotation is nil for a null
// rotation field, or a radians value to be packed as [0, round(-1000*θ)].
// state is nil for a null state field, or a JSON-encodable object literal
// (e.g. map[string]any{"0-4": 1}).
func Tick(tickNum uint32, tickInterval time.Duration, rotation *float64, state any) any {
	var rotationField any
	if rotation != nil {
		rotationField = []any{0, int(math.Round(-1000 * *rotation))}
	}

	var stateField any
	if state != nil {
		stateField = state
	}

	return []any{"q", 0, tickNum, strconv.Itoa(TickDt(tickInterval)), 2, rotationField, stateField}
}

// WalkState builds the tick state object that toggles the walk-on bit:
// {"0-4": 1} when on, {"0-4": 0} when off (spec §4.3, §4.4 walk_to).
func WalkState(on bool) map[string]any {
	if on {
		return map[string]any{"0-4": 1}
	}
	return map[string]any{"0-4": 0}
}

// --- Inbound parsers ---

// ParseIOInit extracts the server-assigned player id from an "io-init"
// message's argument tail.
func ParseIOInit(args []any) (string, error) {
	if len(args) == 0 {
		return "", ErrWrongMessageType
	}
	id, ok := args[0].(string)
	if !ok {
		return "", ErrWrongMessageType
	}
	return id, nil
}

// Vec3Like keeps the parser self-contained, with no dependency on
// geometry; player converts this into geometry.Vec3.
type Vec3Like struct {
	X, Y, Z float64
}

// ParseSpawnPosition scans a "0" (spawn) message's flat id/coordinate array
// for playerID and returns the position that follows it, or nil if
// playerID is not present.
func ParseSpawnPosition(args []any, playerID string) (*Vec3Like, error) {
	if len(args) == 0 {
		return nil, ErrWrongMessageType
	}
	flat, ok := args[0].([]any)
	if !ok {
		return nil, ErrWrongMessageType
	}

	idx := -1
	for i, v := range flat {
		if s, ok := v.(string); ok && s == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, nil
	}

	x, okX := asFloat(flat, idx+2)
	y, okY := asFloat(flat, idx+3)
	z, okZ := asFloat(flat, idx+4)
	if !okX || !okY || !okZ {
		return nil, ErrWrongMessageType
	}
	return &Vec3Like{X: x, Y: y, Z: z}, nil
}

// PlayerUpdate is the parsed shape of an "l" message.
type PlayerUpdate struct {
	IsDead   bool
	Tick     uint32
	Position Vec3Like
}

// ParsePlayerUpdate parses an "l" message: either the integer 0 (dead) or
// an array [tick, _, x, y, z, ...].
func ParsePlayerUpdate(args []any) (PlayerUpdate, error) {
	if len(args) == 0 {
		return PlayerUpdate{}, ErrWrongMessageType
	}

	if n, ok := asFloat(args, 0); ok {
		if n == 0 {
			return PlayerUpdate{IsDead: true}, nil
		}
		return PlayerUpdate{}, ErrWrongMessageType
	}

	arr, ok := args[0].([]any)
	if !ok {
		return PlayerUpdate{}, ErrWrongMessageType
	}

	tick, okTick := asFloat(arr, 0)
	x, okX := asFloat(arr, 2)
	y, okY := asFloat(arr, 3)
	z, okZ := asFloat(arr, 4)
	if !okTick || !okX || !okY || !okZ {
		return PlayerUpdate{}, ErrWrongMessageType
	}

	return PlayerUpdate{
		IsDead:   false,
		Tick:     uint32(tick),
		Position: Vec3Like{X: x, Y: y, Z: z},
	}, nil
}

// ParseErrorMessage extracts the human-readable string from an "error"
// style inbound message, defaulting to "" if absent.
func ParseErrorMessage(args []any) string {
	if len(args) == 0 {
		return ""
	}
	s, _ := args[0].(string)
	return s
}

func asFloat(args []any, idx int) (float64, bool) {
	if idx < 0 || idx >= len(args) {
		return 0, false
	}
	switch n := args[idx].(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
