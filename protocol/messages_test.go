package protocol

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickDt(t *testing.T) {
	testCases := []struct {
		name     string
		interval time.Duration
		want     int
	}{
		{"66ms clamps to 3333", 66 * time.Millisecond, 3333},
		{"10ms yields 1000", 10 * time.Millisecond, 1000},
		{"33.33ms yields 3333", 33333333 * time.Nanosecond, 3333},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TickDt(tc.interval))
		})
	}
}

func TestTick_RotationAndState(t *testing.T) {
	theta := 0.0
	msg := Tick(5, 66*time.Millisecond, &theta, map[string]any{"0-4": 1})

	arr, ok := msg.([]any)
	require.True(t, ok)
	assert.Equal(t, "q", arr[0])
	assert.Equal(t, uint32(5), arr[2])
	assert.Equal(t, "3333", arr[3])

	rotation, ok := arr[5].([]any)
	require.True(t, ok)
	assert.Equal(t, 0, rotation[1])

	state, ok := arr[6].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1, state["0-4"])
}

func TestTick_NilRotationAndState(t *testing.T) {
	msg := Tick(1, 66*time.Millisecond, nil, nil)
	arr := msg.([]any)
	assert.Nil(t, arr[5])
	assert.Nil(t, arr[6])
}

func TestParseIOInit(t *testing.T) {
	id, err := ParseIOInit([]any{"abc123"})
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)

	_, err = ParseIOInit(nil)
	assert.ErrorIs(t, err, ErrWrongMessageType)
}

func TestParseSpawnPosition(t *testing.T) {
	flat := []any{"other", float64(1), float64(10), float64(20), float64(30), "me", float64(2), float64(1), float64(6), float64(3)}

	pos, err := ParseSpawnPosition([]any{flat}, "me")
	require.NoError(t, err)
	require.NotNil(t, pos)
	assert.Equal(t, Vec3Like{X: 1, Y: 6, Z: 3}, *pos)

	pos, err = ParseSpawnPosition([]any{flat}, "missing")
	require.NoError(t, err)
	assert.Nil(t, pos)
}

func TestParsePlayerUpdate(t *testing.T) {
	dead, err := ParsePlayerUpdate([]any{float64(0)})
	require.NoError(t, err)
	assert.True(t, dead.IsDead)

	alive, err := ParsePlayerUpdate([]any{[]any{float64(42), float64(0), float64(1), float64(2), float64(3)}})
	require.NoError(t, err)
	assert.False(t, alive.IsDead)
	assert.Equal(t, uint32(42), alive.Tick)
	assert.Equal(t, Vec3Like{X: 1, Y: 2, Z: 3}, alive.Position)

	_, err = ParsePlayerUpdate([]any{"garbage"})
	assert.ErrorIs(t, err, ErrWrongMessageType)
}

func TestEnter_IsLiteral(t *testing.T) {
	msg := Enter().([]any)
	assert.Equal(t, "en", msg[0])
	assert.Equal(t, 16, msg[2])
	assert.Equal(t, 18, msg[3])
	assert.Equal(t, false, msg[4])
}

func TestWalkState(t *testing.T) {
	assert.Equal(t, map[string]any{"0-4": 1}, WalkState(true))
	assert.Equal(t, map[string]any{"0-4": 0}, WalkState(false))
}
