package krunkerbot

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *log.Logger { return log.New(io.Discard, "", 0) }

type fakeGameLister struct {
	games []GameDescriptor
	err   error
}

func (f *fakeGameLister) ListGames() ([]GameDescriptor, error) { return f.games, f.err }

// flatArenaJSON mirrors worldmap's TestMapNew_FlatArena fixture: a floor
// slab plus a tall pillar to give map_bounds enough vertical headroom for a
// standing player.
func flatArenaJSON(name string) []byte {
	return []byte(`{
		"name": "` + name + `",
		"xyz": [40, 2, 40, 2, 22, 2],
		"objects": [
			{"p": [0, -2, 0], "si": 0},
			{"p": [15, -2, 15], "si": 1}
		],
		"config": {"modes": [0]},
		"spawns": [[0, 0.6, 0]]
	}`)
}

func TestNew_LoadsMode0MapsInParallel(t *testing.T) {
	c, err := New(11, "key", [][]byte{flatArenaJSON("a"), flatArenaJSON("b")}, &fakeGameLister{}, discardLogger())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a", "b"}, c.AvailableMaps())

	m, ok := c.Map("a")
	require.True(t, ok)
	assert.Equal(t, "a", m.Name())

	_, ok = c.Map("missing")
	assert.False(t, ok)
}

func TestNew_SkipsMapsWithoutMode0(t *testing.T) {
	blob := []byte(`{"name": "ranked-only", "xyz": [2,2,2], "config": {"modes": [1]}}`)
	c, err := New(11, "key", [][]byte{blob}, &fakeGameLister{}, discardLogger())
	require.NoError(t, err)
	assert.Empty(t, c.AvailableMaps())
}

func TestNew_AbortsOnFirstMapError(t *testing.T) {
	blob := []byte(`{"name": "broken", "xyz": [2,2,2], "config": {"modes": [0]}, "spawns": [[0, null, 0]]}`)
	_, err := New(11, "key", [][]byte{blob}, &fakeGameLister{}, discardLogger())
	assert.Error(t, err)
}

func TestNew_RejectsMalformedJSON(t *testing.T) {
	_, err := New(11, "key", [][]byte{[]byte("not json")}, &fakeGameLister{}, discardLogger())
	assert.Error(t, err)
}

func TestGames_DelegatesToGameLister(t *testing.T) {
	want := []GameDescriptor{{Host: "h", GameID: "g", ClientID: "c"}}
	c, err := New(11, "key", nil, &fakeGameLister{games: want}, discardLogger())
	require.NoError(t, err)

	got, err := c.Games()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
