// Package krunkerbot is the client façade (spec §4.7): it owns the
// extracted rolling prime, the client-key bearer token, and the map catalog
// parsed once at construction, and builds Players bound to game sessions
// handed back by an external matchmaker collaborator.
package krunkerbot

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/krunkerbot/client/player"
	"github.com/krunkerbot/client/transport"
	"github.com/krunkerbot/client/worldmap"
)

// Client is constructed once per bot process. It is immutable after
// construction (spec §5): the map catalog never changes, so reads from
// multiple goroutines need no locking.
type Client struct {
	prime      uint16
	clientKey  string
	gameLister GameLister
	maps       map[string]*worldmap.Map
	logger     *log.Logger
}

// mapModeFilter is the mode id a map's config.modes must contain to be kept
// in the catalog (spec §4.7: "filtered to maps whose config.modes contains 0").
const mapModeFilter = 0

// New parses rawMapJSON (one JSON blob per catalog entry, already extracted
// from the game's client source by the caller's collaborator — spec §6)
// into Maps in parallel, keeping only those whose config.modes contains 0.
// The first map parse error aborts construction entirely. logger defaults
// to log.Default() if nil.
func New(prime uint16, clientKey string, rawMapJSON [][]byte, gameLister GameLister, logger *log.Logger) (*Client, error) {
	if logger == nil {
		logger = log.Default()
	}

	results := make([]mapParseResult, len(rawMapJSON))
	var wg sync.WaitGroup
	for i, blob := range rawMapJSON {
		i, blob := i, blob
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = parseOneMap(blob, logger)
		}()
	}
	wg.Wait()

	maps := make(map[string]*worldmap.Map, len(results))
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		if r.m != nil {
			maps[r.name] = r.m
		}
	}

	logger.Printf("krunkerbot: loaded %d map(s)", len(maps))
	return &Client{prime: prime, clientKey: clientKey, gameLister: gameLister, maps: maps, logger: logger}, nil
}

// mapParseResult is one rawMapJSON entry's outcome: either a named Map, a
// fatal error, or neither (filtered out by mapModeFilter).
type mapParseResult struct {
	name string
	m    *worldmap.Map
	err  error
}

func parseOneMap(blob []byte, logger *log.Logger) mapParseResult {
	var raw worldmap.RawMap
	if err := json.Unmarshal(blob, &raw); err != nil {
		return mapParseResult{err: fmt.Errorf("krunkerbot: decoding map blob: %w", err)}
	}

	if !containsMode(raw.Config.Modes, mapModeFilter) {
		return mapParseResult{}
	}

	m, err := worldmap.New(raw, logger)
	if err != nil {
		return mapParseResult{err: fmt.Errorf("krunkerbot: parsing map %q: %w", raw.Name, err)}
	}

	return mapParseResult{name: raw.Name, m: m}
}

func containsMode(modes []int, target int) bool {
	for _, m := range modes {
		if m == target {
			return true
		}
	}
	return false
}

// Games returns the matchmaker's current list of joinable sessions.
func (c *Client) Games() ([]GameDescriptor, error) {
	return c.gameLister.ListGames()
}

// AvailableMaps returns the catalog names of every loaded, mode-0 map.
func (c *Client) AvailableMaps() []string {
	names := make([]string, 0, len(c.maps))
	for name := range c.maps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Map returns the named map from the catalog, or ok=false if absent.
func (c *Client) Map(name string) (*worldmap.Map, bool) {
	m, ok := c.maps[name]
	return m, ok
}

// NewPlayer opens a Socket to desc, binds it to a Player using this
// Client's map catalog for "init" lookups, starts its tick loop, and
// returns it. Each Player gets its own correlation id prefixed onto its log
// lines, so concurrent players' output can be told apart.
func (c *Client) NewPlayer(desc GameDescriptor, cfg player.Config) (*player.Player, error) {
	socket := transport.New(c.prime)
	if err := socket.Connect(transport.Descriptor{Host: desc.Host, GameID: desc.GameID, ClientID: desc.ClientID}); err != nil {
		return nil, fmt.Errorf("krunkerbot: connecting: %w", err)
	}

	id := uuid.New().String()
	playerLogger := log.New(c.logger.Writer(), fmt.Sprintf("[player %s] ", id), c.logger.Flags())

	p := player.New(socket, cfg, c.Map, playerLogger)
	p.Start()
	return p, nil
}
