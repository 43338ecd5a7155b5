package krunkerbot

// GameDescriptor identifies one joinable game session, as produced by the
// matchmaker endpoints described in spec §6 (/game-list, /game-info,
// /seek-game, /generate-token, /v3/token). Constructing these from the HTTP
// matchmaker is explicitly out of scope (spec §1 Non-goals); callers supply
// a GameLister that does it.
type GameDescriptor struct {
	Host            string
	GameID          string
	ClientID        string
	ValidationToken string
}

// GameLister is the narrow external collaborator that turns matchmaker HTTP
// calls into GameDescriptors. The core never performs HTTP itself.
type GameLister interface {
	ListGames() ([]GameDescriptor, error)
}
