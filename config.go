package krunkerbot

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/krunkerbot/client/player"
)

// BootConfig is the YAML-loadable shape of the bot's own runtime settings:
// the Player tuning the spec recognizes (tick_interval, account) plus the
// opaque external-collaborator inputs it needs at hand (spec §6). It is not
// part of the wire protocol; it is how a bot operator configures one run.
type BootConfig struct {
	ClientKey    string        `yaml:"client_key"`
	TickInterval time.Duration `yaml:"tick_interval"`
	Account      *player.Account `yaml:"account"`
}

// DefaultBootConfig returns a BootConfig matching player.DefaultConfig's
// tick interval and no account (guest play).
func DefaultBootConfig() BootConfig {
	return BootConfig{TickInterval: 66 * time.Millisecond}
}

// LoadConfig reads and decodes a YAML file at path into a BootConfig,
// starting from DefaultBootConfig so unset fields keep their defaults.
func LoadConfig(path string) (BootConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return BootConfig{}, fmt.Errorf("krunkerbot: opening config: %w", err)
	}
	defer f.Close()

	cfg := DefaultBootConfig()
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return BootConfig{}, fmt.Errorf("krunkerbot: decoding config: %w", err)
	}
	return cfg, nil
}

// PlayerConfig converts the bootstrap config into a player.Config.
func (c BootConfig) PlayerConfig() player.Config {
	return player.Config{TickInterval: c.TickInterval, Account: c.Account}
}
