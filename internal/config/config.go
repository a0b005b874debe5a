// Package config loads settings for the cmd/holdem-sim demo: table shape,
// forced bets, the bot mix, and the hand cap. The engine packages
// (handstate, tableengine, gameloop) never import this package — they take
// explicit struct arguments, matching the core's own non-goal of owning a
// configuration loader. It mirrors the teacher's internal/config.Config /
// Load() / Instance() singleton-with-Load idiom, trimmed of the fields
// (Postgres DSN, JWT keys, recaptcha secret, email settings) that only
// served the teacher's HTTP API.
package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
	"holdemengine/internal/util"
)

// Config provides configuration for the holdem-sim demo.
type Config struct {
	loaded bool

	MaxSeats      int    `yaml:"maxSeats" envconfig:"max_seats"`
	SmallBlind    int    `yaml:"smallBlind" envconfig:"small_blind"`
	BigBlind      int    `yaml:"bigBlind" envconfig:"big_blind"`
	StartingChips int    `yaml:"startingChips" envconfig:"starting_chips"`
	Hands         int    `yaml:"hands" envconfig:"hands"`
	Ranker        string `yaml:"ranker" envconfig:"ranker"`
}

var config Config

// Instance returns a singleton instance, loading it on first use.
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load reads HOLDEM_CONFIG_FILE (default config.yaml) if present, then
// overlays HOLDEM_-prefixed environment variables on top.
func Load() error {
	cfg := defaults()

	configFile := util.Getenv("HOLDEM_CONFIG_FILE", "config.yaml")
	if file, err := os.Open(configFile); err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	}

	if err := envconfig.Process("holdem", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}

func defaults() Config {
	return Config{
		MaxSeats:      6,
		SmallBlind:    1,
		BigBlind:      2,
		StartingChips: 200,
		Hands:         1000,
		Ranker:        "analyzer",
	}
}
