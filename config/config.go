package config

import (
	"bytes"
	"draughts/game"
	"draughts/searcher"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// NoPruning is the optimization level that disables alpha-beta cutoffs.
const NoPruning = "O0"

type Config struct {
	Bot    Bot    `yaml:"bot"`
	Game   Game   `yaml:"game"`
	Log    Log    `yaml:"log"`
	Server Server `yaml:"server"`
}

// Seat says who plays one colour.
type Seat struct {
	Bot   bool `yaml:"bot"`
	Depth int  `yaml:"depth"`
}

type Bot struct {
	White        Seat             `yaml:"white"`
	Black        Seat             `yaml:"black"`
	Scoring      game.ScoringMode `yaml:"scoring"`
	Optimization string           `yaml:"optimization"`
	NoRandom     bool             `yaml:"no_random"`
	Seed         uint64           `yaml:"seed"`  // 0 seeds from the clock
	Delay        time.Duration    `yaml:"delay"` // minimum think time, also paced between chain moves
}

type Game struct {
	MaxTurns int `yaml:"max_turns"`
}

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // also log to this file when set
}

type Server struct {
	Addr string `yaml:"addr"`
}

func Default() Config {
	return Config{
		Bot: Bot{
			White:        Seat{Bot: false, Depth: searcher.DefaultDepth},
			Black:        Seat{Bot: true, Depth: searcher.DefaultDepth},
			Scoring:      game.MaterialAndPotential,
			Optimization: "O1",
			Delay:        300 * time.Millisecond,
		},
		Game:   Game{MaxTurns: 120},
		Log:    Log{Level: "info"},
		Server: Server{Addr: ":8080"},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("failed to read config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&c); err != nil {
		return c, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	for _, side := range []game.Side{game.White, game.Black} {
		if depth := c.Seat(side).Depth; depth < 0 || depth > searcher.MaxDepth {
			return fmt.Errorf("%w: %v depth %d out of range [0, %d]", ErrInvalidConfig, side, depth, searcher.MaxDepth)
		}
	}
	if c.Game.MaxTurns <= 0 {
		return fmt.Errorf("%w: max_turns must be positive, got %d", ErrInvalidConfig, c.Game.MaxTurns)
	}
	if c.Bot.Delay < 0 {
		return fmt.Errorf("%w: negative delay %v", ErrInvalidConfig, c.Bot.Delay)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) Seat(side game.Side) Seat {
	if side == game.White {
		return c.Bot.White
	}
	return c.Bot.Black
}

func (c Config) Pruning() bool {
	return c.Bot.Optimization != NoPruning
}

func (c Config) Level() (zerolog.Level, error) {
	return zerolog.ParseLevel(c.Log.Level)
}

// SearcherOptions configures a searcher for both seats.
func (c Config) SearcherOptions() []searcher.Option {
	options := []searcher.Option{
		searcher.WithDepth(game.White, c.Bot.White.Depth),
		searcher.WithDepth(game.Black, c.Bot.Black.Depth),
		searcher.WithScoring(c.Bot.Scoring),
		searcher.WithPruning(c.Pruning()),
	}
	if c.Bot.Seed != 0 {
		options = append(options, searcher.WithSeed(c.Bot.Seed))
	}
	if c.Bot.NoRandom {
		options = append(options, searcher.WithoutShuffle())
	}
	return options
}
