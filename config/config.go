// Package config loads the command configuration from the environment and
// command-line flags, in that order of precedence (flags win).
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Game           string  `env:"ARENA_GAME"            envDefault:"tic_tac_toe"`
	Player1        string  `env:"ARENA_PLAYER1"         envDefault:"mcts"`
	Player2        string  `env:"ARENA_PLAYER2"         envDefault:"random"`
	UCTC           float64 `env:"ARENA_UCT_C"           envDefault:"2"`
	RolloutCount   int     `env:"ARENA_ROLLOUT_COUNT"   envDefault:"10"`
	MaxSimulations int     `env:"ARENA_MAX_SIMULATIONS" envDefault:"10000"`
	MaxNodes       int     `env:"ARENA_MAX_NODES"       envDefault:"0"`
	NumGames       int     `env:"ARENA_NUM_GAMES"       envDefault:"1"`
	Solve          bool    `env:"ARENA_SOLVE"           envDefault:"true"`
	Seed           uint64  `env:"ARENA_SEED"            envDefault:"0"`
	Verbose        bool    `env:"ARENA_VERBOSE"`
	Quiet          bool    `env:"ARENA_QUIET"`
	Color          bool    `env:"ARENA_COLOR"           envDefault:"true"`
	Script         string  `env:"ARENA_SCRIPT"`
	RemoteAddr     string  `env:"ARENA_REMOTE_ADDR"`
	Serve          string  `env:"ARENA_SERVE"`
	LogLevel       string  `env:"ARENA_LOG_LEVEL"       envDefault:"info"`
	OTelEndpoint   string  `env:"ARENA_OTEL_ENDPOINT"`

	// Opening holds the trailing arguments: action labels forced at the start
	// of every game.
	Opening []string
}

// ParseConfig parses the environment, then flags from args, into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.Game, "game", cfg.Game, "name of the game to play")
	fs.StringVar(&cfg.Player1, "player1", cfg.Player1, "agent for the first player: mcts, random, human, remote or script")
	fs.StringVar(&cfg.Player2, "player2", cfg.Player2, "agent for the second player")
	fs.Float64Var(&cfg.UCTC, "uct_c", cfg.UCTC, "UCT exploration constant")
	fs.IntVar(&cfg.RolloutCount, "rollout_count", cfg.RolloutCount, "random rollouts per leaf evaluation")
	fs.IntVar(&cfg.MaxSimulations, "max_simulations", cfg.MaxSimulations, "simulations per search")
	fs.IntVar(&cfg.MaxNodes, "max_nodes", cfg.MaxNodes, "stop a search once its tree holds this many nodes, 0 for no limit")
	fs.IntVar(&cfg.NumGames, "num_games", cfg.NumGames, "number of games to play")
	fs.BoolVar(&cfg.Solve, "solve", cfg.Solve, "back up proven outcomes (MCTS-Solver)")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed, 0 seeds from the clock")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "print search statistics after every search")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "do not narrate the games")
	fs.BoolVar(&cfg.Color, "color", cfg.Color, "colorize interactive prompts")
	fs.StringVar(&cfg.Script, "script", cfg.Script, "Lua script for script agents")
	fs.StringVar(&cfg.RemoteAddr, "remote_addr", cfg.RemoteAddr, "agent server address for remote agents")
	fs.StringVar(&cfg.Serve, "serve", cfg.Serve, "host player1's agent on this address instead of playing")
	fs.StringVar(&cfg.LogLevel, "log_level", cfg.LogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&cfg.OTelEndpoint, "otel_endpoint", cfg.OTelEndpoint, "OTLP/HTTP endpoint for traces, empty disables tracing")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.Opening = fs.Args()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Game == "":
		return fmt.Errorf("%w: game is required", ErrInvalid)
	case c.UCTC < 0:
		return fmt.Errorf("%w: uct_c must not be negative, got %g", ErrInvalid, c.UCTC)
	case c.RolloutCount <= 0:
		return fmt.Errorf("%w: rollout_count must be positive, got %d", ErrInvalid, c.RolloutCount)
	case c.MaxSimulations <= 0:
		return fmt.Errorf("%w: max_simulations must be positive, got %d", ErrInvalid, c.MaxSimulations)
	case c.MaxNodes < 0:
		return fmt.Errorf("%w: max_nodes must not be negative, got %d", ErrInvalid, c.MaxNodes)
	case c.NumGames < 0:
		return fmt.Errorf("%w: num_games must not be negative, got %d", ErrInvalid, c.NumGames)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalid, err)
	}
	return nil
}

// RandSeed is the configured seed, or one drawn from the clock when unset.
func (c Config) RandSeed() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}

// Level is the parsed log level; Validate has checked it.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
