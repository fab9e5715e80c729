// Package engine plays single matches between agents.
package engine

import (
	"errors"
	"fmt"
	"io"

	"matcharena/agent"
	"matcharena/game"

	"golang.org/x/exp/rand"
)

// MaxPlayers is the largest number of seats a match supports.
const MaxPlayers = 2

var (
	ErrTooManyPlayers   = errors.New("too many players")
	ErrMissingAgent     = errors.New("missing agent")
	ErrIllegalAction    = errors.New("illegal action")
	ErrSimultaneousNode = errors.New("simultaneous-move nodes are not supported")
)

type Option func(e *Engine)

// WithNarration writes a play-by-play of every match to w.
func WithNarration(w io.Writer) Option {
	return func(e *Engine) {
		e.narration = w
	}
}

type Engine struct {
	game      game.Game
	agents    []agent.Agent
	rng       *rand.Rand
	narration io.Writer
}

// New binds agents[p] to seat p of g. Chance nodes draw from rng.
func New(g game.Game, agents []agent.Agent, rng *rand.Rand, options ...Option) (*Engine, error) {
	if rng == nil {
		panic("engine needs a random source")
	}
	if n := g.NumPlayers(); n > MaxPlayers {
		return nil, fmt.Errorf("%w: %s has %d players, at most %d are supported", ErrTooManyPlayers, g.Name(), n, MaxPlayers)
	}
	if len(agents) < g.NumPlayers() {
		return nil, fmt.Errorf("%w: %s needs %d agents, got %d", ErrMissingAgent, g.Name(), g.NumPlayers(), len(agents))
	}
	for p := 0; p < g.NumPlayers(); p++ {
		if agents[p] == nil {
			return nil, fmt.Errorf("%w: no agent for player %d", ErrMissingAgent, p)
		}
	}

	e := &Engine{
		game:   g,
		agents: agents,
		rng:    rng,
	}
	for _, option := range options {
		option(e)
	}
	return e, nil
}

func (e *Engine) Game() game.Game {
	return e.game
}

func (e *Engine) narrate(format string, args ...any) {
	if e.narration != nil {
		fmt.Fprintf(e.narration, format, args...)
	}
}
