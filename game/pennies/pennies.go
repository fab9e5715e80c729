// Package pennies is matching pennies, registered as "matching_pennies".
// Both players reveal a coin at once, so the single decision is a
// simultaneous node. Player 0 wins when the coins match.
package pennies

import (
	"fmt"

	"matcharena/game"
)

const Name = "matching_pennies"

const (
	Heads game.Action = iota
	Tails
)

var faces = [2]string{"Heads", "Tails"}

func init() {
	game.Register(Name, func() game.Game { return Game{} })
}

type Game struct{}

func (Game) Name() string                { return Name }
func (Game) NumPlayers() int             { return 2 }
func (Game) MaxUtility() float64         { return 1 }
func (Game) NewInitialState() game.State { return &State{} }

type State struct {
	choices [2]game.Action
	played  bool
}

func (s *State) CurrentPlayer() game.Player {
	if s.played {
		return game.TerminalPlayer
	}
	return game.SimultaneousPlayer
}

func (s *State) Kind() game.NodeKind {
	if s.played {
		return game.Terminal
	}
	return game.Simultaneous
}

// LegalActions lists joint actions: player 0's coin times two plus player 1's.
func (s *State) LegalActions() []game.Action {
	if s.played {
		return nil
	}
	return []game.Action{0, 1, 2, 3}
}

func (s *State) ActionToString(player game.Player, action game.Action) string {
	if player == game.SimultaneousPlayer {
		return fmt.Sprintf("%s,%s", faces[action/2], faces[action%2])
	}
	return faces[action]
}

func (s *State) ChanceOutcomes() []game.ActionProb { return nil }

func (s *State) ApplyAction(action game.Action) {
	if s.played || action < 0 || action > 3 {
		panic(fmt.Sprintf("pennies: illegal joint action %d", action))
	}
	s.choices = [2]game.Action{action / 2, action % 2}
	s.played = true
}

func (s *State) Returns() []float64 {
	if !s.played {
		panic("pennies: returns of an unfinished game")
	}
	if s.choices[0] == s.choices[1] {
		return []float64{1, -1}
	}
	return []float64{-1, 1}
}

func (s *State) Clone() game.State {
	clone := *s
	return &clone
}

func (s *State) String() string {
	if !s.played {
		return "coins hidden"
	}
	return fmt.Sprintf("%s %s", faces[s.choices[0]], faces[s.choices[1]])
}
