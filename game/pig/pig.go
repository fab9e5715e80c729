// Package pig is the two-player dice game Pig, registered as "pig".
//
// On their turn a player repeatedly decides to roll or stop. Each roll is a
// chance node: a 1 forfeits the turn total and passes the turn, any other face
// adds to it. Stopping banks the turn total. The first player to bank the
// target score wins.
package pig

import (
	"fmt"

	"matcharena/game"
)

const (
	Name          = "pig"
	DefaultTarget = 20
	// DefaultHorizon caps the number of turns; a game reaching it is a draw.
	DefaultHorizon = 1000
	sides          = 6
)

const (
	Roll game.Action = iota
	Stop
)

func init() {
	game.Register(Name, func() game.Game { return New(DefaultTarget, DefaultHorizon) })
}

type Game struct {
	target  int
	horizon int
}

func New(target, horizon int) Game {
	if target <= 0 || horizon <= 0 {
		panic("pig: target and horizon must be positive")
	}
	return Game{target: target, horizon: horizon}
}

func (g Game) Name() string        { return Name }
func (g Game) NumPlayers() int     { return 2 }
func (g Game) MaxUtility() float64 { return 1 }

func (g Game) NewInitialState() game.State {
	return &State{target: g.target, horizon: g.horizon}
}

type State struct {
	target    int
	horizon   int
	scores    [2]int
	turnTotal int
	player    game.Player
	turns     int
	rolling   bool
}

func (s *State) finished() bool {
	return s.scores[0] >= s.target || s.scores[1] >= s.target || s.turns >= s.horizon
}

func (s *State) Kind() game.NodeKind {
	switch {
	case s.finished():
		return game.Terminal
	case s.rolling:
		return game.Chance
	default:
		return game.Decision
	}
}

func (s *State) CurrentPlayer() game.Player {
	switch s.Kind() {
	case game.Terminal:
		return game.TerminalPlayer
	case game.Chance:
		return game.ChancePlayer
	default:
		return s.player
	}
}

func (s *State) LegalActions() []game.Action {
	switch s.Kind() {
	case game.Terminal:
		return nil
	case game.Chance:
		actions := make([]game.Action, sides)
		for i := range actions {
			actions[i] = game.Action(i)
		}
		return actions
	default:
		return []game.Action{Roll, Stop}
	}
}

func (s *State) ActionToString(player game.Player, action game.Action) string {
	if player == game.ChancePlayer {
		return fmt.Sprintf("Roll %d", action+1)
	}
	switch action {
	case Roll:
		return "roll"
	case Stop:
		return "stop"
	default:
		return fmt.Sprintf("invalid(%d)", action)
	}
}

func (s *State) ChanceOutcomes() []game.ActionProb {
	if s.Kind() != game.Chance {
		panic("pig: chance outcomes requested at a non-chance node")
	}
	outcomes := make([]game.ActionProb, sides)
	for i := range outcomes {
		outcomes[i] = game.ActionProb{Action: game.Action(i), Prob: 1.0 / sides}
	}
	return outcomes
}

func (s *State) ApplyAction(action game.Action) {
	switch s.Kind() {
	case game.Terminal:
		panic("pig: move on a finished game")
	case game.Chance:
		if action < 0 || action >= sides {
			panic(fmt.Sprintf("pig: illegal die face %d", action))
		}
		s.rolling = false
		face := int(action) + 1
		if face == 1 {
			s.turnTotal = 0
			s.endTurn()
			return
		}
		s.turnTotal += face
	default:
		switch action {
		case Roll:
			s.rolling = true
		case Stop:
			s.scores[s.player] += s.turnTotal
			s.turnTotal = 0
			if s.scores[s.player] < s.target {
				s.endTurn()
			}
		default:
			panic(fmt.Sprintf("pig: illegal action %d", action))
		}
	}
}

func (s *State) endTurn() {
	s.player = 1 - s.player
	s.turns++
}

func (s *State) Returns() []float64 {
	if !s.finished() {
		panic("pig: returns of an unfinished game")
	}
	switch {
	case s.scores[0] >= s.target:
		return []float64{1, -1}
	case s.scores[1] >= s.target:
		return []float64{-1, 1}
	default:
		return []float64{0, 0}
	}
}

func (s *State) Clone() game.State {
	clone := *s
	return &clone
}

func (s *State) String() string {
	text := fmt.Sprintf("Scores: %d %d, Turn total: %d\nCurrent player: %d",
		s.scores[0], s.scores[1], s.turnTotal, s.player)
	if s.rolling {
		text += " (rolling)"
	}
	return text
}
