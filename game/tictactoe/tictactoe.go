// Package tictactoe is the classic 3x3 game, registered as "tic_tac_toe".
package tictactoe

import (
	"fmt"
	"strings"

	"matcharena/game"
)

const (
	Name  = "tic_tac_toe"
	rows  = 3
	cols  = 3
	cells = rows * cols
)

type cell int8

const (
	empty cell = iota
	cross
	nought
)

func (c cell) String() string {
	switch c {
	case cross:
		return "x"
	case nought:
		return "o"
	default:
		return "."
	}
}

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

func init() {
	game.Register(Name, func() game.Game { return Game{} })
}

type Game struct{}

func (Game) Name() string                { return Name }
func (Game) NumPlayers() int             { return 2 }
func (Game) MaxUtility() float64         { return 1 }
func (Game) NewInitialState() game.State { return &State{} }

// State is a board plus the player to move. Player 0 plays x.
type State struct {
	board   [cells]cell
	player  game.Player
	winner  game.Player
	moves   int
	decided bool
}

func (s *State) CurrentPlayer() game.Player {
	if s.decided {
		return game.TerminalPlayer
	}
	return s.player
}

func (s *State) Kind() game.NodeKind {
	if s.decided {
		return game.Terminal
	}
	return game.Decision
}

func (s *State) LegalActions() []game.Action {
	if s.decided {
		return nil
	}
	actions := make([]game.Action, 0, cells-s.moves)
	for i, c := range s.board {
		if c == empty {
			actions = append(actions, game.Action(i))
		}
	}
	return actions
}

func (s *State) ActionToString(player game.Player, action game.Action) string {
	return fmt.Sprintf("%s(%d,%d)", mark(player), int(action)/cols, int(action)%cols)
}

func (s *State) ChanceOutcomes() []game.ActionProb { return nil }

func (s *State) ApplyAction(action game.Action) {
	if s.decided {
		panic("tictactoe: move on a finished game")
	}
	if action < 0 || action >= cells || s.board[action] != empty {
		panic(fmt.Sprintf("tictactoe: illegal action %d", action))
	}

	s.board[action] = mark(s.player)
	s.moves++
	if s.lineCompleted(s.board[action]) {
		s.winner = s.player
		s.decided = true
		return
	}
	if s.moves == cells {
		s.winner = game.TerminalPlayer // draw
		s.decided = true
		return
	}
	s.player = 1 - s.player
}

func (s *State) lineCompleted(c cell) bool {
	for _, line := range lines {
		if s.board[line[0]] == c && s.board[line[1]] == c && s.board[line[2]] == c {
			return true
		}
	}
	return false
}

func (s *State) Returns() []float64 {
	if !s.decided {
		panic("tictactoe: returns of an unfinished game")
	}
	switch s.winner {
	case 0:
		return []float64{1, -1}
	case 1:
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
	var b strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			b.WriteString(s.board[r*cols+c].String())
		}
		if r < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func mark(player game.Player) cell {
	if player == 0 {
		return cross
	}
	return nought
}
