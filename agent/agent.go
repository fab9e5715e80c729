// Package agent holds the decision makers that choose actions for a seat.
package agent

import (
	"context"
	"errors"

	"matcharena/game"
)

var (
	// ErrInputClosed means an interactive agent lost its input; callers treat it
	// as a request to stop.
	ErrInputClosed = errors.New("input closed")
	ErrUnknownKind = errors.New("unknown agent kind")
	// ErrUnresolvedAction is returned when a label chosen outside the engine
	// does not name a legal action.
	ErrUnresolvedAction = errors.New("unresolved action")
)

type Agent interface {
	// FindAction is only called at decision nodes for the seat the agent is
	// bound to. It returns one of state.LegalActions().
	FindAction(ctx context.Context, state game.State) (game.Action, error)
}

// Observer is implemented by agents that follow the textual history of a match.
type Observer interface {
	// Restart is called before each match.
	Restart()
	// Inform receives the label of every action applied, in order.
	Inform(label string)
}
