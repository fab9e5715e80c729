package agent

import (
	"context"
	"fmt"

	"matcharena/communication"
	"matcharena/communication/client"
	"matcharena/game"
)

// Stepper is the transport a remote agent asks for actions.
type Stepper interface {
	Step(ctx context.Context, req communication.StepRequest) (communication.StepResponse, error)
}

type remoteAgent struct {
	stepper  Stepper
	gameName string
	history  []string
}

// NewRemoteAgent delegates decisions to an agent server. It must be informed
// of every applied action to describe the position to the server.
func NewRemoteAgent(stepper Stepper, gameName string) Agent {
	return &remoteAgent{stepper: stepper, gameName: gameName}
}

func (a *remoteAgent) Restart() {
	a.history = nil
}

func (a *remoteAgent) Inform(label string) {
	a.history = append(a.history, label)
}

func (a *remoteAgent) FindAction(ctx context.Context, state game.State) (game.Action, error) {
	resp, err := a.stepper.Step(ctx, communication.StepRequest{
		Game:    a.gameName,
		Player:  int(state.CurrentPlayer()),
		History: a.history,
	})
	if err != nil {
		return 0, err
	}

	action, ok := game.ResolveAction(state, resp.Action)
	if !ok {
		return 0, fmt.Errorf("%w: server chose %q", ErrUnresolvedAction, resp.Action)
	}
	return action, nil
}

var _ Stepper = (*client.Client)(nil)
