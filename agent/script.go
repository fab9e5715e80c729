package agent

import (
	"context"
	"errors"
	"fmt"

	"matcharena/game"

	"github.com/Shopify/go-lua"
	"github.com/rs/zerolog/log"
)

var ErrScript = errors.New("script error")

// chooseFunction is the global a script must define. It receives a view table
// {player, state, actions} and returns the label of an action.
const chooseFunction = "choose"

type scriptAgent struct {
	path  string
	state *lua.State
}

// NewScriptAgent loads the Lua script at path and checks that it defines choose.
func NewScriptAgent(path string) (Agent, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)
	state.Register("log", scriptLog)

	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("%w: load %s: %v", ErrScript, path, err)
	}
	if err := state.ProtectedCall(0, 0, 0); err != nil {
		return nil, fmt.Errorf("%w: run %s: %v", ErrScript, path, err)
	}

	state.Global(chooseFunction)
	defined := state.IsFunction(-1)
	state.Pop(1)
	if !defined {
		return nil, fmt.Errorf("%w: %s does not define %s(view)", ErrScript, path, chooseFunction)
	}
	return &scriptAgent{path: path, state: state}, nil
}

func scriptLog(state *lua.State) int {
	log.Debug().Msgf("script: %s", lua.CheckString(state, 1))
	return 0
}

func (a *scriptAgent) FindAction(_ context.Context, state game.State) (game.Action, error) {
	l := a.state
	l.Global(chooseFunction)
	pushView(l, state)
	if err := l.ProtectedCall(1, 1, 0); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrScript, a.path, err)
	}

	label, ok := l.ToString(-1)
	l.Pop(1)
	if !ok {
		return 0, fmt.Errorf("%w: %s: choose must return an action label", ErrScript, a.path)
	}

	action, ok := game.ResolveAction(state, label)
	if !ok {
		return 0, fmt.Errorf("%w: script chose %q", ErrUnresolvedAction, label)
	}
	return action, nil
}

func pushView(l *lua.State, state game.State) {
	labels := game.ActionLabels(state)

	l.CreateTable(0, 3)
	l.PushInteger(int(state.CurrentPlayer()))
	l.SetField(-2, "player")
	l.PushString(state.String())
	l.SetField(-2, "state")

	l.CreateTable(len(labels), 0)
	for i, label := range labels {
		l.PushString(label)
		l.RawSetInt(-2, i+1)
	}
	l.SetField(-2, "actions")
}
