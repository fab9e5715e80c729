package agent

import (
	"context"

	"matcharena/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent picks uniformly among legal actions.
func NewRandomAgent(rng *rand.Rand) Agent {
	if rng == nil {
		panic("random agent needs a random source")
	}
	return randomAgent{rng: rng}
}

func (a randomAgent) FindAction(_ context.Context, state game.State) (game.Action, error) {
	actions := state.LegalActions()
	return actions[a.rng.Intn(len(actions))], nil
}
