package agent

import (
	"context"

	"matcharena/game"
	"matcharena/searcher"

	"github.com/rs/zerolog/log"
)

type searchAgent struct {
	mcts *searcher.MCTS
}

func NewSearchAgent(mcts *searcher.MCTS) Agent {
	return searchAgent{mcts: mcts}
}

func (a searchAgent) FindAction(_ context.Context, state game.State) (game.Action, error) {
	result := a.mcts.Simulate(state)
	log.Debug().Msgf("search value %.3f after %d episodes", result.Value, result.Metric.Episodes)
	return result.Action, nil
}
