package searcher

import (
	"slices"

	"matcharena/game"

	"golang.org/x/exp/rand"
)

// Evaluator estimates the returns of a non-terminal leaf and supplies the
// prior used when its children are created.
type Evaluator interface {
	Evaluate(state game.State) []float64
	Prior(state game.State) []game.ActionProb
}

type randomRolloutEvaluator struct {
	rollouts int
	rng      *rand.Rand
}

// NewRandomRolloutEvaluator averages the returns of rollouts uniformly random
// playouts, sampling chance nodes by their distribution.
func NewRandomRolloutEvaluator(rollouts int, rng *rand.Rand) Evaluator {
	if rollouts <= 0 {
		panic("rollouts must be positive")
	}
	if rng == nil {
		panic("rollout evaluator needs a random source")
	}
	return &randomRolloutEvaluator{rollouts: rollouts, rng: rng}
}

func (e *randomRolloutEvaluator) Evaluate(state game.State) []float64 {
	var result []float64
	for i := 0; i < e.rollouts; i++ {
		returns := rollout(state.Clone(), e.rng)
		if result == nil {
			result = make([]float64, len(returns))
		}
		for p, v := range returns {
			result[p] += v
		}
	}
	for p := range result {
		result[p] /= float64(e.rollouts)
	}
	return result
}

func rollout(state game.State, rng *rand.Rand) []float64 {
	// Rollout till game over
	for !game.IsTerminal(state) {
		var action game.Action
		switch state.Kind() {
		case game.Chance:
			action = game.SampleChanceOutcome(state.ChanceOutcomes(), rng.Float64())
		case game.Decision:
			actions := state.LegalActions()
			action = actions[rng.Intn(len(actions))] // Random rollout policy
		default:
			panic("rollouts require sequential games")
		}
		state.ApplyAction(action)
	}
	return state.Returns()
}

// Prior is uniform over legal actions, or the chance distribution itself.
func (e *randomRolloutEvaluator) Prior(state game.State) []game.ActionProb {
	if state.Kind() == game.Chance {
		return slices.Clone(state.ChanceOutcomes())
	}
	actions := state.LegalActions()
	prior := make([]game.ActionProb, len(actions))
	for i, action := range actions {
		prior[i] = game.ActionProb{Action: action, Prob: 1 / float64(len(actions))}
	}
	return prior
}
