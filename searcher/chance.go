package searcher

import (
	"fmt"
	"slices"

	"matcharena/game"

	"golang.org/x/exp/rand"
)

// sampleChild descends a chance node along the environment's distribution.
func (n *node) sampleChild(state game.State, rng *rand.Rand) *node {
	action := game.SampleChanceOutcome(state.ChanceOutcomes(), rng.Float64())
	for _, child := range n.children {
		if child.action == action {
			return child
		}
	}
	panic(fmt.Sprintf("chance outcome %d was not expanded", action))
}

// solveChance only proves a chance node whose outcomes all share the same
// proven returns.
func (n *node) solveChance() bool {
	outcome := n.children[0].outcome
	if outcome == nil {
		return false
	}
	for _, child := range n.children[1:] {
		if !slices.Equal(child.outcome, outcome) {
			return false
		}
	}
	n.outcome = outcome
	return true
}
