package searcher

import (
	"math"

	"matcharena/game"
)

// Hyperparameter defaults for MCTS

const DefaultUCTC = 2.0 // Exploration constant

const DefaultRollouts = 10 // Random rollouts per leaf evaluation

type node struct {
	parent   *node
	action   game.Action // Action leading here from the parent
	player   game.Player // Player who took action
	prior    float64
	chance   bool // Whether this node's state is a chance node, known once expanded
	children []*node
	rewards  float64
	visits   int
	outcome  []float64 // Proven returns, nil until solved
}

func newNode(parent *node, action game.Action, player game.Player, prior float64) *node {
	return &node{
		parent: parent,
		action: action,
		player: player,
		prior:  prior,
	}
}

func (n *node) update(returns []float64) {
	n.visits++
	if n.player >= 0 && int(n.player) < len(returns) {
		n.rewards += returns[n.player]
	}
}

// value scores n from its player's perspective for selection by its parent.
func (n *node) value(policy uct) float64 {
	if n.outcome != nil {
		return n.outcome[n.player]
	}
	if n.visits == 0 { // Prioritize unexplored nodes
		return math.Inf(1)
	}
	return policy.evaluate(n.rewards, float64(n.visits))
}

func (n *node) meanReward() float64 {
	if n.visits == 0 {
		return 0
	}
	return n.rewards / float64(n.visits)
}

func (n *node) provenReturn() float64 {
	if n.outcome == nil || n.player < 0 {
		return 0
	}
	return n.outcome[n.player]
}

// less orders children for the final move choice: proven value first, then
// visits, then accumulated reward.
func (n *node) less(other *node) bool {
	if a, b := n.provenReturn(), other.provenReturn(); a != b {
		return a < b
	}
	if n.visits != other.visits {
		return n.visits < other.visits
	}
	return n.rewards < other.rewards
}

func (n *node) bestChild() *node {
	if len(n.children) == 0 {
		panic("node has no children")
	}

	best := n.children[0]
	for _, child := range n.children[1:] {
		if best.less(child) {
			best = child
		}
	}
	return best
}

func backup(leaf *node, returns []float64, solved bool, maxUtility float64) {
	for n := leaf; n != nil; n = n.parent {
		n.update(returns)

		if solved && len(n.children) > 0 {
			if n.chance {
				solved = n.solveChance()
			} else {
				solved = n.solveDecision(maxUtility)
			}
		}
	}
}
