package searcher

import (
	"math"
)

// selectChild picks the child with the highest UCT value. Unvisited children
// score +Inf and are tried first, in (shuffled) expansion order.
func (n *node) selectChild(c float64) *node {
	if n.visits == 0 {
		panic("node has children but no visits")
	}

	policy := newUCT(c, float64(n.visits))

	var chosen *node
	maxScore := math.Inf(-1)
	for _, child := range n.children {
		score := child.value(policy)
		if score == math.Inf(1) {
			return child
		}
		if chosen == nil || score > maxScore {
			maxScore = score
			chosen = child
		}
	}
	return chosen
}

// solveDecision marks n proven when a child is a proven maximal win for the
// player to move, or when every child is proven; the best child's returns win.
func (n *node) solveDecision(maxUtility float64) bool {
	player := n.children[0].player

	var best *node
	allSolved := true
	for _, child := range n.children {
		if child.outcome == nil {
			allSolved = false
		} else if best == nil || child.outcome[player] > best.outcome[player] {
			best = child
		}
	}

	if best != nil && (allSolved || best.outcome[player] == maxUtility) {
		n.outcome = best.outcome
		return true
	}
	return false
}
