package searcher

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"matcharena/game"
)

func report(w io.Writer, root, chosen *node, state game.State, metric SearchMetric) {
	fmt.Fprintf(w, "Finished %d sims in %.3f secs, %.1f sims/s\n",
		metric.Episodes, metric.Duration.Seconds(), metric.SimsPerSecond())

	fmt.Fprintln(w, "Root:")
	fmt.Fprintln(w, root.describe("none"))
	fmt.Fprintln(w, "Children:")
	writeChildren(w, root, state)

	if len(chosen.children) > 0 {
		next := state.Clone()
		next.ApplyAction(chosen.action)
		fmt.Fprintln(w, "Children of chosen:")
		writeChildren(w, chosen, next)
	}
}

// writeChildren lists the children of n, best first.
func writeChildren(w io.Writer, n *node, state game.State) {
	children := slices.Clone(n.children)
	slices.SortStableFunc(children, func(a, b *node) int {
		switch {
		case b.less(a):
			return -1
		case a.less(b):
			return 1
		}
		return 0
	})
	for _, child := range children {
		fmt.Fprintln(w, child.describe(state.ActionToString(child.player, child.action)))
	}
}

func (n *node) describe(label string) string {
	outcome := "none"
	if n.outcome != nil {
		parts := make([]string, len(n.outcome))
		for i, r := range n.outcome {
			parts[i] = fmt.Sprintf("%4.1f", r)
		}
		outcome = strings.Join(parts, ",")
	}
	return fmt.Sprintf("%6s: player: %d, prior: %5.3f, value: %6.3f, sims: %5d, outcome: %s, %3d children",
		label, n.player, n.prior, n.meanReward(), n.visits, outcome, len(n.children))
}
