package game

// ResolveAction maps a textual label back to the legal action of state that
// renders to exactly that label for the acting player. The match is exact and
// case-sensitive. ok is false when no legal action matches; callers decide
// whether that is fatal.
func ResolveAction(state State, text string) (action Action, ok bool) {
	player := state.CurrentPlayer()
	for _, candidate := range state.LegalActions() {
		if state.ActionToString(player, candidate) == text {
			return candidate, true
		}
	}
	return 0, false
}

// ActionLabels renders every legal action of state for the acting player.
func ActionLabels(state State) []string {
	player := state.CurrentPlayer()
	actions := state.LegalActions()
	labels := make([]string, len(actions))
	for i, action := range actions {
		labels[i] = state.ActionToString(player, action)
	}
	return labels
}
