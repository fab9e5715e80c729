package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveAction(t *testing.T) {
	newState := func() *mockState {
		return &mockState{
			player:  1,
			actions: []Action{4, 7, 9},
			labels:  map[Action]string{4: "north", 7: "South", 9: "north"},
		}
	}

	t.Run("resolving a label rendered for the acting player", func(t *testing.T) {
		action, ok := ResolveAction(newState(), "p1:South")

		require.True(t, ok, "Label should resolve")
		require.Equal(t, Action(7), action, "Should return the action rendering to the label")
	})

	t.Run("first matching action wins", func(t *testing.T) {
		action, ok := ResolveAction(newState(), "p1:north")

		require.True(t, ok, "Label should resolve")
		require.Equal(t, Action(4), action, "Should return the first legal action in order")
	})

	t.Run("matching is case-sensitive", func(t *testing.T) {
		_, ok := ResolveAction(newState(), "p1:south")

		require.False(t, ok, "Differently cased label should not resolve")
	})

	t.Run("labels of another player do not resolve", func(t *testing.T) {
		_, ok := ResolveAction(newState(), "p0:South")

		require.False(t, ok, "Label rendered for a different player should not resolve")
	})

	t.Run("no normalization of surrounding whitespace", func(t *testing.T) {
		_, ok := ResolveAction(newState(), " p1:South")

		require.False(t, ok, "Whitespace should not be trimmed")
	})

	t.Run("state with no legal actions", func(t *testing.T) {
		state := newState()
		state.actions = nil

		require.NotPanics(t, func() {
			_, ok := ResolveAction(state, "p1:South")
			require.False(t, ok, "Nothing should resolve without legal actions")
		})
	})

	t.Run("resolution does not advance the state", func(t *testing.T) {
		state := newState()
		ResolveAction(state, "p1:South")

		require.Empty(t, state.played, "Resolver should never apply actions")
	})
}

func TestActionLabels(t *testing.T) {
	state := &mockState{
		player:  0,
		actions: []Action{2, 3},
		labels:  map[Action]string{2: "left"},
	}

	require.Equal(t, []string{"p0:left", "p0:3"}, ActionLabels(state))
}
