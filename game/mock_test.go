package game

import "fmt"

type mockState struct {
	player  Player
	kind    NodeKind
	actions []Action
	labels  map[Action]string
	played  []Action
}

func (m *mockState) CurrentPlayer() Player { return m.player }
func (m *mockState) Kind() NodeKind        { return m.kind }
func (m *mockState) LegalActions() []Action {
	return m.actions
}

func (m *mockState) ActionToString(player Player, action Action) string {
	if label, ok := m.labels[action]; ok {
		return fmt.Sprintf("p%d:%s", player, label)
	}
	return fmt.Sprintf("p%d:%d", player, action)
}

func (m *mockState) ChanceOutcomes() []ActionProb { return nil }
func (m *mockState) ApplyAction(action Action)    { m.played = append(m.played, action) }
func (m *mockState) Returns() []float64           { return []float64{0, 0} }
func (m *mockState) String() string               { return "mock" }

func (m *mockState) Clone() State {
	clone := *m
	clone.played = append([]Action(nil), m.played...)
	return &clone
}

type mockGame struct{ name string }

func (g mockGame) Name() string           { return g.name }
func (g mockGame) NumPlayers() int        { return 2 }
func (g mockGame) MaxUtility() float64    { return 1 }
func (g mockGame) NewInitialState() State { return &mockState{} }
