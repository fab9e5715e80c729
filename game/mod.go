package game

// Player identifies whose turn it is. Non-negative values are seat indexes;
// the negative sentinels mark nodes where no single seat acts.
type Player int

const (
	ChancePlayer       Player = -1
	SimultaneousPlayer Player = -2
	TerminalPlayer     Player = -4
)

// Action is only meaningful relative to the State that offered it.
type Action int64

type NodeKind int

const (
	Decision NodeKind = iota
	Chance
	Terminal
	Simultaneous
)

func (k NodeKind) String() string {
	switch k {
	case Decision:
		return "decision"
	case Chance:
		return "chance"
	case Terminal:
		return "terminal"
	case Simultaneous:
		return "simultaneous"
	default:
		return "unknown"
	}
}

// ActionProb is one outcome of a chance node.
type ActionProb struct {
	Action Action
	Prob   float64
}

// State is mutable: ApplyAction advances it in place. Use Clone to branch.
type State interface {
	CurrentPlayer() Player
	Kind() NodeKind
	LegalActions() []Action
	// ActionToString must be pure and deterministic for a given state; textual
	// labels are the only form in which actions outlive the state.
	ActionToString(player Player, action Action) string
	ChanceOutcomes() []ActionProb
	ApplyAction(action Action)
	// Returns is indexed by player and only valid once Kind() is Terminal.
	Returns() []float64
	Clone() State
	String() string
}

type Game interface {
	Name() string
	NumPlayers() int
	// MaxUtility is the best return a player can get, used to prove wins early.
	MaxUtility() float64
	NewInitialState() State
}

func IsTerminal(state State) bool {
	return state.Kind() == Terminal
}
