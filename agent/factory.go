package agent

import (
	"bufio"
	"fmt"
	"io"
	"slices"

	"matcharena/communication/client"
	"matcharena/game"
	"matcharena/searcher"

	"golang.org/x/exp/rand"
)

// Options configures every agent kind; each kind reads the fields it needs.
type Options struct {
	Game game.Game
	Rand *rand.Rand

	// Search
	UCTC        float64
	Rollouts    int
	Simulations int
	MaxNodes    int // 0 leaves the tree unbounded
	Solve       bool
	Verbose     io.Writer // nil keeps the search quiet

	// Interactive
	Input *bufio.Scanner
	Out   io.Writer
	Color bool

	Script     string
	RemoteAddr string
}

// Kinds lists the selectors understood by New.
func Kinds() []string {
	return []string{"mcts", "search", "random", "human", "remote", "script"}
}

// CheckKind reports whether kind names a known agent selector.
func CheckKind(kind string) error {
	if !slices.Contains(Kinds(), kind) {
		return fmt.Errorf("%w %q (known kinds: %v)", ErrUnknownKind, kind, Kinds())
	}
	return nil
}

// New builds the agent named by kind for player.
func New(kind string, player game.Player, opts Options) (Agent, error) {
	switch kind {
	case "mcts", "search":
		evaluator := searcher.NewRandomRolloutEvaluator(opts.Rollouts, opts.Rand)
		mcts := searcher.NewMCTS(opts.Game,
			searcher.WithUCTC(opts.UCTC),
			searcher.WithSimulations(opts.Simulations),
			searcher.WithMaxNodes(opts.MaxNodes),
			searcher.WithSolve(opts.Solve),
			searcher.WithEvaluator(evaluator),
			searcher.WithRand(opts.Rand),
			searcher.WithVerbose(opts.Verbose),
			searcher.WithMetrics(),
		)
		return NewSearchAgent(mcts), nil
	case "random":
		return NewRandomAgent(opts.Rand), nil
	case "human":
		return NewHumanAgent(opts.Input, opts.Out, opts.Color), nil
	case "remote":
		if opts.RemoteAddr == "" {
			return nil, fmt.Errorf("player %d: remote agent needs a server address", player)
		}
		return NewRemoteAgent(client.NewClient(opts.RemoteAddr), opts.Game.Name()), nil
	case "script":
		if opts.Script == "" {
			return nil, fmt.Errorf("player %d: script agent needs a script path", player)
		}
		return NewScriptAgent(opts.Script)
	default:
		return nil, fmt.Errorf("player %d: %w", player, CheckKind(kind))
	}
}
