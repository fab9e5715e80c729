package searcher

import (
	"fmt"
	"io"
	"time"

	"matcharena/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

type MCTS struct {
	game        game.Game
	uctC        float64
	simulations int
	duration    time.Duration
	maxNodes    int
	solve       bool
	evaluator   Evaluator
	rng         *rand.Rand
	verbose     io.Writer
	metrics     Collector
}

// Result is the outcome of one search from a decision state.
type Result struct {
	Action game.Action
	Value  float64 // Estimated return of Action for the player to move
	Metric SearchMetric
}

func WithUCTC(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.uctC = c
		}
	}
}

func WithSimulations(simulations int) Option {
	return func(m *MCTS) {
		if simulations > 0 {
			m.simulations = simulations
		}
	}
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

// WithMaxNodes stops a search once its tree holds at least n nodes.
func WithMaxNodes(n int) Option {
	return func(m *MCTS) {
		if n > 0 {
			m.maxNodes = n
		}
	}
}

func WithSolve(solve bool) Option {
	return func(m *MCTS) {
		m.solve = solve
	}
}

func WithEvaluator(evaluator Evaluator) Option {
	return func(m *MCTS) {
		if evaluator != nil {
			m.evaluator = evaluator
		}
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(m *MCTS) {
		if rng != nil {
			m.rng = rng
		}
	}
}

// WithVerbose prints search statistics to w after every search.
func WithVerbose(w io.Writer) Option {
	return func(m *MCTS) {
		m.verbose = w
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = NewCollector()
	}
}

func NewMCTS(g game.Game, options ...Option) *MCTS {
	if g == nil {
		panic("search needs a game")
	}
	m := &MCTS{ // Default values
		game:    g,
		uctC:    DefaultUCTC,
		solve:   true,
		metrics: NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.simulations <= 0 && m.duration <= 0 {
		panic("Must specify search simulations or duration")
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if m.evaluator == nil {
		m.evaluator = NewRandomRolloutEvaluator(DefaultRollouts, m.rng)
	}
	return m
}

// Simulate searches from a decision state and returns the best action found.
// The state is not modified.
func (m *MCTS) Simulate(state game.State) Result {
	if state.Kind() != game.Decision {
		panic(fmt.Sprintf("cannot search from a %s node", state.Kind()))
	}

	root := newNode(nil, 0, state.CurrentPlayer(), 1)
	nodes := 1 + m.expand(root, state)

	m.metrics.Start()
	start := time.Now()
	for i := 0; m.simulations <= 0 || i < m.simulations; i++ {
		nodes += m.simulate(root, state)
		m.metrics.AddEpisode()

		if root.outcome != nil {
			break // Solved
		}
		if m.duration > 0 && time.Since(start) >= m.duration {
			break
		}
		if m.maxNodes > 0 && nodes >= m.maxNodes {
			log.Debug().Msgf("search stopped at %d nodes", nodes)
			break
		}
	}
	metric := m.metrics.Complete()
	elapsed := time.Since(start)

	best := root.bestChild()
	value := best.meanReward()
	if best.outcome != nil {
		value = best.provenReturn()
	}
	log.Debug().Msgf("search chose %s with value %.3f after %d visits",
		state.ActionToString(best.player, best.action), value, root.visits)

	if m.verbose != nil {
		report(m.verbose, root, best, state, SearchMetric{StartTime: start, Duration: elapsed, Episodes: root.visits})
	}

	return Result{Action: best.action, Value: value, Metric: metric}
}

// simulate runs one episode and returns the number of nodes it added.
func (m *MCTS) simulate(root *node, state game.State) int {
	leaf, leafState, added := m.selectThenExpand(root, state.Clone())

	var returns []float64
	solved := false
	if game.IsTerminal(leafState) {
		returns = leafState.Returns()
		leaf.outcome = returns
		solved = m.solve
		m.metrics.AddFullPlayout()
	} else {
		returns = m.evaluator.Evaluate(leafState)
	}
	backup(leaf, returns, solved, m.game.MaxUtility())
	return added
}

// selectThenExpand descends from root until it reaches a terminal state or a
// node visited for the first time, expanding every visited node on the way.
func (m *MCTS) selectThenExpand(root *node, state game.State) (*node, game.State, int) {
	current := root
	added := 0
	for !game.IsTerminal(state) && current.visits > 0 {
		if len(current.children) == 0 {
			added += m.expand(current, state)
		}

		var chosen *node
		if current.chance {
			chosen = current.sampleChild(state, m.rng)
		} else {
			chosen = current.selectChild(m.uctC)
		}
		state.ApplyAction(chosen.action)
		current = chosen
	}
	return current, state, added
}

func (m *MCTS) expand(n *node, state game.State) int {
	switch state.Kind() {
	case game.Decision, game.Chance:
	default:
		panic(fmt.Sprintf("cannot expand a %s node", state.Kind()))
	}

	prior := m.evaluator.Prior(state)
	m.rng.Shuffle(len(prior), func(i, j int) { prior[i], prior[j] = prior[j], prior[i] })

	player := state.CurrentPlayer()
	n.chance = state.Kind() == game.Chance
	n.children = make([]*node, 0, len(prior))
	for _, p := range prior {
		n.children = append(n.children, newNode(n, p.Action, player, p.Prob))
	}
	return len(n.children)
}
