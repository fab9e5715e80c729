package engine

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"matcharena/agent"
	"matcharena/game"
	"matcharena/game/pennies"
	"matcharena/game/pig"
	"matcharena/game/tictactoe"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// labelAgent plays the given labels in order and counts its calls.
type labelAgent struct {
	labels []string
	calls  int
	ctxErr error
}

func (a *labelAgent) FindAction(ctx context.Context, state game.State) (game.Action, error) {
	a.ctxErr = ctx.Err()
	if a.calls >= len(a.labels) {
		return 0, errors.New("out of labels")
	}
	label := a.labels[a.calls]
	a.calls++
	action, ok := game.ResolveAction(state, label)
	if !ok {
		return 0, errors.New("bad label " + label)
	}
	return action, nil
}

// observingAgent plays randomly and keeps the labels it was informed of.
type observingAgent struct {
	agent.Agent
	restarts int
	seen     []string
}

func (a *observingAgent) Restart()            { a.restarts++; a.seen = nil }
func (a *observingAgent) Inform(label string) { a.seen = append(a.seen, label) }

type fixedAgent struct{ action game.Action }

func (a fixedAgent) FindAction(context.Context, game.State) (game.Action, error) {
	return a.action, nil
}

type threePlayerGame struct{ tictactoe.Game }

func (threePlayerGame) NumPlayers() int { return 3 }

func newRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func randomAgents(seed uint64) []agent.Agent {
	return []agent.Agent{agent.NewRandomAgent(newRandom(seed)), agent.NewRandomAgent(newRandom(seed + 1))}
}

func TestNew(t *testing.T) {
	t.Run("too many players", func(t *testing.T) {
		agents := append(randomAgents(1), agent.NewRandomAgent(newRandom(3)))
		_, err := New(threePlayerGame{}, agents, newRandom(1))
		require.ErrorIs(t, err, ErrTooManyPlayers)
	})

	t.Run("missing agent", func(t *testing.T) {
		_, err := New(tictactoe.Game{}, randomAgents(1)[:1], newRandom(1))
		require.ErrorIs(t, err, ErrMissingAgent)
	})

	t.Run("nil agent", func(t *testing.T) {
		_, err := New(tictactoe.Game{}, []agent.Agent{agent.NewRandomAgent(newRandom(1)), nil}, newRandom(1))
		require.ErrorIs(t, err, ErrMissingAgent)
	})

	t.Run("panics without a random source", func(t *testing.T) {
		require.Panics(t, func() { New(tictactoe.Game{}, randomAgents(1), nil) })
	})
}

func TestPlay(t *testing.T) {
	ctx := context.Background()

	t.Run("random play is zero-sum", func(t *testing.T) {
		e, err := New(tictactoe.Game{}, randomAgents(5), newRandom(5))
		require.NoError(t, err)

		for i := 0; i < 20; i++ {
			record, err := e.Play(ctx, nil)
			require.NoError(t, err)
			require.Len(t, record.Returns, 2)
			require.Equal(t, 0.0, record.Returns[0]+record.Returns[1])
			require.GreaterOrEqual(t, len(record.Actions), 5)
			require.LessOrEqual(t, len(record.Actions), 9)
		}
	})

	t.Run("scripted match", func(t *testing.T) {
		x := &labelAgent{labels: []string{"x(0,0)", "x(0,1)", "x(0,2)"}}
		o := &labelAgent{labels: []string{"o(1,0)", "o(1,1)"}}
		e, err := New(tictactoe.Game{}, []agent.Agent{x, o}, newRandom(1))
		require.NoError(t, err)

		record, err := e.Play(ctx, nil)

		require.NoError(t, err)
		require.Equal(t, []float64{1, -1}, record.Returns)
		require.Equal(t, "Returns: 1 -1 , Game actions: x(0,0) o(1,0) x(0,1) o(1,1) x(0,2)", record.String())
	})

	t.Run("opening is applied without asking agents", func(t *testing.T) {
		x := &labelAgent{labels: []string{"x(0,2)"}}
		o := &labelAgent{}
		e, err := New(tictactoe.Game{}, []agent.Agent{x, o}, newRandom(1))
		require.NoError(t, err)

		record, err := e.Play(ctx, []string{"x(0,0)", "o(1,0)", "x(0,1)", "o(1,1)"})

		require.NoError(t, err)
		require.Equal(t, 1, x.calls)
		require.Equal(t, 0, o.calls)
		require.Equal(t, []string{"x(0,0)", "o(1,0)", "x(0,1)", "o(1,1)", "x(0,2)"}, record.Actions)
	})

	t.Run("illegal opening stops before any agent is asked", func(t *testing.T) {
		x, o := &labelAgent{labels: []string{"x(2,2)"}}, &labelAgent{labels: []string{"o(2,2)"}}
		e, err := New(tictactoe.Game{}, []agent.Agent{x, o}, newRandom(1))
		require.NoError(t, err)

		_, err = e.Play(ctx, []string{"x(1,1)", "x(1,1)"})

		require.ErrorIs(t, err, ErrIllegalAction)
		require.ErrorContains(t, err, `"x(1,1)"`)
		require.Zero(t, x.calls+o.calls)
	})

	t.Run("labels are case-sensitive", func(t *testing.T) {
		e, err := New(tictactoe.Game{}, randomAgents(1), newRandom(1))
		require.NoError(t, err)

		_, err = e.Play(ctx, []string{"X(1,1)"})
		require.ErrorIs(t, err, ErrIllegalAction)
	})

	t.Run("agent choosing an illegal action", func(t *testing.T) {
		e, err := New(tictactoe.Game{}, []agent.Agent{fixedAgent{action: 4}, fixedAgent{action: 4}}, newRandom(1))
		require.NoError(t, err)

		_, err = e.Play(ctx, nil)
		require.ErrorIs(t, err, ErrIllegalAction)
	})

	t.Run("agent errors are returned", func(t *testing.T) {
		e, err := New(tictactoe.Game{}, []agent.Agent{&labelAgent{}, &labelAgent{}}, newRandom(1))
		require.NoError(t, err)

		_, err = e.Play(ctx, nil)
		require.ErrorContains(t, err, "player 0: out of labels")
	})

	t.Run("simultaneous nodes are rejected", func(t *testing.T) {
		x, o := &labelAgent{}, &labelAgent{}
		e, err := New(pennies.Game{}, []agent.Agent{x, o}, newRandom(1))
		require.NoError(t, err)

		_, err = e.Play(ctx, nil)

		require.ErrorIs(t, err, ErrSimultaneousNode)
		require.Zero(t, x.calls+o.calls)
	})

	t.Run("chance outcomes are sampled", func(t *testing.T) {
		g := pig.New(10, 100)
		e, err := New(g, randomAgents(8), newRandom(8))
		require.NoError(t, err)

		record, err := e.Play(ctx, nil)

		require.NoError(t, err)
		require.Contains(t, record.History(), "Roll ")
		require.Equal(t, 0.0, record.Returns[0]+record.Returns[1])
	})

	t.Run("replaying a record reproduces it", func(t *testing.T) {
		g := pig.New(10, 100)
		e, err := New(g, randomAgents(13), newRandom(13))
		require.NoError(t, err)
		played, err := e.Play(ctx, nil)
		require.NoError(t, err)

		x, o := &labelAgent{}, &labelAgent{}
		replay, err := New(g, []agent.Agent{x, o}, newRandom(99))
		require.NoError(t, err)
		replayed, err := replay.Play(ctx, played.Actions)

		require.NoError(t, err)
		require.Equal(t, played, replayed)
		require.Zero(t, x.calls+o.calls)
	})

	t.Run("observers follow the match", func(t *testing.T) {
		x := &observingAgent{Agent: agent.NewRandomAgent(newRandom(2))}
		o := &observingAgent{Agent: agent.NewRandomAgent(newRandom(3))}
		e, err := New(tictactoe.Game{}, []agent.Agent{x, o}, newRandom(1))
		require.NoError(t, err)

		first, err := e.Play(ctx, []string{"x(1,1)"})
		require.NoError(t, err)
		require.Equal(t, first.Actions, x.seen)
		require.Equal(t, first.Actions, o.seen)

		second, err := e.Play(ctx, nil)
		require.NoError(t, err)
		require.Equal(t, 2, x.restarts)
		require.Equal(t, second.Actions, o.seen)
	})

	t.Run("agents never see cancellation", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		x := &labelAgent{labels: []string{"x(0,0)", "x(0,1)", "x(0,2)"}}
		o := &labelAgent{labels: []string{"o(1,0)", "o(1,1)"}}
		e, err := New(tictactoe.Game{}, []agent.Agent{x, o}, newRandom(1))
		require.NoError(t, err)

		_, err = e.Play(cancelled, nil)

		require.NoError(t, err)
		require.NoError(t, x.ctxErr)
	})
}

func TestNarration(t *testing.T) {
	t.Run("narrates forced, sampled and chosen actions", func(t *testing.T) {
		var out bytes.Buffer
		e, err := New(pig.New(10, 100), randomAgents(4), newRandom(4), WithNarration(&out))
		require.NoError(t, err)

		_, err = e.Play(context.Background(), []string{"roll"})
		require.NoError(t, err)

		text := out.String()
		require.Contains(t, text, "Initial state:\nScores: 0 0, Turn total: 0\nCurrent player: 0\n")
		require.Contains(t, text, "Forced action roll\nNext state:\n")
		require.Contains(t, text, "Sampled action: Roll ")
		require.Contains(t, text, "chose action: ")
	})

	t.Run("quiet by default", func(t *testing.T) {
		e, err := New(tictactoe.Game{}, randomAgents(4), newRandom(4))
		require.NoError(t, err)
		require.Nil(t, e.narration)
	})
}

func TestRecord(t *testing.T) {
	t.Run("formats returns compactly", func(t *testing.T) {
		r := Record{Returns: []float64{0.5, -0.5}, Actions: []string{"roll", "Roll 3", "stop"}}
		require.Equal(t, "Returns: 0.5 -0.5 , Game actions: roll Roll 3 stop", r.String())
		require.Equal(t, "roll Roll 3 stop", r.History())
	})
}
