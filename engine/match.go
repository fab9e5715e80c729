package engine

import (
	"context"
	"fmt"
	"slices"

	"matcharena/agent"
	"matcharena/game"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("matcharena/engine")

// Play runs one match from the initial state: the opening labels are applied
// first without consulting any agent, then chance nodes are sampled and agents
// choose at decision nodes until the game ends.
//
// ctx only carries tracing. Agents get a context that is never cancelled, so a
// match started is a match finished or failed.
func (e *Engine) Play(ctx context.Context, opening []string) (Record, error) {
	ctx, span := tracer.Start(ctx, "engine.Play", trace.WithAttributes(
		attribute.String("game", e.game.Name()),
		attribute.Int("opening", len(opening)),
	))
	defer span.End()

	record, err := e.play(context.WithoutCancel(ctx), opening)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Record{}, err
	}
	span.SetAttributes(attribute.Int("actions", len(record.Actions)))
	return record, nil
}

func (e *Engine) play(ctx context.Context, opening []string) (Record, error) {
	for _, a := range e.agents {
		if observer, ok := a.(agent.Observer); ok {
			observer.Restart()
		}
	}

	state := e.game.NewInitialState()
	e.narrate("Initial state:\n%s\n", state)

	var record Record
	for _, text := range opening {
		action, ok := game.ResolveAction(state, text)
		if !ok {
			return Record{}, fmt.Errorf("%w: %q", ErrIllegalAction, text)
		}
		e.apply(state, &record, text, action)
		e.narrate("Forced action %s\nNext state:\n%s\n", text, state)
	}

	for !game.IsTerminal(state) {
		var action game.Action
		var label string

		switch kind := state.Kind(); kind {
		case game.Chance:
			action = game.SampleChanceOutcome(state.ChanceOutcomes(), e.rng.Float64())
			label = state.ActionToString(game.ChancePlayer, action)
			e.narrate("Sampled action: %s\n", label)
		case game.Decision:
			player := state.CurrentPlayer()
			if player < 0 || int(player) >= len(e.agents) {
				panic(fmt.Sprintf("decision node for player %d", player))
			}

			var err error
			action, err = e.agents[player].FindAction(ctx, state)
			if err != nil {
				return Record{}, fmt.Errorf("player %d: %w", player, err)
			}
			if !slices.Contains(state.LegalActions(), action) {
				return Record{}, fmt.Errorf("%w: player %d chose %d", ErrIllegalAction, player, action)
			}
			label = state.ActionToString(player, action)
			e.narrate("Player %d chose action: %s\n", player, label)
		case game.Simultaneous:
			return Record{}, fmt.Errorf("%w: %s", ErrSimultaneousNode, e.game.Name())
		default:
			panic(fmt.Sprintf("unexpected %s node", kind))
		}

		e.apply(state, &record, label, action)
		e.narrate("Next state:\n%s\n", state)
	}

	record.Returns = state.Returns()
	log.Debug().Msgf("match over after %d actions: %v", len(record.Actions), record.Returns)
	return record, nil
}

func (e *Engine) apply(state game.State, record *Record, label string, action game.Action) {
	state.ApplyAction(action)
	record.Actions = append(record.Actions, label)
	for _, a := range e.agents {
		if observer, ok := a.(agent.Observer); ok {
			observer.Inform(label)
		}
	}
}
