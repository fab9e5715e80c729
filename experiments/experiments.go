// Package experiments runs a series of matches and aggregates their outcomes.
package experiments

import (
	"context"
	"errors"
	"fmt"
	"io"

	"matcharena/agent"
	"matcharena/engine"
	"matcharena/experiments/metrics"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("matcharena/experiments")

// Run plays up to games matches, each starting with opening, and writes one
// record line per completed match to out.
//
// Cancelling ctx stops the run before the next match; a match in progress
// always finishes first. An interactive agent losing its input stops the run
// the same way. Neither is an error: the summary covers exactly the matches
// that completed. On any other error the summary of the completed matches is
// returned with it.
func Run(ctx context.Context, e *engine.Engine, games int, opening []string, out io.Writer) (metrics.Summary, error) {
	ctx, span := tracer.Start(ctx, "experiments.Run", trace.WithAttributes(
		attribute.String("game", e.Game().Name()),
		attribute.Int("games", games),
	))
	defer span.End()

	aggregator := metrics.NewAggregator(e.Game().NumPlayers())
	for i := 0; i < games; i++ {
		select {
		case <-ctx.Done():
			log.Info().Msgf("caught interrupt, stopping early after %d of %d games", i, games)
			return finish(span, aggregator), nil
		default:
		}

		log.Debug().Msgf("starting game %d of %d", i+1, games)
		record, err := e.Play(ctx, opening)
		if errors.Is(err, agent.ErrInputClosed) {
			log.Info().Msgf("input closed, stopping early after %d of %d games", i, games)
			return finish(span, aggregator), nil
		}
		if err != nil {
			span.RecordError(err)
			return finish(span, aggregator), fmt.Errorf("game %d: %w", i+1, err)
		}

		fmt.Fprintln(out, record)
		aggregator.Record(record.Returns, record.Actions)
		log.Debug().Msgf("completed game %d of %d", i+1, games)
	}
	return finish(span, aggregator), nil
}

func finish(span trace.Span, aggregator *metrics.Aggregator) metrics.Summary {
	summary := aggregator.Summary()
	span.SetAttributes(
		attribute.Int("games.completed", summary.Games),
		attribute.Int("games.distinct", summary.Distinct),
	)
	return summary
}
