package main

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"matcharena/agent"
	"matcharena/communication/server"
	"matcharena/config"
	"matcharena/engine"
	"matcharena/experiments"
	"matcharena/experiments/metrics"
	"matcharena/game"
	_ "matcharena/game/pennies"
	_ "matcharena/game/pig"
	_ "matcharena/game/tictactoe"
	"matcharena/telemetry"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const serviceName = "matcharena"

// run plays the configured games, or hosts an agent server when cfg.Serve is
// set. Records, narration and the summary go to stdout.
func run(ctx context.Context, cfg config.Config, stdin io.Reader, stdout io.Writer) error {
	shutdown, err := telemetry.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			log.Warn().Err(err).Msg("failed to flush traces")
		}
	}()

	g, err := game.Load(cfg.Game)
	if err != nil {
		return err
	}
	log.Info().Msgf("game: %s", g.Name())

	seed := cfg.RandSeed()
	log.Debug().Msgf("seed: %d", seed)
	rng := rand.New(rand.NewSource(seed))

	opts := agent.Options{
		Game:        g,
		Rand:        rng,
		UCTC:        cfg.UCTC,
		Rollouts:    cfg.RolloutCount,
		Simulations: cfg.MaxSimulations,
		MaxNodes:    cfg.MaxNodes,
		Solve:       cfg.Solve,
		Input:       bufio.NewScanner(stdin),
		Out:         stdout,
		Color:       cfg.Color,
		Script:      cfg.Script,
		RemoteAddr:  cfg.RemoteAddr,
	}
	if cfg.Verbose {
		opts.Verbose = stdout
	}

	if cfg.Serve != "" {
		return serve(ctx, cfg, g, opts)
	}

	kinds := []string{cfg.Player1, cfg.Player2}
	for p, kind := range kinds {
		if err := agent.CheckKind(kind); err != nil {
			return fmt.Errorf("player %d: %w", p, err)
		}
	}
	agents := make([]agent.Agent, 0, len(kinds))
	for p := 0; p < min(g.NumPlayers(), len(kinds)); p++ {
		a, err := agent.New(kinds[p], game.Player(p), opts)
		if err != nil {
			return err
		}
		agents = append(agents, a)
	}

	var options []engine.Option
	if !cfg.Quiet {
		options = append(options, engine.WithNarration(stdout))
	}
	e, err := engine.New(g, agents, rng, options...)
	if err != nil {
		return err
	}

	summary, err := experiments.Run(ctx, e, cfg.NumGames, cfg.Opening, stdout)
	if err != nil {
		return err
	}
	if summary.Games < cfg.NumGames {
		fmt.Fprintln(stdout, "Stopped early.")
	}
	return metrics.WriteSummary(stdout, summary)
}

// serve hosts player1's agent kind for every seat of g.
func serve(ctx context.Context, cfg config.Config, g game.Game, opts agent.Options) error {
	s := server.NewServer(g, func(player game.Player) (agent.Agent, error) {
		return agent.New(cfg.Player1, player, opts)
	})
	return s.ListenAndServe(ctx, cfg.Serve)
}
