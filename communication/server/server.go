package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"matcharena/agent"
	"matcharena/communication"
	"matcharena/game"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
)

const shutdownTimeout = 5 * time.Second

var tracer = otel.Tracer("matcharena/server")

// AgentFactory builds the hosted agent for a seat on first use.
type AgentFactory func(player game.Player) (agent.Agent, error)

// Server answers step requests for one game with locally hosted agents.
// Requests are served one at a time.
type Server struct {
	game     game.Game
	newAgent AgentFactory

	mutex  sync.Mutex
	agents map[game.Player]agent.Agent
}

func NewServer(g game.Game, newAgent AgentFactory) *Server {
	return &Server{
		game:     g,
		newAgent: newAgent,
		agents:   make(map[game.Player]agent.Agent),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+communication.StepPath, s.handleStep)
	mux.HandleFunc("GET "+communication.HealthPath, s.handleHealth)
	return mux
}

// ListenAndServe serves on addr until ctx ends.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	log.Info().Msgf("agent server for %s listening on %s", s.game.Name(), addr)
	go func() {
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown agent server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve agent server: %w", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
	ctx, span := tracer.Start(ctx, "server.Step")
	defer span.End()

	var req communication.StepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}
	span.SetAttributes(attribute.Int("player", req.Player), attribute.Int("history", len(req.History)))

	if req.Game != s.game.Name() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("this server plays %s, not %s", s.game.Name(), req.Game))
		return
	}

	state, err := replay(s.game, req.History)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	player := game.Player(req.Player)
	if state.Kind() != game.Decision || state.CurrentPlayer() != player {
		writeError(w, http.StatusConflict, fmt.Sprintf("player %d is not to move", req.Player))
		return
	}

	label, err := s.step(context.WithoutCancel(ctx), player, state, req.History)
	if err != nil {
		span.RecordError(err)
		log.Error().Err(err).Msgf("player %d failed to choose an action", req.Player)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, communication.StepResponse{Action: label})
}

func (s *Server) step(ctx context.Context, player game.Player, state game.State, history []string) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	a, ok := s.agents[player]
	if !ok {
		var err error
		a, err = s.newAgent(player)
		if err != nil {
			return "", fmt.Errorf("create agent for player %d: %w", player, err)
		}
		s.agents[player] = a
	}

	if observer, ok := a.(agent.Observer); ok {
		observer.Restart()
		for _, label := range history {
			observer.Inform(label)
		}
	}

	action, err := a.FindAction(ctx, state)
	if err != nil {
		return "", err
	}
	return state.ActionToString(player, action), nil
}

// replay applies history to a fresh state of g.
func replay(g game.Game, history []string) (game.State, error) {
	state := g.NewInitialState()
	for i, label := range history {
		if game.IsTerminal(state) {
			return nil, fmt.Errorf("history continues past the end of the game at %d", i)
		}
		action, ok := game.ResolveAction(state, label)
		if !ok {
			return nil, fmt.Errorf("illegal action %q at %d", label, i)
		}
		state.ApplyAction(action)
	}
	return state, nil
}

func writeJSON(w http.ResponseWriter, status int, resp communication.StepResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Warn().Err(err).Msg("failed to encode step response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, communication.StepResponse{Error: message})
}
