package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"matcharena/communication"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

func TestNewClient(t *testing.T) {
	t.Run("bare addresses use http", func(t *testing.T) {
		require.Equal(t, "http://localhost:8080", NewClient("localhost:8080").serverURL)
	})

	t.Run("trailing slashes are dropped", func(t *testing.T) {
		require.Equal(t, "https://agents.example", NewClient("https://agents.example/").serverURL)
	})
}

func TestStep(t *testing.T) {
	t.Run("posts the request and decodes the answer", func(t *testing.T) {
		var got communication.StepRequest
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, communication.StepPath, r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			json.NewEncoder(w).Encode(communication.StepResponse{Action: "stop"})
		}))
		defer ts.Close()

		req := communication.StepRequest{Game: "pig", Player: 1, History: []string{"roll", "Roll 4"}}
		resp, err := NewClient(ts.URL).Step(context.Background(), req)

		require.NoError(t, err)
		require.Equal(t, "stop", resp.Action)
		require.Equal(t, req, got)
	})

	t.Run("propagates trace context", func(t *testing.T) {
		previous := otel.GetTextMapPropagator()
		otel.SetTextMapPropagator(propagation.TraceContext{})
		defer otel.SetTextMapPropagator(previous)

		var traceparent string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceparent = r.Header.Get("traceparent")
			json.NewEncoder(w).Encode(communication.StepResponse{Action: "roll"})
		}))
		defer ts.Close()

		spanContext := trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    trace.TraceID{1, 2, 3},
			SpanID:     trace.SpanID{4, 5, 6},
			TraceFlags: trace.FlagsSampled,
		})
		ctx := trace.ContextWithSpanContext(context.Background(), spanContext)

		_, err := NewClient(ts.URL).Step(ctx, communication.StepRequest{Game: "pig"})

		require.NoError(t, err)
		require.True(t, strings.HasPrefix(traceparent, "00-01020300"), "got traceparent %q", traceparent)
	})

	t.Run("server errors", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(communication.StepResponse{Error: "player 1 is not to move"})
		}))
		defer ts.Close()

		_, err := NewClient(ts.URL).Step(context.Background(), communication.StepRequest{})

		require.ErrorIs(t, err, ErrServer)
		require.ErrorContains(t, err, "player 1 is not to move")
	})

	t.Run("non-JSON failures", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad gateway", http.StatusBadGateway)
		}))
		defer ts.Close()

		_, err := NewClient(ts.URL).Step(context.Background(), communication.StepRequest{})

		require.ErrorIs(t, err, ErrServer)
		require.ErrorContains(t, err, "status 502")
	})

	t.Run("unreachable server", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		url := ts.URL
		ts.Close()

		_, err := NewClient(url).Step(context.Background(), communication.StepRequest{})
		require.Error(t, err)
		require.False(t, NewClient(url).Healthy(context.Background()))
	})
}
