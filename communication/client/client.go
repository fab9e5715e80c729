package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"matcharena/communication"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

var ErrServer = errors.New("agent server error")

const defaultTimeout = 5 * time.Minute

type Client struct {
	serverURL  string
	httpClient *http.Client
}

// NewClient talks to the agent server at serverURL. A bare host:port is
// treated as http.
func NewClient(serverURL string) *Client {
	if !strings.Contains(serverURL, "://") {
		serverURL = "http://" + serverURL
	}
	return &Client{
		serverURL:  strings.TrimRight(serverURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Step asks the server for the action of req.Player. Errors reported by the
// server wrap ErrServer.
func (c *Client) Step(ctx context.Context, req communication.StepRequest) (communication.StepResponse, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return communication.StepResponse{}, fmt.Errorf("encode step request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+communication.StepPath, bytes.NewReader(data))
	if err != nil {
		return communication.StepResponse{}, fmt.Errorf("build step request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return communication.StepResponse{}, fmt.Errorf("post step: %w", err)
	}
	defer resp.Body.Close()

	var step communication.StepResponse
	if err := json.NewDecoder(resp.Body).Decode(&step); err != nil {
		if resp.StatusCode != http.StatusOK {
			return communication.StepResponse{}, fmt.Errorf("%w: status %d", ErrServer, resp.StatusCode)
		}
		return communication.StepResponse{}, fmt.Errorf("decode step response: %w", err)
	}
	if step.Error != "" {
		return step, fmt.Errorf("%w: %s", ErrServer, step.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return step, fmt.Errorf("%w: status %d", ErrServer, resp.StatusCode)
	}
	return step, nil
}

// Healthy reports whether the server answers its health check.
func (c *Client) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serverURL+communication.HealthPath, nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
