// Package communication defines the JSON messages exchanged with an agent server.
package communication

const (
	StepPath   = "/step"
	HealthPath = "/healthz"
)

// StepRequest asks the server which action Player takes after History, the
// labels of every action applied since the initial state of Game.
type StepRequest struct {
	Game    string   `json:"game"`
	Player  int      `json:"player"`
	History []string `json:"history"`
}

// StepResponse carries the label of the chosen action, or Error.
type StepResponse struct {
	Action string `json:"action,omitempty"`
	Error  string `json:"error,omitempty"`
}
