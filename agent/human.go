package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"matcharena/game"

	"github.com/logrusorgru/aurora"
)

type humanAgent struct {
	input *bufio.Scanner
	out   io.Writer
	au    aurora.Aurora
}

// NewHumanAgent prompts on out and reads one action label per line. Agents
// sharing a terminal must share the scanner.
func NewHumanAgent(input *bufio.Scanner, out io.Writer, color bool) Agent {
	return &humanAgent{input: input, out: out, au: aurora.NewAurora(color)}
}

func (a *humanAgent) FindAction(_ context.Context, state game.State) (game.Action, error) {
	labels := game.ActionLabels(state)
	for {
		fmt.Fprintf(a.out, "%s %s\n", a.au.Bold("Legal actions:"), strings.Join(labels, ", "))
		fmt.Fprintf(a.out, "%s ", a.au.Cyan(fmt.Sprintf("Player %d>", state.CurrentPlayer())))

		if !a.input.Scan() {
			if err := a.input.Err(); err != nil {
				return 0, fmt.Errorf("read action: %w", err)
			}
			return 0, ErrInputClosed
		}

		text := strings.TrimRight(a.input.Text(), "\r")
		if text == "" {
			continue
		}
		if action, ok := game.ResolveAction(state, text); ok {
			return action, nil
		}
		fmt.Fprintf(a.out, "%s %q\n", a.au.Red("Illegal action:"), text)
	}
}
