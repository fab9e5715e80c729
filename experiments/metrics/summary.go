// Package metrics accumulates outcome statistics across the matches of a run.
package metrics

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

type Summary struct {
	Games    int
	Distinct int       // Distinct action sequences among Games
	Returns  []float64 // Cumulative return per player
	Wins     []int     // Matches with a strictly positive return, per player
}

// Aggregator is updated once per completed match and never sees partial ones.
type Aggregator struct {
	games     int
	histories map[string]int
	returns   []float64
	wins      []int
}

func NewAggregator(numPlayers int) *Aggregator {
	return &Aggregator{
		histories: make(map[string]int),
		returns:   make([]float64, numPlayers),
		wins:      make([]int, numPlayers),
	}
}

func (a *Aggregator) Record(returns []float64, actions []string) {
	if len(returns) != len(a.returns) {
		panic(fmt.Sprintf("got %d returns for %d players", len(returns), len(a.returns)))
	}

	a.games++
	a.histories[strings.Join(actions, " ")]++
	for p, v := range returns {
		a.returns[p] += v
		if v > 0 {
			a.wins[p]++
		}
	}
}

// Count is the number of recorded matches that played exactly actions.
func (a *Aggregator) Count(actions []string) int {
	return a.histories[strings.Join(actions, " ")]
}

// Summary is a snapshot; later records do not change it.
func (a *Aggregator) Summary() Summary {
	return Summary{
		Games:    a.games,
		Distinct: len(a.histories),
		Returns:  append([]float64(nil), a.returns...),
		Wins:     append([]int(nil), a.wins...),
	}
}

func WriteSummary(w io.Writer, s Summary) error {
	wins := make([]string, len(s.Wins))
	for i, v := range s.Wins {
		wins[i] = strconv.Itoa(v)
	}
	returns := make([]string, len(s.Returns))
	for i, v := range s.Returns {
		returns[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}

	_, err := fmt.Fprintf(w,
		"Number of games played: %d\nNumber of distinct games played: %d\nOverall wins: %s\nOverall returns: %s\n",
		s.Games, s.Distinct, strings.Join(wins, ","), strings.Join(returns, ","))
	return err
}
