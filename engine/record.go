package engine

import (
	"strconv"
	"strings"
)

// Record is the result of one completed match.
type Record struct {
	Returns []float64
	Actions []string // Labels of every applied action, forced ones included
}

// History is the space-joined action sequence identifying the playthrough.
func (r Record) History() string {
	return strings.Join(r.Actions, " ")
}

func (r Record) String() string {
	returns := make([]string, len(r.Returns))
	for i, v := range r.Returns {
		returns[i] = FormatReturn(v)
	}
	return "Returns: " + strings.Join(returns, " ") + " , Game actions: " + r.History()
}

// FormatReturn prints a return with the fewest digits that round-trip.
func FormatReturn(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
