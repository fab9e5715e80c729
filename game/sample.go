package game

import (
	"fmt"
	"math"
)

// probabilityTolerance is the relative error allowed on the sum of a chance
// distribution.
const probabilityTolerance = 1e-5

// SampleChanceOutcome picks an outcome for a uniform draw u in [0, 1) by
// walking the cumulative distribution. The last outcome absorbs rounding
// error. A distribution that is empty or does not sum to 1 is a fault of the
// environment and panics.
func SampleChanceOutcome(outcomes []ActionProb, u float64) Action {
	if len(outcomes) == 0 {
		panic("game: chance node without outcomes")
	}

	total := 0.0
	for _, outcome := range outcomes {
		if outcome.Prob < 0 {
			panic(fmt.Sprintf("game: negative probability %v for action %d", outcome.Prob, outcome.Action))
		}
		total += outcome.Prob
	}
	if math.Abs(total-1) > probabilityTolerance*math.Max(1, total) {
		panic(fmt.Sprintf("game: chance outcomes sum to %v, want 1", total))
	}

	cumulative := 0.0
	for _, outcome := range outcomes {
		cumulative += outcome.Prob
		if u < cumulative {
			return outcome.Action
		}
	}
	return outcomes[len(outcomes)-1].Action
}
