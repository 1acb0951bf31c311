package scoring

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	TiedSummary      = "Match Tied"
	AbandonedSummary = "Match abandoned"
)

// Winner says which side an Outcome favours.
type Winner int

const (
	Tie Winner = iota
	FirstInnings
	SecondInnings
)

// Outcome is a decided match.
type Outcome struct {
	Winner  Winner
	Summary string
}

// Plural returns "n word", adding an s unless n is exactly one.
func Plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func WonByWickets(n int) string { return "Won by " + Plural(n, "wicket") }

func WonByRuns(n int) string { return "Won by " + Plural(n, "run") }

// Target is what the chasing side must reach.
func Target(firstInningsRuns int) int {
	return firstInningsRuns + 1
}

// InningsOver reports whether an innings has run out of wickets or balls.
func InningsOver(t Totals, overs int) bool {
	return t.Wickets >= MaxWickets || t.LegalBalls >= overs*BallsPerOver
}

// TargetChased reports whether the second innings has passed the first.
func TargetChased(first, second Totals) bool {
	return second.Runs > first.Runs
}

// Decide compares two finished innings.
func Decide(first, second Totals) Outcome {
	switch {
	case second.Runs > first.Runs:
		return Outcome{Winner: SecondInnings, Summary: WonByWickets(MaxWickets - second.Wickets)}
	case first.Runs > second.Runs:
		return Outcome{Winner: FirstInnings, Summary: WonByRuns(first.Runs - second.Runs)}
	default:
		return Outcome{Winner: Tie, Summary: TiedSummary}
	}
}

// RequiredRunRate is runs needed per over for the remaining legal balls,
// rounded to two places. It is nil once no balls remain.
func RequiredRunRate(target, runs, overs, legalBalls int) *float64 {
	remaining := BallsRemaining(overs, legalBalls)
	if remaining <= 0 {
		return nil
	}
	needed := decimal.NewFromInt(int64(target - runs)).Mul(decimal.NewFromInt(BallsPerOver))
	rate := needed.Div(decimal.NewFromInt(int64(remaining))).Round(2).InexactFloat64()
	return &rate
}
