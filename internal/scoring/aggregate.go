package scoring

import "errors"

// MaxWickets ends an innings.
const MaxWickets = 10

// ErrAllOut is returned when a delivery is applied to an innings that has
// already lost all its wickets.
var ErrAllOut = errors.New("innings is already all out")

// Delta is the change one delivery makes to innings totals.
type Delta struct {
	Runs       int
	Wickets    int
	Extras     int
	Wides      int
	NoBalls    int
	Byes       int
	LegByes    int
	LegalBalls int
}

// DeltaFor classifies a ledger entry. Apply and undo both go through here
// with the stored values, so undoing a ball removes exactly what recording
// it added.
//
//	wide     1 penalty + runs, all wides
//	no_ball  1 penalty as extras; batsman runs count toward the total only
//	bye      runs as byes
//	leg_bye  runs as leg byes
//	normal   runs, no extras
func DeltaFor(ballType BallType, runs int, isWicket bool) Delta {
	var d Delta

	switch ballType {
	case BallWide:
		d.Wides = 1 + runs
		d.Extras = d.Wides
		d.Runs = d.Extras
	case BallNoBall:
		d.NoBalls = 1
		d.Extras = 1
		d.Runs = runs + d.Extras
	case BallBye:
		d.Byes = runs
		d.Extras = runs
		d.Runs = runs
	case BallLegBye:
		d.LegByes = runs
		d.Extras = runs
		d.Runs = runs
	default:
		d.Runs = runs
	}

	if isWicket {
		d.Wickets = 1
	}
	if ballType.IsLegal() {
		d.LegalBalls = 1
	}
	return d
}

// DeltaOf is DeltaFor applied to a parsed delivery.
func DeltaOf(d Delivery) Delta {
	return DeltaFor(d.Stored(), d.Runs(), d.IsWicket())
}

// Totals is the cumulative state of one innings.
type Totals struct {
	Runs       int
	Wickets    int
	LegalBalls int
	Extras     int
	Wides      int
	NoBalls    int
	Byes       int
	LegByes    int
}

// Apply folds a delta into the totals.
func (t Totals) Apply(d Delta) (Totals, error) {
	if d.Wickets > 0 && t.Wickets >= MaxWickets {
		return t, ErrAllOut
	}
	t.Runs += d.Runs
	t.Wickets += d.Wickets
	t.LegalBalls += d.LegalBalls
	t.Extras += d.Extras
	t.Wides += d.Wides
	t.NoBalls += d.NoBalls
	t.Byes += d.Byes
	t.LegByes += d.LegByes
	return t, nil
}

// Revert removes a delta, flooring every field at zero.
func (t Totals) Revert(d Delta) Totals {
	t.Runs = floor(t.Runs - d.Runs)
	t.Wickets = floor(t.Wickets - d.Wickets)
	t.LegalBalls = floor(t.LegalBalls - d.LegalBalls)
	t.Wides = floor(t.Wides - d.Wides)
	t.NoBalls = floor(t.NoBalls - d.NoBalls)
	t.Byes = floor(t.Byes - d.Byes)
	t.LegByes = floor(t.LegByes - d.LegByes)
	t.Extras = t.Wides + t.NoBalls + t.Byes + t.LegByes
	return t
}

// OversBowled is the decimal overs display of the legal-ball count.
func (t Totals) OversBowled() float64 {
	return Overs(t.LegalBalls)
}

func floor(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
