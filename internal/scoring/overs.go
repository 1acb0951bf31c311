// Package scoring holds the pure cricket scoring rules: how deliveries are
// classified, how they fold into innings totals and how results are decided.
// Nothing here touches storage.
package scoring

// BallsPerOver is the legal-delivery quota of one over.
const BallsPerOver = 6

// BallType classifies a delivery as stored in the ledger.
type BallType string

const (
	BallNormal BallType = "normal"
	BallWide   BallType = "wide"
	BallNoBall BallType = "no_ball"
	BallBye    BallType = "bye"
	BallLegBye BallType = "leg_bye"
	BallWicket BallType = "wicket"
)

// Valid reports whether t is one of the known ball types.
func (t BallType) Valid() bool {
	switch t {
	case BallNormal, BallWide, BallNoBall, BallBye, BallLegBye, BallWicket:
		return true
	}
	return false
}

// IsLegal reports whether a delivery of this type consumes one of the six
// slots in an over. Wides and no-balls never do.
func (t BallType) IsLegal() bool {
	switch t {
	case BallNormal, BallWicket, BallBye, BallLegBye:
		return true
	}
	return false
}

// Overs renders a legal-ball count in the decimal overs notation:
// 7 legal balls is 1.1, 6 is 1.0. The fraction is the ball count, not a
// true division, so it never reaches .6.
func Overs(legalBalls int) float64 {
	if legalBalls < 0 {
		legalBalls = 0
	}
	return float64(CurrentOver(legalBalls)) + float64(BallInOver(legalBalls))/10
}

// CurrentOver is the 0-based over the next legal delivery belongs to.
func CurrentOver(legalBalls int) int {
	return legalBalls / BallsPerOver
}

// BallInOver is the 0-based position within the current over before the
// next legal delivery.
func BallInOver(legalBalls int) int {
	return legalBalls % BallsPerOver
}

// BallsRemaining is how many legal deliveries are left in an innings of
// the given length. It may be negative if the quota was overrun.
func BallsRemaining(overs, legalBalls int) int {
	return overs*BallsPerOver - legalBalls
}
