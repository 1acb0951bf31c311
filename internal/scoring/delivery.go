package scoring

import (
	"errors"
	"fmt"
)

// MaxRunsPerDelivery bounds the runs a scorer may enter for one ball.
const MaxRunsPerDelivery = 7

// WicketType is how a batsman was dismissed.
type WicketType string

const (
	WicketBowled    WicketType = "bowled"
	WicketCaught    WicketType = "caught"
	WicketLBW       WicketType = "lbw"
	WicketRunOut    WicketType = "run_out"
	WicketStumped   WicketType = "stumped"
	WicketHitWicket WicketType = "hit_wicket"
	WicketRetired   WicketType = "retired"
)

// Valid reports whether w is a known dismissal.
func (w WicketType) Valid() bool {
	switch w {
	case WicketBowled, WicketCaught, WicketLBW, WicketRunOut, WicketStumped, WicketHitWicket, WicketRetired:
		return true
	}
	return false
}

var (
	ErrNegativeRuns       = errors.New("runs cannot be negative")
	ErrTooManyRuns        = fmt.Errorf("runs cannot exceed %d on a single delivery", MaxRunsPerDelivery)
	ErrUnknownBallType    = errors.New("unknown ball type")
	ErrWicketTypeRequired = errors.New("wicket type is required for a wicket")
	ErrUnknownWicketType  = errors.New("unknown wicket type")
)

// Delivery is one ball as submitted by a scorer. The concrete variants are
// Normal, Wide, NoBall, Bye, LegBye and Wicket; no other package can add one.
type Delivery interface {
	// Runs is the runs_scored value of the delivery before extras logic.
	Runs() int
	// Stored is the ball_type written to the ledger.
	Stored() BallType
	// IsWicket reports whether a batsman was dismissed.
	IsWicket() bool

	delivery()
}

type Normal struct{ RunsScored int }

type Wide struct{ RunsScored int }

type NoBall struct{ RunsScored int }

type Bye struct{ RunsScored int }

type LegBye struct{ RunsScored int }

// Wicket is a dismissal. It is always recorded as a normal ball with the
// wicket flag set; the ledger never tags a wicket as wide, no-ball or bye.
type Wicket struct {
	RunsScored int
	Type       WicketType
}

func (d Normal) Runs() int { return d.RunsScored }
func (d Wide) Runs() int   { return d.RunsScored }
func (d NoBall) Runs() int { return d.RunsScored }
func (d Bye) Runs() int    { return d.RunsScored }
func (d LegBye) Runs() int { return d.RunsScored }
func (d Wicket) Runs() int { return d.RunsScored }

func (Normal) Stored() BallType { return BallNormal }
func (Wide) Stored() BallType   { return BallWide }
func (NoBall) Stored() BallType { return BallNoBall }
func (Bye) Stored() BallType    { return BallBye }
func (LegBye) Stored() BallType { return BallLegBye }
func (Wicket) Stored() BallType { return BallNormal }

func (Normal) IsWicket() bool { return false }
func (Wide) IsWicket() bool   { return false }
func (NoBall) IsWicket() bool { return false }
func (Bye) IsWicket() bool    { return false }
func (LegBye) IsWicket() bool { return false }
func (Wicket) IsWicket() bool { return true }

func (Normal) delivery() {}
func (Wide) delivery()   {}
func (NoBall) delivery() {}
func (Bye) delivery()    {}
func (LegBye) delivery() {}
func (Wicket) delivery() {}

// ParseDelivery turns the loose request fields into a Delivery. An empty
// ball type means normal. Any request flagged as a wicket, or typed
// "wicket", becomes a Wicket and must name how the batsman was out.
func ParseDelivery(ballType BallType, runs int, isWicket bool, wicketType WicketType) (Delivery, error) {
	if runs < 0 {
		return nil, ErrNegativeRuns
	}
	if runs > MaxRunsPerDelivery {
		return nil, ErrTooManyRuns
	}
	if ballType == "" {
		ballType = BallNormal
	}
	if !ballType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBallType, ballType)
	}

	if isWicket || ballType == BallWicket {
		if wicketType == "" {
			return nil, ErrWicketTypeRequired
		}
		if !wicketType.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownWicketType, wicketType)
		}
		return Wicket{RunsScored: runs, Type: wicketType}, nil
	}

	switch ballType {
	case BallWide:
		return Wide{RunsScored: runs}, nil
	case BallNoBall:
		return NoBall{RunsScored: runs}, nil
	case BallBye:
		return Bye{RunsScored: runs}, nil
	case BallLegBye:
		return LegBye{RunsScored: runs}, nil
	default:
		return Normal{RunsScored: runs}, nil
	}
}
