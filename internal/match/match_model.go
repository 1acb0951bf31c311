package match

import (
	"time"

	"github.com/DhavalSuthar-24/scorebook/internal/scoring"
	"gorm.io/gorm"
)

type MatchStatus string

const (
	StatusUpcoming     MatchStatus = "upcoming"
	StatusLive         MatchStatus = "live"
	StatusInningsBreak MatchStatus = "innings_break" // never persisted, only published
	StatusCompleted    MatchStatus = "completed"
	StatusAbandoned    MatchStatus = "abandoned"
)

// Valid reports whether s is a known match status.
func (s MatchStatus) Valid() bool {
	switch s {
	case StatusUpcoming, StatusLive, StatusInningsBreak, StatusCompleted, StatusAbandoned:
		return true
	}
	return false
}

type TossDecision string

const (
	TossBat  TossDecision = "bat"
	TossBowl TossDecision = "bowl"
)

// DefaultOvers is the innings length when a match is created without one.
const DefaultOvers = 20

// Match is a two-innings limited-overs fixture between two teams.
type Match struct {
	gorm.Model
	Name            string       `json:"name" gorm:"not null"`
	Team1ID         uint         `json:"team1_id" gorm:"not null;index"`
	Team2ID         uint         `json:"team2_id" gorm:"not null;index"`
	Venue           string       `json:"venue"`
	MatchDate       time.Time    `json:"match_date"`
	Overs           int          `json:"overs" gorm:"not null;default:20"`
	Status          MatchStatus  `json:"status" gorm:"type:varchar(20);not null;default:'upcoming';index"`
	CurrentInnings  int          `json:"current_innings" gorm:"not null;default:0"`
	BattingTeamID   *uint        `json:"batting_team_id"`
	TossWinnerID    *uint        `json:"toss_winner_id"`
	TossDecision    TossDecision `json:"toss_decision" gorm:"type:varchar(10)"`
	WinnerID        *uint        `json:"winner_id"`
	ResultSummary   string       `json:"result_summary"`
	CreatedByUserID uint         `json:"created_by_user_id" gorm:"index"`

	Innings []Innings `json:"innings,omitempty" gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE"`
}

// OtherTeam returns the side in the match that is not teamID.
func (m *Match) OtherTeam(teamID uint) uint {
	if teamID == m.Team1ID {
		return m.Team2ID
	}
	return m.Team1ID
}

// HasTeam reports whether teamID plays in the match.
func (m *Match) HasTeam(teamID uint) bool {
	return teamID == m.Team1ID || teamID == m.Team2ID
}

// Innings is one side's batting turn with its running aggregate.
type Innings struct {
	gorm.Model
	MatchID       uint    `json:"match_id" gorm:"not null;uniqueIndex:idx_match_innings"`
	InningsNumber int     `json:"innings_number" gorm:"not null;uniqueIndex:idx_match_innings"`
	BattingTeamID uint    `json:"batting_team_id" gorm:"not null"`
	BowlingTeamID uint    `json:"bowling_team_id" gorm:"not null"`
	TotalRuns     int     `json:"total_runs" gorm:"not null;default:0"`
	Wickets       int     `json:"wickets" gorm:"not null;default:0"`
	OversBowled   float64 `json:"overs_bowled" gorm:"not null;default:0"`
	LegalBalls    int     `json:"legal_balls" gorm:"not null;default:0"`
	Extras        int     `json:"extras" gorm:"not null;default:0"`
	Wides         int     `json:"wides" gorm:"not null;default:0"`
	NoBalls       int     `json:"no_balls" gorm:"not null;default:0"`
	Byes          int     `json:"byes" gorm:"not null;default:0"`
	LegByes       int     `json:"leg_byes" gorm:"not null;default:0"`
	IsCompleted   bool    `json:"is_completed" gorm:"not null;default:false;index"`

	Balls []Ball `json:"-" gorm:"foreignKey:InningsID;constraint:OnDelete:CASCADE"`
}

// Totals reads the aggregate columns.
func (in *Innings) Totals() scoring.Totals {
	return scoring.Totals{
		Runs:       in.TotalRuns,
		Wickets:    in.Wickets,
		LegalBalls: in.LegalBalls,
		Extras:     in.Extras,
		Wides:      in.Wides,
		NoBalls:    in.NoBalls,
		Byes:       in.Byes,
		LegByes:    in.LegByes,
	}
}

// SetTotals writes t back and re-encodes overs_bowled from the legal balls.
func (in *Innings) SetTotals(t scoring.Totals) {
	in.TotalRuns = t.Runs
	in.Wickets = t.Wickets
	in.LegalBalls = t.LegalBalls
	in.OversBowled = t.OversBowled()
	in.Extras = t.Extras
	in.Wides = t.Wides
	in.NoBalls = t.NoBalls
	in.Byes = t.Byes
	in.LegByes = t.LegByes
}

// Ball is one ledger entry. Within an innings, ascending ID is creation
// order and the highest ID is the last ball.
type Ball struct {
	gorm.Model
	InningsID          uint               `json:"innings_id" gorm:"not null;index"`
	OverNumber         int                `json:"over_number"`
	BallNumber         int                `json:"ball_number"`
	BatsmanID          *uint              `json:"batsman_id"`
	BowlerID           *uint              `json:"bowler_id"`
	FielderID          *uint              `json:"fielder_id"`
	DismissedBatsmanID *uint              `json:"dismissed_batsman_id"`
	RunsScored         int                `json:"runs_scored" gorm:"not null;default:0"`
	BallType           scoring.BallType   `json:"ball_type" gorm:"type:varchar(20);not null;default:'normal'"`
	IsBoundary         bool               `json:"is_boundary"`
	IsSix              bool               `json:"is_six"`
	IsWicket           bool               `json:"is_wicket"`
	WicketType         scoring.WicketType `json:"wicket_type,omitempty" gorm:"type:varchar(20)"`
	Commentary         string             `json:"commentary,omitempty" gorm:"type:text"`
}

// Delta is the change this stored ball made to its innings.
func (b *Ball) Delta() scoring.Delta {
	return scoring.DeltaFor(b.BallType, b.RunsScored, b.IsWicket)
}
