package match

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DhavalSuthar-24/scorebook/internal/live"
	"github.com/DhavalSuthar-24/scorebook/internal/metrics"
	"github.com/DhavalSuthar-24/scorebook/internal/scoring"
	"github.com/DhavalSuthar-24/scorebook/internal/team"
	"go.uber.org/zap"
)

// RecentBallsLimit is how many deliveries a scorecard shows for "this over".
const RecentBallsLimit = 12

// TeamLookup is the part of the team roster the scorer needs.
type TeamLookup interface {
	GetTeamByID(ctx context.Context, id uint) (*team.Team, error)
	IsTeamPlayer(ctx context.Context, teamID, playerID uint) (bool, error)
}

type CreateMatchInput struct {
	Name            string
	Team1ID         uint
	Team2ID         uint
	Venue           string
	MatchDate       time.Time
	Overs           int
	CreatedByUserID uint
}

// BallInput is one delivery as entered by the scorer. Player ids are
// optional; when given they must be on the right side's roster.
type BallInput struct {
	Runs               int
	BallType           scoring.BallType
	IsWicket           bool
	WicketType         scoring.WicketType
	BatsmanID          *uint
	BowlerID           *uint
	FielderID          *uint
	DismissedBatsmanID *uint
	Commentary         string
}

// UpdateMatchInput overwrites whichever fields are set. ClearWinner removes
// the winner when WinnerID is nil.
type UpdateMatchInput struct {
	Name          *string
	Venue         *string
	MatchDate     *time.Time
	Overs         *int
	Status        *MatchStatus
	WinnerID      *uint
	ClearWinner   bool
	ResultSummary *string
}

type StartResult struct {
	Match   *Match   `json:"match"`
	Innings *Innings `json:"innings"`
}

type BallResult struct {
	Ball         *Ball    `json:"ball"`
	Innings      *Innings `json:"innings"`
	Match        *Match   `json:"match"`
	InningsEnded bool     `json:"innings_ended"`
	NextInnings  *Innings `json:"next_innings,omitempty"`
}

type UndoResult struct {
	Ball    *Ball    `json:"ball"`
	Innings *Innings `json:"innings"`
	Match   *Match   `json:"match"`
}

// Scorecard is the read model of a match for scoreboards.
type Scorecard struct {
	Match           *Match    `json:"match"`
	Innings         []Innings `json:"innings"`
	RecentBalls     []Ball    `json:"recent_balls"`
	Target          *int      `json:"target,omitempty"`
	RunsNeeded      *int      `json:"runs_needed,omitempty"`
	RequiredRunRate *float64  `json:"required_run_rate,omitempty"`
}

// MatchService runs the innings/match state machine. Every mutating call is
// one transaction holding both the in-process lock and the match row lock,
// and publishes its live events only after commit.
type MatchService struct {
	repo      MatchRepository
	teams     TeamLookup
	publisher live.Publisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
	locks     *matchLocks
}

// NewMatchService wires a service. teams may be nil to skip roster checks,
// publisher and m may be nil to disable them.
func NewMatchService(repo MatchRepository, teams TeamLookup, publisher live.Publisher, m *metrics.Metrics, logger *zap.Logger) *MatchService {
	if publisher == nil {
		publisher = live.Noop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatchService{
		repo:      repo,
		teams:     teams,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
		locks:     newMatchLocks(),
	}
}

// mutate runs fn against the locked match inside one transaction. The
// caller holds s.locks for matchID until its events are published, so
// viewers see events in commit order.
func (s *MatchService) mutate(ctx context.Context, op string, matchID uint, fn func(tx MatchRepository, m *Match) error) error {
	start := time.Now()
	err := s.repo.WithTransaction(ctx, func(tx MatchRepository) error {
		m, err := tx.LockMatch(ctx, matchID)
		if err != nil {
			return fmt.Errorf("load match %d: %w", matchID, err)
		}
		if m == nil {
			return notFound(msgMatchNotFound)
		}
		return fn(tx, m)
	})
	s.metrics.ObserveOperation(op, start, err)
	return err
}

func (s *MatchService) publish(ctx context.Context, events ...live.Event) {
	for _, e := range events {
		if err := s.publisher.Publish(ctx, e); err != nil {
			s.logger.Warn("failed to publish live event",
				zap.String("type", string(e.Type)),
				zap.Uint("match_id", e.MatchID),
				zap.Error(err))
		}
	}
}

func (s *MatchService) requireTeam(ctx context.Context, id uint) error {
	if s.teams == nil {
		return nil
	}
	t, err := s.teams.GetTeamByID(ctx, id)
	if err != nil {
		return fmt.Errorf("look up team %d: %w", id, err)
	}
	if t == nil {
		return notFound("Team %d not found", id)
	}
	return nil
}

func (s *MatchService) requirePlayer(ctx context.Context, role string, teamID uint, playerID *uint) error {
	if s.teams == nil || playerID == nil {
		return nil
	}
	ok, err := s.teams.IsTeamPlayer(ctx, teamID, *playerID)
	if err != nil {
		return fmt.Errorf("look up %s %d: %w", role, *playerID, err)
	}
	if !ok {
		return invalidInput("%s %d is not in team %d", role, *playerID, teamID)
	}
	return nil
}

// CreateMatch schedules a new upcoming match between two existing teams.
func (s *MatchService) CreateMatch(ctx context.Context, in CreateMatchInput) (*Match, error) {
	if in.Team1ID == 0 || in.Team2ID == 0 {
		return nil, invalidInput("Both teams are required")
	}
	if in.Team1ID == in.Team2ID {
		return nil, invalidInput("Team 1 and Team 2 must be different")
	}
	if in.Overs < 0 {
		return nil, invalidInput("Overs must be positive")
	}
	if in.Overs == 0 {
		in.Overs = DefaultOvers
	}
	if err := s.requireTeam(ctx, in.Team1ID); err != nil {
		return nil, err
	}
	if err := s.requireTeam(ctx, in.Team2ID); err != nil {
		return nil, err
	}
	if in.MatchDate.IsZero() {
		in.MatchDate = time.Now()
	}

	m := &Match{
		Name:            in.Name,
		Team1ID:         in.Team1ID,
		Team2ID:         in.Team2ID,
		Venue:           in.Venue,
		MatchDate:       in.MatchDate,
		Overs:           in.Overs,
		Status:          StatusUpcoming,
		CreatedByUserID: in.CreatedByUserID,
	}
	if err := s.repo.CreateMatch(ctx, m); err != nil {
		return nil, fmt.Errorf("create match: %w", err)
	}

	s.metrics.ObserveMatchCreated()
	s.logger.Info("match created", zap.Uint("match_id", m.ID), zap.String("name", m.Name), zap.Int("overs", m.Overs))
	return m, nil
}

// StartMatch records the toss and opens the first innings.
func (s *MatchService) StartMatch(ctx context.Context, matchID uint, tossWinnerID *uint, decision TossDecision) (*StartResult, error) {
	defer s.locks.lock(matchID)()

	var res StartResult
	err := s.mutate(ctx, "start_match", matchID, func(tx MatchRepository, m *Match) error {
		if tossWinnerID == nil || decision == "" {
			return invalidState(msgTossRequired)
		}
		if decision != TossBat && decision != TossBowl {
			return invalidInput("Toss decision must be bat or bowl")
		}
		if m.Status != StatusUpcoming {
			return invalidState(msgMatchNotUpcoming)
		}
		if !m.HasTeam(*tossWinnerID) {
			return invalidInput("Toss winner must be one of the two teams")
		}

		batting := *tossWinnerID
		if decision == TossBowl {
			batting = m.OtherTeam(batting)
		}

		m.TossWinnerID = tossWinnerID
		m.TossDecision = decision
		m.Status = StatusLive
		m.CurrentInnings = 1
		m.BattingTeamID = &batting
		if err := tx.UpdateMatch(ctx, m); err != nil {
			return fmt.Errorf("update match: %w", err)
		}

		innings := &Innings{
			MatchID:       m.ID,
			InningsNumber: 1,
			BattingTeamID: batting,
			BowlingTeamID: m.OtherTeam(batting),
		}
		if err := tx.CreateInnings(ctx, innings); err != nil {
			return fmt.Errorf("create innings: %w", err)
		}

		res.Match = m
		res.Innings = innings
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("match started",
		zap.Uint("match_id", matchID),
		zap.Uint("toss_winner_id", *tossWinnerID),
		zap.String("toss_decision", string(decision)),
		zap.Uint("batting_team_id", res.Innings.BattingTeamID))
	s.publish(ctx, live.NewEvent(live.EventMatchUpdated, matchID, string(res.Match.Status), res.Match))
	return &res, nil
}

// RecordBall appends a delivery to the active innings and runs the
// end-of-innings and target checks.
func (s *MatchService) RecordBall(ctx context.Context, matchID uint, in BallInput) (*BallResult, error) {
	defer s.locks.lock(matchID)()

	var res BallResult
	err := s.mutate(ctx, "record_ball", matchID, func(tx MatchRepository, m *Match) error {
		if m.Status != StatusLive {
			return invalidState(msgMatchNotLive)
		}
		delivery, err := scoring.ParseDelivery(in.BallType, in.Runs, in.IsWicket, in.WicketType)
		if err != nil {
			return invalidInput("%s", err.Error())
		}
		innings, err := tx.GetActiveInnings(ctx, m.ID, m.CurrentInnings)
		if err != nil {
			return fmt.Errorf("load active innings: %w", err)
		}
		if innings == nil {
			return invalidState(msgNoActiveInnings)
		}

		if err := s.requirePlayer(ctx, "Batsman", innings.BattingTeamID, in.BatsmanID); err != nil {
			return err
		}
		if err := s.requirePlayer(ctx, "Dismissed batsman", innings.BattingTeamID, in.DismissedBatsmanID); err != nil {
			return err
		}
		if err := s.requirePlayer(ctx, "Bowler", innings.BowlingTeamID, in.BowlerID); err != nil {
			return err
		}
		if err := s.requirePlayer(ctx, "Fielder", innings.BowlingTeamID, in.FielderID); err != nil {
			return err
		}

		totals, err := innings.Totals().Apply(scoring.DeltaOf(delivery))
		if err != nil {
			if errors.Is(err, scoring.ErrAllOut) {
				return invalidState("Innings is already all out")
			}
			return err
		}

		ball := newBall(innings, delivery, in)
		if err := tx.CreateBall(ctx, ball); err != nil {
			return fmt.Errorf("create ball: %w", err)
		}
		innings.SetTotals(totals)

		res.Ball = ball
		res.Innings = innings
		res.Match = m

		var first *Innings
		if m.CurrentInnings == 2 {
			first, err = tx.GetInnings(ctx, m.ID, 1)
			if err != nil {
				return fmt.Errorf("load first innings: %w", err)
			}
			if first == nil {
				return invalidState(msgInningsNotFound)
			}
		}

		switch {
		case first != nil && scoring.TargetChased(first.Totals(), totals):
			innings.IsCompleted = true
			res.InningsEnded = true
			completeMatch(m, &innings.BattingTeamID, scoring.WonByWickets(scoring.MaxWickets-totals.Wickets))

		case scoring.InningsOver(totals, m.Overs):
			innings.IsCompleted = true
			res.InningsEnded = true
			if first == nil {
				next, err := openSecondInnings(ctx, tx, m, innings)
				if err != nil {
					return err
				}
				res.NextInnings = next
			} else {
				decideMatch(m, first, innings)
			}
		}

		if err := tx.UpdateInnings(ctx, innings); err != nil {
			return fmt.Errorf("update innings: %w", err)
		}
		if res.InningsEnded {
			if err := tx.UpdateMatch(ctx, m); err != nil {
				return fmt.Errorf("update match: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveBall(string(res.Ball.BallType), res.Ball.IsWicket)
	s.logger.Debug("ball recorded",
		zap.Uint("match_id", matchID),
		zap.Uint("innings_id", res.Innings.ID),
		zap.Int("over", res.Ball.OverNumber),
		zap.Int("ball", res.Ball.BallNumber),
		zap.String("ball_type", string(res.Ball.BallType)),
		zap.Int("runs", res.Ball.RunsScored),
		zap.Bool("wicket", res.Ball.IsWicket))

	events := []live.Event{live.NewEvent(live.EventBallRecorded, matchID, string(res.Match.Status), &res)}
	if res.NextInnings != nil {
		s.logger.Info("innings completed", zap.Uint("match_id", matchID), zap.Int("innings", 1),
			zap.Int("runs", res.Innings.TotalRuns), zap.Int("wickets", res.Innings.Wickets))
		events = append(events,
			live.NewEvent(live.EventInningsBreak, matchID, string(StatusInningsBreak), res.Innings),
			live.NewEvent(live.EventMatchUpdated, matchID, string(res.Match.Status), res.Match))
	}
	if res.Match.Status == StatusCompleted {
		s.metrics.ObserveMatchFinished(string(StatusCompleted))
		s.logger.Info("match completed", zap.Uint("match_id", matchID), zap.String("result", res.Match.ResultSummary))
		events = append(events, live.NewEvent(live.EventMatchUpdated, matchID, string(res.Match.Status), res.Match))
	}
	s.publish(ctx, events...)
	return &res, nil
}

// newBall numbers the delivery from the legal balls already bowled. Wides
// and no-balls share the number of the legal ball that follows them.
func newBall(innings *Innings, d scoring.Delivery, in BallInput) *Ball {
	ball := &Ball{
		InningsID:          innings.ID,
		OverNumber:         scoring.CurrentOver(innings.LegalBalls),
		BallNumber:         scoring.BallInOver(innings.LegalBalls) + 1,
		BatsmanID:          in.BatsmanID,
		BowlerID:           in.BowlerID,
		FielderID:          in.FielderID,
		DismissedBatsmanID: in.DismissedBatsmanID,
		RunsScored:         d.Runs(),
		BallType:           d.Stored(),
		IsWicket:           d.IsWicket(),
		Commentary:         in.Commentary,
	}

	if w, ok := d.(scoring.Wicket); ok {
		ball.WicketType = w.Type
	}
	ball.IsBoundary = d.Runs() == 4
	ball.IsSix = d.Runs() == 6
	return ball
}

// openSecondInnings swaps the sides and makes innings two current.
func openSecondInnings(ctx context.Context, tx MatchRepository, m *Match, first *Innings) (*Innings, error) {
	second := &Innings{
		MatchID:       m.ID,
		InningsNumber: 2,
		BattingTeamID: first.BowlingTeamID,
		BowlingTeamID: first.BattingTeamID,
	}
	if err := tx.CreateInnings(ctx, second); err != nil {
		return nil, fmt.Errorf("create second innings: %w", err)
	}
	m.CurrentInnings = 2
	m.BattingTeamID = &second.BattingTeamID
	m.Status = StatusLive
	return second, nil
}

// decideMatch completes m from the two finished innings.
func decideMatch(m *Match, first, second *Innings) {
	out := scoring.Decide(first.Totals(), second.Totals())
	switch out.Winner {
	case scoring.SecondInnings:
		completeMatch(m, &second.BattingTeamID, out.Summary)
	case scoring.FirstInnings:
		completeMatch(m, &first.BattingTeamID, out.Summary)
	default:
		completeMatch(m, nil, out.Summary)
	}
}

func completeMatch(m *Match, winnerID *uint, summary string) {
	m.Status = StatusCompleted
	m.WinnerID = nil
	if winnerID != nil {
		id := *winnerID
		m.WinnerID = &id
	}
	m.ResultSummary = summary
}

// UndoLastBall removes the newest ball of the current innings and reverses
// its effect. The innings is always reopened, and a completed match goes
// back to live with its result cleared.
func (s *MatchService) UndoLastBall(ctx context.Context, matchID uint) (*UndoResult, error) {
	defer s.locks.lock(matchID)()

	var res UndoResult
	reopened := false
	err := s.mutate(ctx, "undo_last_ball", matchID, func(tx MatchRepository, m *Match) error {
		if m.Status != StatusLive && m.Status != StatusCompleted {
			return invalidState(msgMatchNotLive)
		}
		innings, err := tx.GetInnings(ctx, m.ID, m.CurrentInnings)
		if err != nil {
			return fmt.Errorf("load innings: %w", err)
		}
		if innings == nil {
			return invalidState(msgNoActiveInnings)
		}

		last, err := tx.GetLastBall(ctx, innings.ID)
		if err != nil {
			return fmt.Errorf("load last ball: %w", err)
		}
		if last == nil {
			return invalidState(msgNoBallsToUndo)
		}

		totals := innings.Totals().Revert(last.Delta())
		legal, err := tx.CountLegalBalls(ctx, innings.ID, last.ID)
		if err != nil {
			return fmt.Errorf("count legal balls: %w", err)
		}
		totals.LegalBalls = int(legal)
		innings.SetTotals(totals)
		innings.IsCompleted = false

		if err := tx.DeleteBall(ctx, last.ID); err != nil {
			return fmt.Errorf("delete ball: %w", err)
		}
		if err := tx.UpdateInnings(ctx, innings); err != nil {
			return fmt.Errorf("update innings: %w", err)
		}

		if m.Status == StatusCompleted {
			m.Status = StatusLive
			m.WinnerID = nil
			m.ResultSummary = ""
			if err := tx.UpdateMatch(ctx, m); err != nil {
				return fmt.Errorf("update match: %w", err)
			}
			reopened = true
		}

		res.Ball = last
		res.Innings = innings
		res.Match = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveUndo()
	s.logger.Info("ball undone",
		zap.Uint("match_id", matchID),
		zap.Uint("ball_id", res.Ball.ID),
		zap.Uint("innings_id", res.Innings.ID),
		zap.Bool("match_reopened", reopened))

	events := []live.Event{live.NewEvent(live.EventBallUndone, matchID, string(res.Match.Status), &res)}
	if reopened {
		events = append(events, live.NewEvent(live.EventMatchUpdated, matchID, string(res.Match.Status), res.Match))
	}
	s.publish(ctx, events...)
	return &res, nil
}

// EndInnings closes the active innings by hand. Closing the first innings
// opens the second without an innings break; closing the second decides
// the match from the scores as they stand.
func (s *MatchService) EndInnings(ctx context.Context, matchID uint) (*Match, error) {
	defer s.locks.lock(matchID)()

	err := s.mutate(ctx, "end_innings", matchID, func(tx MatchRepository, m *Match) error {
		if m.Status != StatusLive {
			return invalidState(msgMatchNotLive)
		}
		innings, err := tx.GetActiveInnings(ctx, m.ID, m.CurrentInnings)
		if err != nil {
			return fmt.Errorf("load active innings: %w", err)
		}
		if innings == nil {
			return invalidState(msgNoActiveInnings)
		}

		innings.IsCompleted = true
		if err := tx.UpdateInnings(ctx, innings); err != nil {
			return fmt.Errorf("update innings: %w", err)
		}

		if m.CurrentInnings == 1 {
			if _, err := openSecondInnings(ctx, tx, m, innings); err != nil {
				return err
			}
		} else {
			first, err := tx.GetInnings(ctx, m.ID, 1)
			if err != nil {
				return fmt.Errorf("load first innings: %w", err)
			}
			if first == nil {
				return invalidState(msgInningsNotFound)
			}
			decideMatch(m, first, innings)
		}

		if err := tx.UpdateMatch(ctx, m); err != nil {
			return fmt.Errorf("update match: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.afterUpdate(ctx, matchID, "innings ended")
}

// EndMatch completes a live match with a caller-supplied result.
func (s *MatchService) EndMatch(ctx context.Context, matchID uint, winnerID *uint, summary string) (*Match, error) {
	defer s.locks.lock(matchID)()

	err := s.mutate(ctx, "end_match", matchID, func(tx MatchRepository, m *Match) error {
		switch m.Status {
		case StatusCompleted, StatusAbandoned:
			return invalidState(msgMatchAlreadyOver)
		case StatusUpcoming:
			return invalidState(msgMatchNotLive)
		}
		if winnerID != nil && !m.HasTeam(*winnerID) {
			return invalidInput("Winner must be one of the two teams")
		}
		completeMatch(m, winnerID, summary)
		if err := tx.UpdateMatch(ctx, m); err != nil {
			return fmt.Errorf("update match: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.afterUpdate(ctx, matchID, "match ended")
}

// AbandonMatch stops a match that has not finished.
func (s *MatchService) AbandonMatch(ctx context.Context, matchID uint, summary string) (*Match, error) {
	defer s.locks.lock(matchID)()

	if summary == "" {
		summary = scoring.AbandonedSummary
	}
	err := s.mutate(ctx, "abandon_match", matchID, func(tx MatchRepository, m *Match) error {
		if m.Status == StatusCompleted || m.Status == StatusAbandoned {
			return invalidState(msgMatchAlreadyOver)
		}
		m.Status = StatusAbandoned
		m.ResultSummary = summary
		if err := tx.UpdateMatch(ctx, m); err != nil {
			return fmt.Errorf("update match: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.afterUpdate(ctx, matchID, "match abandoned")
}

// UpdateMatch overwrites match fields directly. It is the administrative
// escape hatch and does not run any transition checks.
func (s *MatchService) UpdateMatch(ctx context.Context, matchID uint, in UpdateMatchInput) (*Match, error) {
	defer s.locks.lock(matchID)()

	err := s.mutate(ctx, "update_match", matchID, func(tx MatchRepository, m *Match) error {
		if in.Status != nil && (!in.Status.Valid() || *in.Status == StatusInningsBreak) {
			return invalidInput("Unknown match status %q", string(*in.Status))
		}
		if in.Overs != nil && *in.Overs <= 0 {
			return invalidInput("Overs must be positive")
		}
		if in.Name != nil {
			m.Name = *in.Name
		}
		if in.Venue != nil {
			m.Venue = *in.Venue
		}
		if in.MatchDate != nil {
			m.MatchDate = *in.MatchDate
		}
		if in.Overs != nil {
			m.Overs = *in.Overs
		}
		if in.Status != nil {
			m.Status = *in.Status
		}
		if in.WinnerID != nil {
			id := *in.WinnerID
			m.WinnerID = &id
		} else if in.ClearWinner {
			m.WinnerID = nil
		}
		if in.ResultSummary != nil {
			m.ResultSummary = *in.ResultSummary
		}
		if err := tx.UpdateMatch(ctx, m); err != nil {
			return fmt.Errorf("update match: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.afterUpdate(ctx, matchID, "match updated")
}

// afterUpdate reloads the committed match, then logs and publishes it.
func (s *MatchService) afterUpdate(ctx context.Context, matchID uint, msg string) (*Match, error) {
	m, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if m.Status == StatusCompleted || m.Status == StatusAbandoned {
		s.metrics.ObserveMatchFinished(string(m.Status))
	}
	s.logger.Info(msg,
		zap.Uint("match_id", matchID),
		zap.String("status", string(m.Status)),
		zap.Int("current_innings", m.CurrentInnings),
		zap.String("result", m.ResultSummary))
	s.publish(ctx, live.NewEvent(live.EventMatchUpdated, matchID, string(m.Status), m))
	return m, nil
}

// DeleteMatch removes a match with its innings and ball ledger.
func (s *MatchService) DeleteMatch(ctx context.Context, matchID uint) error {
	defer s.locks.lock(matchID)()

	err := s.mutate(ctx, "delete_match", matchID, func(tx MatchRepository, m *Match) error {
		if err := tx.DeleteMatch(ctx, m.ID); err != nil {
			return fmt.Errorf("delete match: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("match deleted", zap.Uint("match_id", matchID))
	return nil
}

// GetMatch returns the match with its innings in order.
func (s *MatchService) GetMatch(ctx context.Context, matchID uint) (*Match, error) {
	m, err := s.repo.GetMatchByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("load match %d: %w", matchID, err)
	}
	if m == nil {
		return nil, notFound(msgMatchNotFound)
	}
	return m, nil
}

// ListMatches pages through matches, optionally filtered by status and team.
func (s *MatchService) ListMatches(ctx context.Context, status string, teamID uint, page, pageSize int) ([]Match, int64, error) {
	filters := make(map[string]interface{})
	if status != "" {
		if !MatchStatus(status).Valid() {
			return nil, 0, invalidInput("Unknown match status %q", status)
		}
		filters["status"] = status
	}
	if teamID != 0 {
		filters["team_id"] = teamID
	}

	matches, total, err := s.repo.GetMatches(ctx, filters, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list matches: %w", err)
	}
	return matches, total, nil
}

// GetScore builds the scorecard. inningsNumber picks whose recent balls to
// show; by default it is the current innings.
func (s *MatchService) GetScore(ctx context.Context, matchID uint, inningsNumber *int) (*Scorecard, error) {
	m, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	card := &Scorecard{
		Match:       m,
		Innings:     m.Innings,
		RecentBalls: []Ball{},
	}
	m.Innings = nil
	if card.Innings == nil {
		card.Innings = []Innings{}
	}

	want := m.CurrentInnings
	if inningsNumber != nil {
		want = *inningsNumber
	}
	var selected, first, second *Innings
	for i := range card.Innings {
		in := &card.Innings[i]
		switch in.InningsNumber {
		case 1:
			first = in
		case 2:
			second = in
		}
		if in.InningsNumber == want {
			selected = in
		}
	}
	if inningsNumber != nil && selected == nil {
		return nil, notFound(msgInningsNotFound)
	}

	if selected != nil {
		balls, err := s.repo.RecentBalls(ctx, selected.ID, RecentBallsLimit)
		if err != nil {
			return nil, fmt.Errorf("load recent balls: %w", err)
		}
		card.RecentBalls = balls
	}

	if m.CurrentInnings == 2 && first != nil && second != nil {
		target := scoring.Target(first.TotalRuns)
		needed := target - second.TotalRuns
		if needed < 0 {
			needed = 0
		}
		card.Target = &target
		card.RunsNeeded = &needed
		if !second.IsCompleted && needed > 0 {
			card.RequiredRunRate = scoring.RequiredRunRate(target, second.TotalRuns, m.Overs, second.LegalBalls)
		}
	}
	return card, nil
}
