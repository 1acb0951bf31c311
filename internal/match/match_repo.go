package match

import (
	"context"
	"errors"
	"fmt"

	"github.com/DhavalSuthar-24/scorebook/internal/scoring"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchRepository defines the interface for match, innings and ball persistence
type MatchRepository interface {
	// Match operations
	CreateMatch(ctx context.Context, match *Match) error
	GetMatchByID(ctx context.Context, id uint) (*Match, error)
	LockMatch(ctx context.Context, id uint) (*Match, error)
	UpdateMatch(ctx context.Context, match *Match) error
	DeleteMatch(ctx context.Context, id uint) error
	GetMatches(ctx context.Context, filters map[string]interface{}, page, pageSize int) ([]Match, int64, error)

	// Innings operations
	CreateInnings(ctx context.Context, innings *Innings) error
	GetInnings(ctx context.Context, matchID uint, number int) (*Innings, error)
	GetActiveInnings(ctx context.Context, matchID uint, number int) (*Innings, error)
	ListInnings(ctx context.Context, matchID uint) ([]Innings, error)
	UpdateInnings(ctx context.Context, innings *Innings) error
	DeleteInnings(ctx context.Context, id uint) error

	// Ball ledger operations
	CreateBall(ctx context.Context, ball *Ball) error
	GetLastBall(ctx context.Context, inningsID uint) (*Ball, error)
	DeleteBall(ctx context.Context, id uint) error
	RecentBalls(ctx context.Context, inningsID uint, limit int) ([]Ball, error)
	CountLegalBalls(ctx context.Context, inningsID uint, excludeBallID uint) (int64, error)

	// Transaction support
	WithTransaction(ctx context.Context, txFunc func(MatchRepository) error) error
}

// GormMatchRepository implements MatchRepository using GORM
type GormMatchRepository struct {
	db *gorm.DB
}

// NewGormMatchRepository creates a new GORM match repository
func NewGormMatchRepository(db *gorm.DB) *GormMatchRepository {
	return &GormMatchRepository{db: db}
}

// WithTransaction implements transaction support
func (r *GormMatchRepository) WithTransaction(ctx context.Context, txFunc func(MatchRepository) error) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	txRepo := &GormMatchRepository{db: tx}
	err := txFunc(txRepo)
	if err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// --- Match operations ---

func (r *GormMatchRepository) CreateMatch(ctx context.Context, match *Match) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(match).Error
}

func (r *GormMatchRepository) GetMatchByID(ctx context.Context, id uint) (*Match, error) {
	var match Match
	err := r.db.WithContext(ctx).
		Preload("Innings", func(db *gorm.DB) *gorm.DB {
			return db.Order("innings_number ASC")
		}).
		First(&match, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &match, nil
}

// LockMatch reads the match row with SELECT ... FOR UPDATE. It only holds
// the lock when called on a transactional repository.
func (r *GormMatchRepository) LockMatch(ctx context.Context, id uint) (*Match, error) {
	var match Match
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&match, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &match, nil
}

func (r *GormMatchRepository) UpdateMatch(ctx context.Context, match *Match) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(match).Error
}

// DeleteMatch removes the match with its innings and balls.
func (r *GormMatchRepository) DeleteMatch(ctx context.Context, id uint) error {
	innings, err := r.ListInnings(ctx, id)
	if err != nil {
		return err
	}
	for _, in := range innings {
		if err := r.DeleteInnings(ctx, in.ID); err != nil {
			return err
		}
	}
	return r.db.WithContext(ctx).Unscoped().Delete(&Match{}, id).Error
}

func (r *GormMatchRepository) GetMatches(ctx context.Context, filters map[string]interface{}, page, pageSize int) ([]Match, int64, error) {
	var matches []Match
	var total int64

	query := r.db.WithContext(ctx).Model(&Match{})

	if status, ok := filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if teamID, ok := filters["team_id"]; ok {
		query = query.Where("team1_id = ? OR team2_id = ?", teamID, teamID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("match_date DESC, id DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&matches).Error

	return matches, total, err
}

// --- Innings operations ---

func (r *GormMatchRepository) CreateInnings(ctx context.Context, innings *Innings) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(innings).Error
}

func (r *GormMatchRepository) GetInnings(ctx context.Context, matchID uint, number int) (*Innings, error) {
	var innings Innings
	err := r.db.WithContext(ctx).
		Where("match_id = ? AND innings_number = ?", matchID, number).
		First(&innings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &innings, nil
}

// GetActiveInnings is GetInnings restricted to an innings still in play.
func (r *GormMatchRepository) GetActiveInnings(ctx context.Context, matchID uint, number int) (*Innings, error) {
	var innings Innings
	err := r.db.WithContext(ctx).
		Where("match_id = ? AND innings_number = ? AND is_completed = ?", matchID, number, false).
		First(&innings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &innings, nil
}

func (r *GormMatchRepository) ListInnings(ctx context.Context, matchID uint) ([]Innings, error) {
	var innings []Innings
	err := r.db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("innings_number ASC").
		Find(&innings).Error
	return innings, err
}

func (r *GormMatchRepository) UpdateInnings(ctx context.Context, innings *Innings) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(innings).Error
}

// DeleteInnings removes the innings and its whole ledger.
func (r *GormMatchRepository) DeleteInnings(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Unscoped().Where("innings_id = ?", id).Delete(&Ball{}).Error; err != nil {
		return fmt.Errorf("delete balls of innings %d: %w", id, err)
	}
	return r.db.WithContext(ctx).Unscoped().Delete(&Innings{}, id).Error
}

// --- Ball ledger operations ---

func (r *GormMatchRepository) CreateBall(ctx context.Context, ball *Ball) error {
	return r.db.WithContext(ctx).Create(ball).Error
}

func (r *GormMatchRepository) GetLastBall(ctx context.Context, inningsID uint) (*Ball, error) {
	var ball Ball
	err := r.db.WithContext(ctx).
		Where("innings_id = ?", inningsID).
		Order("id DESC").
		First(&ball).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ball, nil
}

func (r *GormMatchRepository) DeleteBall(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&Ball{}, id).Error
}

// RecentBalls returns up to limit of the latest balls, oldest first.
func (r *GormMatchRepository) RecentBalls(ctx context.Context, inningsID uint, limit int) ([]Ball, error) {
	var balls []Ball
	err := r.db.WithContext(ctx).
		Where("innings_id = ?", inningsID).
		Order("id DESC").
		Limit(limit).
		Find(&balls).Error
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(balls)-1; i < j; i, j = i+1, j-1 {
		balls[i], balls[j] = balls[j], balls[i]
	}
	return balls, nil
}

// CountLegalBalls counts the legal deliveries in the innings ledger,
// leaving out excludeBallID when it is non-zero.
func (r *GormMatchRepository) CountLegalBalls(ctx context.Context, inningsID uint, excludeBallID uint) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&Ball{}).
		Where("innings_id = ?", inningsID).
		Where("ball_type IN ?", legalBallTypes())
	if excludeBallID != 0 {
		query = query.Where("id <> ?", excludeBallID)
	}
	err := query.Count(&count).Error
	return count, err
}

func legalBallTypes() []string {
	var types []string
	for _, t := range []scoring.BallType{scoring.BallNormal, scoring.BallWide, scoring.BallNoBall, scoring.BallBye, scoring.BallLegBye, scoring.BallWicket} {
		if t.IsLegal() {
			types = append(types, string(t))
		}
	}
	return types
}
