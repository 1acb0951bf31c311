package team

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// TeamRepository defines the interface for team data operations
type TeamRepository interface {
	CreateTeam(ctx context.Context, team *Team) error
	GetTeamByID(ctx context.Context, id uint) (*Team, error)
	GetTeamByName(ctx context.Context, name string) (*Team, error)
	GetAllTeams(ctx context.Context, page, limit int) ([]Team, int64, error)

	AddPlayer(ctx context.Context, player *TeamPlayer) error
	GetTeamPlayers(ctx context.Context, teamID uint) ([]TeamPlayer, error)
	IsTeamPlayer(ctx context.Context, teamID, playerID uint) (bool, error)
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new instance of TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) CreateTeam(ctx context.Context, team *Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *teamRepository) GetTeamByID(ctx context.Context, id uint) (*Team, error) {
	var team Team
	if err := r.db.WithContext(ctx).Preload("Players").First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetTeamByName(ctx context.Context, name string) (*Team, error) {
	var team Team
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetAllTeams(ctx context.Context, page, limit int) ([]Team, int64, error) {
	var teams []Team
	var total int64

	query := r.db.WithContext(ctx).Model(&Team{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("name asc").Offset(offset).Limit(limit).Find(&teams).Error; err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

// --- Roster ---

func (r *teamRepository) AddPlayer(ctx context.Context, player *TeamPlayer) error {
	return r.db.WithContext(ctx).Create(player).Error
}

func (r *teamRepository) GetTeamPlayers(ctx context.Context, teamID uint) ([]TeamPlayer, error) {
	var players []TeamPlayer
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("id asc").
		Find(&players).Error
	return players, err
}

func (r *teamRepository) IsTeamPlayer(ctx context.Context, teamID, playerID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&TeamPlayer{}).
		Where("team_id = ? AND id = ?", teamID, playerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
