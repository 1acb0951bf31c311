// team/model.go
package team

import (
	"gorm.io/gorm"
)

// Team is a side that can be scheduled into a match.
type Team struct {
	gorm.Model
	Name        string       `json:"name" gorm:"uniqueIndex;not null"`
	ShortName   string       `json:"short_name"`
	Description string       `json:"description"`
	Logo        string       `json:"logo"`
	CreatedByID uint         `json:"created_by_id" gorm:"index"`
	Players     []TeamPlayer `json:"players,omitempty" gorm:"foreignKey:TeamID"`
}

// TeamPlayer is one entry on a team's roster. Ball events reference
// players by this ID.
type TeamPlayer struct {
	gorm.Model
	TeamID       uint   `json:"team_id" gorm:"index;not null"`
	Name         string `json:"name" gorm:"not null"`
	Role         string `json:"role" gorm:"default:'player'"` // batsman, bowler, all_rounder, wicket_keeper
	JerseyNumber int    `json:"jersey_number"`
	IsCaptain    bool   `json:"is_captain" gorm:"default:false"`
}
