// Package store owns the schema of every table the service writes.
package store

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/scorebook/internal/auth"
	"github.com/DhavalSuthar-24/scorebook/internal/match"
	"github.com/DhavalSuthar-24/scorebook/internal/team"
)

// Models lists the tables in dependency order.
func Models() []interface{} {
	return []interface{}{
		&auth.User{},
		&team.Team{}, &team.TeamPlayer{},
		&match.Match{}, &match.Innings{}, &match.Ball{},
	}
}

// Migrate creates or alters every table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
