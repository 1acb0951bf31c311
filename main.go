package main

import (
	"github.com/DhavalSuthar-24/scorebook/cmd"
	_ "github.com/DhavalSuthar-24/scorebook/docs"
)

// @title Scorebook REST API
// @version 1.0
// @description Live cricket scoring: matches, ball-by-ball ledger, undo and scorecards.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	cmd.Execute()
}
